package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmeshcher/venueops/internal/billing"
	"github.com/mmeshcher/venueops/internal/drink"
	"github.com/mmeshcher/venueops/internal/model"
)

// ListDrinks возвращает записи арендатора по фильтру. Даты From и To берутся целыми днями включительно.
func (s *Service) ListDrinks(ctx context.Context, tenantID string, f model.DrinkFilter) ([]model.DrinkRecord, error) {
	f.Employee = strings.TrimSpace(f.Employee)

	var from, to time.Time
	if f.From != nil {
		from = *f.From
	}
	if f.To != nil {
		to = *f.To
	}
	start, end := billing.DayRange(from, to)
	if !start.IsZero() && !end.IsZero() && !start.Before(end) {
		return nil, fmt.Errorf("%w: drinks range end before start", model.ErrValidation)
	}
	f.From, f.To = nil, nil
	if !start.IsZero() {
		f.From = &start
	}
	if !end.IsZero() {
		f.To = &end
	}
	return s.repo.ListDrinks(ctx, tenantID, f)
}

// PublicDrinks выборка записей для публичной страницы вместе с итогами.
func (s *Service) PublicDrinks(ctx context.Context, tenantID string, f model.DrinkFilter) ([]model.DrinkRecord, model.DrinkTotals, error) {
	records, err := s.ListDrinks(ctx, tenantID, f)
	if err != nil {
		return nil, model.DrinkTotals{}, err
	}
	return records, billing.DrinkTotals(records), nil
}

// CreateDrink сохраняет новую недельную запись.
func (s *Service) CreateDrink(ctx context.Context, tenantID string, r model.DrinkRecord) (model.DrinkRecord, error) {
	created, err := drink.NewWeek(drink.NewWeekInput{
		EmployeeName:    r.EmployeeName,
		InitialQuantity: r.Quantity,
		Goal:            r.Goal,
		PeriodStart:     r.PeriodStart,
		PeriodEnd:       r.PeriodEnd,
	}, s.clock.Now())
	if err != nil {
		return model.DrinkRecord{}, err
	}
	created.ID = r.ID
	if created.ID == "" {
		created.ID = s.ids.NewUUID()
	}
	created.TenantID = tenantID
	if r.Items != nil {
		created.Items = model.CloneItems(r.Items)
	}

	if err := s.validate.Struct(created); err != nil {
		return model.DrinkRecord{}, err
	}
	return s.repo.CreateDrink(ctx, created)
}

// PatchDrink применяет частичное обновление. Заданная версия должна совпадать с сохранённой.
func (s *Service) PatchDrink(ctx context.Context, tenantID, id string, p model.DrinkPatch) (model.DrinkRecord, error) {
	stored, err := s.repo.GetDrink(ctx, tenantID, id)
	if err != nil {
		return model.DrinkRecord{}, err
	}
	if p.Version != nil {
		if err := checkVersion(stored.Version, *p.Version); err != nil {
			return model.DrinkRecord{}, err
		}
	}

	next, err := drink.ApplyPatch(stored, p)
	if err != nil {
		return model.DrinkRecord{}, err
	}
	if err := s.validate.Struct(next); err != nil {
		return model.DrinkRecord{}, err
	}
	return s.repo.UpdateDrink(ctx, next)
}

// AddDrinkUnit атомарно добавляет один напиток.
func (s *Service) AddDrinkUnit(ctx context.Context, tenantID, id string) (model.DrinkRecord, error) {
	return s.repo.AddDrinkUnits(ctx, tenantID, id, 1)
}

// RemoveDrinkUnit атомарно убирает один напиток, не опускаясь ниже нуля.
func (s *Service) RemoveDrinkUnit(ctx context.Context, tenantID, id string) (model.DrinkRecord, error) {
	return s.repo.AddDrinkUnits(ctx, tenantID, id, -1)
}

// DeleteDrink удаляет запись.
func (s *Service) DeleteDrink(ctx context.Context, tenantID, id string) error {
	return s.repo.DeleteDrink(ctx, tenantID, id)
}
