package service

import (
	"context"
	"fmt"

	"github.com/mmeshcher/venueops/internal/model"
	"github.com/mmeshcher/venueops/internal/tab"
)

// ListTabs возвращает счета арендатора.
func (s *Service) ListTabs(ctx context.Context, tenantID string) ([]model.Tab, error) {
	return s.repo.ListTabs(ctx, tenantID)
}

// CreateTab сохраняет новый открытый счёт. Итог пересчитывается по строкам.
func (s *Service) CreateTab(ctx context.Context, tenantID string, t model.Tab) (model.Tab, error) {
	t.TenantID = tenantID
	if t.ID == "" {
		t.ID = s.ids.NewUUID()
	}
	if t.Status == "" {
		t.Status = model.TabStatusOpen
	}
	if t.Items == nil {
		t.Items = []model.LineItem{}
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.clock.Now()
	}
	if t.Status == model.TabStatusClosed && t.ClosedAt == nil {
		now := s.clock.Now()
		t.ClosedAt = &now
	}
	t = tab.Recalculate(t)

	if err := s.validate.Struct(t); err != nil {
		return model.Tab{}, err
	}
	return s.repo.CreateTab(ctx, t)
}

// ReplaceTab заменяет счёт целиком. Закрытый счёт не изменяется.
func (s *Service) ReplaceTab(ctx context.Context, tenantID string, t model.Tab) (model.Tab, error) {
	stored, err := s.repo.GetTab(ctx, tenantID, t.ID)
	if err != nil {
		return model.Tab{}, err
	}
	if err := checkVersion(stored.Version, t.Version); err != nil {
		return model.Tab{}, err
	}
	if stored.Status == model.TabStatusClosed {
		return model.Tab{}, fmt.Errorf("%w: tab %s is closed", model.ErrInvalidTransition, t.ID)
	}

	t.TenantID = tenantID
	t.CreatedAt = stored.CreatedAt
	if t.Items == nil {
		t.Items = []model.LineItem{}
	}
	if t.Status == "" {
		t.Status = model.TabStatusOpen
	}
	switch t.Status {
	case model.TabStatusClosed:
		if t.ClosedAt == nil {
			now := s.clock.Now()
			t.ClosedAt = &now
		}
	default:
		t.ClosedAt = nil
	}
	t = tab.Recalculate(t)

	if err := s.validate.Struct(t); err != nil {
		return model.Tab{}, err
	}
	return s.repo.ReplaceTab(ctx, t)
}

// DeleteTab удаляет счёт.
func (s *Service) DeleteTab(ctx context.Context, tenantID, id string) error {
	return s.repo.DeleteTab(ctx, tenantID, id)
}
