package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mmeshcher/venueops/internal/billing"
	"github.com/mmeshcher/venueops/internal/model"
	"github.com/mmeshcher/venueops/internal/room"
)

// TabsReport возвращает закрытые счета за даты from..to включительно.
func (s *Service) TabsReport(ctx context.Context, tenantID string, from, to time.Time) (model.TabsReport, error) {
	start, end := billing.DayRange(from, to)
	if !start.IsZero() && !end.IsZero() && !start.Before(end) {
		return model.TabsReport{}, fmt.Errorf("%w: report range end before start", model.ErrValidation)
	}

	tabs, err := s.repo.ClosedTabs(ctx, tenantID, start, end)
	if err != nil {
		return model.TabsReport{}, err
	}

	report := model.TabsReport{From: start, To: end, Count: len(tabs), Tabs: tabs}
	for _, t := range tabs {
		report.Total += t.Total
	}
	return report, nil
}

// Summary сводный отчёт: закрытые счета, выручка комнат и итоги напитков за даты from..to.
func (s *Service) Summary(ctx context.Context, tenantID string, from, to time.Time) (model.Summary, error) {
	report, err := s.TabsReport(ctx, tenantID, from, to)
	if err != nil {
		return model.Summary{}, err
	}

	sessions, err := s.repo.ListRooms(ctx, tenantID)
	if err != nil {
		return model.Summary{}, err
	}
	closed := room.FilterClosed(sessions, room.ClosedFilter{From: from, To: to})

	f := model.DrinkFilter{}
	if !report.From.IsZero() {
		f.From = &report.From
	}
	if !report.To.IsZero() {
		f.To = &report.To
	}
	records, err := s.repo.ListDrinks(ctx, tenantID, f)
	if err != nil {
		return model.Summary{}, err
	}

	return model.Summary{
		From:         report.From,
		To:           report.To,
		TabsTotal:    report.Total,
		RoomsRevenue: billing.Revenue(closed),
		Drinks:       billing.DrinkTotals(records),
	}, nil
}
