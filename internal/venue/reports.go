package venue

import (
	"context"
	"fmt"
	"time"

	"github.com/mmeshcher/venueops/internal/billing"
	"github.com/mmeshcher/venueops/internal/model"
)

// TabsReport запрашивает итоги закрытых счетов за период.
func (v *Venue) TabsReport(ctx context.Context, from, to time.Time) (model.TabsReport, error) {
	report, err := v.gw.TabsReport(ctx, v.session.TenantID, from, to)
	if err != nil {
		return model.TabsReport{}, fmt.Errorf("tabs report: %w", err)
	}
	return report, nil
}

// RoomsRevenue возвращает выручку по загруженным сеансам; активные и отменённые не учитываются.
func (v *Venue) RoomsRevenue() float64 {
	return billing.Revenue(v.rooms.List())
}

// Periods возвращает начала стандартных периодов отчётов относительно текущего времени.
func (v *Venue) Periods() billing.Periods {
	return billing.PeriodStarts(v.clock.Now())
}
