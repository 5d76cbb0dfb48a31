package room

import (
	"fmt"
	"time"

	"github.com/mmeshcher/venueops/internal/billing"
	"github.com/mmeshcher/venueops/internal/model"
)

// Elapsed возвращает длительность сеанса: для активного до now, для закрытого до времени закрытия.
func Elapsed(s model.RoomSession, now time.Time) time.Duration {
	end := now
	if s.Status != model.RoomStatusActive && s.ClosedAt != nil {
		end = *s.ClosedAt
	}
	d := end.Sub(s.CreatedAt)
	if d < 0 {
		return 0
	}
	return d.Truncate(time.Second)
}

// Overrun сообщает, превысил ли активный сеанс номинальную длительность ступени.
func Overrun(s model.RoomSession, now time.Time) bool {
	limit := billing.TierDuration(s.Tier)
	if limit == 0 || s.Status != model.RoomStatusActive {
		return false
	}
	return Elapsed(s, now) > limit
}

// Progress возвращает заполненность ступени в процентах (0..100); для безлимитных ступеней 0.
func Progress(s model.RoomSession, now time.Time) int {
	limit := billing.TierDuration(s.Tier)
	if limit == 0 {
		return 0
	}
	p := int((Elapsed(s, now)*100 + limit/2) / limit)
	if p > 100 {
		return 100
	}
	return p
}

// FormatClock форматирует длительность как HH:MM:SS.
func FormatClock(d time.Duration) string {
	s := int64(d / time.Second)
	if s < 0 {
		s = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}

// Overruns отбирает активные сеансы, превысившие свою ступень к моменту now.
func Overruns(sessions []model.RoomSession, now time.Time) []model.RoomSession {
	var out []model.RoomSession
	for _, s := range sessions {
		if Overrun(s, now) {
			out = append(out, s)
		}
	}
	return out
}
