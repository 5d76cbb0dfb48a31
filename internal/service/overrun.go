package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/venueops/internal/model"
	"github.com/mmeshcher/venueops/internal/room"
)

// DefaultOverrunInterval период проверки превышения тарифа по умолчанию.
const DefaultOverrunInterval = 30 * time.Second

// overrunTracker помнит сеансы, о превышении которых уже сообщено.
type overrunTracker struct {
	mu       sync.Mutex
	reported map[string]bool
}

// StartOverrunWatch запускает фоновую проверку активных сеансов, превысивших свою ступень.
// Каждый сеанс попадает в лог один раз.
func (s *Service) StartOverrunWatch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultOverrunInterval
	}
	tracker := &overrunTracker{reported: make(map[string]bool)}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.checkOverruns(ctx, tracker)
			}
		}
	}()
}

func (s *Service) checkOverruns(ctx context.Context, tracker *overrunTracker) []model.RoomSession {
	active, err := s.repo.ActiveRooms(ctx)
	if err != nil {
		s.logger.Warn("list active rooms failed", zap.Error(err))
		return nil
	}

	now := s.clock.Now()
	over := room.Overruns(active, now)

	tracker.mu.Lock()
	defer tracker.mu.Unlock()

	live := make(map[string]bool, len(over))
	var fresh []model.RoomSession
	for _, rs := range over {
		live[rs.ID] = true
		if tracker.reported[rs.ID] {
			continue
		}
		tracker.reported[rs.ID] = true
		fresh = append(fresh, rs)
		s.logger.Info("room session overrun",
			zap.String("tenant", rs.TenantID),
			zap.String("room", rs.Room),
			zap.String("guest", rs.GuestName),
			zap.String("tier", string(rs.Tier)),
			zap.String("elapsed", room.FormatClock(room.Elapsed(rs, now))),
		)
	}
	// Завершённые сеансы больше не отслеживаются.
	for id := range tracker.reported {
		if !live[id] {
			delete(tracker.reported, id)
		}
	}
	return fresh
}
