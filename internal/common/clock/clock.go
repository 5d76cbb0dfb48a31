// Package clock абстрагирует источник текущего времени.
package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/mmeshcher/venueops/internal/common/clock Clock

// Clock источник текущего времени.
type Clock interface {
	Now() time.Time
}

// DefaultClock использует системные часы.
type DefaultClock struct{}

// New создаёт системные часы.
func New() *DefaultClock {
	return &DefaultClock{}
}

// Now возвращает текущее время.
func (c *DefaultClock) Now() time.Time {
	return time.Now()
}
