// Package room реализует автомат состояний сеанса в комнате:
// active -> finalized -> canceled, удаление допустимо из active и finalized.
package room

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mmeshcher/venueops/internal/billing"
	"github.com/mmeshcher/venueops/internal/model"
)

// DefaultCount количество комнат по умолчанию.
const DefaultCount = 7

const labelPrefix = "Quarto "

// ErrRoomOccupied возвращается при попытке занять комнату с активным сеансом.
var ErrRoomOccupied = model.ErrRoomOccupied

// Labels возвращает метки комнат "Quarto 1".."Quarto N".
func Labels(count int) []string {
	labels := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		labels = append(labels, labelPrefix+strconv.Itoa(i))
	}
	return labels
}

// LabelNumber возвращает номер комнаты из метки и признак корректности формата.
func LabelNumber(label string) (int, bool) {
	if !strings.HasPrefix(label, labelPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(label, labelPrefix))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// ValidLabel проверяет, что метка обозначает одну из count комнат.
func ValidLabel(label string, count int) bool {
	n, ok := LabelNumber(label)
	return ok && n <= count
}

// Occupied сообщает, есть ли в списке активный сеанс в комнате.
func Occupied(sessions []model.RoomSession, label string) bool {
	for _, s := range sessions {
		if s.Status == model.RoomStatusActive && s.Room == label {
			return true
		}
	}
	return false
}

// Availability возвращает для каждой из count комнат признак занятости.
func Availability(sessions []model.RoomSession, count int) map[string]bool {
	busy := make(map[string]bool, count)
	for _, label := range Labels(count) {
		busy[label] = Occupied(sessions, label)
	}
	return busy
}

// NewSessionInput параметры нового сеанса.
type NewSessionInput struct {
	GuestName     string
	Tier          model.DurationTier
	PaymentMethod model.PaymentMethod
	Room          string
}

// New создаёт активный сеанс. Создание отклоняется, если среди видимых сеансов
// уже есть активный в той же комнате.
func New(in NewSessionInput, visible []model.RoomSession, roomCount int, now time.Time) (model.RoomSession, error) {
	if in.Room == "" {
		return model.RoomSession{}, fmt.Errorf("%w: room is required", model.ErrValidation)
	}
	if !ValidLabel(in.Room, roomCount) {
		return model.RoomSession{}, fmt.Errorf("%w: unknown room %q", model.ErrValidation, in.Room)
	}
	if !billing.KnownTier(in.Tier) {
		return model.RoomSession{}, fmt.Errorf("%w: unknown duration tier %q", model.ErrValidation, in.Tier)
	}
	if Occupied(visible, in.Room) {
		return model.RoomSession{}, fmt.Errorf("%s: %w", in.Room, ErrRoomOccupied)
	}

	return model.RoomSession{
		GuestName:     strings.TrimSpace(in.GuestName),
		Room:          in.Room,
		Tier:          in.Tier,
		PaymentMethod: in.PaymentMethod,
		Status:        model.RoomStatusActive,
		CreatedAt:     now,
	}, nil
}

// Finalize завершает активный сеанс: фиксирует время закрытия и сумму по тарифу.
func Finalize(s model.RoomSession, now time.Time) (model.RoomSession, error) {
	if s.Status != model.RoomStatusActive {
		return s, transitionError(s, model.RoomStatusFinalized)
	}
	next := s.Clone()
	next.Status = model.RoomStatusFinalized
	next.ClosedAt = &now
	next.BilledAmount = billing.TierPrice(s.Tier)
	return next, nil
}

// Cancel отменяет завершённый сеанс и обнуляет сумму.
func Cancel(s model.RoomSession) (model.RoomSession, error) {
	if s.Status != model.RoomStatusFinalized {
		return s, transitionError(s, model.RoomStatusCanceled)
	}
	next := s.Clone()
	next.Status = model.RoomStatusCanceled
	next.BilledAmount = 0
	next.Note = model.CanceledNote
	return next, nil
}

// CheckDelete проверяет, что сеанс можно удалить.
func CheckDelete(s model.RoomSession) error {
	switch s.Status {
	case model.RoomStatusActive, model.RoomStatusFinalized:
		return nil
	default:
		return fmt.Errorf("delete session %s in status %s: %w", s.ID, s.Status, model.ErrInvalidTransition)
	}
}

func transitionError(s model.RoomSession, to model.RoomStatus) error {
	return fmt.Errorf("session %s: %s -> %s: %w", s.ID, s.Status, to, model.ErrInvalidTransition)
}

// ClosedFilter условия выборки закрытых сеансов.
type ClosedFilter struct {
	From  time.Time
	To    time.Time
	Guest string
}

// FilterClosed отбирает завершённые и отменённые сеансы, закрытые в диапазоне дат
// (включительно, целыми днями), с подстрокой имени гостя без учёта регистра.
func FilterClosed(sessions []model.RoomSession, f ClosedFilter) []model.RoomSession {
	from, to := billing.DayRange(f.From, f.To)
	guest := strings.ToLower(strings.TrimSpace(f.Guest))

	out := make([]model.RoomSession, 0, len(sessions))
	for _, s := range sessions {
		if s.Status == model.RoomStatusActive {
			continue
		}
		if !from.IsZero() || !to.IsZero() {
			if s.ClosedAt == nil {
				continue
			}
			if !from.IsZero() && s.ClosedAt.Before(from) {
				continue
			}
			if !to.IsZero() && !s.ClosedAt.Before(to) {
				continue
			}
		}
		if guest != "" && !strings.Contains(strings.ToLower(s.GuestName), guest) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Active отбирает активные сеансы.
func Active(sessions []model.RoomSession) []model.RoomSession {
	out := make([]model.RoomSession, 0, len(sessions))
	for _, s := range sessions {
		if s.Status == model.RoomStatusActive {
			out = append(out, s)
		}
	}
	return out
}
