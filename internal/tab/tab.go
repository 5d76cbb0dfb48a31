// Package tab реализует переходы агрегата счёта стола.
// Каждая операция принимает счёт и возвращает новый, пересчитывая итог по строкам.
package tab

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmeshcher/venueops/internal/billing"
	"github.com/mmeshcher/venueops/internal/lineitem"
	"github.com/mmeshcher/venueops/internal/model"
)

// LabelForTable возвращает название счёта для номера стола.
func LabelForTable(number string) string {
	return "Comanda #" + strings.TrimSpace(number)
}

// New создаёт открытый пустой счёт.
func New(label, ownerName string, now time.Time) (model.Tab, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return model.Tab{}, fmt.Errorf("%w: tab label is required", model.ErrValidation)
	}
	return model.Tab{
		Label:     label,
		OwnerName: ownerName,
		Items:     []model.LineItem{},
		Total:     0,
		Status:    model.TabStatusOpen,
		CreatedAt: now,
	}, nil
}

// AddItem добавляет товар каталога в счёт.
func AddItem(t model.Tab, p model.Product) (model.Tab, error) {
	if err := ensureOpen(t); err != nil {
		return t, err
	}
	return withItems(t, lineitem.Add(t.Items, p)), nil
}

// IncrementItem увеличивает количество строки idx на единицу.
func IncrementItem(t model.Tab, idx int) (model.Tab, error) {
	if err := ensureOpen(t); err != nil {
		return t, err
	}
	items, err := lineitem.Increment(t.Items, idx)
	if err != nil {
		return t, err
	}
	return withItems(t, items), nil
}

// DecrementItem уменьшает количество строки idx; при количестве 1 строка удаляется.
func DecrementItem(t model.Tab, idx int) (model.Tab, error) {
	if err := ensureOpen(t); err != nil {
		return t, err
	}
	items, err := lineitem.Decrement(t.Items, idx)
	if err != nil {
		return t, err
	}
	return withItems(t, items), nil
}

// RemoveItem удаляет строку idx.
func RemoveItem(t model.Tab, idx int) (model.Tab, error) {
	if err := ensureOpen(t); err != nil {
		return t, err
	}
	items, err := lineitem.Remove(t.Items, idx)
	if err != nil {
		return t, err
	}
	return withItems(t, items), nil
}

// AddServiceCharge добавляет строку сервисного сбора в 10% от суммы до его добавления.
func AddServiceCharge(t model.Tab) (model.Tab, error) {
	if err := ensureOpen(t); err != nil {
		return t, err
	}
	charge := model.LineItem{
		Description: model.ServiceChargeDescription,
		Quantity:    1,
		UnitPrice:   billing.ServiceCharge(billing.Total(t.Items)),
	}
	return withItems(t, lineitem.Append(t.Items, charge)), nil
}

// SetOwner меняет имя владельца счёта.
func SetOwner(t model.Tab, name string) model.Tab {
	next := t.Clone()
	next.OwnerName = name
	return next
}

// Close закрывает счёт и проставляет время закрытия.
func Close(t model.Tab, now time.Time) (model.Tab, error) {
	if err := ensureOpen(t); err != nil {
		return t, err
	}
	next := t.Clone()
	next.Status = model.TabStatusClosed
	next.ClosedAt = &now
	next.Total = billing.Total(next.Items)
	return next, nil
}

// Recalculate возвращает счёт с итогом, пересчитанным по строкам.
func Recalculate(t model.Tab) model.Tab {
	next := t.Clone()
	next.Total = billing.Total(next.Items)
	return next
}

// Open отбирает открытые счета, сохраняя порядок.
func Open(tabs []model.Tab) []model.Tab {
	return filterStatus(tabs, model.TabStatusOpen)
}

// Closed отбирает закрытые счета, сохраняя порядок.
func Closed(tabs []model.Tab) []model.Tab {
	return filterStatus(tabs, model.TabStatusClosed)
}

func filterStatus(tabs []model.Tab, status model.TabStatus) []model.Tab {
	out := make([]model.Tab, 0, len(tabs))
	for _, t := range tabs {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

func withItems(t model.Tab, items []model.LineItem) model.Tab {
	next := t.Clone()
	next.Items = items
	next.Total = billing.Total(items)
	return next
}

func ensureOpen(t model.Tab) error {
	if t.Status != model.TabStatusOpen {
		return fmt.Errorf("tab %s is %s: %w", t.ID, t.Status, model.ErrInvalidTransition)
	}
	return nil
}
