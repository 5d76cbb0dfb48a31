package venue

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/mmeshcher/venueops/internal/model"
	"github.com/mmeshcher/venueops/internal/tab"
)

// LoadTabs перезагружает счета арендатора.
func (v *Venue) LoadTabs(ctx context.Context) error {
	tabs, err := v.gw.ListTabs(ctx, v.session.TenantID)
	if err != nil {
		return err
	}
	v.tabs.Replace(tabs)
	return nil
}

// Tabs возвращает открытые счета.
func (v *Venue) Tabs() []model.Tab {
	return tab.Open(v.tabs.List())
}

// ClosedTabs возвращает закрытые счета.
func (v *Venue) ClosedTabs() []model.Tab {
	return tab.Closed(v.tabs.List())
}

// Tab возвращает счёт по идентификатору.
func (v *Venue) Tab(id string) (model.Tab, bool) {
	return v.tabs.Get(id)
}

// CreateTab открывает новый счёт.
func (v *Venue) CreateTab(ctx context.Context, label, ownerName string) (model.Tab, error) {
	t, err := tab.New(label, ownerName, v.clock.Now())
	if err != nil {
		return model.Tab{}, err
	}
	t.ID = v.ids.NewUUID()
	t.TenantID = v.session.TenantID

	saved, err := v.tabs.Insert(ctx, t, func(ctx context.Context, next model.Tab) (model.Tab, error) {
		return v.gw.CreateTab(ctx, v.session.TenantID, next)
	})
	if err != nil {
		return model.Tab{}, v.persistFailed("create tab", t.ID, err)
	}
	return saved, nil
}

// CreateTableTab открывает счёт для стола с номером number.
func (v *Venue) CreateTableTab(ctx context.Context, number int, ownerName string) (model.Tab, error) {
	return v.CreateTab(ctx, tab.LabelForTable(strconv.Itoa(number)), ownerName)
}

// AddTabItem добавляет в счёт товар каталога.
func (v *Venue) AddTabItem(ctx context.Context, tabID, productID string) (model.Tab, error) {
	p, err := v.Product(productID)
	if err != nil {
		return model.Tab{}, err
	}
	return v.mutateTab(ctx, "add tab item", tabID, func(t model.Tab) (model.Tab, error) {
		return tab.AddItem(t, p)
	})
}

// IncrementTabItem увеличивает количество строки счёта.
func (v *Venue) IncrementTabItem(ctx context.Context, tabID string, idx int) (model.Tab, error) {
	return v.mutateTab(ctx, "increment tab item", tabID, func(t model.Tab) (model.Tab, error) {
		return tab.IncrementItem(t, idx)
	})
}

// DecrementTabItem уменьшает количество строки счёта.
func (v *Venue) DecrementTabItem(ctx context.Context, tabID string, idx int) (model.Tab, error) {
	return v.mutateTab(ctx, "decrement tab item", tabID, func(t model.Tab) (model.Tab, error) {
		return tab.DecrementItem(t, idx)
	})
}

// RemoveTabItem удаляет строку счёта.
func (v *Venue) RemoveTabItem(ctx context.Context, tabID string, idx int) (model.Tab, error) {
	return v.mutateTab(ctx, "remove tab item", tabID, func(t model.Tab) (model.Tab, error) {
		return tab.RemoveItem(t, idx)
	})
}

// AddServiceCharge добавляет сервисный сбор.
func (v *Venue) AddServiceCharge(ctx context.Context, tabID string) (model.Tab, error) {
	return v.mutateTab(ctx, "add service charge", tabID, tab.AddServiceCharge)
}

// SetTabOwner меняет имя владельца счёта.
func (v *Venue) SetTabOwner(ctx context.Context, tabID, name string) (model.Tab, error) {
	return v.mutateTab(ctx, "set tab owner", tabID, func(t model.Tab) (model.Tab, error) {
		return tab.SetOwner(t, name), nil
	})
}

// CloseTab закрывает счёт. Подтверждение действия остаётся на вызывающей стороне.
func (v *Venue) CloseTab(ctx context.Context, tabID string) (model.Tab, error) {
	return v.mutateTab(ctx, "close tab", tabID, func(t model.Tab) (model.Tab, error) {
		return tab.Close(t, v.clock.Now())
	})
}

// DeleteTab удаляет счёт.
func (v *Venue) DeleteTab(ctx context.Context, tabID string) error {
	err := v.tabs.Delete(ctx, tabID, func(ctx context.Context, prev model.Tab) error {
		return v.gw.DeleteTab(ctx, v.session.TenantID, prev.ID)
	})
	if err != nil {
		return v.persistFailed("delete tab", tabID, err)
	}
	return nil
}

func (v *Venue) mutateTab(ctx context.Context, op, tabID string, f func(model.Tab) (model.Tab, error)) (model.Tab, error) {
	saved, err := v.tabs.Mutate(ctx, tabID, f, func(ctx context.Context, next model.Tab) (model.Tab, error) {
		return v.gw.ReplaceTab(ctx, v.session.TenantID, next)
	})
	if err != nil {
		err = v.persistFailed(op, tabID, err)
		if errors.Is(err, model.ErrVersionConflict) {
			if rerr := v.LoadTabs(ctx); rerr != nil {
				return model.Tab{}, fmt.Errorf("%w: %w", err, v.stale(op, rerr))
			}
		}
		return model.Tab{}, err
	}
	return saved, nil
}
