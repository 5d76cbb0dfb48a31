package venue

import (
	"context"

	"github.com/mmeshcher/venueops/internal/billing"
	"github.com/mmeshcher/venueops/internal/drink"
	"github.com/mmeshcher/venueops/internal/model"
)

// LoadDrinks перезагружает записи напитков по фильтру и запоминает фильтр для
// повторных загрузок после изменений.
func (v *Venue) LoadDrinks(ctx context.Context, f model.DrinkFilter) error {
	records, err := v.gw.ListDrinks(ctx, v.session.TenantID, f)
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.drinkFilter = f
	v.mu.Unlock()

	v.drinks.Replace(records)
	return nil
}

// DrinkFilter возвращает фильтр последней загрузки.
func (v *Venue) DrinkFilter() model.DrinkFilter {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.drinkFilter
}

// Drinks возвращает записи напитков, отобранные по подстроке имени сотрудницы.
func (v *Venue) Drinks(employee string) []model.DrinkRecord {
	return drink.FilterEmployee(v.drinks.List(), employee)
}

// Drink возвращает запись по идентификатору.
func (v *Venue) Drink(id string) (model.DrinkRecord, bool) {
	return v.drinks.Get(id)
}

// DrinkTotals возвращает итоги по загруженным записям.
func (v *Venue) DrinkTotals() model.DrinkTotals {
	return billing.DrinkTotals(v.drinks.List())
}

// CreateDrinkWeek создаёт недельную запись сотрудницы.
func (v *Venue) CreateDrinkWeek(ctx context.Context, in drink.NewWeekInput) (model.DrinkRecord, error) {
	r, err := drink.NewWeek(in, v.clock.Now())
	if err != nil {
		return model.DrinkRecord{}, err
	}
	r.ID = v.ids.NewUUID()
	r.TenantID = v.session.TenantID

	saved, err := v.drinks.Insert(ctx, r, func(ctx context.Context, next model.DrinkRecord) (model.DrinkRecord, error) {
		return v.gw.CreateDrink(ctx, v.session.TenantID, next)
	})
	if err != nil {
		return model.DrinkRecord{}, v.persistFailed("create drink week", r.ID, err)
	}
	return saved, v.reloadDrinks(ctx, "create drink week")
}

// IncrementDrinkQuantity добавляет проданный напиток.
func (v *Venue) IncrementDrinkQuantity(ctx context.Context, id string) (model.DrinkRecord, error) {
	return v.mutateDrink(ctx, "increment drink quantity", id,
		func(r model.DrinkRecord) (model.DrinkRecord, error) { return drink.IncrementQuantity(r), nil },
		func(ctx context.Context, next model.DrinkRecord) (model.DrinkRecord, error) {
			return v.gw.AddDrinkUnit(ctx, v.session.TenantID, next.ID)
		},
	)
}

// DecrementDrinkQuantity убирает проданный напиток, не опускаясь ниже нуля.
func (v *Venue) DecrementDrinkQuantity(ctx context.Context, id string) (model.DrinkRecord, error) {
	return v.mutateDrink(ctx, "decrement drink quantity", id,
		func(r model.DrinkRecord) (model.DrinkRecord, error) { return drink.DecrementQuantity(r), nil },
		func(ctx context.Context, next model.DrinkRecord) (model.DrinkRecord, error) {
			return v.gw.RemoveDrinkUnit(ctx, v.session.TenantID, next.ID)
		},
	)
}

// SetDrinkGoal меняет недельную норму.
func (v *Venue) SetDrinkGoal(ctx context.Context, id string, goal int) (model.DrinkRecord, error) {
	return v.patchDrink(ctx, "set drink goal", id, func(r model.DrinkRecord) (model.DrinkRecord, error) {
		return drink.SetGoal(r, goal)
	})
}

// AddBonus добавляет бонус.
func (v *Venue) AddBonus(ctx context.Context, id string) (model.DrinkRecord, error) {
	return v.patchDrink(ctx, "add bonus", id, func(r model.DrinkRecord) (model.DrinkRecord, error) {
		return drink.AddBonus(r), nil
	})
}

// RemoveBonus убирает бонус.
func (v *Venue) RemoveBonus(ctx context.Context, id string) (model.DrinkRecord, error) {
	return v.patchDrink(ctx, "remove bonus", id, func(r model.DrinkRecord) (model.DrinkRecord, error) {
		return drink.RemoveBonus(r), nil
	})
}

// AddConsumptionItem добавляет товар каталога в потребление.
func (v *Venue) AddConsumptionItem(ctx context.Context, id, productID string) (model.DrinkRecord, error) {
	p, err := v.Product(productID)
	if err != nil {
		return model.DrinkRecord{}, err
	}
	return v.patchDrink(ctx, "add consumption item", id, func(r model.DrinkRecord) (model.DrinkRecord, error) {
		return drink.AddConsumptionItem(r, p)
	})
}

// IncrementConsumptionItem увеличивает количество строки потребления.
func (v *Venue) IncrementConsumptionItem(ctx context.Context, id string, idx int) (model.DrinkRecord, error) {
	return v.patchDrink(ctx, "increment consumption item", id, func(r model.DrinkRecord) (model.DrinkRecord, error) {
		return drink.IncrementConsumptionItem(r, idx)
	})
}

// DecrementConsumptionItem уменьшает количество строки потребления.
func (v *Venue) DecrementConsumptionItem(ctx context.Context, id string, idx int) (model.DrinkRecord, error) {
	return v.patchDrink(ctx, "decrement consumption item", id, func(r model.DrinkRecord) (model.DrinkRecord, error) {
		return drink.DecrementConsumptionItem(r, idx)
	})
}

// RemoveConsumptionItem удаляет строку потребления.
func (v *Venue) RemoveConsumptionItem(ctx context.Context, id string, idx int) (model.DrinkRecord, error) {
	return v.patchDrink(ctx, "remove consumption item", id, func(r model.DrinkRecord) (model.DrinkRecord, error) {
		return drink.RemoveConsumptionItem(r, idx)
	})
}

// UpdateDrink применяет частичное обновление полей записи.
func (v *Venue) UpdateDrink(ctx context.Context, id string, p model.DrinkPatch) (model.DrinkRecord, error) {
	return v.patchDrink(ctx, "update drink", id, func(r model.DrinkRecord) (model.DrinkRecord, error) {
		return drink.ApplyPatch(r, p)
	})
}

// DeleteDrink удаляет запись напитков.
func (v *Venue) DeleteDrink(ctx context.Context, id string) error {
	err := v.drinks.Delete(ctx, id, func(ctx context.Context, prev model.DrinkRecord) error {
		return v.gw.DeleteDrink(ctx, v.session.TenantID, prev.ID)
	})
	if err != nil {
		return v.persistFailed("delete drink", id, err)
	}
	return v.reloadDrinks(ctx, "delete drink")
}

// patchDrink сохраняет изменённые поля записи частичным обновлением с версией исходной записи.
func (v *Venue) patchDrink(ctx context.Context, op, id string, f func(model.DrinkRecord) (model.DrinkRecord, error)) (model.DrinkRecord, error) {
	var patch model.DrinkPatch
	return v.mutateDrink(ctx, op, id,
		func(prev model.DrinkRecord) (model.DrinkRecord, error) {
			next, err := f(prev)
			if err != nil {
				return prev, err
			}
			patch = drink.Diff(prev, next)
			return next, nil
		},
		func(ctx context.Context, next model.DrinkRecord) (model.DrinkRecord, error) {
			return v.gw.PatchDrink(ctx, v.session.TenantID, next.ID, patch)
		},
	)
}

func (v *Venue) mutateDrink(
	ctx context.Context,
	op, id string,
	f func(model.DrinkRecord) (model.DrinkRecord, error),
	persist func(context.Context, model.DrinkRecord) (model.DrinkRecord, error),
) (model.DrinkRecord, error) {
	saved, err := v.drinks.Mutate(ctx, id, f, persist)
	if err != nil {
		return model.DrinkRecord{}, v.persistFailed(op, id, err)
	}
	return saved, v.reloadDrinks(ctx, op)
}

func (v *Venue) reloadDrinks(ctx context.Context, op string) error {
	if err := v.LoadDrinks(ctx, v.DrinkFilter()); err != nil {
		return v.stale(op, err)
	}
	return nil
}
