// Package drink реализует недельные записи напитков сотрудниц: продажи сверх нормы,
// бонусы и потребление.
package drink

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmeshcher/venueops/internal/billing"
	"github.com/mmeshcher/venueops/internal/lineitem"
	"github.com/mmeshcher/venueops/internal/model"
)

// NewWeekInput параметры новой недельной записи.
type NewWeekInput struct {
	EmployeeName    string
	InitialQuantity int
	Goal            int
	PeriodStart     time.Time
	PeriodEnd       time.Time
}

// NewWeek создаёт запись; имя сотрудницы и период обязательны. Нулевая норма заменяется нормой по умолчанию.
func NewWeek(in NewWeekInput, now time.Time) (model.DrinkRecord, error) {
	name := strings.TrimSpace(in.EmployeeName)
	if name == "" || in.PeriodStart.IsZero() || in.PeriodEnd.IsZero() {
		return model.DrinkRecord{}, fmt.Errorf("%w: employee name and period are required", model.ErrValidation)
	}
	if in.PeriodEnd.Before(in.PeriodStart) {
		return model.DrinkRecord{}, fmt.Errorf("%w: period end before start", model.ErrValidation)
	}
	if in.InitialQuantity < 0 || in.Goal < 0 {
		return model.DrinkRecord{}, fmt.Errorf("%w: quantity and goal must not be negative", model.ErrValidation)
	}

	goal := in.Goal
	if goal == 0 {
		goal = model.DefaultGoal
	}

	return model.DrinkRecord{
		EmployeeName: name,
		Quantity:     in.InitialQuantity,
		Goal:         goal,
		PeriodStart:  in.PeriodStart,
		PeriodEnd:    in.PeriodEnd,
		Items:        []model.LineItem{},
		CreatedAt:    now,
	}, nil
}

// IncrementQuantity добавляет один проданный напиток.
func IncrementQuantity(r model.DrinkRecord) model.DrinkRecord {
	next := r.Clone()
	next.Quantity++
	return next
}

// DecrementQuantity убирает один напиток, не опускаясь ниже нуля.
func DecrementQuantity(r model.DrinkRecord) model.DrinkRecord {
	next := r.Clone()
	if next.Quantity > 0 {
		next.Quantity--
	}
	return next
}

// SetGoal меняет недельную норму.
func SetGoal(r model.DrinkRecord, goal int) (model.DrinkRecord, error) {
	if goal < 0 {
		return r, fmt.Errorf("%w: goal must not be negative", model.ErrValidation)
	}
	next := r.Clone()
	next.Goal = goal
	return next, nil
}

// AddBonus увеличивает счётчик бонусов.
func AddBonus(r model.DrinkRecord) model.DrinkRecord {
	next := r.Clone()
	if i := lineitem.IndexOf(next.Items, model.BonusProductID); i >= 0 {
		next.Items[i].Quantity++
		return next
	}
	next.Items = lineitem.Append(next.Items, model.LineItem{
		ProductID:   model.BonusProductID,
		Description: model.BonusDescription,
		Quantity:    1,
		UnitPrice:   0,
	})
	return next
}

// RemoveBonus уменьшает счётчик бонусов; при количестве 1 псевдопозиция удаляется.
// Без бонусов запись возвращается без изменений.
func RemoveBonus(r model.DrinkRecord) model.DrinkRecord {
	i := lineitem.IndexOf(r.Items, model.BonusProductID)
	if i < 0 {
		return r.Clone()
	}
	items, _ := lineitem.Decrement(r.Items, i)
	next := r.Clone()
	next.Items = items
	return next
}

// AddConsumptionItem добавляет товар в потребление сотрудницы.
func AddConsumptionItem(r model.DrinkRecord, p model.Product) (model.DrinkRecord, error) {
	if p.ID == model.BonusProductID {
		return r, fmt.Errorf("%w: product id %q is reserved", model.ErrValidation, p.ID)
	}
	next := r.Clone()
	next.Items = lineitem.Add(r.Items, p)
	return next, nil
}

// IncrementConsumptionItem увеличивает количество строки потребления.
func IncrementConsumptionItem(r model.DrinkRecord, idx int) (model.DrinkRecord, error) {
	return updateItems(r, idx, lineitem.Increment)
}

// DecrementConsumptionItem уменьшает количество строки потребления; при количестве 1 строка удаляется.
func DecrementConsumptionItem(r model.DrinkRecord, idx int) (model.DrinkRecord, error) {
	return updateItems(r, idx, lineitem.Decrement)
}

// RemoveConsumptionItem удаляет строку потребления.
func RemoveConsumptionItem(r model.DrinkRecord, idx int) (model.DrinkRecord, error) {
	return updateItems(r, idx, lineitem.Remove)
}

func updateItems(r model.DrinkRecord, idx int, fn func([]model.LineItem, int) ([]model.LineItem, error)) (model.DrinkRecord, error) {
	items, err := fn(r.Items, idx)
	if err != nil {
		return r, err
	}
	next := r.Clone()
	next.Items = items
	return next, nil
}

// ApplyPatch объединяет запись с частичным обновлением и проверяет результат.
func ApplyPatch(r model.DrinkRecord, p model.DrinkPatch) (model.DrinkRecord, error) {
	next := r.Clone()
	if p.EmployeeName != nil {
		next.EmployeeName = strings.TrimSpace(*p.EmployeeName)
	}
	if p.Quantity != nil {
		next.Quantity = *p.Quantity
	}
	if p.Goal != nil {
		next.Goal = *p.Goal
	}
	if p.PeriodStart != nil {
		next.PeriodStart = *p.PeriodStart
	}
	if p.PeriodEnd != nil {
		next.PeriodEnd = *p.PeriodEnd
	}
	if p.Items != nil {
		next.Items = model.CloneItems(*p.Items)
	}

	switch {
	case next.EmployeeName == "":
		return r, fmt.Errorf("%w: employee name is required", model.ErrValidation)
	case next.Quantity < 0 || next.Goal < 0:
		return r, fmt.Errorf("%w: quantity and goal must not be negative", model.ErrValidation)
	case next.PeriodEnd.Before(next.PeriodStart):
		return r, fmt.Errorf("%w: period end before start", model.ErrValidation)
	}
	for _, item := range next.Items {
		if item.Quantity < 1 {
			return r, fmt.Errorf("%w: item %q quantity must be positive", model.ErrValidation, item.Description)
		}
	}
	return next, nil
}

// Diff строит частичное обновление, переводящее prev в next.
// Версия prev передаётся для проверки конкурентных изменений.
func Diff(prev, next model.DrinkRecord) model.DrinkPatch {
	var p model.DrinkPatch
	if prev.EmployeeName != next.EmployeeName {
		name := next.EmployeeName
		p.EmployeeName = &name
	}
	if prev.Quantity != next.Quantity {
		q := next.Quantity
		p.Quantity = &q
	}
	if prev.Goal != next.Goal {
		g := next.Goal
		p.Goal = &g
	}
	if !prev.PeriodStart.Equal(next.PeriodStart) {
		s := next.PeriodStart
		p.PeriodStart = &s
	}
	if !prev.PeriodEnd.Equal(next.PeriodEnd) {
		e := next.PeriodEnd
		p.PeriodEnd = &e
	}
	if !itemsEqual(prev.Items, next.Items) {
		items := model.CloneItems(next.Items)
		if items == nil {
			items = []model.LineItem{}
		}
		p.Items = &items
	}
	v := prev.Version
	p.Version = &v
	return p
}

func itemsEqual(a, b []model.LineItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Summary возвращает производные показатели записи.
func Summary(r model.DrinkRecord) model.DrinkSummary {
	return billing.Summarize(r)
}

// FilterEmployee отбирает записи по подстроке имени без учёта регистра.
func FilterEmployee(records []model.DrinkRecord, name string) []model.DrinkRecord {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return records
	}
	out := make([]model.DrinkRecord, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.EmployeeName), name) {
			out = append(out, r)
		}
	}
	return out
}
