// Package lineitem реализует общие правила работы со списком строк счёта.
// Все функции возвращают новый список и не изменяют переданный.
package lineitem

import (
	"fmt"

	"github.com/mmeshcher/venueops/internal/model"
)

// ErrIndexOutOfRange возвращается при обращении к несуществующей строке.
var ErrIndexOutOfRange = fmt.Errorf("%w: item index out of range", model.ErrValidation)

// IndexOf возвращает позицию строки с указанным товаром или -1.
// Строки без идентификатора товара никогда не совпадают.
func IndexOf(items []model.LineItem, productID string) int {
	if productID == "" {
		return -1
	}
	for i, item := range items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// Add добавляет товар: существующая строка того же товара увеличивается на единицу,
// иначе в конец добавляется новая строка с количеством 1.
func Add(items []model.LineItem, p model.Product) []model.LineItem {
	out := model.CloneItems(items)
	if i := IndexOf(out, p.ID); i >= 0 {
		out[i].Quantity++
		return out
	}
	return append(out, model.LineItem{
		ProductID:   p.ID,
		Description: p.Name,
		Quantity:    1,
		UnitPrice:   p.UnitPrice,
	})
}

// Append добавляет строку в конец списка без объединения.
func Append(items []model.LineItem, item model.LineItem) []model.LineItem {
	out := make([]model.LineItem, 0, len(items)+1)
	out = append(out, items...)
	return append(out, item)
}

// Increment увеличивает количество строки на единицу.
func Increment(items []model.LineItem, idx int) ([]model.LineItem, error) {
	if idx < 0 || idx >= len(items) {
		return nil, fmt.Errorf("increment %d: %w", idx, ErrIndexOutOfRange)
	}
	out := model.CloneItems(items)
	out[idx].Quantity++
	return out, nil
}

// Decrement уменьшает количество строки на единицу; строка с количеством 1 удаляется.
func Decrement(items []model.LineItem, idx int) ([]model.LineItem, error) {
	if idx < 0 || idx >= len(items) {
		return nil, fmt.Errorf("decrement %d: %w", idx, ErrIndexOutOfRange)
	}
	if items[idx].Quantity <= 1 {
		return Remove(items, idx)
	}
	out := model.CloneItems(items)
	out[idx].Quantity--
	return out, nil
}

// Remove удаляет строку целиком.
func Remove(items []model.LineItem, idx int) ([]model.LineItem, error) {
	if idx < 0 || idx >= len(items) {
		return nil, fmt.Errorf("remove %d: %w", idx, ErrIndexOutOfRange)
	}
	out := make([]model.LineItem, 0, len(items)-1)
	out = append(out, items[:idx]...)
	return append(out, items[idx+1:]...), nil
}
