// Package optimistic реализует оптимистичное изменение локальной коллекции агрегатов:
// новое состояние публикуется до сохранения и откатывается при ошибке сохранения.
package optimistic

import (
	"context"
	"fmt"
	"sync"

	"github.com/mmeshcher/venueops/internal/model"
)

// PersistFunc сохраняет новое состояние и возвращает подтверждённое хранилищем значение.
type PersistFunc[T any] func(ctx context.Context, next T) (T, error)

// RemoveFunc удаляет агрегат в хранилище.
type RemoveFunc[T any] func(ctx context.Context, prev T) error

// PersistError ошибка сохранения оптимистичного изменения.
type PersistError struct {
	Op string
	ID string
	// RolledBack false, если коллекция изменилась после публикации и откат не выполнялся.
	RolledBack bool
	Err        error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s %s: %v", e.Op, e.ID, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// Collection упорядоченная коллекция агрегатов, безопасная для конкурентного чтения.
// Каждое опубликованное состояние получает ревизию; откат выполняется, только
// если ревизия записи не изменилась с момента публикации.
//
// Подтверждение хранилища, пришедшее для уже вытесненной ревизии, запоминается
// и становится точкой отката для изменений, опубликованных поверх неё.
type Collection[T any] struct {
	mu        sync.RWMutex
	key       func(T) string
	clone     func(T) T
	items     []T
	revs      map[string]uint64
	confirmed map[string]confirmation[T]
	seq       uint64
}

type confirmation[T any] struct {
	value T
	rev   uint64
}

// New создаёт пустую коллекцию. clone может быть nil для типов без ссылочных полей.
func New[T any](key func(T) string, clone func(T) T) *Collection[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Collection[T]{
		key:       key,
		clone:     clone,
		revs:      make(map[string]uint64),
		confirmed: make(map[string]confirmation[T]),
	}
}

// Replace заменяет содержимое коллекции целиком. Незавершённые изменения после этого не откатываются.
func (c *Collection[T]) Replace(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make([]T, 0, len(items))
	c.revs = make(map[string]uint64, len(items))
	c.confirmed = make(map[string]confirmation[T])
	for _, item := range items {
		c.items = append(c.items, c.clone(item))
		c.bumpLocked(c.key(item))
	}
}

// List возвращает снимок коллекции.
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	for i, item := range c.items {
		out[i] = c.clone(item)
	}
	return out
}

// Get возвращает копию агрегата по идентификатору.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexLocked(id); i >= 0 {
		return c.clone(c.items[i]), true
	}
	var zero T
	return zero, false
}

// Len возвращает число агрегатов.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Insert публикует новый агрегат в конец коллекции и сохраняет его.
// При ошибке сохранения агрегат убирается из коллекции.
func (c *Collection[T]) Insert(ctx context.Context, item T, persist PersistFunc[T]) (T, error) {
	return c.InsertFunc(ctx, func([]T) (T, error) { return item, nil }, persist)
}

// InsertFunc строит новый агрегат функцией build под блокировкой коллекции и публикует его.
// build получает текущее содержимое только для чтения; её ошибка возвращается без вызова persist.
func (c *Collection[T]) InsertFunc(ctx context.Context, build func(items []T) (T, error), persist PersistFunc[T]) (T, error) {
	var zero T

	c.mu.Lock()
	item, err := build(c.items)
	if err != nil {
		c.mu.Unlock()
		return zero, err
	}
	id := c.key(item)
	if c.indexLocked(id) >= 0 {
		c.mu.Unlock()
		return zero, fmt.Errorf("%w: duplicate id %s", model.ErrValidation, id)
	}
	c.items = append(c.items, c.clone(item))
	rev := c.bumpLocked(id)
	c.mu.Unlock()

	saved, err := persist(ctx, c.clone(item))

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		rolledBack := false
		if c.revs[id] == rev {
			if i := c.indexLocked(id); i >= 0 {
				c.items = append(c.items[:i], c.items[i+1:]...)
			}
			delete(c.revs, id)
			rolledBack = true
		}
		return zero, &PersistError{Op: "create", ID: id, RolledBack: rolledBack, Err: err}
	}

	if c.revs[id] != rev {
		c.confirmLocked(id, rev, saved)
		return c.clone(saved), nil
	}
	if i := c.indexLocked(id); i >= 0 {
		c.items[i] = c.clone(saved)
		if savedID := c.key(saved); savedID != id {
			delete(c.revs, id)
			c.revs[savedID] = rev
		}
	}
	return c.clone(saved), nil
}

// Mutate применяет переход f к агрегату id, публикует результат и сохраняет его.
// Ошибка f возвращается без изменения коллекции и без вызова persist.
// При ошибке persist восстанавливается прежнее состояние на той же позиции.
func (c *Collection[T]) Mutate(ctx context.Context, id string, f func(T) (T, error), persist PersistFunc[T]) (T, error) {
	var zero T

	c.mu.Lock()
	i := c.indexLocked(id)
	if i < 0 {
		c.mu.Unlock()
		return zero, fmt.Errorf("mutate %s: %w", id, model.ErrNotFound)
	}
	prev := c.items[i]
	next, err := f(c.clone(prev))
	if err != nil {
		c.mu.Unlock()
		return zero, err
	}
	c.items[i] = c.clone(next)
	rev := c.bumpLocked(id)
	c.mu.Unlock()

	saved, err := persist(ctx, c.clone(next))

	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.revs[id] == rev
	j := c.indexLocked(id)

	if err != nil {
		rolledBack := false
		if current && j >= 0 {
			c.items[j] = c.baseLocked(id, prev)
			c.bumpLocked(id)
			rolledBack = true
		}
		return zero, &PersistError{Op: "update", ID: id, RolledBack: rolledBack, Err: err}
	}

	if !current {
		c.confirmLocked(id, rev, saved)
	} else if j >= 0 {
		c.items[j] = c.clone(saved)
		delete(c.confirmed, id)
	}
	return c.clone(saved), nil
}

// Delete убирает агрегат из коллекции и удаляет его в хранилище.
// При ошибке агрегат возвращается на прежнюю позицию.
func (c *Collection[T]) Delete(ctx context.Context, id string, remove RemoveFunc[T]) error {
	c.mu.Lock()
	i := c.indexLocked(id)
	if i < 0 {
		c.mu.Unlock()
		return fmt.Errorf("delete %s: %w", id, model.ErrNotFound)
	}
	prev := c.items[i]
	c.items = append(c.items[:i], c.items[i+1:]...)
	rev := c.bumpLocked(id)
	c.mu.Unlock()

	err := remove(ctx, c.clone(prev))

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		rolledBack := false
		if c.revs[id] == rev && c.indexLocked(id) < 0 {
			base := c.baseLocked(id, prev)
			pos := min(i, len(c.items))
			c.items = append(c.items, base)
			copy(c.items[pos+1:], c.items[pos:])
			c.items[pos] = base
			c.bumpLocked(id)
			rolledBack = true
		}
		return &PersistError{Op: "delete", ID: id, RolledBack: rolledBack, Err: err}
	}

	if c.revs[id] == rev {
		delete(c.revs, id)
		delete(c.confirmed, id)
	}
	return nil
}

func (c *Collection[T]) indexLocked(id string) int {
	for i, item := range c.items {
		if c.key(item) == id {
			return i
		}
	}
	return -1
}

func (c *Collection[T]) bumpLocked(id string) uint64 {
	c.seq++
	c.revs[id] = c.seq
	return c.seq
}

// confirmLocked запоминает подтверждённое хранилищем значение вытесненной ревизии.
// Более раннее подтверждение не заменяет более позднее.
func (c *Collection[T]) confirmLocked(id string, rev uint64, saved T) {
	if conf, ok := c.confirmed[id]; ok && conf.rev > rev {
		return
	}
	c.confirmed[id] = confirmation[T]{value: c.clone(saved), rev: rev}
}

// baseLocked возвращает состояние для отката: последнее подтверждение хранилища, если оно есть.
func (c *Collection[T]) baseLocked(id string, prev T) T {
	if conf, ok := c.confirmed[id]; ok {
		delete(c.confirmed, id)
		return conf.value
	}
	return prev
}
