// Package uuid абстрагирует генерацию идентификаторов агрегатов.
package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/mmeshcher/venueops/internal/common/uuid UUID

// UUID генератор идентификаторов.
type UUID interface {
	NewUUID() string
}

// DefaultUUID генерирует случайные UUID v4.
type DefaultUUID struct{}

func New() *DefaultUUID {
	return &DefaultUUID{}
}

// NewUUID возвращает новый идентификатор.
func (d *DefaultUUID) NewUUID() string {
	return uuid.New().String()
}

// Valid сообщает, является ли строка корректным UUID.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
