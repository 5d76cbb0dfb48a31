// Package validation проверяет входные данные агрегатов и запросов по тегам validate.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mmeshcher/venueops/internal/billing"
	"github.com/mmeshcher/venueops/internal/model"
	"github.com/mmeshcher/venueops/internal/room"
)

// FieldError описывает одно нарушенное правило.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// Error ошибка валидации со списком нарушенных правил; совместима с model.ErrValidation.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Rule)
	}
	return fmt.Sprintf("%s: %s", model.ErrValidation, strings.Join(parts, "; "))
}

func (e *Error) Unwrap() error {
	return model.ErrValidation
}

var payments = map[model.PaymentMethod]bool{
	model.PaymentCash:        true,
	model.PaymentCard:        true,
	model.PaymentPix:         true,
	model.PaymentPixEmployee: true,
}

// KnownPayment сообщает, известен ли способ оплаты.
func KnownPayment(m model.PaymentMethod) bool {
	return payments[m]
}

// Validator обёртка над go-playground/validator с доменными тегами roomlabel, tier и payment.
type Validator struct {
	v *validator.Validate
}

// New создаёт валидатор для заведения с roomCount комнатами.
func New(roomCount int) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	// Ошибки регистрации возможны только при пустом теге.
	_ = v.RegisterValidation("roomlabel", func(fl validator.FieldLevel) bool {
		return room.ValidLabel(fl.Field().String(), roomCount)
	})
	_ = v.RegisterValidation("tier", func(fl validator.FieldLevel) bool {
		return billing.KnownTier(model.DurationTier(fl.Field().String()))
	})
	_ = v.RegisterValidation("payment", func(fl validator.FieldLevel) bool {
		return KnownPayment(model.PaymentMethod(fl.Field().String()))
	})

	return &Validator{v: v}
}

// Struct проверяет структуру и возвращает *Error при нарушениях.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return out
}
