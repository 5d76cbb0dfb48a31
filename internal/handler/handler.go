// Package handler содержит HTTP-обработчики API сервера venueops.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/venueops/internal/gateway"
	"github.com/mmeshcher/venueops/internal/middleware"
	"github.com/mmeshcher/venueops/internal/model"
)

// maxBodySize ограничение размера тела запроса.
const maxBodySize = 1 << 20

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	gateway.Gateway

	CreateProduct(ctx context.Context, p model.Product) (model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	Summary(ctx context.Context, tenantID string, from, to time.Time) (model.Summary, error)
	PublicDrinks(ctx context.Context, tenantID string, f model.DrinkFilter) ([]model.DrinkRecord, model.DrinkTotals, error)
}

// Handler реализует HTTP-обработчики API сервера venueops.
type Handler struct {
	service   Service
	logger    *zap.Logger
	rateLimit func(http.Handler) http.Handler
}

// Option настраивает Handler.
type Option func(*Handler)

// WithRateLimit включает ограничение частоты запросов.
func WithRateLimit(mw func(http.Handler) http.Handler) Option {
	return func(h *Handler) { h.rateLimit = mw }
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
func NewHandler(s Service, logger *zap.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{
		service: s,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func tenantID(r *http.Request) string {
	id, _ := middleware.TenantIDFromContext(r.Context())
	return id
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: decode request body: %v", model.ErrValidation, err)
	}
	return nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("encode response error", zap.Error(err))
	}
}

// writeError отвечает телом {"error": code, "message": text}; неизвестные ошибки логируются.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, code := gateway.Classify(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error(op+" error",
			zap.Error(err),
			zap.String("tenant", tenantID(r)),
			zap.String("path", r.URL.Path),
		)
		message = http.StatusText(status)
	}
	h.writeJSON(w, status, gateway.ErrorResponse{Code: code, Message: message})
}

// parseTime разбирает RFC3339 или дату YYYY-MM-DD. Пустое значение даёт нулевое время.
func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(gateway.QueryTimeLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid time %q", model.ErrValidation, value)
	}
	return t, nil
}

func parseRange(r *http.Request) (time.Time, time.Time, error) {
	q := r.URL.Query()
	from, err := parseTime(q.Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseTime(q.Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func parseDrinkFilter(r *http.Request) (model.DrinkFilter, error) {
	from, to, err := parseRange(r)
	if err != nil {
		return model.DrinkFilter{}, err
	}
	f := model.DrinkFilter{Employee: r.URL.Query().Get("employee")}
	if !from.IsZero() {
		f.From = &from
	}
	if !to.IsZero() {
		f.To = &to
	}
	return f, nil
}

var errIDMismatch = errors.New("id in body does not match path")
