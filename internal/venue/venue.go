// Package venue ядро клиента: локальное представление счетов, комнат и записей напитков
// одного арендатора с оптимистичным сохранением через Gateway.
package venue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mmeshcher/venueops/internal/common/clock"
	"github.com/mmeshcher/venueops/internal/common/uuid"
	"github.com/mmeshcher/venueops/internal/gateway"
	"github.com/mmeshcher/venueops/internal/model"
	"github.com/mmeshcher/venueops/internal/optimistic"
	"github.com/mmeshcher/venueops/internal/room"
)

// ErrStaleView возвращается, если изменение сохранено, но повторная загрузка коллекции не удалась.
var ErrStaleView = errors.New("change saved but view reload failed")

// Session параметры клиентской сессии. TenantID выдаётся внешней аутентификацией.
type Session struct {
	TenantID string
}

// Venue локальное представление заведения для одной сессии.
type Venue struct {
	session   Session
	gw        gateway.Gateway
	logger    *zap.Logger
	clock     clock.Clock
	ids       uuid.UUID
	roomCount int

	tabs   *optimistic.Collection[model.Tab]
	rooms  *optimistic.Collection[model.RoomSession]
	drinks *optimistic.Collection[model.DrinkRecord]

	mu          sync.RWMutex
	products    []model.Product
	drinkFilter model.DrinkFilter
}

// Option настраивает Venue.
type Option func(*Venue)

// WithClock задаёт источник времени.
func WithClock(c clock.Clock) Option {
	return func(v *Venue) { v.clock = c }
}

// WithUUID задаёт генератор идентификаторов.
func WithUUID(ids uuid.UUID) Option {
	return func(v *Venue) { v.ids = ids }
}

// WithRoomCount задаёт число комнат заведения.
func WithRoomCount(n int) Option {
	return func(v *Venue) { v.roomCount = n }
}

// New создаёт представление заведения для сессии.
func New(session Session, gw gateway.Gateway, logger *zap.Logger, opts ...Option) (*Venue, error) {
	if strings.TrimSpace(session.TenantID) == "" {
		return nil, fmt.Errorf("%w: tenant id is required", model.ErrValidation)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	v := &Venue{
		session:   session,
		gw:        gw,
		logger:    logger.With(zap.String("tenant", session.TenantID)),
		clock:     clock.New(),
		ids:       uuid.New(),
		roomCount: room.DefaultCount,
		tabs:      optimistic.New(func(t model.Tab) string { return t.ID }, model.Tab.Clone),
		rooms:     optimistic.New(func(s model.RoomSession) string { return s.ID }, model.RoomSession.Clone),
		drinks:    optimistic.New(func(r model.DrinkRecord) string { return r.ID }, model.DrinkRecord.Clone),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Session возвращает параметры сессии.
func (v *Venue) Session() Session {
	return v.session
}

// RoomCount возвращает число комнат заведения.
func (v *Venue) RoomCount() int {
	return v.roomCount
}

// Load загружает каталог и все коллекции арендатора.
func (v *Venue) Load(ctx context.Context) error {
	if err := v.LoadProducts(ctx); err != nil {
		return err
	}
	if err := v.LoadTabs(ctx); err != nil {
		return err
	}
	if err := v.LoadRooms(ctx); err != nil {
		return err
	}
	return v.LoadDrinks(ctx, v.DrinkFilter())
}

// LoadProducts загружает каталог товаров.
func (v *Venue) LoadProducts(ctx context.Context) error {
	products, err := v.gw.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}

	v.mu.Lock()
	v.products = products
	v.mu.Unlock()
	return nil
}

// Products возвращает загруженный каталог.
func (v *Venue) Products() []model.Product {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]model.Product, len(v.products))
	copy(out, v.products)
	return out
}

// Product ищет товар каталога по идентификатору.
func (v *Venue) Product(id string) (model.Product, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	for _, p := range v.products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, fmt.Errorf("%w: product %s", model.ErrNotFound, id)
}

// persistFailed журналирует ошибку сохранения и дополняет её операцией.
func (v *Venue) persistFailed(op, id string, err error) error {
	var perr *optimistic.PersistError
	if errors.As(err, &perr) {
		v.logger.Error("persist failed",
			zap.String("op", op),
			zap.String("id", id),
			zap.Bool("rolled_back", perr.RolledBack),
			zap.Error(perr.Err),
		)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// stale оборачивает ошибку повторной загрузки после успешного сохранения.
func (v *Venue) stale(op string, err error) error {
	v.logger.Warn("reload after write failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s: %w: %w", op, ErrStaleView, err)
}
