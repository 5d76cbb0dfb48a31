// Package service реализует бизнес-логику сервера venueops: хранилище агрегатов заведения
// поверх репозитория с проверкой переходов состояний и версий.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mmeshcher/venueops/internal/cache"
	"github.com/mmeshcher/venueops/internal/common/clock"
	"github.com/mmeshcher/venueops/internal/common/uuid"
	"github.com/mmeshcher/venueops/internal/gateway"
	"github.com/mmeshcher/venueops/internal/model"
	"github.com/mmeshcher/venueops/internal/room"
	"github.com/mmeshcher/venueops/internal/validation"
)

// Repository описывает контракт доступа к данным, используемый сервисом.
type Repository interface {
	Close() error

	ListProducts(ctx context.Context) ([]model.Product, error)
	CreateProduct(ctx context.Context, p model.Product) (model.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListTabs(ctx context.Context, tenantID string) ([]model.Tab, error)
	GetTab(ctx context.Context, tenantID, id string) (model.Tab, error)
	CreateTab(ctx context.Context, t model.Tab) (model.Tab, error)
	ReplaceTab(ctx context.Context, t model.Tab) (model.Tab, error)
	DeleteTab(ctx context.Context, tenantID, id string) error
	ClosedTabs(ctx context.Context, tenantID string, from, to time.Time) ([]model.ClosedTab, error)

	ListRooms(ctx context.Context, tenantID string) ([]model.RoomSession, error)
	ActiveRooms(ctx context.Context) ([]model.RoomSession, error)
	GetRoom(ctx context.Context, tenantID, id string) (model.RoomSession, error)
	CreateRoom(ctx context.Context, s model.RoomSession) (model.RoomSession, error)
	UpdateRoom(ctx context.Context, s model.RoomSession) (model.RoomSession, error)
	DeleteRoom(ctx context.Context, tenantID, id, room string) error

	ListDrinks(ctx context.Context, tenantID string, f model.DrinkFilter) ([]model.DrinkRecord, error)
	GetDrink(ctx context.Context, tenantID, id string) (model.DrinkRecord, error)
	CreateDrink(ctx context.Context, d model.DrinkRecord) (model.DrinkRecord, error)
	UpdateDrink(ctx context.Context, d model.DrinkRecord) (model.DrinkRecord, error)
	AddDrinkUnits(ctx context.Context, tenantID, id string, delta int) (model.DrinkRecord, error)
	DeleteDrink(ctx context.Context, tenantID, id string) error
}

// ProductCache кэш каталога товаров.
type ProductCache interface {
	Get(ctx context.Context) ([]model.Product, error)
	Set(ctx context.Context, products []model.Product) error
	Invalidate(ctx context.Context) error
}

// Service содержит бизнес-логику сервера venueops.
type Service struct {
	repo      Repository
	cache     ProductCache
	validate  *validation.Validator
	clock     clock.Clock
	ids       uuid.UUID
	logger    *zap.Logger
	roomCount int
}

var _ gateway.Gateway = (*Service)(nil)

// Option настраивает Service.
type Option func(*Service)

// WithCache включает кэш каталога.
func WithCache(c ProductCache) Option {
	return func(s *Service) { s.cache = c }
}

// WithClock задаёт источник времени.
func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithUUID задаёт генератор идентификаторов.
func WithUUID(ids uuid.UUID) Option {
	return func(s *Service) { s.ids = ids }
}

// WithRoomCount задаёт число комнат заведения.
func WithRoomCount(n int) Option {
	return func(s *Service) { s.roomCount = n }
}

// NewService создаёт новый сервис с указанным репозиторием.
func NewService(repo Repository, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		repo:      repo,
		clock:     clock.New(),
		ids:       uuid.New(),
		logger:    logger,
		roomCount: room.DefaultCount,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.validate = validation.New(s.roomCount)
	return s
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

// RoomCount возвращает число комнат заведения.
func (s *Service) RoomCount() int {
	return s.roomCount
}

// ListProducts возвращает каталог товаров, по возможности из кэша.
func (s *Service) ListProducts(ctx context.Context) ([]model.Product, error) {
	if s.cache != nil {
		products, err := s.cache.Get(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Warn("catalog cache read failed", zap.Error(err))
		}
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, products); err != nil {
			s.logger.Warn("catalog cache write failed", zap.Error(err))
		}
	}
	return products, nil
}

// CreateProduct добавляет товар в каталог.
func (s *Service) CreateProduct(ctx context.Context, p model.Product) (model.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.ID == "" {
		p.ID = s.ids.NewUUID()
	}
	if p.ID == model.BonusProductID {
		return model.Product{}, fmt.Errorf("%w: product id %q is reserved", model.ErrValidation, p.ID)
	}
	if err := s.validate.Struct(p); err != nil {
		return model.Product{}, err
	}

	created, err := s.repo.CreateProduct(ctx, p)
	if err != nil {
		return model.Product{}, err
	}
	s.invalidateCatalog(ctx)
	return created, nil
}

// DeleteProduct удаляет товар из каталога.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *Service) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

func checkVersion(stored, requested int64) error {
	if requested != stored {
		return fmt.Errorf("%w: stored %d, got %d", model.ErrVersionConflict, stored, requested)
	}
	return nil
}
