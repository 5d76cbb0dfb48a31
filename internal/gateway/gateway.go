// Package gateway описывает хранилище агрегатов заведения (Persistence Gateway)
// и HTTP-клиент к серверу venueops.
package gateway

import (
	"context"
	"time"

	"github.com/mmeshcher/venueops/internal/model"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_gateway.go github.com/mmeshcher/venueops/internal/gateway Gateway

// TenantHeader заголовок, которым передаётся идентификатор арендатора.
const TenantHeader = "X-Tenant-ID"

// Tabs операции над счетами столов.
type Tabs interface {
	ListTabs(ctx context.Context, tenantID string) ([]model.Tab, error)
	CreateTab(ctx context.Context, tenantID string, t model.Tab) (model.Tab, error)
	// ReplaceTab заменяет счёт целиком; t.Version должна совпадать с сохранённой.
	ReplaceTab(ctx context.Context, tenantID string, t model.Tab) (model.Tab, error)
	DeleteTab(ctx context.Context, tenantID, id string) error
}

// Rooms операции над сеансами в комнатах.
type Rooms interface {
	ListRooms(ctx context.Context, tenantID string) ([]model.RoomSession, error)
	CreateRoom(ctx context.Context, tenantID string, s model.RoomSession) (model.RoomSession, error)
	FinalizeRoom(ctx context.Context, tenantID, id string) (model.RoomSession, error)
	CancelRoom(ctx context.Context, tenantID, id string) (model.RoomSession, error)
	// DeleteRoom удаляет сеанс; непустой room дополнительно сужает поиск.
	DeleteRoom(ctx context.Context, tenantID, id, room string) error
}

// Drinks операции над записями напитков.
type Drinks interface {
	ListDrinks(ctx context.Context, tenantID string, f model.DrinkFilter) ([]model.DrinkRecord, error)
	CreateDrink(ctx context.Context, tenantID string, r model.DrinkRecord) (model.DrinkRecord, error)
	PatchDrink(ctx context.Context, tenantID, id string, p model.DrinkPatch) (model.DrinkRecord, error)
	AddDrinkUnit(ctx context.Context, tenantID, id string) (model.DrinkRecord, error)
	RemoveDrinkUnit(ctx context.Context, tenantID, id string) (model.DrinkRecord, error)
	DeleteDrink(ctx context.Context, tenantID, id string) error
}

// Catalog каталог товаров, общий для всех арендаторов.
type Catalog interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
}

// Reports отчёты по закрытым счетам.
type Reports interface {
	TabsReport(ctx context.Context, tenantID string, from, to time.Time) (model.TabsReport, error)
}

// Gateway полный контракт хранилища.
type Gateway interface {
	Tabs
	Rooms
	Drinks
	Catalog
	Reports
}
