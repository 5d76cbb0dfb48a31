// Package model содержит доменные сущности сервиса venueops.
package model

import "time"

// Product описывает позицию каталога, из которой создаются строки счёта.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required"`
	UnitPrice float64   `json:"unitPrice" validate:"gte=0"`
	CreatedAt time.Time `json:"createdAt"`
}

// BonusProductID зарезервированный идентификатор псевдопозиции бонуса в записи напитков.
const BonusProductID = "bonus"

// BonusDescription отображаемое название псевдопозиции бонуса.
const BonusDescription = "bonus petisco"

// ServiceChargeDescription название строки сервисного сбора.
const ServiceChargeDescription = "Serviço"

// LineItem строка счёта: позиция, количество и цена за единицу.
type LineItem struct {
	ProductID   string  `json:"productId,omitempty"`
	Description string  `json:"description" validate:"required"`
	Quantity    int     `json:"quantity" validate:"gte=1"`
	UnitPrice   float64 `json:"unitPrice"`
}

// TabStatus описывает состояние счёта стола.
type TabStatus string

const (
	TabStatusOpen   TabStatus = "open"
	TabStatusClosed TabStatus = "closed"
)

// Tab открытый счёт стола (comanda).
type Tab struct {
	ID        string     `json:"id"`
	TenantID  string     `json:"tenantId,omitempty"`
	Label     string     `json:"label" validate:"required"`
	Items     []LineItem `json:"items" validate:"dive"`
	OwnerName string     `json:"ownerName"`
	Total     float64    `json:"total"`
	Status    TabStatus  `json:"status" validate:"oneof=open closed"`
	CreatedAt time.Time  `json:"createdAt"`
	ClosedAt  *time.Time `json:"closedAt,omitempty"`
	Version   int64      `json:"version"`
}

// Clone возвращает копию счёта, не разделяющую с оригиналом список строк.
func (t Tab) Clone() Tab {
	t.Items = CloneItems(t.Items)
	if t.ClosedAt != nil {
		closed := *t.ClosedAt
		t.ClosedAt = &closed
	}
	return t
}

// DurationTier тарифная ступень длительности сеанса в комнате.
type DurationTier string

const (
	Tier25Minutes   DurationTier = "25 minutos"
	Tier40Minutes   DurationTier = "40 minutos"
	TierHour        DurationTier = "1 hora"
	TierHourPremium DurationTier = "1 hora gringo"
	TierFree        DurationTier = "tempo livre"
)

// PaymentMethod способ оплаты сеанса.
type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "Dinheiro"
	PaymentCard        PaymentMethod = "Cartão"
	PaymentPix         PaymentMethod = "Pix"
	PaymentPixEmployee PaymentMethod = "Pix pra ela"
)

// RoomStatus состояние сеанса в комнате.
type RoomStatus string

const (
	RoomStatusActive    RoomStatus = "active"
	RoomStatusFinalized RoomStatus = "finalized"
	RoomStatusCanceled  RoomStatus = "canceled"
)

// CanceledNote отметка, которой помечается отменённый сеанс.
const CanceledNote = "cancelado"

// RoomSession сеанс занятия комнаты с тарификацией по ступени длительности.
type RoomSession struct {
	ID            string        `json:"id"`
	TenantID      string        `json:"tenantId,omitempty"`
	GuestName     string        `json:"guestName"`
	Room          string        `json:"room" validate:"required,roomlabel"`
	Tier          DurationTier  `json:"durationTier" validate:"required,tier"`
	PaymentMethod PaymentMethod `json:"paymentMethod" validate:"omitempty,payment"`
	Status        RoomStatus    `json:"status"`
	BilledAmount  float64       `json:"billedAmount"`
	Note          string        `json:"note,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	ClosedAt      *time.Time    `json:"closedAt,omitempty"`
	Version       int64         `json:"version"`
}

// Clone возвращает независимую копию сеанса.
func (s RoomSession) Clone() RoomSession {
	if s.ClosedAt != nil {
		closed := *s.ClosedAt
		s.ClosedAt = &closed
	}
	return s
}

// DefaultGoal норма напитков за неделю по умолчанию.
const DefaultGoal = 20

// DrinkRecord недельная запись сотрудницы: продажи, норма, бонусы и потребление.
type DrinkRecord struct {
	ID           string     `json:"id"`
	TenantID     string     `json:"tenantId,omitempty"`
	EmployeeName string     `json:"employeeName" validate:"required"`
	Quantity     int        `json:"quantity" validate:"gte=0"`
	Goal         int        `json:"goal" validate:"gte=0"`
	PeriodStart  time.Time  `json:"periodStart" validate:"required"`
	PeriodEnd    time.Time  `json:"periodEnd" validate:"required,gtefield=PeriodStart"`
	Items        []LineItem `json:"items" validate:"dive"`
	CreatedAt    time.Time  `json:"createdAt"`
	Version      int64      `json:"version"`
}

// Clone возвращает копию записи, не разделяющую с оригиналом список строк.
func (r DrinkRecord) Clone() DrinkRecord {
	r.Items = CloneItems(r.Items)
	return r
}

// DrinkPatch частичное обновление записи напитков: применяются только заданные поля.
type DrinkPatch struct {
	EmployeeName *string     `json:"employeeName,omitempty"`
	Quantity     *int        `json:"quantity,omitempty"`
	Goal         *int        `json:"goal,omitempty"`
	PeriodStart  *time.Time  `json:"periodStart,omitempty"`
	PeriodEnd    *time.Time  `json:"periodEnd,omitempty"`
	Items        *[]LineItem `json:"items,omitempty"`
	Version      *int64      `json:"version,omitempty"`
}

// DrinkFilter условия выборки записей напитков.
type DrinkFilter struct {
	From     *time.Time
	To       *time.Time
	Employee string
}

// DrinkSummary производные показатели записи напитков.
type DrinkSummary struct {
	Commission       float64 `json:"commission"`
	BonusCount       int     `json:"bonusCount"`
	BonusValue       float64 `json:"bonusValue"`
	ConsumptionTotal float64 `json:"consumptionTotal"`
	NetBalance       float64 `json:"netBalance"`
}

// ClosedTab строка отчёта по закрытым счетам.
type ClosedTab struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Total    float64   `json:"total"`
	ClosedAt time.Time `json:"closedAt"`
}

// TabsReport итог закрытых счетов арендатора за период.
type TabsReport struct {
	From  time.Time   `json:"from"`
	To    time.Time   `json:"to"`
	Count int         `json:"count"`
	Total float64     `json:"total"`
	Tabs  []ClosedTab `json:"tabs"`
}

// DrinkTotals сводные показатели по набору записей напитков.
type DrinkTotals struct {
	Quantity    int     `json:"quantity"`
	Commission  float64 `json:"commission"`
	Consumption float64 `json:"consumption"`
}

// Summary сводный отчёт за период: счета, комнаты и напитки.
type Summary struct {
	From         time.Time   `json:"from"`
	To           time.Time   `json:"to"`
	TabsTotal    float64     `json:"tabsTotal"`
	RoomsRevenue float64     `json:"roomsRevenue"`
	Drinks       DrinkTotals `json:"drinks"`
}

// CloneItems копирует список строк счёта.
func CloneItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}
