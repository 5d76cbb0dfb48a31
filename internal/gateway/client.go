package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/mmeshcher/venueops/internal/model"
)

// QueryTimeLayout формат времени в параметрах запросов.
const QueryTimeLayout = time.RFC3339

// HTTPClient реализует Gateway поверх HTTP API сервера venueops.
type HTTPClient struct {
	client *resty.Client
	logger *zap.Logger
}

var _ Gateway = (*HTTPClient)(nil)

// NewHTTPClient создаёт клиент к серверу по указанному адресу. Повторы запросов не выполняются.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	base := strings.TrimRight(baseURL, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client := resty.New().
		SetBaseURL(base).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &HTTPClient{client: client, logger: logger}
}

func (c *HTTPClient) request(ctx context.Context, tenantID string) *resty.Request {
	req := c.client.R().
		SetContext(ctx).
		SetError(&ErrorResponse{})
	if tenantID != "" {
		req.SetHeader(TenantHeader, tenantID)
	}
	return req
}

func (c *HTTPClient) check(op string, resp *resty.Response, err error) error {
	if err != nil {
		c.logger.Warn("gateway request failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if !resp.IsError() {
		return nil
	}

	body, _ := resp.Error().(*ErrorResponse)
	apiErr := decodeError(resp.StatusCode(), body)
	c.logger.Debug("gateway request rejected",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode()),
		zap.Error(apiErr),
	)
	return fmt.Errorf("%s: %w", op, apiErr)
}

// ListTabs возвращает счета арендатора.
func (c *HTTPClient) ListTabs(ctx context.Context, tenantID string) ([]model.Tab, error) {
	var tabs []model.Tab
	resp, err := c.request(ctx, tenantID).SetResult(&tabs).Get("/api/tabs")
	if err := c.check("list tabs", resp, err); err != nil {
		return nil, err
	}
	return tabs, nil
}

// CreateTab создаёт счёт.
func (c *HTTPClient) CreateTab(ctx context.Context, tenantID string, t model.Tab) (model.Tab, error) {
	var created model.Tab
	resp, err := c.request(ctx, tenantID).SetBody(t).SetResult(&created).Post("/api/tabs")
	if err := c.check("create tab", resp, err); err != nil {
		return model.Tab{}, err
	}
	return created, nil
}

// ReplaceTab заменяет счёт целиком.
func (c *HTTPClient) ReplaceTab(ctx context.Context, tenantID string, t model.Tab) (model.Tab, error) {
	var saved model.Tab
	resp, err := c.request(ctx, tenantID).
		SetPathParam("id", t.ID).
		SetBody(t).
		SetResult(&saved).
		Put("/api/tabs/{id}")
	if err := c.check("replace tab", resp, err); err != nil {
		return model.Tab{}, err
	}
	return saved, nil
}

// DeleteTab удаляет счёт.
func (c *HTTPClient) DeleteTab(ctx context.Context, tenantID, id string) error {
	resp, err := c.request(ctx, tenantID).SetPathParam("id", id).Delete("/api/tabs/{id}")
	return c.check("delete tab", resp, err)
}

// ListRooms возвращает сеансы арендатора.
func (c *HTTPClient) ListRooms(ctx context.Context, tenantID string) ([]model.RoomSession, error) {
	var sessions []model.RoomSession
	resp, err := c.request(ctx, tenantID).SetResult(&sessions).Get("/api/rooms")
	if err := c.check("list rooms", resp, err); err != nil {
		return nil, err
	}
	return sessions, nil
}

// CreateRoom создаёт сеанс.
func (c *HTTPClient) CreateRoom(ctx context.Context, tenantID string, s model.RoomSession) (model.RoomSession, error) {
	var created model.RoomSession
	resp, err := c.request(ctx, tenantID).SetBody(s).SetResult(&created).Post("/api/rooms")
	if err := c.check("create room", resp, err); err != nil {
		return model.RoomSession{}, err
	}
	return created, nil
}

// FinalizeRoom завершает сеанс.
func (c *HTTPClient) FinalizeRoom(ctx context.Context, tenantID, id string) (model.RoomSession, error) {
	return c.roomTransition(ctx, tenantID, id, "finalize")
}

// CancelRoom отменяет завершённый сеанс.
func (c *HTTPClient) CancelRoom(ctx context.Context, tenantID, id string) (model.RoomSession, error) {
	return c.roomTransition(ctx, tenantID, id, "cancel")
}

func (c *HTTPClient) roomTransition(ctx context.Context, tenantID, id, action string) (model.RoomSession, error) {
	var saved model.RoomSession
	resp, err := c.request(ctx, tenantID).
		SetPathParams(map[string]string{"id": id, "action": action}).
		SetResult(&saved).
		Patch("/api/rooms/{id}/{action}")
	if err := c.check(action+" room", resp, err); err != nil {
		return model.RoomSession{}, err
	}
	return saved, nil
}

// DeleteRoom удаляет сеанс.
func (c *HTTPClient) DeleteRoom(ctx context.Context, tenantID, id, room string) error {
	req := c.request(ctx, tenantID).SetPathParam("id", id)
	if room != "" {
		req.SetQueryParam("room", room)
	}
	resp, err := req.Delete("/api/rooms/{id}")
	return c.check("delete room", resp, err)
}

// ListDrinks возвращает записи напитков с учётом фильтра.
func (c *HTTPClient) ListDrinks(ctx context.Context, tenantID string, f model.DrinkFilter) ([]model.DrinkRecord, error) {
	req := c.request(ctx, tenantID)
	if f.From != nil {
		req.SetQueryParam("from", f.From.Format(QueryTimeLayout))
	}
	if f.To != nil {
		req.SetQueryParam("to", f.To.Format(QueryTimeLayout))
	}
	if f.Employee != "" {
		req.SetQueryParam("employee", f.Employee)
	}

	var records []model.DrinkRecord
	resp, err := req.SetResult(&records).Get("/api/drinks")
	if err := c.check("list drinks", resp, err); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateDrink создаёт запись напитков.
func (c *HTTPClient) CreateDrink(ctx context.Context, tenantID string, r model.DrinkRecord) (model.DrinkRecord, error) {
	var created model.DrinkRecord
	resp, err := c.request(ctx, tenantID).SetBody(r).SetResult(&created).Post("/api/drinks")
	if err := c.check("create drink", resp, err); err != nil {
		return model.DrinkRecord{}, err
	}
	return created, nil
}

// PatchDrink частично обновляет запись напитков.
func (c *HTTPClient) PatchDrink(ctx context.Context, tenantID, id string, p model.DrinkPatch) (model.DrinkRecord, error) {
	var saved model.DrinkRecord
	resp, err := c.request(ctx, tenantID).
		SetPathParam("id", id).
		SetBody(p).
		SetResult(&saved).
		Patch("/api/drinks/{id}")
	if err := c.check("patch drink", resp, err); err != nil {
		return model.DrinkRecord{}, err
	}
	return saved, nil
}

// AddDrinkUnit добавляет один напиток.
func (c *HTTPClient) AddDrinkUnit(ctx context.Context, tenantID, id string) (model.DrinkRecord, error) {
	return c.drinkUnit(ctx, tenantID, id, "add")
}

// RemoveDrinkUnit убирает один напиток.
func (c *HTTPClient) RemoveDrinkUnit(ctx context.Context, tenantID, id string) (model.DrinkRecord, error) {
	return c.drinkUnit(ctx, tenantID, id, "remove")
}

func (c *HTTPClient) drinkUnit(ctx context.Context, tenantID, id, action string) (model.DrinkRecord, error) {
	var saved model.DrinkRecord
	resp, err := c.request(ctx, tenantID).
		SetPathParams(map[string]string{"id": id, "action": action}).
		SetResult(&saved).
		Patch("/api/drinks/{id}/{action}")
	if err := c.check(action+" drink unit", resp, err); err != nil {
		return model.DrinkRecord{}, err
	}
	return saved, nil
}

// DeleteDrink удаляет запись напитков.
func (c *HTTPClient) DeleteDrink(ctx context.Context, tenantID, id string) error {
	resp, err := c.request(ctx, tenantID).SetPathParam("id", id).Delete("/api/drinks/{id}")
	return c.check("delete drink", resp, err)
}

// ListProducts возвращает каталог товаров.
func (c *HTTPClient) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	resp, err := c.request(ctx, "").SetResult(&products).Get("/api/products")
	if err := c.check("list products", resp, err); err != nil {
		return nil, err
	}
	return products, nil
}

// TabsReport возвращает итоги закрытых счетов за период.
func (c *HTTPClient) TabsReport(ctx context.Context, tenantID string, from, to time.Time) (model.TabsReport, error) {
	var report model.TabsReport
	resp, err := c.request(ctx, tenantID).
		SetQueryParams(map[string]string{
			"from": from.Format(QueryTimeLayout),
			"to":   to.Format(QueryTimeLayout),
		}).
		SetResult(&report).
		Get("/api/reports/tabs")
	if err := c.check("tabs report", resp, err); err != nil {
		return model.TabsReport{}, err
	}
	return report, nil
}
