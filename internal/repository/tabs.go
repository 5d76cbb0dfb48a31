package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mmeshcher/venueops/internal/model"
)

const tabColumns = `id, tenant_id, label, items, owner_name, total, status, created_at, closed_at, version`

func scanTab(row pgx.Row) (model.Tab, error) {
	var (
		t      model.Tab
		items  []byte
		status string
	)
	if err := row.Scan(&t.ID, &t.TenantID, &t.Label, &items, &t.OwnerName, &t.Total, &status, &t.CreatedAt, &t.ClosedAt, &t.Version); err != nil {
		return model.Tab{}, err
	}
	t.Status = model.TabStatus(status)

	var err error
	if t.Items, err = unmarshalItems(items); err != nil {
		return model.Tab{}, err
	}
	return t, nil
}

// ListTabs возвращает счета арендатора в порядке создания.
func (r *PostgresRepository) ListTabs(ctx context.Context, tenantID string) ([]model.Tab, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+tabColumns+` FROM tabs WHERE tenant_id = $1 ORDER BY created_at, id`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("select tabs: %w", err)
	}
	return collect(rows, scanTab)
}

// GetTab возвращает счёт арендатора.
func (r *PostgresRepository) GetTab(ctx context.Context, tenantID, id string) (model.Tab, error) {
	t, err := scanTab(r.pool.QueryRow(ctx,
		`SELECT `+tabColumns+` FROM tabs WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	))
	if err != nil {
		return model.Tab{}, notFound(err, "tab", id)
	}
	return t, nil
}

// CreateTab сохраняет новый счёт с версией 1.
func (r *PostgresRepository) CreateTab(ctx context.Context, t model.Tab) (model.Tab, error) {
	items, err := marshalItems(t.Items)
	if err != nil {
		return model.Tab{}, err
	}

	var created model.Tab
	err = r.withRetry(ctx, func() error {
		var scanErr error
		created, scanErr = scanTab(r.pool.QueryRow(ctx,
			`INSERT INTO tabs (id, tenant_id, label, items, owner_name, total, status, created_at, closed_at, version)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1)
			 RETURNING `+tabColumns,
			t.ID, t.TenantID, t.Label, items, t.OwnerName, t.Total, string(t.Status), t.CreatedAt, t.ClosedAt,
		))
		return scanErr
	})
	if err != nil {
		return model.Tab{}, mapWriteError(err, "tab")
	}
	return created, nil
}

// ReplaceTab заменяет счёт целиком, если версия совпадает с сохранённой, и увеличивает версию.
func (r *PostgresRepository) ReplaceTab(ctx context.Context, t model.Tab) (model.Tab, error) {
	items, err := marshalItems(t.Items)
	if err != nil {
		return model.Tab{}, err
	}

	var saved model.Tab
	err = r.withRetry(ctx, func() error {
		var scanErr error
		saved, scanErr = scanTab(r.pool.QueryRow(ctx,
			`UPDATE tabs
			 SET label = $3, items = $4, owner_name = $5, total = $6, status = $7, closed_at = $8, version = version + 1
			 WHERE id = $1 AND tenant_id = $2 AND version = $9
			 RETURNING `+tabColumns,
			t.ID, t.TenantID, t.Label, items, t.OwnerName, t.Total, string(t.Status), t.ClosedAt, t.Version,
		))
		return scanErr
	})
	if err != nil {
		if isNoRows(err) {
			return model.Tab{}, r.missingOrConflict(ctx, "tabs", t.TenantID, t.ID)
		}
		return model.Tab{}, mapWriteError(err, "tab")
	}
	return saved, nil
}

// DeleteTab удаляет счёт арендатора.
func (r *PostgresRepository) DeleteTab(ctx context.Context, tenantID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tabs WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("delete tab: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tab %s: %w", id, model.ErrNotFound)
	}
	return nil
}

// ClosedTabs возвращает закрытые счета арендатора с closed_at в полуинтервале [from, to).
// Нулевая граница не ограничивает выборку.
func (r *PostgresRepository) ClosedTabs(ctx context.Context, tenantID string, from, to time.Time) ([]model.ClosedTab, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, label, total, closed_at
		 FROM tabs
		 WHERE tenant_id = $1 AND status = $2 AND closed_at IS NOT NULL
		   AND ($3::timestamptz IS NULL OR closed_at >= $3)
		   AND ($4::timestamptz IS NULL OR closed_at < $4)
		 ORDER BY closed_at`,
		tenantID, string(model.TabStatusClosed), nullTime(from), nullTime(to),
	)
	if err != nil {
		return nil, fmt.Errorf("select closed tabs: %w", err)
	}
	return collect(rows, func(row pgx.Row) (model.ClosedTab, error) {
		var c model.ClosedTab
		if err := row.Scan(&c.ID, &c.Label, &c.Total, &c.ClosedAt); err != nil {
			return model.ClosedTab{}, fmt.Errorf("scan closed tab: %w", err)
		}
		return c, nil
	})
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
