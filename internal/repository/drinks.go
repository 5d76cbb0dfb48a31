package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mmeshcher/venueops/internal/model"
)

const drinkColumns = `id, tenant_id, employee_name, quantity, goal, period_start, period_end, items, created_at, version`

func scanDrink(row pgx.Row) (model.DrinkRecord, error) {
	var (
		d     model.DrinkRecord
		items []byte
	)
	err := row.Scan(&d.ID, &d.TenantID, &d.EmployeeName, &d.Quantity, &d.Goal,
		&d.PeriodStart, &d.PeriodEnd, &items, &d.CreatedAt, &d.Version)
	if err != nil {
		return model.DrinkRecord{}, err
	}
	if d.Items, err = unmarshalItems(items); err != nil {
		return model.DrinkRecord{}, err
	}
	return d, nil
}

// ListDrinks возвращает записи арендатора, начало периода которых попадает в [From, To),
// с подстрокой имени сотрудницы без учёта регистра.
func (r *PostgresRepository) ListDrinks(ctx context.Context, tenantID string, f model.DrinkFilter) ([]model.DrinkRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+drinkColumns+`
		 FROM drink_records
		 WHERE tenant_id = $1
		   AND ($2::timestamptz IS NULL OR period_start >= $2)
		   AND ($3::timestamptz IS NULL OR period_start < $3)
		   AND ($4 = '' OR employee_name ILIKE '%' || $4 || '%')
		 ORDER BY period_start DESC, employee_name`,
		tenantID, f.From, f.To, f.Employee,
	)
	if err != nil {
		return nil, fmt.Errorf("select drinks: %w", err)
	}
	return collect(rows, scanDrink)
}

// GetDrink возвращает запись арендатора.
func (r *PostgresRepository) GetDrink(ctx context.Context, tenantID, id string) (model.DrinkRecord, error) {
	d, err := scanDrink(r.pool.QueryRow(ctx,
		`SELECT `+drinkColumns+` FROM drink_records WHERE id = $1 AND tenant_id = $2`,
		id, tenantID,
	))
	if err != nil {
		return model.DrinkRecord{}, notFound(err, "drink record", id)
	}
	return d, nil
}

// CreateDrink сохраняет новую запись с версией 1.
func (r *PostgresRepository) CreateDrink(ctx context.Context, d model.DrinkRecord) (model.DrinkRecord, error) {
	items, err := marshalItems(d.Items)
	if err != nil {
		return model.DrinkRecord{}, err
	}

	var created model.DrinkRecord
	err = r.withRetry(ctx, func() error {
		var scanErr error
		created, scanErr = scanDrink(r.pool.QueryRow(ctx,
			`INSERT INTO drink_records (id, tenant_id, employee_name, quantity, goal, period_start, period_end, items, created_at, version)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1)
			 RETURNING `+drinkColumns,
			d.ID, d.TenantID, d.EmployeeName, d.Quantity, d.Goal, d.PeriodStart, d.PeriodEnd, items, d.CreatedAt,
		))
		return scanErr
	})
	if err != nil {
		return model.DrinkRecord{}, mapWriteError(err, "drink record")
	}
	return created, nil
}

// UpdateDrink сохраняет все поля записи, если версия совпадает с сохранённой.
func (r *PostgresRepository) UpdateDrink(ctx context.Context, d model.DrinkRecord) (model.DrinkRecord, error) {
	items, err := marshalItems(d.Items)
	if err != nil {
		return model.DrinkRecord{}, err
	}

	var saved model.DrinkRecord
	err = r.withRetry(ctx, func() error {
		var scanErr error
		saved, scanErr = scanDrink(r.pool.QueryRow(ctx,
			`UPDATE drink_records
			 SET employee_name = $3, quantity = $4, goal = $5, period_start = $6, period_end = $7, items = $8, version = version + 1
			 WHERE id = $1 AND tenant_id = $2 AND version = $9
			 RETURNING `+drinkColumns,
			d.ID, d.TenantID, d.EmployeeName, d.Quantity, d.Goal, d.PeriodStart, d.PeriodEnd, items, d.Version,
		))
		return scanErr
	})
	if err != nil {
		if isNoRows(err) {
			return model.DrinkRecord{}, r.missingOrConflict(ctx, "drink_records", d.TenantID, d.ID)
		}
		return model.DrinkRecord{}, mapWriteError(err, "drink record")
	}
	return saved, nil
}

// AddDrinkUnits атомарно изменяет количество напитков на delta, не опускаясь ниже нуля.
func (r *PostgresRepository) AddDrinkUnits(ctx context.Context, tenantID, id string, delta int) (model.DrinkRecord, error) {
	var saved model.DrinkRecord
	err := r.withRetry(ctx, func() error {
		var scanErr error
		saved, scanErr = scanDrink(r.pool.QueryRow(ctx,
			`UPDATE drink_records
			 SET quantity = GREATEST(quantity + $3, 0), version = version + 1
			 WHERE id = $1 AND tenant_id = $2
			 RETURNING `+drinkColumns,
			id, tenantID, delta,
		))
		return scanErr
	})
	if err != nil {
		return model.DrinkRecord{}, notFound(err, "drink record", id)
	}
	return saved, nil
}

// DeleteDrink удаляет запись арендатора.
func (r *PostgresRepository) DeleteDrink(ctx context.Context, tenantID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM drink_records WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("delete drink record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("drink record %s: %w", id, model.ErrNotFound)
	}
	return nil
}
