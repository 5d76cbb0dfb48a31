package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mmeshcher/venueops/internal/model"
)

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	if err := row.Scan(&p.ID, &p.Name, &p.UnitPrice, &p.CreatedAt); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// ListProducts возвращает каталог товаров.
func (r *PostgresRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, unit_price, created_at FROM products ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	return collect(rows, scanProduct)
}

// CreateProduct добавляет товар в каталог.
func (r *PostgresRepository) CreateProduct(ctx context.Context, p model.Product) (model.Product, error) {
	created, err := scanProduct(r.pool.QueryRow(ctx,
		`INSERT INTO products (id, name, unit_price) VALUES ($1, $2, $3)
		 RETURNING id, name, unit_price, created_at`,
		p.ID, p.Name, p.UnitPrice,
	))
	if err != nil {
		return model.Product{}, mapWriteError(err, "product")
	}
	return created, nil
}

// DeleteProduct удаляет товар из каталога. Строки существующих счетов не затрагиваются.
func (r *PostgresRepository) DeleteProduct(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", id, model.ErrNotFound)
	}
	return nil
}
