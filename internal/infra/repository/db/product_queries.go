package db

import (
	"context"

	"github.com/RoyceAzure/lab/pos/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const productColumns = `id, name, description, price_cents, currency, category_id, sku, barcode, is_active, created_at, updated_at`

func scanProduct(row pgx.Row) (model.ProductModel, error) {
	var p model.ProductModel
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.PriceCents,
		&p.Currency,
		&p.CategoryID,
		&p.SKU,
		&p.Barcode,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func collectProducts(rows pgx.Rows) ([]model.ProductModel, error) {
	defer rows.Close()
	var products []model.ProductModel
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (q *Queries) GetProduct(ctx context.Context, id uuid.UUID) (model.ProductModel, error) {
	row := q.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	return scanProduct(row)
}

func (q *Queries) ListActiveProducts(ctx context.Context) ([]model.ProductModel, error) {
	rows, err := q.db.Query(ctx, `SELECT `+productColumns+` FROM products WHERE is_active = true ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (q *Queries) ListProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.ProductModel, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE category_id = $1 AND is_active = true ORDER BY name`,
		categoryID)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

// SearchProducts 名稱/描述/sku模糊比對，條碼完全比對
func (q *Queries) SearchProducts(ctx context.Context, query string, limit int32) ([]model.ProductModel, error) {
	pattern := "%" + query + "%"
	rows, err := q.db.Query(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE is_active = true
		 AND (name ILIKE $1 OR description ILIKE $1 OR sku ILIKE $1 OR barcode = $2)
		 ORDER BY name
		 LIMIT $3`,
		pattern, query, limit)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (q *Queries) ListCategories(ctx context.Context) ([]model.CategoryModel, error) {
	rows, err := q.db.Query(ctx,
		`SELECT id, name, description, is_active, sort_order, created_at, updated_at
		 FROM categories WHERE is_active = true ORDER BY sort_order, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []model.CategoryModel
	for rows.Next() {
		var c model.CategoryModel
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.IsActive, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
