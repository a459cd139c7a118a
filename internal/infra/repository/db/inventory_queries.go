package db

import (
	"context"

	"github.com/RoyceAzure/lab/pos/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const inventoryColumns = `id, product_id, quantity, reorder_level, reorder_quantity, last_restocked_at, created_at, updated_at`

func scanInventory(row pgx.Row) (model.InventoryModel, error) {
	var inv model.InventoryModel
	err := row.Scan(
		&inv.ID,
		&inv.ProductID,
		&inv.Quantity,
		&inv.ReorderLevel,
		&inv.ReorderQuantity,
		&inv.LastRestockedAt,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	return inv, err
}

func (q *Queries) GetInventory(ctx context.Context, productID uuid.UUID) (model.InventoryModel, error) {
	row := q.db.QueryRow(ctx, `SELECT `+inventoryColumns+` FROM inventory WHERE product_id = $1`, productID)
	return scanInventory(row)
}

// GetInventoryForUpdate 鎖定該商品的庫存row直到交易結束
// check-then-decrement必須在同一個交易內使用此查詢，併發保留才會序列化
func (q *Queries) GetInventoryForUpdate(ctx context.Context, productID uuid.UUID) (model.InventoryModel, error) {
	row := q.db.QueryRow(ctx, `SELECT `+inventoryColumns+` FROM inventory WHERE product_id = $1 FOR UPDATE`, productID)
	return scanInventory(row)
}

func (q *Queries) DecrementInventory(ctx context.Context, productID uuid.UUID, quantity int32) error {
	_, err := q.db.Exec(ctx,
		`UPDATE inventory SET quantity = quantity - $1, updated_at = now() WHERE product_id = $2`,
		quantity, productID)
	return err
}

func (q *Queries) RestockInventory(ctx context.Context, productID uuid.UUID, quantity int32) (model.InventoryModel, error) {
	row := q.db.QueryRow(ctx,
		`UPDATE inventory
		 SET quantity = quantity + $1, last_restocked_at = now(), updated_at = now()
		 WHERE product_id = $2
		 RETURNING `+inventoryColumns,
		quantity, productID)
	return scanInventory(row)
}

func (q *Queries) ListLowStockInventory(ctx context.Context) ([]model.InventoryModel, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+inventoryColumns+` FROM inventory WHERE quantity <= reorder_level ORDER BY quantity`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.InventoryModel
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, inv)
	}
	return records, rows.Err()
}
