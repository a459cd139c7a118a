package db

import (
	"context"

	"github.com/RoyceAzure/lab/pos/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const orderColumns = `id, order_number, user_id, customer_name, customer_email, subtotal_cents, tax_cents, total_cents, currency, status, payment_method, payment_reference, notes, created_at, updated_at, completed_at`

const orderItemColumns = `id, order_id, product_id, product_name, quantity, unit_price_cents, total_price_cents, currency, created_at`

func scanOrder(row pgx.Row) (model.OrderModel, error) {
	var o model.OrderModel
	err := row.Scan(
		&o.ID,
		&o.OrderNumber,
		&o.UserID,
		&o.CustomerName,
		&o.CustomerEmail,
		&o.SubtotalCents,
		&o.TaxCents,
		&o.TotalCents,
		&o.Currency,
		&o.Status,
		&o.PaymentMethod,
		&o.PaymentReference,
		&o.Notes,
		&o.CreatedAt,
		&o.UpdatedAt,
		&o.CompletedAt,
	)
	return o, err
}

func scanOrderItem(row pgx.Row) (model.OrderItemModel, error) {
	var item model.OrderItemModel
	err := row.Scan(
		&item.ID,
		&item.OrderID,
		&item.ProductID,
		&item.ProductName,
		&item.Quantity,
		&item.UnitPriceCents,
		&item.TotalPriceCents,
		&item.Currency,
		&item.CreatedAt,
	)
	return item, err
}

type CreateOrderParams struct {
	OrderNumber   string
	UserID        *uuid.UUID
	CustomerName  *string
	CustomerEmail *string
	SubtotalCents int64
	TaxCents      int64
	TotalCents    int64
	Notes         *string
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (model.OrderModel, error) {
	row := q.db.QueryRow(ctx,
		`INSERT INTO orders (order_number, user_id, customer_name, customer_email,
		 subtotal_cents, tax_cents, total_cents, status, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending', $8)
		 RETURNING `+orderColumns,
		arg.OrderNumber, arg.UserID, arg.CustomerName, arg.CustomerEmail,
		arg.SubtotalCents, arg.TaxCents, arg.TotalCents, arg.Notes)
	return scanOrder(row)
}

type CreateOrderItemParams struct {
	OrderID         uuid.UUID
	ProductID       uuid.UUID
	ProductName     string
	Quantity        int32
	UnitPriceCents  int64
	TotalPriceCents int64
}

func (q *Queries) CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (model.OrderItemModel, error) {
	row := q.db.QueryRow(ctx,
		`INSERT INTO order_items (order_id, product_id, product_name, quantity,
		 unit_price_cents, total_price_cents)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+orderItemColumns,
		arg.OrderID, arg.ProductID, arg.ProductName, arg.Quantity,
		arg.UnitPriceCents, arg.TotalPriceCents)
	return scanOrderItem(row)
}

func (q *Queries) GetOrder(ctx context.Context, id uuid.UUID) (model.OrderModel, error) {
	row := q.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	return scanOrder(row)
}

func (q *Queries) ListOrderItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItemModel, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+orderItemColumns+` FROM order_items WHERE order_id = $1 ORDER BY created_at`,
		orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.OrderItemModel
	for rows.Next() {
		item, err := scanOrderItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

type ListOrdersParams struct {
	Status *model.OrderStatus
	Limit  int32
}

func (q *Queries) ListOrders(ctx context.Context, arg ListOrdersParams) ([]model.OrderModel, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders
		 WHERE ($1::text IS NULL OR status = $1)
		 ORDER BY created_at DESC
		 LIMIT $2`,
		arg.Status, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []model.OrderModel
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

type CompleteOrderParams struct {
	ID               uuid.UUID
	PaymentMethod    string
	PaymentReference *string
}

// CompleteOrder 不檢查當前狀態，呼叫端需自行保證不重複完成
func (q *Queries) CompleteOrder(ctx context.Context, arg CompleteOrderParams) (model.OrderModel, error) {
	row := q.db.QueryRow(ctx,
		`UPDATE orders
		 SET status = 'completed', payment_method = $1, payment_reference = $2,
		     completed_at = now(), updated_at = now()
		 WHERE id = $3
		 RETURNING `+orderColumns,
		arg.PaymentMethod, arg.PaymentReference, arg.ID)
	return scanOrder(row)
}

func (q *Queries) CancelOrder(ctx context.Context, id uuid.UUID) (model.OrderModel, error) {
	row := q.db.QueryRow(ctx,
		`UPDATE orders SET status = 'cancelled', updated_at = now() WHERE id = $1 RETURNING `+orderColumns,
		id)
	return scanOrder(row)
}
