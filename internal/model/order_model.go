package model

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // 待付款
	OrderStatusCompleted OrderStatus = "completed" // 已完成(終態)
	OrderStatusCancelled OrderStatus = "cancelled" // 已取消(終態)
)

type OrderModel struct {
	ID               uuid.UUID   `json:"id"`
	OrderNumber      string      `json:"order_number"`
	UserID           *uuid.UUID  `json:"user_id"`
	CustomerName     *string     `json:"customer_name"`
	CustomerEmail    *string     `json:"customer_email"`
	SubtotalCents    int64       `json:"subtotal_cents"`
	TaxCents         int64       `json:"tax_cents"`
	TotalCents       int64       `json:"total_cents"`
	Currency         string      `json:"currency"`
	Status           OrderStatus `json:"status"`
	PaymentMethod    *string     `json:"payment_method"`
	PaymentReference *string     `json:"payment_reference"`
	Notes            *string     `json:"notes"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
	CompletedAt      *time.Time  `json:"completed_at"`
}

// OrderItemModel 商品名稱與單價在下單當下快照，之後商品異動不影響已成立訂單
type OrderItemModel struct {
	ID              uuid.UUID  `json:"id"`
	OrderID         uuid.UUID  `json:"order_id"`
	ProductID       *uuid.UUID `json:"product_id"`
	ProductName     string     `json:"product_name"`
	Quantity        int32      `json:"quantity"`
	UnitPriceCents  int64      `json:"unit_price_cents"`
	TotalPriceCents int64      `json:"total_price_cents"`
	Currency        string     `json:"currency"`
	CreatedAt       time.Time  `json:"created_at"`
}

type OrderWithItems struct {
	Order OrderModel       `json:"order"`
	Items []OrderItemModel `json:"items"`
}
