package dto

import "time"

// ProductDTO 表示商品資訊
type ProductDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	PriceCents  int64   `json:"price_cents"`
	Currency    string  `json:"currency"`
	CategoryID  *string `json:"category_id"`
	SKU         *string `json:"sku"`
	Barcode     *string `json:"barcode"`
	IsActive    bool    `json:"is_active"`
}

type CategoryDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	SortOrder   int32   `json:"sort_order"`
}

// InventoryDTO 表示庫存資訊
type InventoryDTO struct {
	ProductID       string     `json:"product_id"`
	Quantity        int32      `json:"quantity"`
	ReorderLevel    int32      `json:"reorder_level"`
	ReorderQuantity int32      `json:"reorder_quantity"`
	LastRestockedAt *time.Time `json:"last_restocked_at"`
}

type RestockDTO struct {
	Quantity int32 `json:"quantity"`
}

type CreateOrderItemDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

type CreateOrderDTO struct {
	CustomerName  *string              `json:"customer_name"`
	CustomerEmail *string              `json:"customer_email"`
	Notes         *string              `json:"notes"`
	Items         []CreateOrderItemDTO `json:"items"`
}

type CompleteOrderDTO struct {
	PaymentMethod    string  `json:"payment_method"`
	PaymentReference *string `json:"payment_reference"`
}

// OrderItemDTO 表示訂單項目，商品名稱與單價是下單當下的快照
type OrderItemDTO struct {
	ID              string  `json:"id"`
	ProductID       *string `json:"product_id"`
	ProductName     string  `json:"product_name"`
	Quantity        int32   `json:"quantity"`
	UnitPriceCents  int64   `json:"unit_price_cents"`
	TotalPriceCents int64   `json:"total_price_cents"`
}

// OrderDTO 表示訂單資訊
type OrderDTO struct {
	ID               string         `json:"id"`
	OrderNumber      string         `json:"order_number"`
	CustomerName     *string        `json:"customer_name"`
	CustomerEmail    *string        `json:"customer_email"`
	SubtotalCents    int64          `json:"subtotal_cents"`
	TaxCents         int64          `json:"tax_cents"`
	TotalCents       int64          `json:"total_cents"`
	Currency         string         `json:"currency"`
	Status           string         `json:"status"`
	PaymentMethod    *string        `json:"payment_method"`
	PaymentReference *string        `json:"payment_reference"`
	Notes            *string        `json:"notes"`
	CompletedAt      *time.Time     `json:"completed_at"`
	CreatedAt        time.Time      `json:"created_at"`
	Items            []OrderItemDTO `json:"items,omitempty"`
}

// InsufficientInventoryDTO 庫存不足錯誤的明細
type InsufficientInventoryDTO struct {
	ProductID string `json:"product_id"`
	Requested int32  `json:"requested"`
	Available int32  `json:"available"`
}
