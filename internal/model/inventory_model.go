package model

import (
	"time"

	"github.com/google/uuid"
)

// InventoryModel 每個商品一筆，quantity不允許為負
type InventoryModel struct {
	ID              uuid.UUID  `json:"id"`
	ProductID       uuid.UUID  `json:"product_id"`
	Quantity        int32      `json:"quantity"`
	ReorderLevel    int32      `json:"reorder_level"`
	ReorderQuantity int32      `json:"reorder_quantity"`
	LastRestockedAt *time.Time `json:"last_restocked_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
