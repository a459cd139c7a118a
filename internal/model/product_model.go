package model

import (
	"time"

	"github.com/google/uuid"
)

type ProductModel struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	PriceCents  int64      `json:"price_cents"`
	Currency    string     `json:"currency"`
	CategoryID  *uuid.UUID `json:"category_id"`
	SKU         *string    `json:"sku"`
	Barcode     *string    `json:"barcode"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CategoryModel struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int32     `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
