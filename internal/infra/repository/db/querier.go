package db

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/model"
	"github.com/google/uuid"
)

type Querier interface {
	// products / categories
	GetProduct(ctx context.Context, id uuid.UUID) (model.ProductModel, error)
	ListActiveProducts(ctx context.Context) ([]model.ProductModel, error)
	ListProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.ProductModel, error)
	SearchProducts(ctx context.Context, query string, limit int32) ([]model.ProductModel, error)
	ListCategories(ctx context.Context) ([]model.CategoryModel, error)

	// inventory
	GetInventory(ctx context.Context, productID uuid.UUID) (model.InventoryModel, error)
	GetInventoryForUpdate(ctx context.Context, productID uuid.UUID) (model.InventoryModel, error)
	DecrementInventory(ctx context.Context, productID uuid.UUID, quantity int32) error
	RestockInventory(ctx context.Context, productID uuid.UUID, quantity int32) (model.InventoryModel, error)
	ListLowStockInventory(ctx context.Context) ([]model.InventoryModel, error)

	// orders
	CreateOrder(ctx context.Context, arg CreateOrderParams) (model.OrderModel, error)
	CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (model.OrderItemModel, error)
	GetOrder(ctx context.Context, id uuid.UUID) (model.OrderModel, error)
	ListOrderItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItemModel, error)
	ListOrders(ctx context.Context, arg ListOrdersParams) ([]model.OrderModel, error)
	CompleteOrder(ctx context.Context, arg CompleteOrderParams) (model.OrderModel, error)
	CancelOrder(ctx context.Context, id uuid.UUID) (model.OrderModel, error)

	// restock queue
	CreateRestockTask(ctx context.Context, arg CreateRestockTaskParams) (model.RestockTaskModel, error)
	ListDueRestockTasks(ctx context.Context, now time.Time, limit int32) ([]model.RestockTaskModel, error)
	MarkRestockTaskDone(ctx context.Context, id uuid.UUID) error
	RescheduleRestockTask(ctx context.Context, arg RescheduleRestockTaskParams) error
	MarkRestockTaskFailed(ctx context.Context, id uuid.UUID, lastError string) error

	// users
	GetUserByUsername(ctx context.Context, username string) (model.UserModel, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (model.UserModel, error)
}

var _ Querier = (*Queries)(nil)
