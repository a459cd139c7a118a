package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/pos/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// fakeStore 記憶體版IStore，交易用mutex整段序列化，模擬row lock下的行為
// 交易內任何錯誤會還原到交易前的狀態
type fakeStore struct {
	db.Querier

	mu           sync.Mutex
	products     map[uuid.UUID]model.ProductModel
	inventory    map[uuid.UUID]model.InventoryModel
	orders       map[uuid.UUID]model.OrderModel
	orderItems   map[uuid.UUID][]model.OrderItemModel
	restockTasks map[uuid.UUID]model.RestockTaskModel
	users        map[string]model.UserModel

	failCreateOrderItem error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:     make(map[uuid.UUID]model.ProductModel),
		inventory:    make(map[uuid.UUID]model.InventoryModel),
		orders:       make(map[uuid.UUID]model.OrderModel),
		orderItems:   make(map[uuid.UUID][]model.OrderItemModel),
		restockTasks: make(map[uuid.UUID]model.RestockTaskModel),
		users:        make(map[string]model.UserModel),
	}
}

func (s *fakeStore) addProduct(name string, priceCents int64) model.ProductModel {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := model.ProductModel{
		ID:         uuid.New(),
		Name:       name,
		PriceCents: priceCents,
		Currency:   "USD",
		IsActive:   true,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	s.products[p.ID] = p
	return p
}

func (s *fakeStore) addInventory(productID uuid.UUID, quantity, reorderLevel int32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inventory[productID] = model.InventoryModel{
		ID:              uuid.New(),
		ProductID:       productID,
		Quantity:        quantity,
		ReorderLevel:    reorderLevel,
		ReorderQuantity: 10,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}

func (s *fakeStore) snapshot() *fakeStore {
	clone := newFakeStore()
	for k, v := range s.products {
		clone.products[k] = v
	}
	for k, v := range s.inventory {
		clone.inventory[k] = v
	}
	for k, v := range s.orders {
		clone.orders[k] = v
	}
	for k, v := range s.orderItems {
		items := make([]model.OrderItemModel, len(v))
		copy(items, v)
		clone.orderItems[k] = items
	}
	for k, v := range s.restockTasks {
		clone.restockTasks[k] = v
	}
	for k, v := range s.users {
		clone.users[k] = v
	}
	return clone
}

func (s *fakeStore) restore(from *fakeStore) {
	s.products = from.products
	s.inventory = from.inventory
	s.orders = from.orders
	s.orderItems = from.orderItems
	s.restockTasks = from.restockTasks
	s.users = from.users
}

func (s *fakeStore) ExecTx(ctx context.Context, fn func(db.Querier) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.snapshot()
	if err := fn(fakeTx{s: s}); err != nil {
		s.restore(before)
		return err
	}
	return nil
}

// fakeTx 交易內視角，不再搶鎖
type fakeTx struct {
	db.Querier

	s *fakeStore
}

func (t fakeTx) GetProduct(ctx context.Context, id uuid.UUID) (model.ProductModel, error) {
	return t.s.getProduct(id)
}

func (t fakeTx) GetInventoryForUpdate(ctx context.Context, productID uuid.UUID) (model.InventoryModel, error) {
	return t.s.getInventory(productID)
}

func (t fakeTx) GetInventory(ctx context.Context, productID uuid.UUID) (model.InventoryModel, error) {
	return t.s.getInventory(productID)
}

func (t fakeTx) DecrementInventory(ctx context.Context, productID uuid.UUID, quantity int32) error {
	inv, ok := t.s.inventory[productID]
	if !ok {
		return pgx.ErrNoRows
	}
	inv.Quantity -= quantity
	t.s.inventory[productID] = inv
	return nil
}

func (t fakeTx) RestockInventory(ctx context.Context, productID uuid.UUID, quantity int32) (model.InventoryModel, error) {
	return t.s.restockInventory(productID, quantity)
}

func (t fakeTx) CreateOrder(ctx context.Context, arg db.CreateOrderParams) (model.OrderModel, error) {
	order := model.OrderModel{
		ID:            uuid.New(),
		OrderNumber:   arg.OrderNumber,
		UserID:        arg.UserID,
		CustomerName:  arg.CustomerName,
		CustomerEmail: arg.CustomerEmail,
		SubtotalCents: arg.SubtotalCents,
		TaxCents:      arg.TaxCents,
		TotalCents:    arg.TotalCents,
		Currency:      "USD",
		Status:        model.OrderStatusPending,
		Notes:         arg.Notes,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	t.s.orders[order.ID] = order
	return order, nil
}

func (t fakeTx) CreateOrderItem(ctx context.Context, arg db.CreateOrderItemParams) (model.OrderItemModel, error) {
	if t.s.failCreateOrderItem != nil {
		return model.OrderItemModel{}, t.s.failCreateOrderItem
	}

	productID := arg.ProductID
	item := model.OrderItemModel{
		ID:              uuid.New(),
		OrderID:         arg.OrderID,
		ProductID:       &productID,
		ProductName:     arg.ProductName,
		Quantity:        arg.Quantity,
		UnitPriceCents:  arg.UnitPriceCents,
		TotalPriceCents: arg.TotalPriceCents,
		Currency:        "USD",
		CreatedAt:       time.Now(),
	}
	t.s.orderItems[arg.OrderID] = append(t.s.orderItems[arg.OrderID], item)
	return item, nil
}

func (t fakeTx) GetOrder(ctx context.Context, id uuid.UUID) (model.OrderModel, error) {
	return t.s.getOrder(id)
}

func (t fakeTx) ListOrderItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItemModel, error) {
	return t.s.listOrderItems(orderID)
}

func (t fakeTx) CancelOrder(ctx context.Context, id uuid.UUID) (model.OrderModel, error) {
	order, ok := t.s.orders[id]
	if !ok {
		return model.OrderModel{}, pgx.ErrNoRows
	}
	order.Status = model.OrderStatusCancelled
	order.UpdatedAt = time.Now()
	t.s.orders[id] = order
	return order, nil
}

func (t fakeTx) CreateRestockTask(ctx context.Context, arg db.CreateRestockTaskParams) (model.RestockTaskModel, error) {
	task := model.RestockTaskModel{
		ID:            uuid.New(),
		OrderID:       arg.OrderID,
		ProductID:     arg.ProductID,
		Quantity:      arg.Quantity,
		Status:        model.RestockTaskStatusPending,
		NextAttemptAt: time.Now(),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	t.s.restockTasks[task.ID] = task
	return task, nil
}

func (t fakeTx) MarkRestockTaskDone(ctx context.Context, id uuid.UUID) error {
	task, ok := t.s.restockTasks[id]
	if !ok || task.Status != model.RestockTaskStatusPending {
		return pgx.ErrNoRows
	}
	task.Status = model.RestockTaskStatusDone
	t.s.restockTasks[id] = task
	return nil
}

// Querier 其餘方法走外層locking版本

func (s *fakeStore) getProduct(id uuid.UUID) (model.ProductModel, error) {
	p, ok := s.products[id]
	if !ok {
		return model.ProductModel{}, pgx.ErrNoRows
	}
	return p, nil
}

func (s *fakeStore) getInventory(productID uuid.UUID) (model.InventoryModel, error) {
	inv, ok := s.inventory[productID]
	if !ok {
		return model.InventoryModel{}, pgx.ErrNoRows
	}
	return inv, nil
}

func (s *fakeStore) getOrder(id uuid.UUID) (model.OrderModel, error) {
	order, ok := s.orders[id]
	if !ok {
		return model.OrderModel{}, pgx.ErrNoRows
	}
	return order, nil
}

func (s *fakeStore) listOrderItems(orderID uuid.UUID) ([]model.OrderItemModel, error) {
	items := make([]model.OrderItemModel, len(s.orderItems[orderID]))
	copy(items, s.orderItems[orderID])
	return items, nil
}

func (s *fakeStore) restockInventory(productID uuid.UUID, quantity int32) (model.InventoryModel, error) {
	inv, ok := s.inventory[productID]
	if !ok {
		return model.InventoryModel{}, pgx.ErrNoRows
	}
	now := time.Now()
	inv.Quantity += quantity
	inv.LastRestockedAt = &now
	inv.UpdatedAt = now
	s.inventory[productID] = inv
	return inv, nil
}

func (s *fakeStore) GetProduct(ctx context.Context, id uuid.UUID) (model.ProductModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getProduct(id)
}

func (s *fakeStore) GetInventory(ctx context.Context, productID uuid.UUID) (model.InventoryModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getInventory(productID)
}

func (s *fakeStore) RestockInventory(ctx context.Context, productID uuid.UUID, quantity int32) (model.InventoryModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restockInventory(productID, quantity)
}

func (s *fakeStore) ListLowStockInventory(ctx context.Context) ([]model.InventoryModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []model.InventoryModel
	for _, inv := range s.inventory {
		if inv.Quantity <= inv.ReorderLevel {
			records = append(records, inv)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Quantity < records[j].Quantity })
	return records, nil
}

func (s *fakeStore) GetOrder(ctx context.Context, id uuid.UUID) (model.OrderModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrder(id)
}

func (s *fakeStore) ListOrderItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItemModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listOrderItems(orderID)
}

func (s *fakeStore) ListOrders(ctx context.Context, arg db.ListOrdersParams) ([]model.OrderModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var orders []model.OrderModel
	for _, order := range s.orders {
		if arg.Status != nil && order.Status != *arg.Status {
			continue
		}
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	if int32(len(orders)) > arg.Limit {
		orders = orders[:arg.Limit]
	}
	return orders, nil
}

func (s *fakeStore) CompleteOrder(ctx context.Context, arg db.CompleteOrderParams) (model.OrderModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[arg.ID]
	if !ok {
		return model.OrderModel{}, pgx.ErrNoRows
	}
	now := time.Now()
	order.Status = model.OrderStatusCompleted
	order.PaymentMethod = &arg.PaymentMethod
	order.PaymentReference = arg.PaymentReference
	order.CompletedAt = &now
	order.UpdatedAt = now
	s.orders[arg.ID] = order
	return order, nil
}

func (s *fakeStore) GetUserByUsername(ctx context.Context, username string) (model.UserModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[username]
	if !ok || !user.IsActive {
		return model.UserModel{}, pgx.ErrNoRows
	}
	return user, nil
}

func (s *fakeStore) GetUserByID(ctx context.Context, id uuid.UUID) (model.UserModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return model.UserModel{}, pgx.ErrNoRows
}

func (s *fakeStore) pendingRestockTasks() []model.RestockTaskModel {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tasks []model.RestockTaskModel
	for _, task := range s.restockTasks {
		if task.Status == model.RestockTaskStatusPending {
			tasks = append(tasks, task)
		}
	}
	return tasks
}

var errInjected = errors.New("injected failure")

var _ db.IStore = (*fakeStore)(nil)
