package worker

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/pos/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// workerStore 只實作worker會碰到的查詢，測試皆為單執行緒
type workerStore struct {
	db.Querier

	tasks       map[uuid.UUID]model.RestockTaskModel
	inventory   map[uuid.UUID]model.InventoryModel
	failRestock error
	//模擬另一個worker在同時間撈到的舊清單
	staleList []model.RestockTaskModel
}

func newWorkerStore() *workerStore {
	return &workerStore{
		tasks:     make(map[uuid.UUID]model.RestockTaskModel),
		inventory: make(map[uuid.UUID]model.InventoryModel),
	}
}

func (s *workerStore) addTask(productID uuid.UUID, quantity int32, attempts int32, due time.Time) model.RestockTaskModel {
	task := model.RestockTaskModel{
		ID:            uuid.New(),
		OrderID:       uuid.New(),
		ProductID:     productID,
		Quantity:      quantity,
		Status:        model.RestockTaskStatusPending,
		Attempts:      attempts,
		NextAttemptAt: due,
	}
	s.tasks[task.ID] = task
	return task
}

func (s *workerStore) addInventory(productID uuid.UUID, quantity int32) {
	s.inventory[productID] = model.InventoryModel{
		ID:        uuid.New(),
		ProductID: productID,
		Quantity:  quantity,
	}
}

// ExecTx 失敗時還原兩張表，模擬交易回滾
func (s *workerStore) ExecTx(ctx context.Context, fn func(db.Querier) error) error {
	taskSnap := make(map[uuid.UUID]model.RestockTaskModel, len(s.tasks))
	for k, v := range s.tasks {
		taskSnap[k] = v
	}
	invSnap := make(map[uuid.UUID]model.InventoryModel, len(s.inventory))
	for k, v := range s.inventory {
		invSnap[k] = v
	}

	if err := fn(s); err != nil {
		s.tasks = taskSnap
		s.inventory = invSnap
		return err
	}
	return nil
}

func (s *workerStore) ListDueRestockTasks(ctx context.Context, now time.Time, limit int32) ([]model.RestockTaskModel, error) {
	if s.staleList != nil {
		return s.staleList, nil
	}

	var due []model.RestockTaskModel
	for _, task := range s.tasks {
		if task.Status == model.RestockTaskStatusPending && !task.NextAttemptAt.After(now) {
			due = append(due, task)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].NextAttemptAt.Before(due[j].NextAttemptAt) })
	if int32(len(due)) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (s *workerStore) RestockInventory(ctx context.Context, productID uuid.UUID, quantity int32) (model.InventoryModel, error) {
	if s.failRestock != nil {
		return model.InventoryModel{}, s.failRestock
	}
	inv, ok := s.inventory[productID]
	if !ok {
		return model.InventoryModel{}, pgx.ErrNoRows
	}
	now := time.Now()
	inv.Quantity += quantity
	inv.LastRestockedAt = &now
	s.inventory[productID] = inv
	return inv, nil
}

func (s *workerStore) MarkRestockTaskDone(ctx context.Context, id uuid.UUID) error {
	task, ok := s.tasks[id]
	if !ok || task.Status != model.RestockTaskStatusPending {
		return pgx.ErrNoRows
	}
	task.Status = model.RestockTaskStatusDone
	s.tasks[id] = task
	return nil
}

func (s *workerStore) RescheduleRestockTask(ctx context.Context, arg db.RescheduleRestockTaskParams) error {
	task, ok := s.tasks[arg.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	task.Attempts++
	task.NextAttemptAt = arg.NextAttemptAt
	task.LastError = &arg.LastError
	s.tasks[arg.ID] = task
	return nil
}

func (s *workerStore) MarkRestockTaskFailed(ctx context.Context, id uuid.UUID, lastError string) error {
	task, ok := s.tasks[id]
	if !ok {
		return pgx.ErrNoRows
	}
	task.Status = model.RestockTaskStatusFailed
	task.LastError = &lastError
	s.tasks[id] = task
	return nil
}

var _ db.IStore = (*workerStore)(nil)

func newTestWorker(store *workerStore, maxAttempts int32) *RestockWorker {
	logger := zerolog.Nop()
	return NewRestockWorker(store, &logger, time.Second, maxAttempts)
}

func TestProcessDueTasksRestoresInventory(t *testing.T) {
	store := newWorkerStore()
	productID := uuid.New()
	store.addInventory(productID, 6)
	task := store.addTask(productID, 4, 0, time.Now().Add(-time.Minute))

	worker := newTestWorker(store, 5)
	worker.ProcessDueTasks(context.Background())

	require.Equal(t, int32(10), store.inventory[productID].Quantity)
	require.Equal(t, model.RestockTaskStatusDone, store.tasks[task.ID].Status)
}

func TestProcessDueTasksSkipsAlreadyClaimedTask(t *testing.T) {
	store := newWorkerStore()
	productID := uuid.New()
	store.addInventory(productID, 6)
	task := store.addTask(productID, 4, 0, time.Now().Add(-time.Minute))

	//兩個worker同時撈到同一筆pending任務
	worker := newTestWorker(store, 5)
	worker.ProcessDueTasks(context.Background())
	require.Equal(t, int32(10), store.inventory[productID].Quantity)

	//第二個worker手上還是撈清單當下的pending快照
	store.staleList = []model.RestockTaskModel{task}
	worker.ProcessDueTasks(context.Background())

	//認領不到就跳過，庫存只回補一次
	require.Equal(t, int32(10), store.inventory[productID].Quantity)
	got := store.tasks[task.ID]
	require.Equal(t, model.RestockTaskStatusDone, got.Status)
	require.Equal(t, int32(0), got.Attempts)
}

func TestProcessDueTasksSkipsFutureTasks(t *testing.T) {
	store := newWorkerStore()
	productID := uuid.New()
	store.addInventory(productID, 6)
	task := store.addTask(productID, 4, 0, time.Now().Add(time.Hour))

	worker := newTestWorker(store, 5)
	worker.ProcessDueTasks(context.Background())

	//還沒到排程時間的任務不處理
	require.Equal(t, int32(6), store.inventory[productID].Quantity)
	require.Equal(t, model.RestockTaskStatusPending, store.tasks[task.ID].Status)
}

func TestProcessDueTasksReschedulesOnFailure(t *testing.T) {
	store := newWorkerStore()
	productID := uuid.New()
	store.addInventory(productID, 6)
	task := store.addTask(productID, 4, 0, time.Now().Add(-time.Minute))
	store.failRestock = errors.New("connection reset")

	worker := newTestWorker(store, 5)
	worker.ProcessDueTasks(context.Background())

	got := store.tasks[task.ID]
	require.Equal(t, model.RestockTaskStatusPending, got.Status)
	require.Equal(t, int32(1), got.Attempts)
	require.True(t, got.NextAttemptAt.After(time.Now()))
	require.NotNil(t, got.LastError)

	//故障排除後重跑會補回庫存
	store.failRestock = nil
	got.NextAttemptAt = time.Now().Add(-time.Second)
	store.tasks[task.ID] = got

	worker.ProcessDueTasks(context.Background())
	require.Equal(t, int32(10), store.inventory[productID].Quantity)
	require.Equal(t, model.RestockTaskStatusDone, store.tasks[task.ID].Status)
}

func TestProcessDueTasksFailsAfterMaxAttempts(t *testing.T) {
	store := newWorkerStore()
	productID := uuid.New()
	task := store.addTask(productID, 4, 2, time.Now().Add(-time.Minute))
	store.failRestock = errors.New("connection reset")

	worker := newTestWorker(store, 3)
	worker.ProcessDueTasks(context.Background())

	got := store.tasks[task.ID]
	require.Equal(t, model.RestockTaskStatusFailed, got.Status)
	require.NotNil(t, got.LastError)
}

func TestWorkerStartStop(t *testing.T) {
	store := newWorkerStore()
	worker := newTestWorker(store, 5)

	worker.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, worker.Stop(ctx))
}
