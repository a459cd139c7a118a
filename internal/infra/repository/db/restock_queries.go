package db

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const restockTaskColumns = `id, order_id, product_id, quantity, status, attempts, next_attempt_at, last_error, created_at, updated_at`

func scanRestockTask(row pgx.Row) (model.RestockTaskModel, error) {
	var t model.RestockTaskModel
	err := row.Scan(
		&t.ID,
		&t.OrderID,
		&t.ProductID,
		&t.Quantity,
		&t.Status,
		&t.Attempts,
		&t.NextAttemptAt,
		&t.LastError,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

type CreateRestockTaskParams struct {
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int32
}

func (q *Queries) CreateRestockTask(ctx context.Context, arg CreateRestockTaskParams) (model.RestockTaskModel, error) {
	row := q.db.QueryRow(ctx,
		`INSERT INTO restock_queue (order_id, product_id, quantity, status, next_attempt_at)
		 VALUES ($1, $2, $3, 'pending', now())
		 RETURNING `+restockTaskColumns,
		arg.OrderID, arg.ProductID, arg.Quantity)
	return scanRestockTask(row)
}

// ListDueRestockTasks 取出到期的pending任務
// SKIP LOCKED只減少多worker間的重工，鎖在語句結束就釋放
// 不重複執行的保證在MarkRestockTaskDone的條件更新
func (q *Queries) ListDueRestockTasks(ctx context.Context, now time.Time, limit int32) ([]model.RestockTaskModel, error) {
	rows, err := q.db.Query(ctx,
		`SELECT `+restockTaskColumns+` FROM restock_queue
		 WHERE status = 'pending' AND next_attempt_at <= $1
		 ORDER BY next_attempt_at
		 LIMIT $2
		 FOR UPDATE SKIP LOCKED`,
		now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.RestockTaskModel
	for rows.Next() {
		t, err := scanRestockTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// MarkRestockTaskDone 只允許pending轉done
// 沒改到任何row回傳pgx.ErrNoRows，代表任務已被其他worker處理
func (q *Queries) MarkRestockTaskDone(ctx context.Context, id uuid.UUID) error {
	tag, err := q.db.Exec(ctx,
		`UPDATE restock_queue SET status = 'done', updated_at = now()
		 WHERE id = $1 AND status = 'pending'`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

type RescheduleRestockTaskParams struct {
	ID            uuid.UUID
	NextAttemptAt time.Time
	LastError     string
}

func (q *Queries) RescheduleRestockTask(ctx context.Context, arg RescheduleRestockTaskParams) error {
	_, err := q.db.Exec(ctx,
		`UPDATE restock_queue
		 SET attempts = attempts + 1, next_attempt_at = $1, last_error = $2, updated_at = now()
		 WHERE id = $3`,
		arg.NextAttemptAt, arg.LastError, arg.ID)
	return err
}

func (q *Queries) MarkRestockTaskFailed(ctx context.Context, id uuid.UUID, lastError string) error {
	_, err := q.db.Exec(ctx,
		`UPDATE restock_queue
		 SET status = 'failed', attempts = attempts + 1, last_error = $1, updated_at = now()
		 WHERE id = $2`,
		lastError, id)
	return err
}
