package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/pos/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const (
	defaultBatchSize = 50
	baseBackoff      = 30 * time.Second
)

// RestockWorker 消化restock_queue，把取消訂單的庫存回補到帳上
// 任務落庫後由這裡重試，單次失敗不會弄丟回補意圖
type RestockWorker struct {
	dbDao       db.IStore
	logger      *zerolog.Logger
	interval    time.Duration
	maxAttempts int32
	stop        chan struct{}
	done        chan struct{}
}

func NewRestockWorker(dbDao db.IStore, logger *zerolog.Logger, interval time.Duration, maxAttempts int32) *RestockWorker {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &RestockWorker{
		dbDao:       dbDao,
		logger:      logger,
		interval:    interval,
		maxAttempts: maxAttempts,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Start 背景輪詢，呼叫端負責在關機時呼叫Stop
func (w *RestockWorker) Start() {
	go func() {
		defer close(w.done)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.stop:
				return
			case <-ticker.C:
				w.ProcessDueTasks(context.Background())
			}
		}
	}()
}

func (w *RestockWorker) Stop(ctx context.Context) error {
	close(w.stop)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("restock worker shutdown timeout: %v", ctx.Err())
	}
}

// ProcessDueTasks 處理一批到期任務
// 取清單只是候選，真正的認領在applyTask交易內的條件更新
func (w *RestockWorker) ProcessDueTasks(ctx context.Context) {
	tasks, err := w.dbDao.ListDueRestockTasks(ctx, time.Now(), defaultBatchSize)
	if err != nil {
		w.logger.Error().Err(err).Msg("list due restock tasks failed")
		return
	}

	for _, task := range tasks {
		if err := w.applyTask(ctx, task); err != nil {
			w.handleFailure(ctx, task, err)
		}
	}
}

// applyTask 先以pending->done的條件更新認領任務，認領成功才回補
// 回補失敗整個交易回滾，任務回到pending等下一輪
// 另一個worker已處理過的任務認領會改到0筆，直接跳過不重複回補
func (w *RestockWorker) applyTask(ctx context.Context, task model.RestockTaskModel) error {
	return w.dbDao.ExecTx(ctx, func(q db.Querier) error {
		if err := q.MarkRestockTaskDone(ctx, task.ID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return err
		}
		_, err := q.RestockInventory(ctx, task.ProductID, task.Quantity)
		return err
	})
}

func (w *RestockWorker) handleFailure(ctx context.Context, task model.RestockTaskModel, cause error) {
	if task.Attempts+1 >= w.maxAttempts {
		w.logger.Error().
			Str("task_id", task.ID.String()).
			Str("order_id", task.OrderID.String()).
			Str("product_id", task.ProductID.String()).
			Int32("attempts", task.Attempts+1).
			Err(cause).
			Msg("restock task exhausted retries")

		if err := w.dbDao.MarkRestockTaskFailed(ctx, task.ID, cause.Error()); err != nil {
			w.logger.Error().Str("task_id", task.ID.String()).Err(err).Msg("mark restock task failed error")
		}
		return
	}

	//指數退避
	backoff := baseBackoff * time.Duration(1<<task.Attempts)
	w.logger.Warn().
		Str("task_id", task.ID.String()).
		Str("product_id", task.ProductID.String()).
		Int32("attempts", task.Attempts+1).
		Dur("backoff", backoff).
		Err(cause).
		Msg("restock task failed, rescheduling")

	if err := w.dbDao.RescheduleRestockTask(ctx, db.RescheduleRestockTaskParams{
		ID:            task.ID,
		NextAttemptAt: time.Now().Add(backoff),
		LastError:     cause.Error(),
	}); err != nil {
		w.logger.Error().Str("task_id", task.ID.String()).Err(err).Msg("reschedule restock task error")
	}
}
