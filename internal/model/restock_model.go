package model

import (
	"time"

	"github.com/google/uuid"
)

type RestockTaskStatus string

const (
	RestockTaskStatusPending RestockTaskStatus = "pending"
	RestockTaskStatusDone    RestockTaskStatus = "done"
	RestockTaskStatusFailed  RestockTaskStatus = "failed"
)

// RestockTaskModel 取消訂單時寫入的回補庫存意圖，由worker非同步執行
// 與訂單取消在同一個交易內寫入，確保意圖不會遺失
type RestockTaskModel struct {
	ID            uuid.UUID         `json:"id"`
	OrderID       uuid.UUID         `json:"order_id"`
	ProductID     uuid.UUID         `json:"product_id"`
	Quantity      int32             `json:"quantity"`
	Status        RestockTaskStatus `json:"status"`
	Attempts      int32             `json:"attempts"`
	NextAttemptAt time.Time         `json:"next_attempt_at"`
	LastError     *string           `json:"last_error"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
