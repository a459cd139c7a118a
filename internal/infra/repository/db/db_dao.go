package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX pool與tx共用的最小介面
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type IStore interface {
	Querier
	ExecTx(ctx context.Context, fn func(Querier) error) error
}

// Store 結構用來管理數據庫連接和交易
type Store struct {
	*Queries
	db *pgxpool.Pool
}

// NewStore 創建一個新的 Store
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{
		db:      db,
		Queries: New(db),
	}
}

// ExecTx 執行一個交易
// 庫存保留(SELECT ... FOR UPDATE + 扣減)必須跟訂單寫入放在同一個fn內執行
func (s *Store) ExecTx(ctx context.Context, fn func(Querier) error) error {
	opts := pgx.TxOptions{
		IsoLevel:       pgx.ReadCommitted, // 最常用的隔離級別
		AccessMode:     pgx.ReadWrite,     // 需要寫入時使用
		DeferrableMode: pgx.NotDeferrable, // 通常使用立即檢查
	}

	tx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	q := New(tx)
	err = fn(q)

	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return rbErr
		}
		return err
	}

	return tx.Commit(ctx)
}

var _ IStore = (*Store)(nil)
