package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/pos/internal/errs"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/pos/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type IInventoryService interface {
	// Get 取得商品庫存
	//
	// 可能的錯誤:
	//   - 數據不存在 404
	//   - 數據庫操作錯誤 500
	Get(ctx context.Context, productID uuid.UUID) (*model.InventoryModel, error)

	// CheckAvailable 庫存是否足夠，僅供快速失敗提示使用
	// 真正的保證在Reserve的原子扣減，不可只依賴此檢查
	CheckAvailable(ctx context.Context, productID uuid.UUID, quantity int32) (bool, error)

	// Reserve 原子性保留庫存(check-then-decrement在同一個row lock下)
	//
	// 可能的錯誤:
	//   - *errs.InsufficientInventoryError 庫存不足(帶實際可用數量)
	//   - 數據不存在 404
	Reserve(ctx context.Context, productID uuid.UUID, quantity int32) error

	// ReserveTx 在呼叫端的交易內保留庫存，訂單建立流程使用
	ReserveTx(ctx context.Context, q db.Querier, productID uuid.UUID, quantity int32) error

	// Restock 回補庫存並更新最後進貨時間，未上架商品也允許回補
	Restock(ctx context.Context, productID uuid.UUID, quantity int32) (*model.InventoryModel, error)

	// ListLowStock 低於補貨水位的庫存，依數量遞增排序
	ListLowStock(ctx context.Context) ([]model.InventoryModel, error)
}

// InventoryService 庫存帳本，商品庫存的唯一真相來源
type InventoryService struct {
	dbDao db.IStore
}

func NewInventoryService(dbDao db.IStore) *InventoryService {
	return &InventoryService{dbDao: dbDao}
}

func (s *InventoryService) Get(ctx context.Context, productID uuid.UUID) (*model.InventoryModel, error) {
	inv, err := s.dbDao.GetInventory(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.New(errs.DataNotExistsCode, "inventory record not found: "+productID.String())
		}
		return nil, errs.Wrap(errs.InternalErrorCode, "get inventory failed", err)
	}
	return &inv, nil
}

func (s *InventoryService) CheckAvailable(ctx context.Context, productID uuid.UUID, quantity int32) (bool, error) {
	inv, err := s.dbDao.GetInventory(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, errs.Wrap(errs.InternalErrorCode, "check availability failed", err)
	}
	return inv.Quantity >= quantity, nil
}

func (s *InventoryService) Reserve(ctx context.Context, productID uuid.UUID, quantity int32) error {
	if quantity <= 0 {
		return errs.ErrInvalidQuantity
	}
	return s.dbDao.ExecTx(ctx, func(q db.Querier) error {
		return s.ReserveTx(ctx, q, productID, quantity)
	})
}

// ReserveTx 鎖定庫存row後檢查並扣減，兩個併發保留會在row lock上序列化
// 要嘛扣掉完整數量，要嘛什麼都不改
func (s *InventoryService) ReserveTx(ctx context.Context, q db.Querier, productID uuid.UUID, quantity int32) error {
	inv, err := q.GetInventoryForUpdate(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.New(errs.DataNotExistsCode, "inventory record not found: "+productID.String())
		}
		return errs.Wrap(errs.InternalErrorCode, "lock inventory failed", err)
	}

	if inv.Quantity < quantity {
		return &errs.InsufficientInventoryError{
			ProductID: productID,
			Requested: quantity,
			Available: inv.Quantity,
		}
	}

	if err := q.DecrementInventory(ctx, productID, quantity); err != nil {
		return errs.Wrap(errs.InternalErrorCode, "decrement inventory failed", err)
	}
	return nil
}

func (s *InventoryService) Restock(ctx context.Context, productID uuid.UUID, quantity int32) (*model.InventoryModel, error) {
	if quantity <= 0 {
		return nil, errs.ErrInvalidQuantity
	}

	inv, err := s.dbDao.RestockInventory(ctx, productID, quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.New(errs.DataNotExistsCode, "inventory record not found: "+productID.String())
		}
		return nil, errs.Wrap(errs.InternalErrorCode, "restock inventory failed", err)
	}
	return &inv, nil
}

func (s *InventoryService) ListLowStock(ctx context.Context) ([]model.InventoryModel, error) {
	records, err := s.dbDao.ListLowStockInventory(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.InternalErrorCode, "list low stock failed", err)
	}
	return records, nil
}

var _ IInventoryService = (*InventoryService)(nil)
