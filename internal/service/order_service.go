package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/constants"
	"github.com/RoyceAzure/lab/pos/internal/errs"
	"github.com/RoyceAzure/lab/pos/internal/infra/producer"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/pos/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type CreateOrderItemParam struct {
	ProductID uuid.UUID
	Quantity  int32
}

type CreateOrderParam struct {
	UserID        *uuid.UUID
	CustomerName  *string
	CustomerEmail *string
	Notes         *string
	Items         []CreateOrderItemParam
}

type IOrderService interface {
	// CreateOrder 驗證購物車、計價、寫入訂單並保留庫存
	// 訂單寫入與庫存扣減在同一個交易內，任何一項失敗全部回滾
	//
	// 可能的錯誤:
	//   - ErrEmptyCart / ErrInvalidQuantity 400
	//   - 商品不存在 404
	//   - *errs.InsufficientInventoryError 庫存不足
	//   - 數據庫操作錯誤 500
	CreateOrder(ctx context.Context, param CreateOrderParam) (*model.OrderWithItems, error)

	// GetOrder 訂單與其項目，項目依建立時間排序
	GetOrder(ctx context.Context, orderID uuid.UUID) (*model.OrderWithItems, error)

	ListOrders(ctx context.Context, status *model.OrderStatus, limit int32) ([]model.OrderModel, error)

	// CompleteOrder 無條件轉為completed並記錄付款資訊
	// 不檢查當前狀態，重複完成的防護由上游呼叫端負責
	CompleteOrder(ctx context.Context, orderID uuid.UUID, paymentMethod string, paymentReference *string) (*model.OrderModel, error)

	// CancelOrder 取消訂單並寫入回補庫存任務
	// 回補任務與狀態變更在同一個交易內寫入，實際回補由worker非同步執行
	CancelOrder(ctx context.Context, orderID uuid.UUID) (*model.OrderModel, error)
}

// OrderService 訂單工作流程的協調者
// 只有OrderService會呼叫其他元件，CatalogService與InventoryService不會反向呼叫
type OrderService struct {
	dbDao            db.IStore
	catalogService   ICatalogService
	inventoryService IInventoryService
	calculator       *PricingCalculator
	eventProducer    producer.IOrderEventProducer
	logger           *zerolog.Logger
}

// NewOrderService eventProducer可為nil，nil時不發佈事件
func NewOrderService(
	dbDao db.IStore,
	catalogService ICatalogService,
	inventoryService IInventoryService,
	calculator *PricingCalculator,
	eventProducer producer.IOrderEventProducer,
	logger *zerolog.Logger,
) *OrderService {
	return &OrderService{
		dbDao:            dbDao,
		catalogService:   catalogService,
		inventoryService: inventoryService,
		calculator:       calculator,
		eventProducer:    eventProducer,
		logger:           logger,
	}
}

func (s *OrderService) CreateOrder(ctx context.Context, param CreateOrderParam) (*model.OrderWithItems, error) {
	if len(param.Items) == 0 {
		return nil, errs.ErrEmptyCart
	}
	if len(param.Items) > constants.MaxCartItems {
		return nil, errs.New(errs.BadRequestCode, fmt.Sprintf("cart exceeds %d items", constants.MaxCartItems))
	}

	//逐項檢查商品與庫存，快速失敗
	//庫存預檢只是提示，真正的保證在交易內的原子扣減
	products := make([]*model.ProductModel, 0, len(param.Items))
	for _, item := range param.Items {
		if item.Quantity <= 0 || item.Quantity > constants.MaxItemQuantity {
			return nil, errs.ErrInvalidQuantity
		}

		product, err := s.catalogService.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		products = append(products, product)

		inv, err := s.inventoryService.Get(ctx, item.ProductID)
		if err != nil {
			var appErr *errs.AppError
			if errors.As(err, &appErr) && appErr.Code == errs.DataNotExistsCode {
				return nil, &errs.InsufficientInventoryError{
					ProductID: item.ProductID,
					Requested: item.Quantity,
					Available: 0,
				}
			}
			return nil, err
		}
		if inv.Quantity < item.Quantity {
			return nil, &errs.InsufficientInventoryError{
				ProductID: item.ProductID,
				Requested: item.Quantity,
				Available: inv.Quantity,
			}
		}
	}

	lines := make([]LineAmount, 0, len(param.Items))
	for i, item := range param.Items {
		lines = append(lines, LineAmount{
			UnitPriceCents: products[i].PriceCents,
			Quantity:       item.Quantity,
		})
	}
	subtotal, tax, total := s.calculator.Totals(lines)

	//訂單寫入+項目寫入+庫存保留是一個交易，不會出現已成立卻沒扣庫存的訂單
	var order model.OrderModel
	var items []model.OrderItemModel
	err := s.dbDao.ExecTx(ctx, func(q db.Querier) error {
		var txErr error
		order, txErr = q.CreateOrder(ctx, db.CreateOrderParams{
			OrderNumber:   generateOrderNumber(),
			UserID:        param.UserID,
			CustomerName:  param.CustomerName,
			CustomerEmail: param.CustomerEmail,
			SubtotalCents: subtotal,
			TaxCents:      tax,
			TotalCents:    total,
			Notes:         param.Notes,
		})
		if txErr != nil {
			return errs.Wrap(errs.InternalErrorCode, "create order failed", txErr)
		}

		items = make([]model.OrderItemModel, 0, len(param.Items))
		for i, item := range param.Items {
			orderItem, txErr := q.CreateOrderItem(ctx, db.CreateOrderItemParams{
				OrderID:         order.ID,
				ProductID:       item.ProductID,
				ProductName:     products[i].Name,
				Quantity:        item.Quantity,
				UnitPriceCents:  products[i].PriceCents,
				TotalPriceCents: products[i].PriceCents * int64(item.Quantity),
			})
			if txErr != nil {
				return errs.Wrap(errs.InternalErrorCode, "create order item failed", txErr)
			}
			items = append(items, orderItem)

			if txErr = s.inventoryService.ReserveTx(ctx, q, item.ProductID, item.Quantity); txErr != nil {
				return txErr
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, producer.OrderEventCreated, &order)

	return &model.OrderWithItems{Order: order, Items: items}, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*model.OrderWithItems, error) {
	order, err := s.dbDao.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.New(errs.DataNotExistsCode, "order not found: "+orderID.String())
		}
		return nil, errs.Wrap(errs.InternalErrorCode, "get order failed", err)
	}

	items, err := s.dbDao.ListOrderItems(ctx, orderID)
	if err != nil {
		return nil, errs.Wrap(errs.InternalErrorCode, "list order items failed", err)
	}

	return &model.OrderWithItems{Order: order, Items: items}, nil
}

func (s *OrderService) ListOrders(ctx context.Context, status *model.OrderStatus, limit int32) ([]model.OrderModel, error) {
	if limit <= 0 {
		limit = int32(constants.DefaultPagingSize)
	}
	orders, err := s.dbDao.ListOrders(ctx, db.ListOrdersParams{Status: status, Limit: limit})
	if err != nil {
		return nil, errs.Wrap(errs.InternalErrorCode, "list orders failed", err)
	}
	return orders, nil
}

func (s *OrderService) CompleteOrder(ctx context.Context, orderID uuid.UUID, paymentMethod string, paymentReference *string) (*model.OrderModel, error) {
	if paymentMethod == "" {
		return nil, errs.New(errs.BadRequestCode, "payment method is required")
	}

	order, err := s.dbDao.CompleteOrder(ctx, db.CompleteOrderParams{
		ID:               orderID,
		PaymentMethod:    paymentMethod,
		PaymentReference: paymentReference,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.New(errs.DataNotExistsCode, "order not found: "+orderID.String())
		}
		return nil, errs.Wrap(errs.InternalErrorCode, "complete order failed", err)
	}

	s.publishEvent(ctx, producer.OrderEventCompleted, &order)

	return &order, nil
}

func (s *OrderService) CancelOrder(ctx context.Context, orderID uuid.UUID) (*model.OrderModel, error) {
	var order model.OrderModel
	err := s.dbDao.ExecTx(ctx, func(q db.Querier) error {
		_, txErr := q.GetOrder(ctx, orderID)
		if txErr != nil {
			if errors.Is(txErr, pgx.ErrNoRows) {
				return errs.New(errs.DataNotExistsCode, "order not found: "+orderID.String())
			}
			return errs.Wrap(errs.InternalErrorCode, "get order failed", txErr)
		}

		items, txErr := q.ListOrderItems(ctx, orderID)
		if txErr != nil {
			return errs.Wrap(errs.InternalErrorCode, "list order items failed", txErr)
		}

		//回補意圖跟取消一起落庫，商品已被刪除的項目跳過
		for _, item := range items {
			if item.ProductID == nil {
				continue
			}
			if _, txErr = q.CreateRestockTask(ctx, db.CreateRestockTaskParams{
				OrderID:   orderID,
				ProductID: *item.ProductID,
				Quantity:  item.Quantity,
			}); txErr != nil {
				return errs.Wrap(errs.InternalErrorCode, "enqueue restock task failed", txErr)
			}
		}

		order, txErr = q.CancelOrder(ctx, orderID)
		if txErr != nil {
			return errs.Wrap(errs.InternalErrorCode, "cancel order failed", txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, producer.OrderEventCancelled, &order)

	return &order, nil
}

func (s *OrderService) publishEvent(ctx context.Context, eventType producer.OrderEventType, order *model.OrderModel) {
	if s.eventProducer == nil {
		return
	}

	var err error
	switch eventType {
	case producer.OrderEventCreated:
		err = s.eventProducer.OrderCreated(ctx, order)
	case producer.OrderEventCompleted:
		err = s.eventProducer.OrderCompleted(ctx, order)
	case producer.OrderEventCancelled:
		err = s.eventProducer.OrderCancelled(ctx, order)
	}
	if err != nil {
		//事件發佈失敗不影響訂單流程
		s.logger.Warn().Str("order_id", order.ID.String()).Err(err).Msg("order event publish failed")
	}
}

// generateOrderNumber 時間秒數加亂數後綴
// 同一秒內的兩張訂單靠後綴避免碰撞
func generateOrderNumber() string {
	return fmt.Sprintf("%s-%d-%s", constants.OrderNumberPrefix, time.Now().Unix(), uuid.NewString()[:6])
}

var _ IOrderService = (*OrderService)(nil)
