package handler

import (
	"errors"
	"net/http"

	"github.com/RoyceAzure/lab/pos/internal/api/dto"
	"github.com/RoyceAzure/lab/pos/internal/errs"
	"github.com/RoyceAzure/lab/pos/internal/model"
	"github.com/RoyceAzure/lab/pos/internal/util"
)

// handleServiceError 統一把service層錯誤轉成http回應
// 庫存不足回400並附明細，AppError依code轉status，其餘一律500
func handleServiceError(w http.ResponseWriter, err error) {
	var insufficientErr *errs.InsufficientInventoryError
	if errors.As(err, &insufficientErr) {
		util.ErrorJSON(w, int(errs.BadRequestCode), dto.InsufficientInventoryDTO{
			ProductID: insufficientErr.ProductID.String(),
			Requested: insufficientErr.Requested,
			Available: insufficientErr.Available,
		}, insufficientErr.Error())
		return
	}

	var appErr *errs.AppError
	if errors.As(err, &appErr) {
		util.ErrorJSON(w, int(appErr.Code), appErr.Msg, errs.ErrStrMap[appErr.Code])
		return
	}

	util.ErrorJSON(w, int(errs.InternalErrorCode), nil, errs.ErrStrMap[errs.InternalErrorCode])
}

func convertProductModelToDTO(m *model.ProductModel) dto.ProductDTO {
	var categoryID *string
	if m.CategoryID != nil {
		s := m.CategoryID.String()
		categoryID = &s
	}
	return dto.ProductDTO{
		ID:          m.ID.String(),
		Name:        m.Name,
		Description: m.Description,
		PriceCents:  m.PriceCents,
		Currency:    m.Currency,
		CategoryID:  categoryID,
		SKU:         m.SKU,
		Barcode:     m.Barcode,
		IsActive:    m.IsActive,
	}
}

func convertInventoryModelToDTO(m *model.InventoryModel) dto.InventoryDTO {
	return dto.InventoryDTO{
		ProductID:       m.ProductID.String(),
		Quantity:        m.Quantity,
		ReorderLevel:    m.ReorderLevel,
		ReorderQuantity: m.ReorderQuantity,
		LastRestockedAt: m.LastRestockedAt,
	}
}

func convertOrderModelToDTO(m *model.OrderModel, items []model.OrderItemModel) dto.OrderDTO {
	itemDTOs := make([]dto.OrderItemDTO, 0, len(items))
	for _, item := range items {
		var productID *string
		if item.ProductID != nil {
			s := item.ProductID.String()
			productID = &s
		}
		itemDTOs = append(itemDTOs, dto.OrderItemDTO{
			ID:              item.ID.String(),
			ProductID:       productID,
			ProductName:     item.ProductName,
			Quantity:        item.Quantity,
			UnitPriceCents:  item.UnitPriceCents,
			TotalPriceCents: item.TotalPriceCents,
		})
	}

	return dto.OrderDTO{
		ID:               m.ID.String(),
		OrderNumber:      m.OrderNumber,
		CustomerName:     m.CustomerName,
		CustomerEmail:    m.CustomerEmail,
		SubtotalCents:    m.SubtotalCents,
		TaxCents:         m.TaxCents,
		TotalCents:       m.TotalCents,
		Currency:         m.Currency,
		Status:           string(m.Status),
		PaymentMethod:    m.PaymentMethod,
		PaymentReference: m.PaymentReference,
		Notes:            m.Notes,
		CompletedAt:      m.CompletedAt,
		CreatedAt:        m.CreatedAt,
		Items:            itemDTOs,
	}
}
