package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/pos/internal/api/dto"
	"github.com/RoyceAzure/lab/pos/internal/errs"
	"github.com/RoyceAzure/lab/pos/internal/model"
	"github.com/RoyceAzure/lab/pos/internal/service"
	"github.com/RoyceAzure/lab/pos/internal/util"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{
		orderService: orderService,
	}
}

// @Summary create order
// @use create order with cart items, reserves inventory atomically
// @Tags order
// @Accept json
// @Produce json
// @Param order body dto.CreateOrderDTO true "order info"
// @Success 200 {object} util.Response{data=dto.OrderDTO} "success"
// @Failure 400 {object} util.ResponseError{data=dto.InsufficientInventoryDTO} "BadRequestCode"
// @Failure 404 {object} util.ResponseError{data=string} "DataNotExistsCode"
// @Failure 500 {object} util.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var createDTO dto.CreateOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&createDTO); err != nil {
		util.ErrorJSON(w, int(errs.BadRequestCode), nil, errs.ErrStrMap[errs.BadRequestCode])
		return
	}

	items := make([]service.CreateOrderItemParam, 0, len(createDTO.Items))
	for _, item := range createDTO.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			util.ErrorJSON(w, int(errs.BadRequestCode), "invalid product id: "+item.ProductID, errs.ErrStrMap[errs.BadRequestCode])
			return
		}
		items = append(items, service.CreateOrderItemParam{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	ctx := r.Context()

	param := service.CreateOrderParam{
		CustomerName:  createDTO.CustomerName,
		CustomerEmail: createDTO.CustomerEmail,
		Notes:         createDTO.Notes,
		Items:         items,
	}
	//有登入就記錄操作者
	if payload := util.GetTokenPayloadFromContext(ctx); payload != nil {
		param.UserID = &payload.UserID
	}

	result, err := h.orderService.CreateOrder(ctx, param)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	util.SuccessJSON(w, convertOrderModelToDTO(&result.Order, result.Items), nil)
}

// @Summary get order by id
// @use get order with its items
// @Tags order
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} util.Response{data=dto.OrderDTO} "success"
// @Failure 404 {object} util.ResponseError{data=string} "DataNotExistsCode"
// @Failure 500 {object} util.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		util.ErrorJSON(w, int(errs.BadRequestCode), "invalid order id", errs.ErrStrMap[errs.BadRequestCode])
		return
	}

	result, err := h.orderService.GetOrder(r.Context(), orderID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	util.SuccessJSON(w, convertOrderModelToDTO(&result.Order, result.Items), nil)
}

// @Summary list orders
// @use list orders, newest first, optionally filtered by status
// @Tags order
// @Accept json
// @Produce json
// @Param status query string false "order status (pending/completed/cancelled)"
// @Param limit query int false "max records"
// @Success 200 {object} util.Response{data=[]dto.OrderDTO} "success"
// @Failure 500 {object} util.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /orders [get]
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	var status *model.OrderStatus
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		s := model.OrderStatus(statusStr)
		if s != model.OrderStatusPending && s != model.OrderStatusCompleted && s != model.OrderStatusCancelled {
			util.ErrorJSON(w, int(errs.BadRequestCode), "invalid status: "+statusStr, errs.ErrStrMap[errs.BadRequestCode])
			return
		}
		status = &s
	}

	var limit int32
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		v, err := strconv.ParseInt(limitStr, 10, 32)
		if err != nil || v <= 0 {
			util.ErrorJSON(w, int(errs.BadRequestCode), "invalid limit: "+limitStr, errs.ErrStrMap[errs.BadRequestCode])
			return
		}
		limit = int32(v)
	}

	orders, err := h.orderService.ListOrders(r.Context(), status, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	orderDTOs := make([]dto.OrderDTO, 0, len(orders))
	for i := range orders {
		orderDTOs = append(orderDTOs, convertOrderModelToDTO(&orders[i], nil))
	}

	util.SuccessJSON(w, orderDTOs, nil)
}

// @Summary complete order
// @use mark order as completed with payment info
// @Tags order
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Param payment body dto.CompleteOrderDTO true "payment info"
// @Success 200 {object} util.Response{data=dto.OrderDTO} "success"
// @Failure 404 {object} util.ResponseError{data=string} "DataNotExistsCode"
// @Failure 500 {object} util.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /orders/{id}/complete [post]
func (h *OrderHandler) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		util.ErrorJSON(w, int(errs.BadRequestCode), "invalid order id", errs.ErrStrMap[errs.BadRequestCode])
		return
	}

	var completeDTO dto.CompleteOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&completeDTO); err != nil {
		util.ErrorJSON(w, int(errs.BadRequestCode), nil, errs.ErrStrMap[errs.BadRequestCode])
		return
	}

	order, err := h.orderService.CompleteOrder(r.Context(), orderID, completeDTO.PaymentMethod, completeDTO.PaymentReference)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	util.SuccessJSON(w, convertOrderModelToDTO(order, nil), nil)
}

// @Summary cancel order
// @use cancel order, inventory is restored asynchronously
// @Tags order
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} util.Response{data=dto.OrderDTO} "success"
// @Failure 404 {object} util.ResponseError{data=string} "DataNotExistsCode"
// @Failure 500 {object} util.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		util.ErrorJSON(w, int(errs.BadRequestCode), "invalid order id", errs.ErrStrMap[errs.BadRequestCode])
		return
	}

	order, err := h.orderService.CancelOrder(r.Context(), orderID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	util.SuccessJSON(w, convertOrderModelToDTO(order, nil), nil)
}
