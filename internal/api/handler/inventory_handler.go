package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/pos/internal/api/dto"
	"github.com/RoyceAzure/lab/pos/internal/errs"
	"github.com/RoyceAzure/lab/pos/internal/service"
	"github.com/RoyceAzure/lab/pos/internal/util"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	inventoryService service.IInventoryService
}

func NewInventoryHandler(inventoryService service.IInventoryService) *InventoryHandler {
	if inventoryService == nil {
		panic("inventoryService cannot be nil")
	}
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

// @Summary get inventory by product id
// @use get inventory record for a product
// @Tags inventory
// @Accept json
// @Produce json
// @Param product_id path string true "product id"
// @Success 200 {object} util.Response{data=dto.InventoryDTO} "success"
// @Failure 404 {object} util.ResponseError{data=string} "DataNotExistsCode"
// @Failure 500 {object} util.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /inventory/{product_id} [get]
func (h *InventoryHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "product_id"))
	if err != nil {
		util.ErrorJSON(w, int(errs.BadRequestCode), "invalid product id", errs.ErrStrMap[errs.BadRequestCode])
		return
	}

	inv, err := h.inventoryService.Get(r.Context(), productID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	util.SuccessJSON(w, convertInventoryModelToDTO(inv), nil)
}

// @Summary restock inventory
// @use add quantity to inventory and stamp last restocked time
// @Tags inventory
// @Accept json
// @Produce json
// @Param product_id path string true "product id"
// @Param restock body dto.RestockDTO true "restock quantity"
// @Success 200 {object} util.Response{data=dto.InventoryDTO} "success"
// @Failure 400 {object} util.ResponseError{data=string} "BadRequestCode"
// @Failure 404 {object} util.ResponseError{data=string} "DataNotExistsCode"
// @Failure 500 {object} util.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /inventory/{product_id}/restock [post]
func (h *InventoryHandler) Restock(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "product_id"))
	if err != nil {
		util.ErrorJSON(w, int(errs.BadRequestCode), "invalid product id", errs.ErrStrMap[errs.BadRequestCode])
		return
	}

	var restockDTO dto.RestockDTO
	if err := json.NewDecoder(r.Body).Decode(&restockDTO); err != nil {
		util.ErrorJSON(w, int(errs.BadRequestCode), nil, errs.ErrStrMap[errs.BadRequestCode])
		return
	}

	inv, err := h.inventoryService.Restock(r.Context(), productID, restockDTO.Quantity)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	util.SuccessJSON(w, convertInventoryModelToDTO(inv), nil)
}

// @Summary list low stock inventory
// @use list inventory records at or below reorder level
// @Tags inventory
// @Accept json
// @Produce json
// @Success 200 {object} util.Response{data=[]dto.InventoryDTO} "success"
// @Failure 500 {object} util.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	records, err := h.inventoryService.ListLowStock(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	invDTOs := make([]dto.InventoryDTO, 0, len(records))
	for i := range records {
		invDTOs = append(invDTOs, convertInventoryModelToDTO(&records[i]))
	}

	util.SuccessJSON(w, invDTOs, nil)
}
