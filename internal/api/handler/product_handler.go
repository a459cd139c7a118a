package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/pos/internal/api/dto"
	"github.com/RoyceAzure/lab/pos/internal/errs"
	"github.com/RoyceAzure/lab/pos/internal/model"
	"github.com/RoyceAzure/lab/pos/internal/service"
	"github.com/RoyceAzure/lab/pos/internal/util"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ProductHandler struct {
	catalogService service.ICatalogService
}

func NewProductHandler(catalogService service.ICatalogService) *ProductHandler {
	if catalogService == nil {
		panic("catalogService cannot be nil")
	}
	return &ProductHandler{
		catalogService: catalogService,
	}
}

// @Summary list active products
// @use list all active products, optionally filtered by category
// @Tags product
// @Accept json
// @Produce json
// @Param category_id query string false "category id"
// @Success 200 {object} util.Response{data=[]dto.ProductDTO} "success"
// @Failure 500 {object} util.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /products [get]
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var products []model.ProductModel
	var err error
	if categoryIDStr := r.URL.Query().Get("category_id"); categoryIDStr != "" {
		categoryID, parseErr := uuid.Parse(categoryIDStr)
		if parseErr != nil {
			util.ErrorJSON(w, int(errs.BadRequestCode), "invalid category_id", errs.ErrStrMap[errs.BadRequestCode])
			return
		}
		products, err = h.catalogService.ListProductsByCategory(ctx, categoryID)
	} else {
		products, err = h.catalogService.ListActiveProducts(ctx)
	}
	if err != nil {
		handleServiceError(w, err)
		return
	}

	util.SuccessJSON(w, convertProductModelsToDTO(products), nil)
}

// @Summary get product by id
// @use get product by id
// @Tags product
// @Accept json
// @Produce json
// @Param id path string true "product id"
// @Success 200 {object} util.Response{data=dto.ProductDTO} "success"
// @Failure 404 {object} util.ResponseError{data=string} "DataNotExistsCode"
// @Failure 500 {object} util.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		util.ErrorJSON(w, int(errs.BadRequestCode), "invalid product id", errs.ErrStrMap[errs.BadRequestCode])
		return
	}

	product, err := h.catalogService.GetProduct(r.Context(), productID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	util.SuccessJSON(w, convertProductModelToDTO(product), nil)
}

// @Summary search products
// @use search products by name/description/sku fuzzy match or barcode exact match
// @Tags product
// @Accept json
// @Produce json
// @Param q query string true "search keyword"
// @Success 200 {object} util.Response{data=[]dto.ProductDTO} "success"
// @Failure 500 {object} util.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /products/search [get]
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		util.ErrorJSON(w, int(errs.BadRequestCode), "query parameter q is required", errs.ErrStrMap[errs.BadRequestCode])
		return
	}

	products, err := h.catalogService.SearchProducts(r.Context(), query)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	util.SuccessJSON(w, convertProductModelsToDTO(products), nil)
}

// @Summary list categories
// @use list all categories ordered by sort order
// @Tags product
// @Accept json
// @Produce json
// @Success 200 {object} util.Response{data=[]dto.CategoryDTO} "success"
// @Failure 500 {object} util.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /categories [get]
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	categoryDTOs := make([]dto.CategoryDTO, 0, len(categories))
	for _, category := range categories {
		categoryDTOs = append(categoryDTOs, dto.CategoryDTO{
			ID:          category.ID.String(),
			Name:        category.Name,
			Description: category.Description,
			SortOrder:   category.SortOrder,
		})
	}

	util.SuccessJSON(w, categoryDTOs, nil)
}

func convertProductModelsToDTO(products []model.ProductModel) []dto.ProductDTO {
	productDTOs := make([]dto.ProductDTO, 0, len(products))
	for i := range products {
		productDTOs = append(productDTOs, convertProductModelToDTO(&products[i]))
	}
	return productDTOs
}
