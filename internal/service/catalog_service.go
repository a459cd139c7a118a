package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/pos/internal/constants"
	"github.com/RoyceAzure/lab/pos/internal/errs"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/pos/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/pos/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

type ICatalogService interface {
	// GetProduct 根據ID查詢商品
	//
	// 可能的錯誤:
	//   - 數據不存在 404
	//   - 數據庫操作錯誤 500
	GetProduct(ctx context.Context, id uuid.UUID) (*model.ProductModel, error)
	ListActiveProducts(ctx context.Context) ([]model.ProductModel, error)
	ListProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.ProductModel, error)
	ListCategories(ctx context.Context) ([]model.CategoryModel, error)
	// SearchProducts 名稱/描述/sku模糊搜尋，條碼完全比對，最多回傳50筆
	SearchProducts(ctx context.Context, query string) ([]model.ProductModel, error)
}

// CatalogService 商品目錄，只有讀取，沒有任何寫入操作
type CatalogService struct {
	dbDao        db.IStore
	productCache redis_repo.IProductCacheRepository
	logger       *zerolog.Logger
}

// NewCatalogService productCache可為nil，nil時直接查db
func NewCatalogService(dbDao db.IStore, productCache redis_repo.IProductCacheRepository, logger *zerolog.Logger) *CatalogService {
	return &CatalogService{
		dbDao:        dbDao,
		productCache: productCache,
		logger:       logger,
	}
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*model.ProductModel, error) {
	if s.productCache != nil {
		if cached, err := s.productCache.GetProduct(ctx, id); err == nil {
			return cached, nil
		} else if !errors.Is(err, redis_repo.ErrCacheMiss) {
			//快取故障不影響讀取，降級查db
			s.logger.Warn().Str("product_id", id.String()).Err(err).Msg("product cache read failed")
		}
	}

	product, err := s.dbDao.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.New(errs.DataNotExistsCode, "product not found: "+id.String())
		}
		return nil, errs.Wrap(errs.InternalErrorCode, "get product failed", err)
	}

	if s.productCache != nil {
		if err := s.productCache.SetProduct(ctx, &product); err != nil {
			s.logger.Warn().Str("product_id", id.String()).Err(err).Msg("product cache write failed")
		}
	}

	return &product, nil
}

func (s *CatalogService) ListActiveProducts(ctx context.Context) ([]model.ProductModel, error) {
	products, err := s.dbDao.ListActiveProducts(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.InternalErrorCode, "list products failed", err)
	}
	return products, nil
}

func (s *CatalogService) ListProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.ProductModel, error) {
	products, err := s.dbDao.ListProductsByCategory(ctx, categoryID)
	if err != nil {
		return nil, errs.Wrap(errs.InternalErrorCode, "list products by category failed", err)
	}
	return products, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]model.CategoryModel, error) {
	categories, err := s.dbDao.ListCategories(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.InternalErrorCode, "list categories failed", err)
	}
	return categories, nil
}

func (s *CatalogService) SearchProducts(ctx context.Context, query string) ([]model.ProductModel, error) {
	products, err := s.dbDao.SearchProducts(ctx, query, constants.ProductSearchLimit)
	if err != nil {
		return nil, errs.Wrap(errs.InternalErrorCode, "search products failed", err)
	}
	return products, nil
}

var _ ICatalogService = (*CatalogService)(nil)
