package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/pos/internal/model"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// IProductCacheRepository 商品讀取快取
// 商品被訂單引用後即不可變，快取只靠TTL過期，不做主動失效
type IProductCacheRepository interface {
	// GetProduct 取得快取商品，未命中回傳 ErrCacheMiss
	GetProduct(ctx context.Context, productID uuid.UUID) (*model.ProductModel, error)

	// SetProduct 寫入快取商品
	SetProduct(ctx context.Context, product *model.ProductModel) error
}

var ErrCacheMiss = errors.New("product cache miss")

const productCacheTTL = 5 * time.Minute

type ProductCacheRepo struct {
	productCache *redis.Client
}

func NewProductCacheRepo(productCache *redis.Client) *ProductCacheRepo {
	return &ProductCacheRepo{productCache: productCache}
}

func generateProductCacheKey(productID uuid.UUID) string {
	return fmt.Sprintf("product:%s", productID)
}

func (s *ProductCacheRepo) GetProduct(ctx context.Context, productID uuid.UUID) (*model.ProductModel, error) {
	key := generateProductCacheKey(productID)
	data, err := s.productCache.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var product model.ProductModel
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductCacheRepo) SetProduct(ctx context.Context, product *model.ProductModel) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return s.productCache.Set(ctx, generateProductCacheKey(product.ID), data, productCacheTTL).Err()
}

// 確保 ProductCacheRepo 實現了 IProductCacheRepository 介面
var _ IProductCacheRepository = (*ProductCacheRepo)(nil)
