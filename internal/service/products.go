package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dienay/rangos-api/internal/entities"
	"github.com/Dienay/rangos-api/pkg/utils"

	"github.com/google/uuid"
)

const (
	topProductsCacheKey = "top-products"
	defaultTopLimit     = 10
)

type ProductRepo interface {
	CreateProduct(ctx context.Context, p entities.Product) error
	GetProductByID(ctx context.Context, id string) (entities.Product, error)
	ListProducts(ctx context.Context) ([]entities.Product, error)
}

type TopProductsRepo interface {
	TopProducts(ctx context.Context, limit int) ([]entities.TopProduct, error)
}

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

type productService struct {
	logger   *slog.Logger
	repo     ProductRepo
	orders   TopProductsRepo
	resolver Resolver
	cache    Cache // may be nil, every call site tolerates that
}

func NewProductService(logger *slog.Logger, repo ProductRepo, orders TopProductsRepo, resolver Resolver, cache Cache) *productService {
	return &productService{
		logger:   logger.With(slog.String("service", "product")),
		repo:     repo,
		orders:   orders,
		resolver: resolver,
		cache:    cache,
	}
}

type CreateProductInput struct {
	Name        string
	Description string
	Price       int64
	CoverPhoto  string
}

func (s *productService) CreateProduct(ctx context.Context, actorID string, input CreateProductInput) (entities.Product, error) {
	actor, err := s.resolver.Resolve(ctx, actorID)
	if err != nil {
		return entities.Product{}, err
	}
	if actor.Kind != entities.ActorEstablishment {
		return entities.Product{}, fmt.Errorf("%w: only establishments can create products", entities.ErrForbidden)
	}

	product := entities.Product{
		ID:              uuid.NewString(),
		EstablishmentID: actor.ID,
		Name:            input.Name,
		Description:     input.Description,
		Price:           input.Price,
		CoverPhoto:      input.CoverPhoto,
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return entities.Product{}, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("establishment_id", product.EstablishmentID),
	)
	return product, nil
}

func (s *productService) ListProducts(ctx context.Context) ([]entities.Product, error) {
	return s.repo.ListProducts(ctx)
}

// TopProducts ranks products by summed quantity sold, cache-aside. The
// cache holds the default-sized ranking under a fixed key: smaller limits
// are served by slicing it, larger ones skip the cache and hit the store
// directly. Cache trouble of any kind degrades to the direct aggregation
// and never fails the request; an empty order history yields an empty
// ranking.
func (s *productService) TopProducts(ctx context.Context, limit int) ([]entities.TopProduct, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}

	if s.cache != nil && limit <= defaultTopLimit {
		if data, ok := s.cache.Get(topProductsCacheKey); ok {
			var top []entities.TopProduct
			if err := json.Unmarshal(data, &top); err == nil {
				topProductsCache.WithLabelValues("hit").Inc()
				if len(top) > limit {
					top = top[:limit]
				}
				return top, nil
			}
			s.logger.WarnContext(ctx, "failed to decode cached top products, recomputing")
		}
	}
	topProductsCache.WithLabelValues("miss").Inc()

	fetch := limit
	if fetch < defaultTopLimit {
		fetch = defaultTopLimit
	}

	var top []entities.TopProduct
	cfg := utils.RetryConfig{
		InitialDelay: 100 * time.Millisecond,
		MaxAttempts:  3,
		Multiplier:   2,
	}
	err := utils.Retry(cfg, func() error {
		var err error
		top, err = s.orders.TopProducts(ctx, fetch)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute top products: %w", err)
	}
	if top == nil {
		top = []entities.TopProduct{}
	}

	if s.cache != nil && fetch == defaultTopLimit {
		if data, err := json.Marshal(top); err == nil {
			s.cache.Set(topProductsCacheKey, data)
		} else {
			s.logger.ErrorContext(ctx, "failed to encode top products for cache", slog.Any("error", err))
		}
	}

	if len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}

// WarmUp primes the top-products cache at boot. The cache path is
// best-effort, so a failed warm-up is logged and never blocks startup.
func (s *productService) WarmUp(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if _, err := s.TopProducts(ctx, defaultTopLimit); err != nil {
		s.logger.WarnContext(ctx, "failed to warm up top products cache", slog.Any("error", err))
	}
	return nil
}
