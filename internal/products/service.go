package product

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stallcraft/backend/internal/cache"
	"github.com/stallcraft/backend/pkg/config"
	"github.com/stallcraft/backend/pkg/db"
	"github.com/stallcraft/backend/pkg/db/models"
	"github.com/stallcraft/backend/pkg/enums"
	pkgerrors "github.com/stallcraft/backend/pkg/errors"
	"github.com/stallcraft/backend/pkg/logger"
	"github.com/stallcraft/backend/pkg/pagination"
)

// Service exposes product management and read paths.
type Service interface {
	List(ctx context.Context, page, limit int) ([]models.Product, pagination.Pagination, string, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Size        string
	Benefits    string
	Category    enums.ProductCategory
	Image       string
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Size        *string
	Benefits    *string
	Category    *enums.ProductCategory
	Image       *string
}

type mediaCleaner interface {
	DeleteByURL(ctx context.Context, url string)
}

type service struct {
	repo  *Repository
	cache *cache.Collection[models.Product]
	media mediaCleaner
	logg  *logger.Logger
}

// NewService constructs a product service with its snapshot cache.
func NewService(repo *Repository, cfg config.CacheConfig, media mediaCleaner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	col, err := cache.NewCollection("products", repo.ListPage, cfg.TTL, cfg.DefaultBatchSize, logg)
	if err != nil {
		return nil, fmt.Errorf("product cache: %w", err)
	}
	return &service{repo: repo, cache: col, media: media, logg: logg}, nil
}

func (s *service) List(ctx context.Context, page, limit int) ([]models.Product, pagination.Pagination, string, error) {
	snap, err := s.cache.Get(ctx, false)
	if err != nil {
		return nil, pagination.Pagination{}, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading products")
	}
	items, block := pagination.Paginate(snap.Data, page, limit)
	return items, block, snap.ETag, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}
	return found, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown category %q", input.Category))
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}

	product := &models.Product{
		Name:        name,
		Description: input.Description,
		Price:       input.Price,
		Size:        input.Size,
		Benefits:    input.Benefits,
		Category:    input.Category,
		Image:       input.Image,
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating product")
	}

	s.refreshCache(ctx)
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldImage := existing.Image
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		existing.Name = name
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		existing.Price = *input.Price
	}
	if input.Size != nil {
		existing.Size = *input.Size
	}
	if input.Benefits != nil {
		existing.Benefits = *input.Benefits
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown category %q", *input.Category))
		}
		existing.Category = *input.Category
	}
	if input.Image != nil {
		existing.Image = *input.Image
	}

	updated, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating product")
	}

	if input.Image != nil && oldImage != "" && oldImage != updated.Image && s.media != nil {
		s.media.DeleteByURL(ctx, oldImage)
	}

	s.refreshCache(ctx)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting product")
	}

	if existing.Image != "" && s.media != nil {
		s.media.DeleteByURL(ctx, existing.Image)
	}

	s.refreshCache(ctx)
	return nil
}

func (s *service) refreshCache(ctx context.Context) {
	if err := s.cache.Refresh(ctx); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithCollection(ctx, "products"), "cache refresh after write failed")
	}
}
