package blog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/stallcraft/backend/internal/cache"
	"github.com/stallcraft/backend/pkg/config"
	"github.com/stallcraft/backend/pkg/db"
	"github.com/stallcraft/backend/pkg/db/models"
	pkgerrors "github.com/stallcraft/backend/pkg/errors"
	"github.com/stallcraft/backend/pkg/logger"
	"github.com/stallcraft/backend/pkg/pagination"
)

// Service exposes blog management and read paths.
type Service interface {
	List(ctx context.Context, page, limit int) ([]models.Blog, pagination.Pagination, string, error)
	GetBySlug(ctx context.Context, slug string) (*models.Blog, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Blog, error)
	Create(ctx context.Context, input CreateBlogInput) (*models.Blog, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateBlogInput) (*models.Blog, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateBlogInput holds the validated payload to create a blog.
type CreateBlogInput struct {
	Title   string
	Summary string
	Image   string
}

// UpdateBlogInput holds optional mutation values for a blog.
type UpdateBlogInput struct {
	Title   *string
	Summary *string
	Image   *string
}

type mediaCleaner interface {
	DeleteByURL(ctx context.Context, url string)
}

type service struct {
	repo  *Repository
	cache *cache.Collection[models.Blog]
	media mediaCleaner
	logg  *logger.Logger
}

// NewService constructs a blog service with its snapshot cache.
func NewService(repo *Repository, cfg config.CacheConfig, media mediaCleaner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("blog repository required")
	}
	col, err := cache.NewCollection("blogs", repo.ListPage, cfg.TTL, cfg.BlogBatchSize, logg)
	if err != nil {
		return nil, fmt.Errorf("blog cache: %w", err)
	}
	return &service{repo: repo, cache: col, media: media, logg: logg}, nil
}

// NormalizeTitle lowercases the title, collapses runs of whitespace, and trims.
func NormalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}

// SlugToTitleLower converts a URL slug into the normalized title it targets.
func SlugToTitleLower(slug string) string {
	return NormalizeTitle(strings.ReplaceAll(slug, "-", " "))
}

func (s *service) List(ctx context.Context, page, limit int) ([]models.Blog, pagination.Pagination, string, error) {
	snap, err := s.cache.Get(ctx, false)
	if err != nil {
		return nil, pagination.Pagination{}, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading blogs")
	}
	items, block := pagination.Paginate(snap.Data, page, limit)
	return items, block, snap.ETag, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	titleLower := SlugToTitleLower(slug)
	if titleLower == "" {
		return nil, pkgerrors.New(pkgerrors.CodeBadRequest, "slug is required")
	}

	snap, err := s.cache.Get(ctx, false)
	if err == nil {
		for i := range snap.Data {
			if snap.Data[i].TitleLower == titleLower {
				return &snap.Data[i], nil
			}
		}
	}

	found, err := s.repo.FindByTitleLower(ctx, titleLower)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "blog not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading blog by slug")
	}
	return found, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "blog not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading blog")
	}
	return found, nil
}

func (s *service) Create(ctx context.Context, input CreateBlogInput) (*models.Blog, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}

	blog := &models.Blog{
		Title:      title,
		TitleLower: NormalizeTitle(title),
		Summary:    input.Summary,
		Image:      input.Image,
	}
	created, err := s.repo.Create(ctx, blog)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating blog")
	}

	s.refreshCache(ctx)
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateBlogInput) (*models.Blog, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldImage := existing.Image
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		existing.Title = title
		existing.TitleLower = NormalizeTitle(title)
	}
	if input.Summary != nil {
		existing.Summary = *input.Summary
	}
	if input.Image != nil {
		existing.Image = *input.Image
	}

	updated, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating blog")
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
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting blog")
	}

	if existing.Image != "" && s.media != nil {
		s.media.DeleteByURL(ctx, existing.Image)
	}

	s.refreshCache(ctx)
	return nil
}

func (s *service) refreshCache(ctx context.Context) {
	if err := s.cache.Refresh(ctx); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithCollection(ctx, "blogs"), "cache refresh after write failed")
	}
}
