package testimonial

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/stallcraft/backend/internal/cache"
	"github.com/stallcraft/backend/pkg/config"
	"github.com/stallcraft/backend/pkg/db"
	"github.com/stallcraft/backend/pkg/db/models"
	"github.com/stallcraft/backend/pkg/enums"
	pkgerrors "github.com/stallcraft/backend/pkg/errors"
	"github.com/stallcraft/backend/pkg/logger"
	"github.com/stallcraft/backend/pkg/pagination"
)

// Service exposes testimonial management and read paths.
type Service interface {
	List(ctx context.Context, page, limit int, status *enums.TestimonialStatus) ([]models.Testimonial, pagination.Pagination, string, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Testimonial, error)
	Create(ctx context.Context, input CreateTestimonialInput) (*models.Testimonial, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateTestimonialInput) (*models.Testimonial, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateTestimonialInput holds the validated payload to create a testimonial.
type CreateTestimonialInput struct {
	Name        string
	Description string
	Media       string
	MediaType   enums.MediaKind
	Rating      int
	Spread      string
	Status      enums.TestimonialStatus
}

// UpdateTestimonialInput holds optional mutation values; media and media type
// are validated against the merged record, not the patch alone.
type UpdateTestimonialInput struct {
	Name        *string
	Description *string
	Media       *string
	MediaType   *enums.MediaKind
	Rating      *int
	Spread      *string
	Status      *enums.TestimonialStatus
}

type mediaCleaner interface {
	DeleteByURL(ctx context.Context, url string)
}

type service struct {
	repo  *Repository
	cache *cache.Collection[models.Testimonial]
	media mediaCleaner
	logg  *logger.Logger
}

// NewService constructs a testimonial service with its snapshot cache.
func NewService(repo *Repository, cfg config.CacheConfig, media mediaCleaner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("testimonial repository required")
	}
	col, err := cache.NewCollection("testimonials", repo.ListPage, cfg.TTL, cfg.TestimonialBatchSize, logg)
	if err != nil {
		return nil, fmt.Errorf("testimonial cache: %w", err)
	}
	return &service{repo: repo, cache: col, media: media, logg: logg}, nil
}

func (s *service) List(ctx context.Context, page, limit int, status *enums.TestimonialStatus) ([]models.Testimonial, pagination.Pagination, string, error) {
	snap, err := s.cache.Get(ctx, false)
	if err != nil {
		return nil, pagination.Pagination{}, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading testimonials")
	}

	rows := snap.Data
	if status != nil {
		filtered := make([]models.Testimonial, 0, len(rows))
		for _, row := range rows {
			if row.Status == *status {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	items, block := pagination.Paginate(rows, page, limit)
	return items, block, snap.ETag, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Testimonial, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "testimonial not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading testimonial")
	}
	found.MediaType = enums.NormalizeMediaKind(string(found.MediaType))
	return found, nil
}

func (s *service) Create(ctx context.Context, input CreateTestimonialInput) (*models.Testimonial, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Rating < 0 || input.Rating > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 0 and 5")
	}

	kind := enums.NormalizeMediaKind(string(input.MediaType))
	if kind == enums.MediaKindNoMedia && input.Media != "" {
		// kind omitted but media supplied: classify from the URL
		kind = KindFromURL(input.Media)
	}
	if err := validateMediaState(kind, input.Media, input.Description, input.Rating, input.Spread); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = enums.TestimonialStatusActive
	}

	row := &models.Testimonial{
		Name:        name,
		Description: input.Description,
		Media:       input.Media,
		MediaType:   kind,
		Rating:      input.Rating,
		Spread:      input.Spread,
		Status:      status,
	}
	created, err := s.repo.Create(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating testimonial")
	}

	s.refreshCache(ctx)
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateTestimonialInput) (*models.Testimonial, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldMedia := existing.Media
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
	if input.Rating != nil {
		if *input.Rating < 0 || *input.Rating > 5 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 0 and 5")
		}
		existing.Rating = *input.Rating
	}
	if input.Spread != nil {
		existing.Spread = *input.Spread
	}
	if input.Status != nil {
		existing.Status = *input.Status
	}

	// Merge media fields, then validate the resulting pair as a whole.
	if input.Media != nil {
		existing.Media = *input.Media
	}
	switch {
	case input.MediaType != nil:
		existing.MediaType = enums.NormalizeMediaKind(string(*input.MediaType))
	case input.Media != nil:
		existing.MediaType = KindFromURL(existing.Media)
	}
	if existing.MediaType == enums.MediaKindNoMedia {
		// the no-media kind always clears the stored url
		existing.Media = ""
	}
	if err := validateMediaState(existing.MediaType, existing.Media, existing.Description, existing.Rating, existing.Spread); err != nil {
		return nil, err
	}

	updated, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating testimonial")
	}

	if oldMedia != "" && oldMedia != updated.Media && s.media != nil {
		s.media.DeleteByURL(ctx, oldMedia)
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
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting testimonial")
	}

	if existing.Media != "" && s.media != nil {
		s.media.DeleteByURL(ctx, existing.Media)
	}

	s.refreshCache(ctx)
	return nil
}

func (s *service) refreshCache(ctx context.Context) {
	if err := s.cache.Refresh(ctx); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithCollection(ctx, "testimonials"), "cache refresh after write failed")
	}
}
