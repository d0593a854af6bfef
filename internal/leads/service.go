package lead

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

// Service exposes lead capture and follow-up management.
type Service interface {
	SubmitContact(ctx context.Context, input ContactInput) (*models.Lead, error)
	List(ctx context.Context, page, limit int) ([]models.Lead, pagination.Pagination, string, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Lead, error)
	Create(ctx context.Context, input CreateLeadInput) (*models.Lead, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateLeadInput) (*models.Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContactInput is the public contact-form payload.
type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// CreateLeadInput is the admin-side payload; every field is required.
type CreateLeadInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
	Status  enums.LeadStatus
}

// UpdateLeadInput holds optional mutation values for a lead.
type UpdateLeadInput struct {
	Name    *string
	Email   *string
	Phone   *string
	Message *string
	Status  *enums.LeadStatus
}

type service struct {
	repo  *Repository
	cache *cache.Collection[models.Lead]
	logg  *logger.Logger
}

// NewService constructs a lead service with its snapshot cache.
func NewService(repo *Repository, cfg config.CacheConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("lead repository required")
	}
	col, err := cache.NewCollection("leads", repo.ListPage, cfg.TTL, cfg.DefaultBatchSize, logg)
	if err != nil {
		return nil, fmt.Errorf("lead cache: %w", err)
	}
	return &service{repo: repo, cache: col, logg: logg}, nil
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}

func (s *service) SubmitContact(ctx context.Context, input ContactInput) (*models.Lead, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	message := strings.TrimSpace(input.Message)

	if name == "" || email == "" || message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name, email and message are required")
	}
	if !validEmail(email) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid email address")
	}

	row := &models.Lead{
		Name:    name,
		Email:   email,
		Phone:   strings.TrimSpace(input.Phone),
		Message: message,
		Status:  enums.LeadStatusNew,
	}
	created, err := s.repo.Create(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storing lead")
	}

	s.refreshCache(ctx)
	return created, nil
}

func (s *service) List(ctx context.Context, page, limit int) ([]models.Lead, pagination.Pagination, string, error) {
	snap, err := s.cache.Get(ctx, false)
	if err != nil {
		return nil, pagination.Pagination{}, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading leads")
	}
	items, block := pagination.Paginate(snap.Data, page, limit)
	return items, block, snap.ETag, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading lead")
	}
	return found, nil
}

func (s *service) Create(ctx context.Context, input CreateLeadInput) (*models.Lead, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	phone := strings.TrimSpace(input.Phone)
	message := strings.TrimSpace(input.Message)

	if name == "" || email == "" || phone == "" || message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name, email, phone and message are required")
	}
	if !validEmail(email) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid email address")
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown lead status %q", input.Status))
	}

	row := &models.Lead{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Message: message,
		Status:  input.Status,
	}
	created, err := s.repo.Create(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating lead")
	}

	s.refreshCache(ctx)
	return created, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateLeadInput) (*models.Lead, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		existing.Name = name
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if !validEmail(email) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid email address")
		}
		existing.Email = email
	}
	if input.Phone != nil {
		existing.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Message != nil {
		existing.Message = *input.Message
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown lead status %q", *input.Status))
		}
		existing.Status = *input.Status
	}

	updated, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating lead")
	}

	s.refreshCache(ctx)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting lead")
	}
	s.refreshCache(ctx)
	return nil
}

func (s *service) refreshCache(ctx context.Context) {
	if err := s.cache.Refresh(ctx); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithCollection(ctx, "leads"), "cache refresh after write failed")
	}
}
