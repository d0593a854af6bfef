package lead

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stallcraft/backend/pkg/db/models"
)

// Repository defines persistence operations for contact-form leads.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new lead row, assigning an ID when missing.
func (r *Repository) Create(ctx context.Context, row *models.Lead) (*models.Lead, error) {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Save updates an existing lead row.
func (r *Repository) Save(ctx context.Context, row *models.Lead) (*models.Lead, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Delete removes a lead by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Lead{}).Error
}

// FindByID loads a single lead.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Lead, error) {
	var row models.Lead
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ListPage returns one page of leads ordered newest-first.
func (r *Repository) ListPage(ctx context.Context, page, limit int) ([]models.Lead, error) {
	var rows []models.Lead
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}
