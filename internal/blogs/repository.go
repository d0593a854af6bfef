package blog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stallcraft/backend/pkg/db/models"
)

// Repository defines persistence operations for blog articles.
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

// Create inserts a new blog row, assigning an ID when missing.
func (r *Repository) Create(ctx context.Context, blog *models.Blog) (*models.Blog, error) {
	if blog.ID == uuid.Nil {
		blog.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(blog).Error; err != nil {
		return nil, err
	}
	return blog, nil
}

// Save updates an existing blog row.
func (r *Repository) Save(ctx context.Context, blog *models.Blog) (*models.Blog, error) {
	if err := r.db.WithContext(ctx).Save(blog).Error; err != nil {
		return nil, err
	}
	return blog, nil
}

// Delete removes a blog by ID.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Blog{}).Error
}

// FindByID loads a single blog.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.WithContext(ctx).First(&blog, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

// FindByTitleLower loads a blog by its normalized title.
func (r *Repository) FindByTitleLower(ctx context.Context, titleLower string) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.WithContext(ctx).First(&blog, "title_lower = ?", titleLower).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

// ListPage returns one page of blogs ordered newest-first.
func (r *Repository) ListPage(ctx context.Context, page, limit int) ([]models.Blog, error) {
	var rows []models.Blog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}
