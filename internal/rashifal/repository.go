package rashifal

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stallcraft/backend/pkg/db/models"
	"github.com/stallcraft/backend/pkg/enums"
)

// Repository defines persistence operations for daily horoscope entries.
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

// FindBySign loads the entry for one zodiac sign.
func (r *Repository) FindBySign(ctx context.Context, sign enums.ZodiacSign) (*models.Rashifal, error) {
	var row models.Rashifal
	if err := r.db.WithContext(ctx).First(&row, "title = ?", sign).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Upsert writes the description for a sign, creating the row when missing.
func (r *Repository) Upsert(ctx context.Context, sign enums.ZodiacSign, description string) (*models.Rashifal, error) {
	tx := r.db.WithContext(ctx)

	var row models.Rashifal
	err := tx.First(&row, "title = ?", sign).Error
	switch {
	case err == nil:
		row.Description = description
		if err := tx.Save(&row).Error; err != nil {
			return nil, err
		}
		return &row, nil
	case err == gorm.ErrRecordNotFound:
		row = models.Rashifal{ID: uuid.New(), Title: sign, Description: description}
		if err := tx.Create(&row).Error; err != nil {
			return nil, err
		}
		return &row, nil
	default:
		return nil, err
	}
}

// ListPage returns one page of entries; ordering by title keeps paging stable,
// canonical zodiac order is applied by the service.
func (r *Repository) ListPage(ctx context.Context, page, limit int) ([]models.Rashifal, error) {
	var rows []models.Rashifal
	err := r.db.WithContext(ctx).
		Order("title ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}
