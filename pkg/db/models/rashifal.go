package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stallcraft/backend/pkg/enums"
)

// Rashifal is the daily horoscope text for one of the twelve signs.
// Only the update timestamp matters; entries are edited in place.
type Rashifal struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title       enums.ZodiacSign `gorm:"column:title;not null;uniqueIndex" json:"title"`
	Description string           `gorm:"column:description;not null" json:"description"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updatedOn"`
}
