package models

import (
	"time"

	"github.com/google/uuid"
)

// Blog is a published article on the public site. TitleLower is the slug
// lookup key and must track Title on every write.
type Blog struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title      string    `gorm:"column:title;not null" json:"title"`
	TitleLower string    `gorm:"column:title_lower;not null;index" json:"titleLower"`
	Summary    string    `gorm:"column:summary;not null" json:"summary"`
	Image      string    `gorm:"column:image" json:"image"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"createdOn"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedOn"`
}
