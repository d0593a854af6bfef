package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stallcraft/backend/pkg/enums"
)

// Testimonial is a client review. Which fields are required depends on
// MediaType; see internal/testimonials.
type Testimonial struct {
	ID          uuid.UUID               `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string                  `gorm:"column:name;not null" json:"name"`
	Description string                  `gorm:"column:description" json:"description"`
	Media       string                  `gorm:"column:media" json:"media"`
	MediaType   enums.MediaKind         `gorm:"column:media_type;not null" json:"mediaType"`
	Rating      int                     `gorm:"column:rating;not null;default:0" json:"rating"`
	Spread      string                  `gorm:"column:spread" json:"spread"`
	Status      enums.TestimonialStatus `gorm:"column:status;not null" json:"status"`
	CreatedAt   time.Time               `gorm:"column:created_at;autoCreateTime" json:"createdOn"`
	UpdatedAt   time.Time               `gorm:"column:updated_at;autoUpdateTime" json:"updatedOn"`
}
