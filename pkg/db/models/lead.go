package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/stallcraft/backend/pkg/enums"
)

// Lead is a contact-form submission awaiting follow-up.
type Lead struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string           `gorm:"column:name;not null" json:"name"`
	Email     string           `gorm:"column:email;not null" json:"email"`
	Phone     string           `gorm:"column:phone" json:"phone"`
	Message   string           `gorm:"column:message;not null" json:"message"`
	Status    enums.LeadStatus `gorm:"column:status;not null" json:"status"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime" json:"createdOn"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updatedOn"`
}
