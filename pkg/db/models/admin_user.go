package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminUser can sign into the dashboard. Passwords are argon2id hashes.
type AdminUser struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"createdOn"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedOn"`
}
