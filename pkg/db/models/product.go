package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stallcraft/backend/pkg/enums"
)

// Product is a storefront listing (crystals, malas, candles and the like).
type Product struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string                `gorm:"column:name;not null" json:"name"`
	Description string                `gorm:"column:description;not null" json:"description"`
	Price       decimal.Decimal       `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Size        string                `gorm:"column:size" json:"size"`
	Benefits    string                `gorm:"column:benefits" json:"benefits"`
	Category    enums.ProductCategory `gorm:"column:category;not null" json:"category"`
	Image       string                `gorm:"column:image" json:"image"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime" json:"createdOn"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updatedOn"`
}
