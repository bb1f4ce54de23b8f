package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog item with a unit acquisition cost. Orders reference
// it by SKU; products live independently of any tender.
type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SKU         string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"sku"`
	Title       string          `gorm:"type:varchar(255);not null" json:"title"`
	Description *string         `gorm:"type:text" json:"description"`
	Cost        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"cost"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
