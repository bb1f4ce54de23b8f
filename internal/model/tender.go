package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tender represents an awarded bid. The ID is assigned externally by the
// bidding platform, so it is stored as-is instead of being generated.
type Tender struct {
	ID              string     `gorm:"type:varchar(100);primaryKey" json:"id"`
	Client          string     `gorm:"type:varchar(255);not null;index" json:"client"`
	CreationDate    time.Time  `gorm:"not null;index" json:"creationDate"`
	DeliveryDate    *time.Time `json:"deliveryDate"`
	DeliveryAddress *string    `gorm:"type:text" json:"deliveryAddress"`
	ContactPhone    *string    `gorm:"type:varchar(50)" json:"contactPhone"`
	ContactEmail    *string    `gorm:"type:varchar(255)" json:"contactEmail"`
	Orders          []Order    `gorm:"foreignKey:TenderID;constraint:OnDelete:CASCADE" json:"orders"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Order is a line item committing a product/quantity/price under a tender.
// Orders reference products by SKU, the catalog's business key.
type Order struct {
	ID          string          `gorm:"type:varchar(120);primaryKey" json:"id"`
	TenderID    string          `gorm:"type:varchar(100);not null;index" json:"tender_id"`
	ProductID   string          `gorm:"type:varchar(100);not null;index" json:"product_id"`
	Product     Product         `gorm:"foreignKey:ProductID;references:SKU" json:"product"`
	Quantity    int             `gorm:"type:int;not null" json:"quantity"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Observation *string         `gorm:"type:text" json:"observation"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Margin computes (price - cost) * quantity for a single order line.
// It is derived on every read so it can never drift from its inputs;
// the order's Product must be populated.
func (o Order) Margin() decimal.Decimal {
	return OrderMargin(o.Price, o.Product.Cost, o.Quantity)
}

// MarginPercentage computes (price - cost) / cost * 100. A zero-cost
// product yields zero rather than a division error.
func (o Order) MarginPercentage() decimal.Decimal {
	return MarginPercentage(o.Price, o.Product.Cost)
}

// TotalMargin sums the margins of all loaded orders. Negative margins are
// kept as-is.
func (t Tender) TotalMargin() decimal.Decimal {
	total := decimal.Zero
	for _, o := range t.Orders {
		total = total.Add(o.Margin())
	}
	return total
}

// OrderMargin is the margin of a single line: (price - cost) * quantity.
func OrderMargin(price, cost decimal.Decimal, quantity int) decimal.Decimal {
	return price.Sub(cost).Mul(decimal.NewFromInt(int64(quantity)))
}

// MarginPercentage expresses the markup over cost as a percentage.
func MarginPercentage(price, cost decimal.Decimal) decimal.Decimal {
	if cost.IsZero() {
		return decimal.Zero
	}
	return price.Sub(cost).Div(cost).Mul(decimal.NewFromInt(100))
}
