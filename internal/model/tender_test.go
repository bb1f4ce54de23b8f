package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestOrderMargin(t *testing.T) {
	assert.True(t, OrderMargin(dec("100"), dec("80"), 10).Equal(dec("200")))
	assert.True(t, OrderMargin(dec("50"), dec("40"), 5).Equal(dec("50")))
	// Below-cost lines yield a negative margin, never clamped.
	assert.True(t, OrderMargin(dec("50"), dec("60"), 2).Equal(dec("-20")))
	assert.True(t, OrderMargin(dec("10"), dec("10"), 3).Equal(decimal.Zero))
}

func TestMarginPercentage(t *testing.T) {
	assert.True(t, MarginPercentage(dec("100"), dec("80")).Equal(dec("25")))
	assert.True(t, MarginPercentage(dec("50"), dec("40")).Equal(dec("25")))
	// Zero-cost products cannot be expressed as a markup percentage.
	assert.True(t, MarginPercentage(dec("10"), decimal.Zero).Equal(decimal.Zero))
}

func TestTenderTotalMargin(t *testing.T) {
	tender := Tender{
		Orders: []Order{
			{Quantity: 10, Price: dec("100"), Product: Product{Cost: dec("80")}},
			{Quantity: 5, Price: dec("50"), Product: Product{Cost: dec("40")}},
		},
	}
	assert.True(t, tender.TotalMargin().Equal(dec("250")))

	assert.True(t, Tender{}.TotalMargin().Equal(decimal.Zero))
}
