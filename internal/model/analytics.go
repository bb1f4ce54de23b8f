package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeeklyBucket accumulates one Monday-anchored week of tender activity.
// Buckets are built fresh on every analytics request and never persisted.
type WeeklyBucket struct {
	Week       string          `json:"week"`
	WeekNumber int             `json:"weekNumber"`
	WeekStart  time.Time       `json:"weekStart"`
	Volume     int             `json:"volume"`
	Revenue    decimal.Decimal `json:"revenue"`
	Margin     decimal.Decimal `json:"margin"`
}

// StatsResponse carries the dashboard headline numbers.
type StatsResponse struct {
	Tenders     int64   `json:"tenders"`
	Products    int64   `json:"products"`
	Orders      int64   `json:"orders"`
	TotalMargin float64 `json:"totalMargin"`
}
