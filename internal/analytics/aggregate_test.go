package analytics

import (
	"testing"
	"time"

	"tenderdesk/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func order(sku string, qty int, price, cost string) model.Order {
	return model.Order{
		ProductID: sku,
		Product:   model.Product{SKU: sku, Cost: dec(cost)},
		Quantity:  qty,
		Price:     dec(price),
	}
}

func TestAggregateSingleTender(t *testing.T) {
	tenders := []model.Tender{
		{
			ID:           "LIC-001",
			Client:       "Hospital Central",
			CreationDate: date(2024, time.March, 4),
			Orders: []model.Order{
				order("SKU-1", 10, "100", "80"),
				order("SKU-2", 5, "50", "40"),
			},
		},
	}

	series := Aggregate(tenders, 2024)

	require.Len(t, series, 1)
	bucket := series[0]
	assert.Equal(t, "W9", bucket.Week)
	assert.Equal(t, 9, bucket.WeekNumber)
	assert.Equal(t, date(2024, time.March, 4), bucket.WeekStart)
	assert.Equal(t, 15, bucket.Volume)
	assert.True(t, bucket.Revenue.Equal(dec("1250")), "revenue = %s", bucket.Revenue)
	assert.True(t, bucket.Margin.Equal(dec("250")), "margin = %s", bucket.Margin)
}

func TestAggregateGroupsByTenderDate(t *testing.T) {
	// Two tenders in the same week share one bucket; a third a week later
	// opens a second. Sorting is ascending by week number.
	tenders := []model.Tender{
		{ID: "A", CreationDate: date(2024, time.March, 11), Orders: []model.Order{order("S", 1, "10", "5")}},
		{ID: "B", CreationDate: date(2024, time.March, 5), Orders: []model.Order{order("S", 2, "10", "5")}},
		{ID: "C", CreationDate: date(2024, time.March, 7), Orders: []model.Order{order("S", 3, "10", "5")}},
	}

	series := Aggregate(tenders, 2024)

	require.Len(t, series, 2)
	assert.Equal(t, 9, series[0].WeekNumber)
	assert.Equal(t, 5, series[0].Volume)
	assert.Equal(t, 10, series[1].WeekNumber)
	assert.Equal(t, 1, series[1].Volume)
}

func TestAggregateOrderIndependent(t *testing.T) {
	tenders := []model.Tender{
		{ID: "A", CreationDate: date(2024, time.February, 5), Orders: []model.Order{order("S1", 4, "25", "10")}},
		{ID: "B", CreationDate: date(2024, time.February, 12), Orders: []model.Order{order("S2", 2, "90", "70")}},
		{ID: "C", CreationDate: date(2024, time.February, 6), Orders: []model.Order{order("S3", 1, "15", "12")}},
	}
	reversed := []model.Tender{tenders[2], tenders[1], tenders[0]}

	assert.Equal(t, Aggregate(tenders, 2024), Aggregate(reversed, 2024))
}

func TestAggregateAdditive(t *testing.T) {
	a := []model.Tender{
		{ID: "A", CreationDate: date(2024, time.April, 1), Orders: []model.Order{order("S", 3, "20", "10")}},
	}
	b := []model.Tender{
		{ID: "B", CreationDate: date(2024, time.April, 2), Orders: []model.Order{order("S", 7, "30", "25")}},
	}

	merged := Aggregate(append(append([]model.Tender{}, a...), b...), 2024)
	sepA := Aggregate(a, 2024)
	sepB := Aggregate(b, 2024)

	require.Len(t, merged, 1)
	require.Len(t, sepA, 1)
	require.Len(t, sepB, 1)
	assert.Equal(t, sepA[0].Volume+sepB[0].Volume, merged[0].Volume)
	assert.True(t, merged[0].Revenue.Equal(sepA[0].Revenue.Add(sepB[0].Revenue)))
	assert.True(t, merged[0].Margin.Equal(sepA[0].Margin.Add(sepB[0].Margin)))
}

func TestAggregateKeepsNegativeMargin(t *testing.T) {
	// Below-cost lines are rejected at creation time, but imported legacy
	// data can still carry them; the engine must not clamp.
	tenders := []model.Tender{
		{ID: "A", CreationDate: date(2024, time.June, 3), Orders: []model.Order{order("S", 2, "50", "60")}},
	}

	series := Aggregate(tenders, 2024)

	require.Len(t, series, 1)
	assert.True(t, series[0].Margin.Equal(dec("-20")), "margin = %s", series[0].Margin)
}

func TestAggregateSkipsBadRecords(t *testing.T) {
	tenders := []model.Tender{
		{ID: "no-orders", CreationDate: date(2024, time.May, 6)},
		{ID: "no-date", Orders: []model.Order{order("S", 1, "10", "5")}},
		{ID: "ok", CreationDate: date(2024, time.May, 7), Orders: []model.Order{order("S", 1, "10", "5")}},
	}

	series := Aggregate(tenders, 2024)

	require.Len(t, series, 1)
	assert.Equal(t, 1, series[0].Volume)
}

func TestAggregateEmptyInput(t *testing.T) {
	assert.Empty(t, Aggregate(nil, 2024))
}
