package analytics

import (
	"fmt"
	"log"
	"sort"

	"tenderdesk/internal/model"

	"github.com/shopspring/decimal"
)

// Aggregate buckets tenders into Monday-anchored weeks and sums order
// volume, revenue and margin per bucket. The bucket is derived once per
// tender from its creation date; every order under the tender lands in that
// same bucket. The result is sorted ascending by week number.
//
// A tender with a missing (zero) creation date is a data-integrity defect:
// it is logged and skipped so a single bad record cannot take down the whole
// series. Tenders without orders contribute nothing. Negative margins are
// kept as-is.
func Aggregate(tenders []model.Tender, baseYear int) []model.WeeklyBucket {
	buckets := make(map[int]*model.WeeklyBucket)

	for _, tender := range tenders {
		if len(tender.Orders) == 0 {
			continue
		}
		if tender.CreationDate.IsZero() {
			log.Printf("analytics: tender %s has no creation date, skipping", tender.ID)
			continue
		}

		weekStart := WeekStart(tender.CreationDate)
		weekNumber := WeekNumber(weekStart, baseYear)

		bucket, ok := buckets[weekNumber]
		if !ok {
			bucket = &model.WeeklyBucket{
				Week:       fmt.Sprintf("W%d", weekNumber),
				WeekNumber: weekNumber,
				WeekStart:  weekStart,
				Revenue:    decimal.Zero,
				Margin:     decimal.Zero,
			}
			buckets[weekNumber] = bucket
		}

		for _, order := range tender.Orders {
			qty := decimal.NewFromInt(int64(order.Quantity))
			bucket.Volume += order.Quantity
			bucket.Revenue = bucket.Revenue.Add(order.Price.Mul(qty))
			bucket.Margin = bucket.Margin.Add(order.Price.Sub(order.Product.Cost).Mul(qty))
		}
	}

	series := make([]model.WeeklyBucket, 0, len(buckets))
	for _, bucket := range buckets {
		series = append(series, *bucket)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].WeekNumber < series[j].WeekNumber
	})

	return series
}
