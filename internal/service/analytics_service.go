package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tenderdesk/internal/analytics"
	"tenderdesk/internal/model"
	"tenderdesk/internal/repository"
)

var ErrInvalidFilter = errors.New("invalid analytics filter")

// WeeklyBucketResponse is the JSON shape of one aggregated week. Monetary
// figures are plain numbers; rounding happens at display time only.
type WeeklyBucketResponse struct {
	Week       string    `json:"week"`
	WeekNumber int       `json:"weekNumber"`
	WeekStart  time.Time `json:"weekStart"`
	Volume     int       `json:"volume"`
	Revenue    float64   `json:"revenue"`
	Margin     float64   `json:"margin"`
}

type AnalyticsService interface {
	WeeklySeries(ctx context.Context, filter repository.TenderFilter) ([]WeeklyBucketResponse, error)
	Stats(ctx context.Context) (model.StatsResponse, error)
	Clients(ctx context.Context) ([]string, error)
}

type analyticsService struct {
	analyticsRepo repository.AnalyticsRepository
}

func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository) AnalyticsService {
	return &analyticsService{analyticsRepo: analyticsRepo}
}

// WeeklySeries fetches the tenders matching the filter and buckets their
// orders into Monday-anchored weeks. A period with no activity yields an
// empty list, not an error. Week numbering is anchored to the filter year
// when given, otherwise to the current year.
func (s *analyticsService) WeeklySeries(ctx context.Context, filter repository.TenderFilter) ([]WeeklyBucketResponse, error) {
	if filter.Month != nil && (*filter.Month < 1 || *filter.Month > 12) {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidFilter)
	}

	tenders, err := s.analyticsRepo.ListTendersWithOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tenders for analytics: %w", err)
	}

	baseYear := time.Now().Year()
	if filter.Year != nil {
		baseYear = *filter.Year
	}

	buckets := analytics.Aggregate(tenders, baseYear)

	res := make([]WeeklyBucketResponse, 0, len(buckets))
	for _, b := range buckets {
		res = append(res, WeeklyBucketResponse{
			Week:       b.Week,
			WeekNumber: b.WeekNumber,
			WeekStart:  b.WeekStart,
			Volume:     b.Volume,
			Revenue:    b.Revenue.InexactFloat64(),
			Margin:     b.Margin.InexactFloat64(),
		})
	}
	return res, nil
}

// Stats returns the dashboard headline numbers: entity counts plus the
// total margin across every tender that has orders.
func (s *analyticsService) Stats(ctx context.Context) (model.StatsResponse, error) {
	tendersCount, err := s.analyticsRepo.CountTendersWithOrders(ctx)
	if err != nil {
		return model.StatsResponse{}, fmt.Errorf("failed to count tenders: %w", err)
	}
	productsCount, err := s.analyticsRepo.CountProducts(ctx)
	if err != nil {
		return model.StatsResponse{}, fmt.Errorf("failed to count products: %w", err)
	}
	ordersCount, err := s.analyticsRepo.CountOrders(ctx)
	if err != nil {
		return model.StatsResponse{}, fmt.Errorf("failed to count orders: %w", err)
	}

	tenders, err := s.analyticsRepo.ListTendersWithOrders(ctx, repository.TenderFilter{})
	if err != nil {
		return model.StatsResponse{}, fmt.Errorf("failed to fetch tenders for stats: %w", err)
	}

	totalMargin := 0.0
	for _, t := range tenders {
		totalMargin += t.TotalMargin().InexactFloat64()
	}

	return model.StatsResponse{
		Tenders:     tendersCount,
		Products:    productsCount,
		Orders:      ordersCount,
		TotalMargin: totalMargin,
	}, nil
}

func (s *analyticsService) Clients(ctx context.Context) ([]string, error) {
	clients, err := s.analyticsRepo.DistinctClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clients: %w", err)
	}
	return clients, nil
}
