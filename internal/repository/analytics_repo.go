package repository

import (
	"context"
	"time"

	"tenderdesk/internal/model"

	"gorm.io/gorm"
)

// TenderFilter narrows the analytics query. Nil members mean "no constraint
// on this dimension". Month only applies together with Year, mirroring the
// dashboard's filter semantics.
type TenderFilter struct {
	Year   *int
	Month  *int
	Client string
}

type AnalyticsRepository interface {
	ListTendersWithOrders(ctx context.Context, filter TenderFilter) ([]model.Tender, error)
	CountTendersWithOrders(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	CountOrders(ctx context.Context) (int64, error)
	DistinctClients(ctx context.Context) ([]string, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// ListTendersWithOrders returns the tenders matching the filter, each with
// its orders and their products resolved, ordered by creation date. Only
// tenders having at least one order qualify; order-less tenders surface
// through the separate without-orders listing instead.
func (r *analyticsRepository) ListTendersWithOrders(ctx context.Context, filter TenderFilter) ([]model.Tender, error) {
	db := GetDB(ctx, r.db).Model(&model.Tender{}).
		Where("id IN (?)", GetDB(ctx, r.db).Model(&model.Order{}).Select("tender_id"))

	if from, to, ok := filter.dateRange(); ok {
		db = db.Where("creation_date >= ? AND creation_date < ?", from, to)
	}
	if filter.Client != "" {
		db = db.Where("client ILIKE ?", "%"+filter.Client+"%")
	}

	var tenders []model.Tender
	if err := db.
		Preload("Orders").
		Preload("Orders.Product").
		Order("creation_date ASC").
		Find(&tenders).Error; err != nil {
		return nil, err
	}
	return tenders, nil
}

// dateRange translates the optional year/month pair into a half-open
// interval. Year alone covers the whole year; year plus month narrows to
// that month. A month without a year carries no constraint.
func (f TenderFilter) dateRange() (from, to time.Time, ok bool) {
	if f.Year == nil {
		return time.Time{}, time.Time{}, false
	}
	if f.Month != nil {
		from = time.Date(*f.Year, time.Month(*f.Month), 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(0, 1, 0), true
	}
	from = time.Date(*f.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(1, 0, 0), true
}

func (r *analyticsRepository) CountTendersWithOrders(ctx context.Context) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&model.Tender{}).
		Where("id IN (?)", GetDB(ctx, r.db).Model(&model.Order{}).Select("tender_id")).
		Count(&total).Error
	return total, err
}

func (r *analyticsRepository) CountProducts(ctx context.Context) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&model.Product{}).Count(&total).Error
	return total, err
}

func (r *analyticsRepository) CountOrders(ctx context.Context) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&model.Order{}).Count(&total).Error
	return total, err
}

func (r *analyticsRepository) DistinctClients(ctx context.Context) ([]string, error) {
	var clients []string
	err := GetDB(ctx, r.db).Model(&model.Tender{}).
		Where("id IN (?)", GetDB(ctx, r.db).Model(&model.Order{}).Select("tender_id")).
		Distinct("client").
		Order("client ASC").
		Pluck("client", &clients).Error
	return clients, err
}
