package repository

import (
	"context"

	"tenderdesk/internal/model"

	"gorm.io/gorm"
)

type TenderRepository interface {
	Create(ctx context.Context, tender *model.Tender) error
	FindByID(ctx context.Context, id string) (*model.Tender, error)
	ListWithOrders(ctx context.Context, page, limit int) ([]model.Tender, int64, error)
	ListWithoutOrders(ctx context.Context) ([]model.Tender, error)
}

type tenderRepository struct {
	db *gorm.DB
}

func NewTenderRepository(db *gorm.DB) TenderRepository {
	return &tenderRepository{db: db}
}

func (r *tenderRepository) Create(ctx context.Context, tender *model.Tender) error {
	// Nested orders are created in the same statement via the association.
	return GetDB(ctx, r.db).Create(tender).Error
}

func (r *tenderRepository) FindByID(ctx context.Context, id string) (*model.Tender, error) {
	var tender model.Tender
	if err := GetDB(ctx, r.db).
		Preload("Orders", func(db *gorm.DB) *gorm.DB {
			return db.Order("orders.created_at ASC")
		}).
		Preload("Orders.Product").
		First(&tender, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tender, nil
}

func (r *tenderRepository) ListWithOrders(ctx context.Context, page, limit int) ([]model.Tender, int64, error) {
	var tenders []model.Tender
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Tender{}).
		Where("id IN (?)", GetDB(ctx, r.db).Model(&model.Order{}).Select("tender_id"))

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.
		Preload("Orders").
		Preload("Orders.Product").
		Order("creation_date DESC").
		Offset(offset).Limit(limit).
		Find(&tenders).Error; err != nil {
		return nil, 0, err
	}

	return tenders, total, nil
}

func (r *tenderRepository) ListWithoutOrders(ctx context.Context) ([]model.Tender, error) {
	var tenders []model.Tender
	if err := GetDB(ctx, r.db).
		Where("id NOT IN (?)", GetDB(ctx, r.db).Model(&model.Order{}).Select("tender_id")).
		Order("creation_date DESC").
		Find(&tenders).Error; err != nil {
		return nil, err
	}
	return tenders, nil
}
