package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tenderdesk/internal/model"
	"tenderdesk/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sentinel errors the handlers map onto HTTP status codes.
var (
	ErrTenderNotFound    = errors.New("tender not found")
	ErrTenderExists      = errors.New("a tender with this ID already exists")
	ErrProductNotFound   = errors.New("product not found")
	ErrPriceNotAboveCost = errors.New("sale price must be greater than product cost")
)

// --- DTOs ---

type OrderPayload struct {
	ProductID   string          `json:"productId" binding:"required"`
	Quantity    int             `json:"quantity" binding:"required"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Observation *string         `json:"observation"`
}

type CreateTenderRequest struct {
	ID              string         `json:"id" binding:"required"`
	Client          string         `json:"client" binding:"required"`
	CreationDate    string         `json:"creationDate" binding:"required"`
	DeliveryDate    *string        `json:"deliveryDate"`
	DeliveryAddress *string        `json:"deliveryAddress"`
	ContactPhone    *string        `json:"contactPhone"`
	ContactEmail    *string        `json:"contactEmail"`
	Orders          []OrderPayload `json:"orders" binding:"required"`
}

type OrderResponse struct {
	ID               string           `json:"id"`
	TenderID         string           `json:"tender_id"`
	ProductID        string           `json:"product_id"`
	Product          *ProductResponse `json:"product,omitempty"`
	Quantity         int              `json:"quantity"`
	Price            float64          `json:"price"`
	Observation      *string          `json:"observation"`
	Margin           float64          `json:"margin"`
	MarginPercentage float64          `json:"marginPercentage"`
}

type TenderResponse struct {
	ID               string          `json:"id"`
	Client           string          `json:"client"`
	CreationDate     time.Time       `json:"creationDate"`
	DeliveryDate     *time.Time      `json:"deliveryDate"`
	DeliveryAddress  *string         `json:"deliveryAddress"`
	ContactPhone     *string         `json:"contactPhone"`
	ContactEmail     *string         `json:"contactEmail"`
	Orders           []OrderResponse `json:"orders"`
	OrdersCount      int             `json:"ordersCount"`
	CalculatedMargin float64         `json:"calculatedMargin"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// --- Interface ---

type TenderService interface {
	CreateTender(ctx context.Context, req CreateTenderRequest) (TenderResponse, error)
	GetTender(ctx context.Context, id string) (TenderResponse, error)
	ListTenders(ctx context.Context, page, limit int) ([]TenderResponse, int64, error)
	ListTendersWithoutOrders(ctx context.Context) ([]TenderResponse, error)
}

// --- Implementation ---

type tenderService struct {
	tenderRepo  repository.TenderRepository
	productRepo repository.ProductRepository
	txManager   repository.TransactionManager
}

func NewTenderService(tenderRepo repository.TenderRepository, productRepo repository.ProductRepository, txManager repository.TransactionManager) TenderService {
	return &tenderService{tenderRepo: tenderRepo, productRepo: productRepo, txManager: txManager}
}

// CreateTender records an awarded tender together with its order lines.
// Every referenced product must exist and every line must sell above the
// product's cost; a violation rejects the whole tender.
func (s *tenderService) CreateTender(ctx context.Context, req CreateTenderRequest) (TenderResponse, error) {
	if len(req.Orders) == 0 {
		return TenderResponse{}, fmt.Errorf("at least one order is required")
	}

	creationDate, err := time.Parse(time.RFC3339, req.CreationDate)
	if err != nil {
		return TenderResponse{}, fmt.Errorf("invalid creationDate, expected RFC3339: %w", err)
	}

	var deliveryDate *time.Time
	if req.DeliveryDate != nil && *req.DeliveryDate != "" {
		parsed, err := time.Parse(time.RFC3339, *req.DeliveryDate)
		if err != nil {
			return TenderResponse{}, fmt.Errorf("invalid deliveryDate, expected RFC3339: %w", err)
		}
		deliveryDate = &parsed
	}

	if _, err := s.tenderRepo.FindByID(ctx, req.ID); err == nil {
		return TenderResponse{}, ErrTenderExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return TenderResponse{}, fmt.Errorf("failed to check tender ID: %w", err)
	}

	orders := make([]model.Order, 0, len(req.Orders))
	for i, payload := range req.Orders {
		if payload.Quantity <= 0 {
			return TenderResponse{}, fmt.Errorf("orders[%d]: quantity must be positive", i)
		}
		if !payload.Price.IsPositive() {
			return TenderResponse{}, fmt.Errorf("orders[%d]: price must be positive", i)
		}

		product, err := s.productRepo.FindBySKU(ctx, payload.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return TenderResponse{}, fmt.Errorf("%w: SKU %s", ErrProductNotFound, payload.ProductID)
			}
			return TenderResponse{}, fmt.Errorf("failed to look up product %s: %w", payload.ProductID, err)
		}

		if payload.Price.LessThanOrEqual(product.Cost) {
			return TenderResponse{}, fmt.Errorf("%w: price %s vs cost %s for product %s",
				ErrPriceNotAboveCost, payload.Price, product.Cost, product.Title)
		}

		orders = append(orders, model.Order{
			ID:          fmt.Sprintf("%s-%d", req.ID, i+1),
			TenderID:    req.ID,
			ProductID:   payload.ProductID,
			Product:     *product,
			Quantity:    payload.Quantity,
			Price:       payload.Price,
			Observation: payload.Observation,
		})
	}

	tender := &model.Tender{
		ID:              req.ID,
		Client:          req.Client,
		CreationDate:    creationDate,
		DeliveryDate:    deliveryDate,
		DeliveryAddress: req.DeliveryAddress,
		ContactPhone:    req.ContactPhone,
		ContactEmail:    req.ContactEmail,
		Orders:          orders,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		return s.tenderRepo.Create(txCtx, tender)
	})
	if err != nil {
		return TenderResponse{}, fmt.Errorf("failed to create tender: %w", err)
	}

	return toTenderResponse(*tender, true), nil
}

func (s *tenderService) GetTender(ctx context.Context, id string) (TenderResponse, error) {
	tender, err := s.tenderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TenderResponse{}, ErrTenderNotFound
		}
		return TenderResponse{}, fmt.Errorf("failed to fetch tender: %w", err)
	}
	return toTenderResponse(*tender, true), nil
}

func (s *tenderService) ListTenders(ctx context.Context, page, limit int) ([]TenderResponse, int64, error) {
	tenders, total, err := s.tenderRepo.ListWithOrders(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch tenders: %w", err)
	}

	res := make([]TenderResponse, 0, len(tenders))
	for _, t := range tenders {
		res = append(res, toTenderResponse(t, false))
	}
	return res, total, nil
}

func (s *tenderService) ListTendersWithoutOrders(ctx context.Context) ([]TenderResponse, error) {
	tenders, err := s.tenderRepo.ListWithoutOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tenders without orders: %w", err)
	}

	res := make([]TenderResponse, 0, len(tenders))
	for _, t := range tenders {
		res = append(res, toTenderResponse(t, false))
	}
	return res, nil
}

// --- Response mappers ---

// toTenderResponse derives ordersCount and the margin figures on the way
// out. withProducts additionally embeds each order's product, as the tender
// detail view needs it.
func toTenderResponse(t model.Tender, withProducts bool) TenderResponse {
	orders := make([]OrderResponse, 0, len(t.Orders))
	for _, o := range t.Orders {
		res := OrderResponse{
			ID:               o.ID,
			TenderID:         o.TenderID,
			ProductID:        o.ProductID,
			Quantity:         o.Quantity,
			Price:            o.Price.InexactFloat64(),
			Observation:      o.Observation,
			Margin:           o.Margin().InexactFloat64(),
			MarginPercentage: o.MarginPercentage().InexactFloat64(),
		}
		if withProducts {
			product := toProductResponse(o.Product)
			res.Product = &product
		}
		orders = append(orders, res)
	}

	return TenderResponse{
		ID:               t.ID,
		Client:           t.Client,
		CreationDate:     t.CreationDate,
		DeliveryDate:     t.DeliveryDate,
		DeliveryAddress:  t.DeliveryAddress,
		ContactPhone:     t.ContactPhone,
		ContactEmail:     t.ContactEmail,
		Orders:           orders,
		OrdersCount:      len(t.Orders),
		CalculatedMargin: t.TotalMargin().InexactFloat64(),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}
