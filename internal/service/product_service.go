package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tenderdesk/internal/model"
	"tenderdesk/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrProductExists = errors.New("a product with this SKU already exists")

// --- DTOs ---

type CreateProductRequest struct {
	SKU         string          `json:"sku" binding:"required"`
	Title       string          `json:"title" binding:"required"`
	Description *string         `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
}

type ProductResponse struct {
	ID          uuid.UUID `json:"id"`
	SKU         string    `json:"sku"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Cost        float64   `json:"cost"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// --- Interface ---

type ProductService interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (ProductResponse, error)
	ListProducts(ctx context.Context, page, limit int) ([]ProductResponse, int64, error)
}

// --- Implementation ---

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) CreateProduct(ctx context.Context, req CreateProductRequest) (ProductResponse, error) {
	if req.Cost.IsNegative() {
		return ProductResponse{}, fmt.Errorf("cost cannot be negative")
	}

	if _, err := s.productRepo.FindBySKU(ctx, req.SKU); err == nil {
		return ProductResponse{}, ErrProductExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ProductResponse{}, fmt.Errorf("failed to check SKU: %w", err)
	}

	product := &model.Product{
		SKU:         req.SKU,
		Title:       req.Title,
		Description: req.Description,
		Cost:        req.Cost,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return ProductResponse{}, fmt.Errorf("failed to create product: %w", err)
	}

	return toProductResponse(*product), nil
}

func (s *productService) ListProducts(ctx context.Context, page, limit int) ([]ProductResponse, int64, error) {
	products, total, err := s.productRepo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	res := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, toProductResponse(p))
	}
	return res, total, nil
}

func toProductResponse(p model.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Title:       p.Title,
		Description: p.Description,
		Cost:        p.Cost.InexactFloat64(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
