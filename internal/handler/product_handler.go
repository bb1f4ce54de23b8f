package handler

import (
	"errors"
	"net/http"

	"tenderdesk/internal/service"
	"tenderdesk/pkg/pagination"
	"tenderdesk/pkg/response"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/api/products")
	{
		products.GET("", h.ListProducts)
		products.POST("", h.CreateProduct)
	}
}

// ListProducts returns the catalog ordered by title
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        page   query  int  false  "Page number (default: 1)"
// @Param        limit  query  int  false  "Items per page (default: 20)"
// @Success      200  {object}  response.Response
// @Router       /api/products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	params := pagination.Parse(c)

	products, total, err := h.productService.ListProducts(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, products, params.Page, params.Limit, total))
}

// CreateProduct adds a catalog product
// @Summary      Create product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateProductRequest  true  "Product payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response  "SKU already taken"
// @Router       /api/products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrProductExists) {
			c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, product))
}
