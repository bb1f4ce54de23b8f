package handler

import (
	"errors"
	"net/http"

	"tenderdesk/internal/service"
	"tenderdesk/pkg/pagination"
	"tenderdesk/pkg/response"

	"github.com/gin-gonic/gin"
)

type TenderHandler struct {
	tenderService service.TenderService
}

func NewTenderHandler(tenderService service.TenderService) *TenderHandler {
	return &TenderHandler{tenderService: tenderService}
}

func (h *TenderHandler) RegisterRoutes(router *gin.RouterGroup) {
	tenders := router.Group("/api/tenders")
	{
		tenders.GET("", h.ListTenders)
		tenders.POST("", h.CreateTender)
		tenders.GET("/without-orders", h.ListTendersWithoutOrders)
		tenders.GET("/:id", h.GetTender)
	}
}

// ListTenders returns tenders that have orders, with computed margins
// @Summary      List tenders
// @Tags         tenders
// @Produce      json
// @Param        page   query  int  false  "Page number (default: 1)"
// @Param        limit  query  int  false  "Items per page (default: 20)"
// @Success      200  {object}  response.Response
// @Router       /api/tenders [get]
func (h *TenderHandler) ListTenders(c *gin.Context) {
	params := pagination.Parse(c)

	tenders, total, err := h.tenderService.ListTenders(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithPagination(http.StatusOK, tenders, params.Page, params.Limit, total))
}

// CreateTender records an awarded tender with its order lines
// @Summary      Create tender
// @Tags         tenders
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateTenderRequest  true  "Tender payload"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response  "Validation failure or sale at/below cost"
// @Failure      404  {object}  response.Response  "Referenced product not found"
// @Failure      409  {object}  response.Response  "Tender ID already taken"
// @Router       /api/tenders [post]
func (h *TenderHandler) CreateTender(c *gin.Context) {
	var req service.CreateTenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	tender, err := h.tenderService.CreateTender(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTenderExists):
			c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		default:
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, tender))
}

// ListTendersWithoutOrders returns awarded tenders still lacking orders
// @Summary      List tenders without orders
// @Tags         tenders
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/tenders/without-orders [get]
func (h *TenderHandler) ListTendersWithoutOrders(c *gin.Context) {
	tenders, err := h.tenderService.ListTendersWithoutOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, tenders))
}

// GetTender returns one tender with per-order margins
// @Summary      Get tender detail
// @Tags         tenders
// @Produce      json
// @Param        id  path  string  true  "Tender ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/tenders/{id} [get]
func (h *TenderHandler) GetTender(c *gin.Context) {
	tender, err := h.tenderService.GetTender(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTenderNotFound) {
			c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, tender))
}
