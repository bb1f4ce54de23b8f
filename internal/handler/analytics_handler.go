package handler

import (
	"errors"
	"net/http"
	"strconv"

	"tenderdesk/internal/repository"
	"tenderdesk/internal/service"
	"tenderdesk/pkg/response"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (h *AnalyticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	api := router.Group("/api")
	{
		api.GET("/analytics", h.GetWeeklySeries)
		api.GET("/stats", h.GetStats)
		api.GET("/clients", h.GetClients)
	}
}

// GetWeeklySeries returns volume/revenue/margin bucketed per week
// @Summary      Weekly analytics series
// @Description  Buckets tender orders into Monday-anchored weeks and sums volume, revenue and margin. A period without activity returns an empty list.
// @Tags         analytics
// @Produce      json
// @Param        year    query  int     false  "Filter by award year"
// @Param        month   query  int     false  "Filter by month (1-12, requires year)"
// @Param        client  query  string  false  "Filter by client name substring"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response  "Non-numeric year/month or month outside 1-12"
// @Router       /api/analytics [get]
func (h *AnalyticsHandler) GetWeeklySeries(c *gin.Context) {
	var filter repository.TenderFilter

	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "year must be an integer"))
			return
		}
		filter.Year = &year
	}
	if raw := c.Query("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "month must be an integer"))
			return
		}
		filter.Month = &month
	}
	filter.Client = c.Query("client")

	series, err := h.analyticsService.WeeklySeries(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFilter) {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, series))
}

// GetStats returns headline totals for the dashboard
// @Summary      Overall statistics
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/stats [get]
func (h *AnalyticsHandler) GetStats(c *gin.Context) {
	stats, err := h.analyticsService.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// GetClients returns the distinct client names of tenders with orders
// @Summary      List clients
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/clients [get]
func (h *AnalyticsHandler) GetClients(c *gin.Context) {
	clients, err := h.analyticsService.Clients(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, clients))
}
