package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tenderdesk/internal/model"
	"tenderdesk/internal/repository"
	"tenderdesk/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAnalyticsService struct {
	series    []service.WeeklyBucketResponse
	seriesErr error
	filter    *repository.TenderFilter
}

func (s *stubAnalyticsService) WeeklySeries(_ context.Context, filter repository.TenderFilter) ([]service.WeeklyBucketResponse, error) {
	s.filter = &filter
	return s.series, s.seriesErr
}

func (s *stubAnalyticsService) Stats(_ context.Context) (model.StatsResponse, error) {
	return model.StatsResponse{Tenders: 3, Products: 5, Orders: 9, TotalMargin: 1234.5}, nil
}

func (s *stubAnalyticsService) Clients(_ context.Context) ([]string, error) {
	return []string{"ACME"}, nil
}

func analyticsRouter(svc service.AnalyticsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewAnalyticsHandler(svc).RegisterRoutes(router.Group(""))
	return router
}

func doRequest(router *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGetWeeklySeries(t *testing.T) {
	stub := &stubAnalyticsService{series: []service.WeeklyBucketResponse{
		{Week: "W9", WeekNumber: 9, WeekStart: time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), Volume: 15, Revenue: 1250, Margin: 250},
	}}
	router := analyticsRouter(stub)

	w := doRequest(router, http.MethodGet, "/api/analytics?year=2024&month=3&client=Hospital")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string                         `json:"status"`
		Data   []service.WeeklyBucketResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "W9", body.Data[0].Week)
	assert.Equal(t, 15, body.Data[0].Volume)

	require.NotNil(t, stub.filter)
	require.NotNil(t, stub.filter.Year)
	assert.Equal(t, 2024, *stub.filter.Year)
	require.NotNil(t, stub.filter.Month)
	assert.Equal(t, 3, *stub.filter.Month)
	assert.Equal(t, "Hospital", stub.filter.Client)
}

func TestGetWeeklySeriesRejectsBadParams(t *testing.T) {
	stub := &stubAnalyticsService{}
	router := analyticsRouter(stub)

	for _, target := range []string{"/api/analytics?year=abc", "/api/analytics?month=xyz"} {
		w := doRequest(router, http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
	// Parse failures never reach the service.
	assert.Nil(t, stub.filter)
}

func TestGetWeeklySeriesInvalidFilter(t *testing.T) {
	stub := &stubAnalyticsService{seriesErr: service.ErrInvalidFilter}
	router := analyticsRouter(stub)

	w := doRequest(router, http.MethodGet, "/api/analytics?year=2024&month=13")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetWeeklySeriesEmpty(t *testing.T) {
	router := analyticsRouter(&stubAnalyticsService{series: []service.WeeklyBucketResponse{}})

	w := doRequest(router, http.MethodGet, "/api/analytics?year=1999")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []service.WeeklyBucketResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Data)
}

func TestGetStats(t *testing.T) {
	router := analyticsRouter(&stubAnalyticsService{})

	w := doRequest(router, http.MethodGet, "/api/stats")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data model.StatsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(3), body.Data.Tenders)
	assert.InDelta(t, 1234.5, body.Data.TotalMargin, 1e-9)
}

func TestGetClients(t *testing.T) {
	router := analyticsRouter(&stubAnalyticsService{})

	w := doRequest(router, http.MethodGet, "/api/clients")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"ACME"}, body.Data)
}
