package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/wealthpath/expenses/internal/apperror"
	"github.com/wealthpath/expenses/internal/model"
)

func TestAnalyticsHandler_Categories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		setupMock  func(*MockAnalyticsService)
		wantStatus int
	}{
		{
			name:  "by month",
			query: "month=2023-03",
			setupMock: func(m *MockAnalyticsService) {
				m.On("GetCategoryBreakdown", mock.Anything, "2023-03").Return([]model.CategoryBreakdownEntry{}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:  "by range",
			query: "startDate=2023-03-01&endDate=2023-03-15",
			setupMock: func(m *MockAnalyticsService) {
				m.On("GetCategoryBreakdownForRange", mock.Anything, "2023-03-01", "2023-03-15").Return([]model.CategoryBreakdownEntry{}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "half a range",
			query:      "startDate=2023-03-01",
			setupMock:  func(m *MockAnalyticsService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed month",
			query:      "month=2023-13",
			setupMock:  func(m *MockAnalyticsService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:  "storage failure",
			query: "month=2023-03",
			setupMock: func(m *MockAnalyticsService) {
				m.On("GetCategoryBreakdown", mock.Anything, "2023-03").Return(nil, errors.New("pq: timeout"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := new(MockAnalyticsService)
			tt.setupMock(svc)
			h := NewAnalyticsHandler(svc)

			w := httptest.NewRecorder()
			h.Categories(w, httptest.NewRequest(http.MethodGet, "/api/analytics/categories?"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestAnalyticsHandler_Daily(t *testing.T) {
	t.Parallel()

	svc := new(MockAnalyticsService)
	svc.On("GetDailyTotals", mock.Anything, "2023-03").Return([]model.DailyTotal{}, nil)
	h := NewAnalyticsHandler(svc)

	w := httptest.NewRecorder()
	h.Daily(w, httptest.NewRequest(http.MethodGet, "/api/analytics/daily?month=2023-03", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestAnalyticsHandler_Monthly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		wantCount  int
		wantStatus int
	}{
		{"default count", "endMonth=2023-03", 6, http.StatusOK},
		{"explicit count", "endMonth=2023-03&count=3", 3, http.StatusOK},
		{"upper bound", "endMonth=2023-03&count=24", 24, http.StatusOK},
		{"count too large", "endMonth=2023-03&count=25", 0, http.StatusBadRequest},
		{"count zero", "endMonth=2023-03&count=0", 0, http.StatusBadRequest},
		{"bad end month", "endMonth=2023-3", 0, http.StatusBadRequest},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := new(MockAnalyticsService)
			if tt.wantStatus == http.StatusOK {
				svc.On("GetMonthlyTotals", mock.Anything, "2023-03", tt.wantCount).Return([]model.MonthlyTotal{}, nil)
			}
			h := NewAnalyticsHandler(svc)

			w := httptest.NewRecorder()
			h.Monthly(w, httptest.NewRequest(http.MethodGet, "/api/analytics/monthly?"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestAnalyticsHandler_Compare(t *testing.T) {
	t.Parallel()

	svc := new(MockAnalyticsService)
	svc.On("CompareMonths", mock.Anything, "2023-03", "2023-02").Return([]model.MonthComparisonEntry{}, nil)
	h := NewAnalyticsHandler(svc)

	w := httptest.NewRecorder()
	h.Compare(w, httptest.NewRequest(http.MethodGet, "/api/analytics/compare?current=2023-03&previous=2023-02", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.Compare(w, httptest.NewRequest(http.MethodGet, "/api/analytics/compare?current=2023-03", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "previous", decodeError(t, w).Field)
}

func TestAnalyticsHandler_Trends(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		setupMock  func(*MockAnalyticsService)
		wantStatus int
	}{
		{
			name:  "default window",
			query: "month=2023-03",
			setupMock: func(m *MockAnalyticsService) {
				m.On("GetTrendAnalysis", mock.Anything, "2023-03", 6).Return(&model.TrendAnalysis{TrendDirection: model.TrendStable}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "window out of range",
			query:      "month=2023-03&months=0",
			setupMock:  func(m *MockAnalyticsService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:  "insufficient data",
			query: "month=2023-03&months=3",
			setupMock: func(m *MockAnalyticsService) {
				m.On("GetTrendAnalysis", mock.Anything, "2023-03", 3).Return(nil, apperror.InsufficientData("no months to analyze"))
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := new(MockAnalyticsService)
			tt.setupMock(svc)
			h := NewAnalyticsHandler(svc)

			w := httptest.NewRecorder()
			h.Trends(w, httptest.NewRequest(http.MethodGet, "/api/analytics/trends?"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
