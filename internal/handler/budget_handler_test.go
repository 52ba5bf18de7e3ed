package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wealthpath/expenses/internal/apperror"
	"github.com/wealthpath/expenses/internal/model"
	"github.com/wealthpath/expenses/internal/repository"
	"github.com/wealthpath/expenses/internal/service"
)

func TestNewBudgetHandler(t *testing.T) {
	assert.NotNil(t, NewBudgetHandler(new(MockBudgetService)))
}

func TestBudgetHandler_Upsert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		setupMock  func(*MockBudgetService)
		wantStatus int
	}{
		{
			name: "success",
			body: `{"month":"2023-03","amount":"1000","categories":[{"categoryId":"cat-1","amount":"250"}]}`,
			setupMock: func(m *MockBudgetService) {
				m.On("Upsert", mock.Anything, mock.MatchedBy(func(in service.UpsertBudgetInput) bool {
					return in.Month == "2023-03" && len(in.Categories) == 1 && in.Categories[0].CategoryID == "cat-1"
				})).Return(&model.Budget{Amount: decimal.NewFromInt(1000)}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid body",
			body:       "invalid json",
			setupMock:  func(m *MockBudgetService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "invalid month",
			body: `{"month":"March","amount":"10"}`,
			setupMock: func(m *MockBudgetService) {
				m.On("Upsert", mock.Anything, mock.Anything).Return(nil, apperror.InvalidArgument("month", `invalid month "March": expected YYYY-MM`))
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := new(MockBudgetService)
			tt.setupMock(svc)
			h := NewBudgetHandler(svc)

			w := httptest.NewRecorder()
			h.Upsert(w, httptest.NewRequest(http.MethodPost, "/api/budgets", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestBudgetHandler_Get(t *testing.T) {
	t.Parallel()

	svc := new(MockBudgetService)
	h := NewBudgetHandler(svc)
	svc.On("Get", mock.Anything, "2023-03").Return(&model.Budget{Amount: decimal.NewFromInt(500)}, nil)
	svc.On("Get", mock.Anything, "2023-04").Return(nil, repository.ErrBudgetNotFound)

	w := httptest.NewRecorder()
	h.Get(w, withURLParams(httptest.NewRequest(http.MethodGet, "/api/budgets/2023-03", nil), map[string]string{"month": "2023-03"}))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.Get(w, withURLParams(httptest.NewRequest(http.MethodGet, "/api/budgets/2023-04", nil), map[string]string{"month": "2023-04"}))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBudgetHandler_ListDelete(t *testing.T) {
	t.Parallel()

	svc := new(MockBudgetService)
	h := NewBudgetHandler(svc)
	svc.On("List", mock.Anything).Return([]model.Budget{}, nil)
	svc.On("Delete", mock.Anything, "2023-03").Return(nil)

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/api/budgets", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = httptest.NewRecorder()
	h.Delete(w, withURLParams(httptest.NewRequest(http.MethodDelete, "/api/budgets/2023-03", nil), map[string]string{"month": "2023-03"}))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestBudgetHandler_Status(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		month      string
		setupMock  func(*MockBudgetService)
		wantStatus int
		check      func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:  "no budget is a zero state",
			month: "2023-03",
			setupMock: func(m *MockBudgetService) {
				m.On("GetBudgetStatus", mock.Anything, "2023-03").Return(&model.BudgetStatus{
					TotalBudget:    decimal.Zero,
					TotalSpent:     decimal.Zero,
					TotalRemaining: decimal.Zero,
					Categories:     []model.CategoryBudgetStatus{},
				}, nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				var body map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, float64(0), body["percentageUsed"])
				assert.Equal(t, []any{}, body["categories"])
			},
		},
		{
			name:  "malformed month",
			month: "2023-3",
			setupMock: func(m *MockBudgetService) {
				m.On("GetBudgetStatus", mock.Anything, "2023-3").Return(nil, apperror.InvalidArgument("month", "invalid month"))
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := new(MockBudgetService)
			tt.setupMock(svc)
			h := NewBudgetHandler(svc)

			req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/budgets/"+tt.month+"/status", nil), map[string]string{"month": tt.month})
			w := httptest.NewRecorder()
			h.Status(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.check != nil {
				tt.check(t, w)
			}
		})
	}
}
