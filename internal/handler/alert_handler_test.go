package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wealthpath/expenses/internal/scheduler"
)

func TestAlertHandler_RunAlerts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sent       int
		err        error
		wantStatus int
	}{
		{"alerts sent", 2, nil, http.StatusOK},
		{"status lookup fails", 0, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := new(MockAlertScheduler)
			s.On("CheckBudgets", mock.Anything).Return(tt.sent, tt.err)
			h := NewAlertHandler(s)

			w := httptest.NewRecorder()
			h.RunAlerts(w, httptest.NewRequest(http.MethodPost, "/api/alerts/run", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				var body map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.EqualValues(t, tt.sent, body["sent"])
			} else {
				assert.Equal(t, "an internal error occurred", decodeError(t, w).Error)
			}
			s.AssertExpectations(t)
		})
	}
}

func TestAlertHandler_GetAlertHealth(t *testing.T) {
	t.Parallel()

	s := new(MockAlertScheduler)
	s.On("Health").Return(scheduler.HealthStatus{
		Healthy:  true,
		Schedule: "0 9 * * *",
		Message:  "No alert runs recorded yet",
	})
	h := NewAlertHandler(s)

	w := httptest.NewRecorder()
	h.GetAlertHealth(w, httptest.NewRequest(http.MethodGet, "/api/alerts/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["healthy"])
	assert.Equal(t, "0 9 * * *", body["schedule"])
}
