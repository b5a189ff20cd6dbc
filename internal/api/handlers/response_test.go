package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/domain"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/internal/scheduling"
)

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Anna"}`))
	require.NoError(t, DecodeJSON(req, &v))
	assert.Equal(t, "Anna", v.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Anna","extra":1}`))
	assert.Error(t, DecodeJSON(req, &v))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.Error(t, DecodeJSON(req, &v))
}

func TestRespondRejection(t *testing.T) {
	conflict := &domain.Appointment{ID: "a1"}
	policy := domain.DefaultSchedulingPolicy()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "conflict",
			err:        scheduling.Reject(scheduling.ErrSlotConflict, policy, conflict),
			wantStatus: http.StatusConflict,
			wantBody:   `"conflictingAppointmentId":"a1"`,
		},
		{
			name:       "business hours",
			err:        fmt.Errorf("wrapped: %w", scheduling.Reject(scheduling.ErrOutOfBusinessHours, policy, nil)),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `working hours (8:00-20:00)`,
		},
		{
			name:       "bad input",
			err:        scheduling.Reject(scheduling.ErrInvalidTimeInput, policy, nil),
			wantStatus: http.StatusBadRequest,
			wantBody:   `"variant":"destructive"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			require.True(t, RespondRejection(rec, tt.err))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}

	rec := httptest.NewRecorder()
	assert.False(t, RespondRejection(rec, fmt.Errorf("db down")))
	assert.Equal(t, 0, rec.Body.Len())
}
