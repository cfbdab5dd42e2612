package create_reservation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katiabooking/KB-BookingService/internal/api/middleware"
	"github.com/katiabooking/KB-BookingService/internal/domain"
	reserveSlot "github.com/katiabooking/KB-BookingService/internal/usecase/reserve_slot"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type mockUseCase struct {
	resp    *reserveSlot.Response
	err     error
	lastReq reserveSlot.Request
}

func (m *mockUseCase) Execute(ctx context.Context, req reserveSlot.Request) (*reserveSlot.Response, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func doRequest(t *testing.T, uc ReserveSlotUseCase, body string, userID string) *httptest.ResponseRecorder {
	t.Helper()

	handler := middleware.Auth(http.HandlerFunc(NewHandler(uc, nopLogger{}).Handle))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", bytes.NewBufferString(body))
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	start := time.Date(2026, 9, 15, 14, 0, 0, 0, time.UTC)
	expires := start.Add(-5 * time.Hour)
	uc := &mockUseCase{resp: &reserveSlot.Response{Record: &domain.ReservationRecord{
		ID:          "rec-1",
		MasterID:    10,
		SalonID:     1,
		ClientID:    100,
		Interval:    domain.Interval{Start: start, End: start.Add(time.Hour)},
		Status:      domain.StatusTempHold,
		ExpiresAt:   &expires,
		ServiceName: "Стрижка",
	}}}

	body := `{"masterId":10,"salonId":1,"startTime":"2026-09-15T14:00:00Z","durationMinutes":60,"mode":"hold","serviceName":"Стрижка"}`
	rec := doRequest(t, uc, body, "100")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(100), uc.lastReq.ClientID)
	assert.Equal(t, reserveSlot.ModeHold, uc.lastReq.Mode)

	var resp ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "rec-1", resp.ID)
	assert.Equal(t, "temp_hold", resp.Status)
	assert.Equal(t, 60, resp.DurationMinutes)
	require.NotNil(t, resp.ExpiresAt)
}

func TestHandle_Conflict(t *testing.T) {
	start := time.Date(2026, 9, 15, 14, 0, 0, 0, time.UTC)
	uc := &mockUseCase{err: &reserveSlot.ConflictError{Conflict: &domain.ReservationRecord{
		ID:       "busy",
		Interval: domain.Interval{Start: start, End: start.Add(time.Hour)},
		Status:   domain.StatusConfirmed,
	}}}

	body := `{"masterId":10,"salonId":1,"startTime":"2026-09-15T14:30:00Z","durationMinutes":60,"mode":"hold"}`
	rec := doRequest(t, uc, body, "100")

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp ConflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-09-15T14:00:00Z", resp.StartTime)
	assert.Equal(t, "2026-09-15T15:00:00Z", resp.EndTime)
	assert.NotEmpty(t, resp.Message)
}

func TestHandle_MissingAuthHeader(t *testing.T) {
	rec := doRequest(t, &mockUseCase{}, `{}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_InvalidBody(t *testing.T) {
	rec := doRequest(t, &mockUseCase{}, `{not json`, "100")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InvalidStartTime(t *testing.T) {
	body := `{"masterId":10,"salonId":1,"startTime":"15:00","durationMinutes":60,"mode":"hold"}`
	rec := doRequest(t, &mockUseCase{}, body, "100")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	body := `{"masterId":10,"salonId":1,"startTime":"2026-09-15T14:00:00Z","durationMinutes":60,"mode":"hold"}`

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"master not found", reserveSlot.ErrMasterNotFound, http.StatusNotFound},
		{"master inactive", reserveSlot.ErrMasterInactive, http.StatusConflict},
		{"outside working hours", reserveSlot.ErrOutsideWorkingHours, http.StatusBadRequest},
		{"invalid input", reserveSlot.ErrInvalidInput, http.StatusBadRequest},
		{"internal", reserveSlot.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &mockUseCase{err: tt.err}, body, "100")
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
