package export_calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exportCalendar "github.com/marcolino21/gurfa-appointment-hub-sub001/internal/usecase/export_calendar"
	"github.com/marcolino21/gurfa-appointment-hub-sub001/pkg/logger"
)

type fakeUseCase struct {
	resp    *exportCalendar.Response
	err     error
	lastReq *exportCalendar.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *exportCalendar.Request) (*exportCalendar.Response, error) {
	f.lastReq = req
	return f.resp, f.err
}

func serve(uc *fakeUseCase, query string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/salons/{salonId}/resources/{resourceId}/calendar.ics", NewHandler(uc, logger.NewNop()).Handle).
		Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/salons/salon-1/resources/staff1/calendar.ics?"+query, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_WritesCalendar(t *testing.T) {
	content := []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")
	uc := &fakeUseCase{resp: &exportCalendar.Response{FileName: "staff1-2024-03-18.ics", Content: content, Count: 0}}

	rec := serve(uc, "from=2024-03-18T00:00:00Z&to=2024-03-25T00:00:00Z&includeCancelled=true")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, contentTypeCalendar, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "staff1-2024-03-18.ics")
	assert.Equal(t, content, rec.Body.Bytes())

	require.NotNil(t, uc.lastReq)
	assert.Equal(t, "staff1", uc.lastReq.ResourceID)
	assert.True(t, uc.lastReq.IncludeCancelled)
}

func TestHandle_InvalidPeriod(t *testing.T) {
	rec := serve(&fakeUseCase{err: exportCalendar.ErrInvalidPeriod}, "from=2024-03-25T00:00:00Z&to=2024-03-18T00:00:00Z")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(&fakeUseCase{}, "from=2024-03-18T00:00:00Z&includeCancelled=true")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
