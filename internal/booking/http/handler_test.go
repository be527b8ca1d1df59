package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarvbook/booking-backend/internal/auth"
	"github.com/swarvbook/booking-backend/internal/booking"
	"github.com/swarvbook/booking-backend/internal/client"
)

const (
	staffID   = "6f1c2d3e-4a5b-4c6d-8e9f-0a1b2c3d4e5f"
	serviceID = "0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"
	bookingID = "9e8d7c6b-5a4f-4e3d-8c2b-1a0f9e8d7c6b"
)

type stubService struct {
	booking.Service
	slots    []booking.TimeSlot
	mine     []*booking.Booking
	grid     booking.WeekGrid
	err      error
	now      time.Time
	gotDay   civil.Date
	cancelID string
}

func (s *stubService) AvailableSlots(_ context.Context, _, _ string, day civil.Date) ([]booking.TimeSlot, error) {
	s.gotDay = day
	return s.slots, s.err
}

func (s *stubService) ListForClient(_ context.Context, _ string) ([]*booking.Booking, error) {
	return s.mine, s.err
}

func (s *stubService) Cancel(_ context.Context, id, _ string) (*booking.Booking, error) {
	s.cancelID = id
	if s.err != nil {
		return nil, s.err
	}
	return &booking.Booking{ID: id, Status: booking.StatusCancelled}, nil
}

func (s *stubService) Week(_ context.Context, _ string, day civil.Date) (booking.WeekGrid, error) {
	s.gotDay = day
	return s.grid, s.err
}

func (s *stubService) ClientCanCancel(b *booking.Booking) bool {
	return booking.ClientCanCancel(b, s.now)
}

func (s *stubService) Today() civil.Date { return civil.DateOf(s.now) }

type stubClients map[string]*client.Client

func (s stubClients) GetByEmail(_ context.Context, email string) (*client.Client, error) {
	if c, ok := s[email]; ok {
		return c, nil
	}
	return nil, client.ErrNotFound
}

var testJWT = auth.NewJWTManager("test-secret", time.Hour)

func newRouter(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	clients := stubClients{"jordan@example.com": {ID: "client-1"}}
	requireAdmin := func(c *gin.Context) {
		if !auth.IsAdmin(c) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
	RegisterRoutes(r.Group("/v1"), NewHandler(svc, clients), auth.AuthRequired(testJWT), requireAdmin)
	return r
}

func token(t *testing.T, email, role string) string {
	t.Helper()
	tok, err := testJWT.GenerateAccessToken("user-"+email, email, role)
	require.NoError(t, err)
	return tok
}

func do(r *gin.Engine, method, path, tok string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAvailability(t *testing.T) {
	start := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	svc := &stubService{slots: []booking.TimeSlot{{Start: start, End: start.Add(30 * time.Minute), Label: "09:00"}}}
	r := newRouter(svc)

	w := do(r, http.MethodGet, "/v1/availability?staff_id="+staffID+"&service_id="+serviceID+"&date=2024-06-10", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, civil.Date{Year: 2024, Month: time.June, Day: 10}, svc.gotDay)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "09:00", resp.Slots[0].Label)
}

func TestAvailabilityRejectsBadQuery(t *testing.T) {
	r := newRouter(&stubService{})

	for _, q := range []string{
		"staff_id=" + staffID + "&service_id=" + serviceID,
		"staff_id=nope&service_id=" + serviceID + "&date=2024-06-10",
		"staff_id=" + staffID + "&service_id=" + serviceID + "&date=10/06/2024",
	} {
		w := do(r, http.MethodGet, "/v1/availability?"+q, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestListMineFlagsCancellable(t *testing.T) {
	now := time.Date(2024, 6, 7, 12, 0, 0, 0, time.UTC)
	svc := &stubService{
		now: now,
		mine: []*booking.Booking{
			{ID: "later", StartTime: now.Add(48 * time.Hour), Status: booking.StatusConfirmed},
			{ID: "soon", StartTime: now.Add(3 * time.Hour), Status: booking.StatusPending},
			{ID: "gone", StartTime: now.Add(96 * time.Hour), Status: booking.StatusCancelled},
		},
	}
	r := newRouter(svc)

	w := do(r, http.MethodGet, "/v1/me/bookings", token(t, "jordan@example.com", ""))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Items []MyBookingResponse `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 3)
	assert.True(t, resp.Items[0].CanCancel)
	assert.False(t, resp.Items[1].CanCancel)
	assert.False(t, resp.Items[2].CanCancel)
}

func TestListMineWithoutProfile(t *testing.T) {
	r := newRouter(&stubService{})

	w := do(r, http.MethodGet, "/v1/me/bookings", token(t, "stranger@example.com", ""))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodGet, "/v1/me/bookings", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCancelMapsPolicyErrors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{booking.ErrCancellationWindowClosed, http.StatusConflict},
		{booking.ErrTerminalStatus, http.StatusConflict},
		{booking.ErrPermissionDenied, http.StatusForbidden},
		{booking.ErrNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		svc := &stubService{err: tt.err}
		r := newRouter(svc)

		w := do(r, http.MethodPost, "/v1/bookings/"+bookingID+"/cancel", token(t, "jordan@example.com", ""))
		assert.Equal(t, tt.want, w.Code, w.Body.String())
		assert.Equal(t, bookingID, svc.cancelID)
	}
}

func TestCalendarEmitsFullGrid(t *testing.T) {
	anchor := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	b := &booking.Booking{ID: "b1", StartTime: time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC), Status: booking.StatusConfirmed}
	early := &booking.Booking{ID: "b2", StartTime: time.Date(2024, 6, 12, 7, 0, 0, 0, time.UTC), Status: booking.StatusConfirmed}
	svc := &stubService{grid: booking.NewWeekGrid(anchor, []*booking.Booking{b, early}, time.UTC)}
	r := newRouter(svc)

	w := do(r, http.MethodGet, "/v1/admin/calendar?staff_id="+staffID+"&week=2024-06-13", token(t, "jordan@example.com", ""))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodGet, "/v1/admin/calendar?staff_id="+staffID+"&week=2024-06-13", token(t, "owner@example.com", auth.RoleAdmin))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp CalendarResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, civil.Date{Year: 2024, Month: time.June, Day: 13}, svc.gotDay)
	assert.Len(t, resp.Days, 7)
	assert.Len(t, resp.Hours, 10)
	assert.Len(t, resp.Cells, 70)

	// Wednesday is day 2; hour 10 is the second row.
	cell := resp.Cells[2*10+1]
	assert.Equal(t, 2, cell.Day)
	assert.Equal(t, 10, cell.Hour)
	require.Len(t, cell.Bookings, 1)
	assert.Equal(t, "b1", cell.Bookings[0].ID)

	require.Len(t, resp.OutsideHours, 1)
	assert.Equal(t, "b2", resp.OutsideHours[0].ID)
}

func TestCalendarDefaultsToServiceToday(t *testing.T) {
	svc := &stubService{now: time.Date(2030, 1, 9, 23, 30, 0, 0, time.UTC)}
	r := newRouter(svc)

	w := do(r, http.MethodGet, "/v1/admin/calendar?staff_id="+staffID, token(t, "owner@example.com", auth.RoleAdmin))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, civil.Date{Year: 2030, Month: time.January, Day: 9}, svc.gotDay)
}
