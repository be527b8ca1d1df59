package app

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarvbook/booking-backend/internal/auth"
	bookingHttp "github.com/swarvbook/booking-backend/internal/booking/http"
	catalogHttp "github.com/swarvbook/booking-backend/internal/catalog/http"
	clientHttp "github.com/swarvbook/booking-backend/internal/client/http"
	"github.com/swarvbook/booking-backend/internal/pkg/email"
	staffHttp "github.com/swarvbook/booking-backend/internal/staff/http"
	"github.com/swarvbook/booking-backend/migrations"
)

var (
	testRouter *gin.Engine
	testPool   *pgxpool.Pool
	jwtManager *auth.JWTManager
	london     *time.Location
)

// Monday 7 January 2030, 12:00 in the shop.
var testNow time.Time

func TestMain(m *testing.M) {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Debug().Err(err).Msg("no .env file for integration tests")
	}

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		log.Info().Msg("TEST_DB_DSN not set, skipping integration tests")
		os.Exit(0)
	}

	if err := migrateUp(dsn); err != nil {
		log.Fatal().Err(err).Msg("migrate test database")
	}

	ctx := context.Background()
	var err error
	testPool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("connect test database")
	}

	london, err = time.LoadLocation("Europe/London")
	if err != nil {
		log.Fatal().Err(err).Msg("load timezone")
	}
	testNow = time.Date(2030, time.January, 7, 12, 0, 0, 0, london)

	gin.SetMode(gin.TestMode)
	container := NewContainer(Config{
		DB:            testPool,
		JWTSecret:     "integration-secret",
		JWTTTL:        30 * time.Minute,
		ShopLocation:  london,
		PublicBaseURL: "https://swarv.test",
		Email:         email.Config{},
		Clock:         func() time.Time { return testNow },
	})
	testRouter = container.Router
	jwtManager = container.JWTManager

	exitCode := m.Run()

	testPool.Close()
	os.Exit(exitCode)
}

func migrateUp(dsn string) error {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer conn.Close()

	driver, err := postgres.WithInstance(conn, &postgres.Config{})
	if err != nil {
		return err
	}
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func clearTables(t *testing.T) {
	t.Helper()
	_, err := testPool.Exec(context.Background(),
		"TRUNCATE TABLE public.bookings, public.services, public.staff, public.clients CASCADE")
	require.NoError(t, err)
}

func executeRequest(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req, _ := http.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	return w
}

func generateToken(t *testing.T, email, role string) string {
	t.Helper()
	token, err := jwtManager.GenerateAccessToken("idp|"+email, email, role)
	require.NoError(t, err)
	return token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestBookingLifecycle(t *testing.T) {
	clearTables(t)

	adminToken := generateToken(t, "owner@swarv.test", auth.RoleAdmin)
	clientToken := generateToken(t, "jordan@swarv.test", "")
	friendToken := generateToken(t, "sam@swarv.test", "")

	var staffID, serviceID, bookingID string
	wednesday := "2030-01-09"

	t.Run("Admin sets up staff and services", func(t *testing.T) {
		w := executeRequest("POST", "/v1/admin/staff", staffHttp.CreateStaffBody{Name: "Errol", Email: "errol@swarv.test"}, adminToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		staffID = decode[staffHttp.StaffResponse](t, w).ID

		w = executeRequest("POST", "/v1/admin/services", catalogHttp.CreateServiceBody{Name: "Skin fade", Price: 22, DurationMinutes: 45}, adminToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		serviceID = decode[catalogHttp.ServiceResponse](t, w).ID

		w = executeRequest("POST", "/v1/admin/staff", staffHttp.CreateStaffBody{Name: "Errol", Email: "errol@swarv.test"}, adminToken)
		assert.Equal(t, http.StatusConflict, w.Code)

		w = executeRequest("POST", "/v1/admin/staff", staffHttp.CreateStaffBody{Name: "Errol", Email: "other@swarv.test"}, clientToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Booking requires a client profile", func(t *testing.T) {
		w := executeRequest("GET", "/v1/me/client", nil, clientToken)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = executeRequest("GET", "/v1/me/bookings", nil, clientToken)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = executeRequest("POST", "/v1/me/client", clientHttp.CreateProfileBody{
			FirstName: "Jordan", LastName: "Smith", ProcessingConsent: true, MarketingOptIn: true,
		}, clientToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("Availability reflects the working window", func(t *testing.T) {
		w := executeRequest("GET", fmt.Sprintf("/v1/availability?staff_id=%s&service_id=%s&date=%s", staffID, serviceID, wednesday), nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decode[bookingHttp.AvailabilityResponse](t, w)
		require.Len(t, resp.Slots, 17)
		assert.Equal(t, "09:00", resp.Slots[0].Label)
		assert.Equal(t, "17:00", resp.Slots[16].Label)
	})

	t.Run("Client books and double booking is refused", func(t *testing.T) {
		start := time.Date(2030, time.January, 9, 10, 0, 0, 0, london)
		body := bookingHttp.CreateBookingBody{StaffID: staffID, ServiceID: serviceID, StartTime: start}

		w := executeRequest("POST", "/v1/bookings", body, clientToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		created := decode[bookingHttp.BookingResponse](t, w)
		bookingID = created.ID
		assert.Equal(t, "pending", created.Status)
		assert.Equal(t, "Jordan Smith", created.Client.Name)
		assert.True(t, created.EndTime.Equal(start.Add(45*time.Minute)))

		w = executeRequest("POST", "/v1/bookings", body, clientToken)
		assert.Equal(t, http.StatusConflict, w.Code)

		// 10:30 would overlap the 10:00-10:45 booking.
		body.StartTime = start.Add(30 * time.Minute)
		w = executeRequest("POST", "/v1/bookings", body, clientToken)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Only the owner can cancel", func(t *testing.T) {
		w := executeRequest("POST", "/v1/me/client", clientHttp.CreateProfileBody{
			FirstName: "Sam", LastName: "Jones", ProcessingConsent: true,
		}, friendToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = executeRequest("POST", "/v1/bookings/"+bookingID+"/cancel", nil, friendToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Client cancels and the slot frees up", func(t *testing.T) {
		w := executeRequest("GET", "/v1/me/bookings", nil, clientToken)
		require.Equal(t, http.StatusOK, w.Code)
		mine := decode[struct {
			Items []bookingHttp.MyBookingResponse `json:"items"`
		}](t, w)
		require.Len(t, mine.Items, 1)
		assert.True(t, mine.Items[0].CanCancel)

		w = executeRequest("POST", "/v1/bookings/"+bookingID+"/cancel", nil, clientToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = executeRequest("POST", "/v1/bookings/"+bookingID+"/cancel", nil, clientToken)
		assert.Equal(t, http.StatusConflict, w.Code)

		w = executeRequest("GET", fmt.Sprintf("/v1/availability?staff_id=%s&service_id=%s&date=%s", staffID, serviceID, wednesday), nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode[bookingHttp.AvailabilityResponse](t, w).Slots, 17)
	})

	t.Run("Admin calendar places bookings in the week grid", func(t *testing.T) {
		start := time.Date(2030, time.January, 12, 15, 30, 0, 0, london)
		w := executeRequest("POST", "/v1/bookings", bookingHttp.CreateBookingBody{StaffID: staffID, ServiceID: serviceID, StartTime: start}, clientToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = executeRequest("GET", "/v1/admin/calendar?staff_id="+staffID+"&week="+wednesday, nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		cal := decode[bookingHttp.CalendarResponse](t, w)

		assert.True(t, cal.WeekStart.Equal(time.Date(2030, time.January, 7, 0, 0, 0, 0, london)))
		cells := map[[2]int]int{}
		for _, cell := range cal.Cells {
			if len(cell.Bookings) > 0 {
				cells[[2]int{cell.Day, cell.Hour}] = len(cell.Bookings)
			}
		}
		// The cancelled Wednesday booking is still shown on the calendar.
		assert.Equal(t, map[[2]int]int{{2, 10}: 1, {5, 15}: 1}, cells)
	})
}
