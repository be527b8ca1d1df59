package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/swarvbook/booking-backend/internal/api"
	"github.com/swarvbook/booking-backend/internal/auth"
	"github.com/swarvbook/booking-backend/internal/booking"
	"github.com/swarvbook/booking-backend/internal/campaign"
	"github.com/swarvbook/booking-backend/internal/catalog"
	"github.com/swarvbook/booking-backend/internal/client"
	"github.com/swarvbook/booking-backend/internal/db"
	"github.com/swarvbook/booking-backend/internal/pkg/email"
	"github.com/swarvbook/booking-backend/internal/pkg/metrics"
	"github.com/swarvbook/booking-backend/internal/staff"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  []string
	DB           db.DBTX
	JWTSecret    string
	JWTTTL       time.Duration

	ShopLocation      *time.Location
	PublicBaseURL     string
	Email             email.Config
	CampaignTestEmail string

	// Clock overrides time.Now for the booking and client rules.
	Clock booking.Clock
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Registry   *prometheus.Registry
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	bookingMetrics := metrics.NewBookingMetrics(registry)
	campaignMetrics := metrics.NewCampaignMetrics(registry)

	// Catalog Module
	catalogRepo := catalog.NewPgxRepository(cfg.DB)
	catalogService := catalog.NewService(catalogRepo)

	// Staff Module
	staffRepo := staff.NewPgxRepository(cfg.DB)
	staffService := staff.NewService(staffRepo)

	// Client Module
	clientRepo := client.NewPgxRepository(cfg.DB)
	clientService := client.NewService(clientRepo, cfg.PublicBaseURL, cfg.ShopLocation, cfg.Clock)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DB)
	bookingService := booking.NewService(bookingRepo, catalogService, staffService, cfg.ShopLocation, cfg.Clock, bookingMetrics)

	// Campaign Module
	sender := email.NewSender(cfg.Email)
	campaignService := campaign.NewService(clientService, sender, cfg.CampaignTestEmail, campaignMetrics)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		CatalogService:  catalogService,
		StaffService:    staffService,
		ClientService:   clientService,
		BookingService:  bookingService,
		CampaignService: campaignService,
		JWTManager:      jwtManager,
		Gatherer:        registry,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Registry:   registry,
	}
}
