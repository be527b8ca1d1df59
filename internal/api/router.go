package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/swarvbook/booking-backend/internal/auth"
	"github.com/swarvbook/booking-backend/internal/booking"
	bookingHttp "github.com/swarvbook/booking-backend/internal/booking/http"
	"github.com/swarvbook/booking-backend/internal/campaign"
	campaignHttp "github.com/swarvbook/booking-backend/internal/campaign/http"
	"github.com/swarvbook/booking-backend/internal/catalog"
	catalogHttp "github.com/swarvbook/booking-backend/internal/catalog/http"
	"github.com/swarvbook/booking-backend/internal/client"
	clientHttp "github.com/swarvbook/booking-backend/internal/client/http"
	"github.com/swarvbook/booking-backend/internal/staff"
	staffHttp "github.com/swarvbook/booking-backend/internal/staff/http"
)

// Config carries the services and settings the router is assembled from.
type Config struct {
	IsProduction bool
	ProdOrigins  []string

	CatalogService  catalog.Service
	StaffService    staff.Service
	ClientService   client.Service
	BookingService  booking.Service
	CampaignService campaign.Service

	JWTManager *auth.JWTManager
	Gatherer   prometheus.Gatherer
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - RequestLogger: structured access log.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(RequestLogger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = cfg.ProdOrigins
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:5173", // Vite dev server
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	if len(corsConfig.AllowOrigins) > 0 {
		r.Use(cors.New(corsConfig))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// adminMiddleware: Further checks the admin role claim.
	adminMiddleware := RequireAdmin()

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	catalogHandler := catalogHttp.NewHandler(cfg.CatalogService)
	staffHandler := staffHttp.NewHandler(cfg.StaffService)
	clientHandler := clientHttp.NewHandler(cfg.ClientService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.ClientService)
	campaignHandler := campaignHttp.NewHandler(cfg.CampaignService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		catalogHttp.RegisterRoutes(v1, catalogHandler, authMiddleware, adminMiddleware)
		staffHttp.RegisterRoutes(v1, staffHandler, authMiddleware, adminMiddleware)
		clientHttp.RegisterRoutes(v1, clientHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, adminMiddleware)
		campaignHttp.RegisterRoutes(v1, campaignHandler, authMiddleware, adminMiddleware)
	}

	return r
}
