package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"homestay/internal/infra/config"
	"homestay/internal/infra/obs"
)

type QuoteHTTP interface {
	Compute(c *gin.Context)
	Draft(c *gin.Context)
	ResolveVoucher(c *gin.Context)
}

type PlaceHTTP interface {
	Catalog(c *gin.Context)
	Get(c *gin.Context)
}

type BookingHTTP interface {
	Create(c *gin.Context)
}

type Handlers struct {
	Quote     QuoteHTTP
	Place     PlaceHTTP
	Booking   BookingHTTP
	RateLimit gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(cfg.CORSOrigins, obsMW, health, h),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewRouter builds the route table without touching the global gin mode.
func NewRouter(origins []string, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *gin.Engine {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router := gin.New()
	router.Use(obsMW.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key", "X-User-ID", "X-Browse-ID"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.RateLimit != nil {
		api.Use(h.RateLimit)
	}
	api.Use(SessionMiddleware())
	if h.Quote != nil {
		api.POST("/quotes", h.Quote.Compute)
		api.GET("/quotes/drafts/:id", h.Quote.Draft)
		api.POST("/vouchers/resolve", h.Quote.ResolveVoucher)
	}
	if h.Place != nil {
		api.GET("/places", h.Place.Catalog)
		api.GET("/places/:id", h.Place.Get)
	}
	if h.Booking != nil {
		api.POST("/bookings", h.Booking.Create)
	}
	return router
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug", "dev", "local":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
