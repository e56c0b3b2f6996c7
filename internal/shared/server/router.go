package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qrfolio-backend/internal/generate"
	"qrfolio-backend/internal/services/health"
	"qrfolio-backend/internal/shared/config"
	"qrfolio-backend/internal/shared/metrics"
	"qrfolio-backend/internal/shared/server/middleware"
	"qrfolio-backend/internal/shared/server/respond"
	"qrfolio-backend/internal/shared/storage/object"
	"qrfolio-backend/internal/users"
)

const generateRateGroup = "GENERATE"

// RouterDeps carries the handlers and shared services the router mounts.
type RouterDeps struct {
	Config          config.Config
	Store           object.Store
	GenerateHandler *generate.Handler
	UserHandler     *users.Handler
	Verifier        middleware.TokenVerifier
	Limiter         *middleware.RateLimiter
	Health          *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.OptionalAuth(deps.Verifier),
	)

	limit := middleware.RateLimit(middleware.RateLimitConfig{
		DefaultGroup: generateRateGroup,
		Limiter:      deps.Limiter,
		Rules: map[string]middleware.RateLimitRule{
			generateRateGroup: {Rate: deps.Config.GenerateRatePerSec, Burst: deps.Config.GenerateBurst},
		},
	})

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		ok, checks := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, gin.H{"ok": ok, "checks": checks})
	})

	if deps.GenerateHandler != nil {
		deps.GenerateHandler.RegisterRoutes(r.Group("", limit))
		deps.GenerateHandler.RegisterRoutes(api.Group("", limit))
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(r)
		deps.UserHandler.RegisterRoutes(api)
		deps.UserHandler.RegisterMeRoutes(api)
	}

	r.GET("/metrics", metrics.Handler())
	if deps.Store != nil {
		r.NoRoute(ContentHandler(deps.Store))
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
