package router

import (
	"net/http"

	"github.com/atlas/backend/internal/infrastructure/config"
	"github.com/atlas/backend/internal/infrastructure/logger"
	"github.com/atlas/backend/internal/interfaces/http/dto"
	"github.com/atlas/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrCodeMethodNotAllowed answers a known path with the wrong method
const ErrCodeMethodNotAllowed = "ERR_METHOD_NOT_ALLOWED"

// EngineConfig configures the global middleware chain
type EngineConfig struct {
	Logger         *zap.Logger
	HTTP           config.HTTPConfig
	ServiceName    string
	TracingEnabled bool
	SecureCookies  bool
	// Meter records HTTP request metrics; nil disables them
	Meter metric.Meter
}

// NewEngine builds a gin engine with the global middleware in order:
// request ID, panic recovery, tracing, metrics, request logging, security
// headers, CORS, body limit and, when enabled, the per-IP rate limit.
func NewEngine(cfg EngineConfig) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		middleware.Tracing(cfg.ServiceName, cfg.TracingEnabled),
		middleware.SpanAttributes(),
		middleware.HTTPMetrics(cfg.Meter),
		logger.GinMiddleware(log),
		middleware.Secure(cfg.SecureCookies),
		middleware.CORS(cors),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)
	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)))
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrCodeNotFound, "Route not found", middleware.GetRequestID(c)))
	})
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.NewErrorResponse(ErrCodeMethodNotAllowed, "Method not allowed", middleware.GetRequestID(c)))
	})
	return engine, nil
}
