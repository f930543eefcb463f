package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	assistantapp "github.com/atlas/backend/internal/application/assistant"
	cashapp "github.com/atlas/backend/internal/application/cash"
	crmapp "github.com/atlas/backend/internal/application/crm"
	geocodeapp "github.com/atlas/backend/internal/application/geocode"
	hrapp "github.com/atlas/backend/internal/application/hr"
	identityapp "github.com/atlas/backend/internal/application/identity"
	inventoryapp "github.com/atlas/backend/internal/application/inventory"
	metricsapp "github.com/atlas/backend/internal/application/metrics"
	salesapp "github.com/atlas/backend/internal/application/sales"
	surveyapp "github.com/atlas/backend/internal/application/survey"
	"github.com/atlas/backend/internal/domain/geo"
	"github.com/atlas/backend/internal/domain/identity"
	"github.com/atlas/backend/internal/domain/survey"
	"github.com/atlas/backend/internal/infrastructure/auth"
	"github.com/atlas/backend/internal/infrastructure/cache"
	"github.com/atlas/backend/internal/infrastructure/config"
	"github.com/atlas/backend/internal/infrastructure/geocoding"
	"github.com/atlas/backend/internal/infrastructure/llm"
	"github.com/atlas/backend/internal/infrastructure/logger"
	"github.com/atlas/backend/internal/infrastructure/persistence"
	"github.com/atlas/backend/internal/infrastructure/telemetry"
	"github.com/atlas/backend/internal/infrastructure/whatsapp"
	"github.com/atlas/backend/internal/interfaces/http/handler"
	"github.com/atlas/backend/internal/interfaces/http/middleware"
	"github.com/atlas/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

const slowQueryThreshold = 200 * time.Millisecond

//	@title			Atlas Console API
//	@version		1.0
//	@description	Multi-tenant sales, CRM and operations console backend

//	@BasePath	/endpoints

//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						atlas_session
//	@description				Session cookie set by POST /auth/login

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Atlas backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
		zap.Bool("demo_mode", cfg.App.DemoMode),
	)

	ctx := context.Background()
	loc := cfg.App.Location()

	tracer, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, version, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer", zap.Error(err))
		}
	}()

	profiler, err := telemetry.NewProfiler(cfg.Telemetry, version, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer func() {
		_ = profiler.Stop()
	}()

	meters, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, version, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	defer func() {
		if err := meters.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	logs, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, version, log)
	if err != nil {
		log.Fatal("Failed to initialize log export", zap.Error(err))
	}
	defer func() {
		_ = logs.Shutdown(context.Background())
	}()
	log = logs.Bridge(log, logger.ParseLevel(cfg.Log.Level))

	gormLog := logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level), slowQueryThreshold)
	db, err := persistence.NewDatabase(ctx, &cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		stats := db.Stats()
		log.Info("Closing database",
			zap.Int64("wait_count", stats.WaitCount),
			zap.Duration("wait_duration", stats.WaitDuration),
			zap.Int("open_connections", stats.OpenConnections))
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:            tracer.IsEnabled(),
		SlowQueryThreshold: slowQueryThreshold,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Redis backs session revocation and the geocode cache. Without it both
	// fall back to process memory.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, using in-memory revocation list and cache", zap.Error(err))
			redisClient = nil
		} else {
			defer func() {
				_ = redisClient.Close()
			}()
		}
	}

	var revoked auth.RevocationList = auth.NewInMemoryRevocationList()
	if redisClient != nil {
		revoked = auth.NewRedisRevocationList(redisClient)
	}

	placeCache, err := cache.NewPlaceCacheFactory(cfg.Redis, cfg.Geocoding.CacheTTL,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(true),
	).Create(ctx, redisClient)
	if err != nil {
		log.Fatal("Failed to initialize geocode cache", zap.Error(err))
	}
	defer func() {
		_ = placeCache.Close()
	}()

	// Repositories
	personRepo := persistence.NewGormPersonRepository(db.DB, persistence.NewLoginIndexAdapter(log))
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	opportunityRepo := persistence.NewGormOpportunityRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	returnRepo := persistence.NewGormReturnRepository(db.DB)
	promoterSaleRepo := persistence.NewGormPromoterSaleRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)
	closureRepo := persistence.NewGormClosureRepository(db.DB)
	attendanceRepo := persistence.NewGormAttendanceRepository(db.DB)
	surveyRepo := persistence.NewGormSurveyRepository(db.DB)
	stockReader := persistence.NewGormStockReader(db.DB)
	metricsSource := persistence.NewGormMetricsSource(db.DB, persistence.DefaultRetryPolicy)

	// Outbound clients
	whatsappClient := whatsapp.New(cfg.WhatsApp, cfg.App.DemoMode, log)
	llmClient := llm.New(cfg.LLM)
	if !llmClient.Configured() {
		log.Warn("LLM API key not set, the assistant will answer 503")
	}

	providers := make([]geo.Geocoder, 0, 2)
	if cfg.Geocoding.GoogleAPIKey != "" {
		providers = append(providers, geocoding.NewGoogle(cfg.Geocoding.GoogleAPIKey, cfg.Geocoding.GoogleBaseURL, cfg.Geocoding.Language, cfg.Geocoding.Timeout))
	}
	providers = append(providers, geocoding.NewNominatim(cfg.Geocoding.NominatimBaseURL, cfg.Geocoding.UserAgent, cfg.Geocoding.Language, cfg.Geocoding.Timeout))

	// A nil dispatcher marks every issued survey link as failed
	var dispatcher survey.Dispatcher
	if whatsappClient.Configured() {
		dispatcher = whatsappClient
	} else {
		log.Warn("WhatsApp not configured, survey links will not be delivered")
	}

	// Application services
	access := identity.NewModuleAccess(cfg.Modules.Disabled)
	sessions := auth.NewSessionService(cfg.Session)
	authService := identityapp.NewAuthService(personRepo, sessions, revoked, access)
	userService := identityapp.NewUserService(personRepo)
	customerService := crmapp.NewCustomerService(customerRepo)
	opportunityService := crmapp.NewOpportunityService(opportunityRepo)
	orderService := salesapp.NewOrderService(orderRepo)
	returnService := salesapp.NewReturnService(returnRepo)
	promoterService := salesapp.NewPromoterService(promoterSaleRepo, personRepo, loc)
	reportService := salesapp.NewReportService(reportRepo, returnRepo, loc)
	overviewService := metricsapp.NewOverviewService(metricsSource, loc)
	inventoryService := inventoryapp.NewSummaryService(stockReader)
	closureService := cashapp.NewClosureService(closureRepo)
	attendanceService := hrapp.NewAttendanceService(attendanceRepo, loc)
	surveyService := surveyapp.NewService(surveyRepo, orderRepo, customerRepo, dispatcher, surveyapp.Config{
		BaseURL:       cfg.App.PublicBaseURL,
		LinkTTL:       cfg.Survey.LinkTTL,
		EnforceExpiry: cfg.Survey.EnforceExpiry,
	})
	chatService := assistantapp.NewChatService(llmClient, assistantapp.Readers{
		Overview:  overviewService,
		Reports:   reportService,
		Customers: customerService,
		Pipeline:  opportunityService,
		Inventory: inventoryService,
		Closures:  closureService,
	})
	resolver := geocodeapp.NewResolver(
		geocoding.NewShortLinkExpander(cfg.Geocoding.ShortLinkTimeout),
		providers,
		geocodeapp.WithCache(placeCache.Cache),
	)

	// HTTP handlers
	checks := map[string]handler.HealthCheck{
		"database": db.Ping,
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}
	handlers := router.Handlers{
		Auth:          handler.NewAuthHandler(authService, cfg.Session),
		Users:         handler.NewUserHandler(userService),
		Customers:     handler.NewCustomerHandler(customerService),
		Opportunities: handler.NewOpportunityHandler(opportunityService),
		Orders:        handler.NewOrderHandler(orderService, returnService),
		Promoters:     handler.NewPromoterHandler(promoterService, loc),
		Dashboard:     handler.NewDashboardHandler(overviewService, reportService),
		Operations:    handler.NewOperationsHandler(inventoryService, closureService, attendanceService),
		Assistant:     handler.NewAssistantHandler(chatService),
		Geocode:       handler.NewGeocodeHandler(resolver),
		Survey:        handler.NewSurveyHandler(surveyService),
		System:        handler.NewSystemHandler(cfg.App.Name, version, checks),
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine, err := router.NewEngine(router.EngineConfig{
		Logger:         log,
		HTTP:           cfg.HTTP,
		ServiceName:    cfg.Telemetry.ServiceName,
		TracingEnabled: tracer.IsEnabled(),
		SecureCookies:  cfg.Session.Secure,
		Meter:          meters.Meter("http.server"),
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	guards := router.Guards{
		Session: middleware.Session(authService, cfg.Session.CookieName),
		Access:  access,
		LoginLimit: middleware.RateLimit(middleware.NewRateLimiter(
			cfg.HTTP.LoginRateLimitRequests, cfg.HTTP.LoginRateLimitWindow)),
	}
	// Public survey endpoints keep a per-IP limit even when the global one is off
	if !cfg.HTTP.RateLimitEnabled {
		guards.PublicLimit = middleware.RateLimit(middleware.NewRateLimiter(
			cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow))
	}
	routes := router.Register(engine, handlers, guards)
	log.Info("Routes mounted", zap.Int("count", len(routes)))
	for _, rt := range routes {
		log.Debug("Route", zap.String("group", rt.Group), zap.String("method", rt.Method), zap.String("path", rt.Path))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}
