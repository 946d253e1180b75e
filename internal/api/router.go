package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/photomarket/gateway/internal/api/handler"
	"github.com/photomarket/gateway/internal/api/middleware"
	"github.com/photomarket/gateway/internal/core/domain"
	"github.com/photomarket/gateway/internal/core/service"
	mongodb "github.com/photomarket/gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/photomarket/gateway/internal/infrastructure/db/redis"
	"github.com/photomarket/gateway/internal/infrastructure/upstream"
)

// RouterConfig carries the session settings the transport layer needs.
type RouterConfig struct {
	SessionSecret string
	SessionTTL    time.Duration
	CookieSecure  bool
}

// ActivityDispatcher feeds the async audit trail from handlers and middleware.
type ActivityDispatcher interface {
	Enqueue(event domain.ActivityEvent)
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	cfg RouterConfig,
	db *mongo.Database,
	rdb *redis.Client,
	backend *upstream.Client,
	activity ActivityDispatcher,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("photomarket"))

	// --- Dependencies ---
	sessionRepo := redisdb.NewSessionRepository(rdb)
	prefsRepo := mongodb.NewPreferencesRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)

	authGateway := upstream.NewAuthGateway(backend)
	market := upstream.NewMarketplaceGateway(backend)
	sessions := service.NewSessionService(authGateway, sessionRepo, cfg.SessionTTL, log)

	authHandler := handler.NewAuthHandler(sessions, activity, cfg.SessionSecret, cfg.CookieSecure)
	dashHandler := handler.NewDashboardHandler()
	mediaHandler := handler.NewMediaHandler(market)
	commerceHandler := handler.NewCommerceHandler(market)
	walletHandler := handler.NewWalletHandler(market)
	adminHandler := handler.NewAdminHandler(market)
	prefsHandler := handler.NewPreferencesHandler(prefsRepo, activityRepo)

	// Every request resolves its session cookie once; guards decide per route.
	e.Use(middleware.Session(cfg.SessionSecret, sessions))
	teardown := middleware.Teardown(sessions, activity)

	// --- Public entry points ---
	e.GET("/", authHandler.Home)
	e.GET(domain.PathLogin, authHandler.LoginPage)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/logout", authHandler.Logout)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Role-scoped landing routes ---
	e.GET(domain.PathAdmin, dashHandler.Admin, middleware.RequireRole(activity, domain.RoleAdmin))
	e.GET(domain.PathStudio, dashHandler.Studio, middleware.RequireRole(activity, domain.RolePhotographer, domain.RoleAdmin))
	e.GET(domain.PathAccount, dashHandler.Account, middleware.RequireRole(activity, domain.RoleBuyer))

	// --- Protected API ---
	v1 := e.Group("/v1", middleware.RequireSession(activity), teardown)

	v1.GET("/me", authHandler.Me)
	v1.GET("/me/preferences", prefsHandler.Get)
	v1.PUT("/me/preferences", prefsHandler.Put)
	v1.GET("/me/activity", prefsHandler.Activity)

	v1.GET("/media", mediaHandler.List)

	photog := v1.Group("", middleware.RequireRole(activity, domain.RolePhotographer, domain.RoleAdmin))
	photog.POST("/media", mediaHandler.Upload)
	photog.DELETE("/media/:id", mediaHandler.Delete)
	photog.GET("/wallet", walletHandler.Get)
	photog.POST("/wallet/payouts", walletHandler.RequestPayout)

	buyer := v1.Group("", middleware.RequireRole(activity, domain.RoleBuyer))
	buyer.GET("/cart", commerceHandler.GetCart)
	buyer.POST("/cart", commerceHandler.AddCartItem)
	buyer.DELETE("/cart/:id", commerceHandler.RemoveCartItem)
	buyer.POST("/purchases", commerceHandler.Purchase)
	buyer.GET("/receipts", commerceHandler.ListReceipts)

	admin := v1.Group("/admin", middleware.RequireRole(activity, domain.RoleAdmin))
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/refunds", adminHandler.ListRefunds)
	admin.POST("/refunds/:id/approve", adminHandler.ApproveRefund)

	return e
}
