package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/luestilo/retail-api/docs"
	"github.com/luestilo/retail-api/internal/api/handler"
	"github.com/luestilo/retail-api/internal/api/middleware"
	"github.com/luestilo/retail-api/internal/core/domain"
	"github.com/luestilo/retail-api/internal/core/ports"
	"github.com/luestilo/retail-api/internal/core/service"
	"github.com/luestilo/retail-api/internal/core/token"
	"github.com/luestilo/retail-api/internal/pkg/config"
)

// Deps carries the infrastructure the router wires into services and
// handlers. Repositories and the audit sink are constructed in cmd/api so
// startup tasks (index creation, dispatcher lifecycle) stay out of here.
type Deps struct {
	Users   ports.UserRepository
	Clients ports.ClientRepository
	Limiter ports.LoginLimiter
	Audit   ports.AuditSink

	DB     *mongo.Database
	Redis  *redis.Client
	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("luestilo"))

	// --- Dependencies ---
	tokenCfg := token.Config{
		Secret:     cfg.JWT.Secret,
		AccessTTL:  cfg.JWT.AccessTTL,
		RefreshTTL: cfg.JWT.RefreshTTL,
	}
	issuer := token.NewIssuer(tokenCfg)
	verifier := token.NewVerifier(tokenCfg)

	authService := service.NewAuthService(d.Users, issuer, verifier, d.Limiter, d.Audit, d.Logger)
	clientService := service.NewClientService(d.Clients, d.Audit, d.Logger)

	authHandler := handler.NewAuthHandler(authService)
	clientHandler := handler.NewClientHandler(clientService)

	requireUser := middleware.CurrentUser(verifier, d.Users)
	requireAdmin := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh-token", authHandler.Refresh)
	e.GET("/auth/me", authHandler.Me, requireUser)

	// --- User administration ---
	e.GET("/users", authHandler.ListUsers, requireUser, requireAdmin)

	// --- Client routes (all protected) ---
	clients := e.Group("/clients", requireUser)
	clients.POST("", clientHandler.Create)
	clients.GET("", clientHandler.List)
	clients.GET("/:id", clientHandler.Get)
	clients.PUT("/:id", clientHandler.Update)
	clients.DELETE("/:id", clientHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.DB, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
