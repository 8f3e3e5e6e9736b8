package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/datapulse/identity-api/docs"
	"github.com/datapulse/identity-api/internal/api/handler"
	"github.com/datapulse/identity-api/internal/api/middleware"
	"github.com/datapulse/identity-api/internal/core/ports"
	"github.com/datapulse/identity-api/internal/core/service"
	mongodb "github.com/datapulse/identity-api/internal/infrastructure/db/mongo"
	redisdb "github.com/datapulse/identity-api/internal/infrastructure/db/redis"
	"github.com/datapulse/identity-api/internal/pkg/config"
)

// Dependencies carries everything the router needs to assemble the service.
type Dependencies struct {
	Config *config.Config
	Mongo  *mongo.Database
	Redis  *redis.Client
	Audit  ports.AuditRecorder
	Log    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Stores and services ---
	cfg := deps.Config
	teammateStore := mongodb.NewTeammateRepository(deps.Mongo)
	clientStore := mongodb.NewClientUserRepository(deps.Mongo)
	throttle := redisdb.NewLoginThrottle(deps.Redis, cfg.Login.MaxFailures, cfg.Login.FailureWindow)

	authenticator := service.NewAuthenticator(teammateStore, clientStore)
	tokens := service.NewTokenService(teammateStore, clientStore, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, deps.Log)
	authService := service.NewAuthService(authenticator, tokens, clientStore, throttle, deps.Audit, deps.Log)
	teammateService := service.NewTeammateService(teammateStore)
	userService := service.NewClientUserService(clientStore, tokens, deps.Audit)

	authHandler := handler.NewAuthHandler(authService)
	teammateHandler := handler.NewTeammateHandler(teammateService)
	userHandler := handler.NewUserHandler(userService)
	internalHandler := handler.NewInternalHandler(userService)

	authRequired := middleware.Auth(authService)
	teammateOnly := middleware.RequireTeammate()
	staffOnly := middleware.RequireStaff()
	serviceChannel := middleware.ServiceAuth(cfg.InternalJWTSecret, cfg.InternalAllowedServices, deps.Log)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/token/refresh", authHandler.Refresh)
	e.GET("/auth/token/validate", authHandler.Validate, authRequired)
	e.GET("/me", authHandler.Me, authRequired)

	// --- Teammate routes ---
	e.POST("/teammates/register", teammateHandler.Register)
	e.GET("/teammates/me", teammateHandler.Me, authRequired)

	// --- Client user self-service ---
	e.POST("/users/register", userHandler.Register)
	e.POST("/users/set-password", userHandler.SetPassword)
	e.GET("/users/me", userHandler.Profile, authRequired)
	e.PUT("/users/me", userHandler.UpdateProfile, authRequired)
	e.PUT("/users/me/password", userHandler.UpdatePassword, authRequired)

	// --- Teammate-managed client users ---
	users := e.Group("/users", authRequired, teammateOnly)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	// Deactivation is destructive enough to require an admin-capable role.
	users.DELETE("/:id", userHandler.Delete, staffOnly)

	// --- Internal service channel ---
	internal := e.Group("/internal/users", serviceChannel)
	internal.GET("/by-email/:email", internalHandler.UserByEmail)
	internal.POST("/register", internalHandler.RegisterUser)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readyHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)       // liveness  – is the process alive?
	e.GET("/health/ready", readyHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
