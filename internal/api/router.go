package api

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dbaops/inventory-api/internal/api/handler"
	"github.com/dbaops/inventory-api/internal/api/middleware"
	"github.com/dbaops/inventory-api/internal/core/ports"
	"github.com/dbaops/inventory-api/internal/core/service"
	"github.com/dbaops/inventory-api/internal/infrastructure/db/postgres"
	healthhandlers "github.com/dbaops/inventory-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil when sessions are kept in memory.
func NewRouter(
	pool *pgxpool.Pool,
	rdb *redis.Client,
	sessions ports.SessionStore,
	creds ports.CredentialStore,
	audit ports.AuditSink,
	dbTimeout time.Duration,
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
	e.Use(echoprometheus.NewMiddleware("inventory"))
	e.Use(middleware.Auth(sessions, "/login", "/health", "/health/ready", "/metrics"))

	// --- Dependencies ---
	gateway := postgres.NewGateway(pool, dbTimeout, log)
	authService := service.NewAuthService(creds, sessions)
	inventoryService := service.NewInventoryService(gateway, audit)
	recapService := service.NewRecapService(gateway, audit)
	monitorService := service.NewMonitorService(gateway, audit)

	authHandler := handler.NewAuthHandler(authService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	recapHandler := handler.NewRecapHandler(recapService)
	monitorHandler := handler.NewMonitorHandler(monitorService)

	// --- Auth routes ---
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)

	// --- Inventory routes ---
	e.POST("/insert", inventoryHandler.InsertServer)
	e.POST("/get_info_version", inventoryHandler.VersionInfo)
	e.POST("/get_info_server", inventoryHandler.ServerInfo)
	e.POST("/set_info_version", inventoryHandler.SetVersion)
	e.POST("/set_info_server", inventoryHandler.SetServer)
	e.DELETE("/delete", inventoryHandler.DeleteServer)
	e.POST("/set_db_server", inventoryHandler.SetDBServer)
	e.POST("/set_user_db", inventoryHandler.SetUserDB)

	// --- Recap routes ---
	e.POST("/insert_server_recap", recapHandler.Register)
	e.POST("/insert_recap_values", recapHandler.AddValues)
	e.GET("/get_recap_values", recapHandler.Values)

	// --- Collector feed routes ---
	e.POST("/feed_dbai", monitorHandler.FeedDBAI)
	e.POST("/mysql_sniffer", monitorHandler.Sniffer)
	e.POST("/mysql_sniffer_hosts", monitorHandler.SnifferHosts)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
