package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/allocation"
	allocationPostgres "github.com/frahmantamala/asset-management/internal/allocation/postgres"
	"github.com/frahmantamala/asset-management/internal/asset"
	assetPostgres "github.com/frahmantamala/asset-management/internal/asset/postgres"
	"github.com/frahmantamala/asset-management/internal/auth"
	authPostgres "github.com/frahmantamala/asset-management/internal/auth/postgres"
	"github.com/frahmantamala/asset-management/internal/category"
	categoryPostgres "github.com/frahmantamala/asset-management/internal/category/postgres"
	"github.com/frahmantamala/asset-management/internal/core/events"
	"github.com/frahmantamala/asset-management/internal/history"
	historyPostgres "github.com/frahmantamala/asset-management/internal/history/postgres"
	"github.com/frahmantamala/asset-management/internal/maintenance"
	maintenancePostgres "github.com/frahmantamala/asset-management/internal/maintenance/postgres"
	"github.com/frahmantamala/asset-management/internal/request"
	requestPostgres "github.com/frahmantamala/asset-management/internal/request/postgres"
	"github.com/frahmantamala/asset-management/internal/transport"
	"github.com/frahmantamala/asset-management/internal/transport/middleware"
	"github.com/frahmantamala/asset-management/internal/transport/rest"
	"github.com/frahmantamala/asset-management/internal/user"
	userPostgres "github.com/frahmantamala/asset-management/internal/user/postgres"
	"github.com/frahmantamala/asset-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) error {
	lg := deps.Logger
	cfg := deps.Config

	bus := events.NewEventBus(lg)

	// Auth
	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authRepo := authPostgres.NewRepository(deps.GormDB)
	authService := auth.NewService(authRepo, tokenGen, cfg.Security.BCryptCost)
	authHandler := auth.NewHandler(authService)

	// Users
	userRepo := userPostgres.NewUserRepository(deps.GormDB)
	userService := user.NewService(userRepo, authService, bus, lg)
	userHandler := user.NewHandler(userService)

	// Assets
	assetRepo := assetPostgres.NewAssetRepository(deps.GormDB)
	assetService := asset.NewService(assetRepo, lg)
	assetHandler := asset.NewHandler(assetService)

	// Allocation
	allocationRepo := allocationPostgres.NewAllocationRepository(deps.GormDB)
	allocationService := allocation.NewService(allocationRepo, userService, bus, lg)
	allocationHandler := allocation.NewHandler(allocationService)

	// Requests
	requestRepo := requestPostgres.NewRequestRepository(deps.GormDB)
	requestService := request.NewService(requestRepo, bus, lg)
	requestHandler := request.NewHandler(requestService)

	// Maintenance
	maintenanceRepo := maintenancePostgres.NewMaintenanceRepository(deps.GormDB)
	maintenanceService := maintenance.NewService(maintenanceRepo, bus, lg)
	maintenanceHandler := maintenance.NewHandler(maintenanceService)

	// History ledger subscribes to every workflow event.
	historyRepo := historyPostgres.NewHistoryRepository(deps.GormDB)
	historyService := history.NewService(historyRepo, lg)
	historyHandler := history.NewHandler(historyService)
	history.RegisterSubscribers(bus, historyService)

	// Categories
	categoryRepo := categoryPostgres.NewCategoryRepository(deps.GormDB)
	categoryService := category.NewService(categoryRepo, lg)
	categoryHandler := category.NewHandler(transport.NewBaseHandler(lg), categoryService)

	var validator *middleware.OpenAPIValidator
	if cfg.API.ValidateRequests {
		v, err := middleware.NewOpenAPIValidator(cfg.API.SpecPath, lg)
		if err != nil {
			return fmt.Errorf("failed to load OpenAPI document: %w", err)
		}
		validator = v
	}

	handlers := rest.Handlers{
		Auth:        authHandler,
		User:        userHandler,
		Asset:       assetHandler,
		Allocation:  allocationHandler,
		Request:     requestHandler,
		Maintenance: maintenanceHandler,
		History:     historyHandler,
		Category:    categoryHandler,
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, handlers, authService, validator, lg)
	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := initGorm(db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	router := chi.NewRouter()

	return &Dependencies{
		Config: config,
		Logger: logger.LoggerWrapper(),
		DB:     db,
		GormDB: gormDB,
		Router: router,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}

// initGorm layers GORM over the shared pgx connection pool.
func initGorm(db *sqlx.DB) (*gorm.DB, error) {
	return gorm.Open(gormPostgres.New(gormPostgres.Config{
		Conn: db.DB,
	}), &gorm.Config{})
}
