package routes

import (
	"context"
	"errors"
	"net/http"
	"time"

	_ "vermafarm/docs"
	"vermafarm/internal/adapter/http/handlers"
	"vermafarm/internal/adapter/http/middleware"
	"vermafarm/internal/adapter/persistence/repository"
	"vermafarm/internal/infrastructure/config"
	"vermafarm/internal/infrastructure/database"
	"vermafarm/internal/infrastructure/metrics"
	"vermafarm/internal/infrastructure/security"
	"vermafarm/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	PathAPI         = "/api"
	shutdownTimeout = 10 * time.Second
)

// App holds the HTTP handlers and the account use case the auth middleware
// needs.
type App struct {
	Accounts        usecase.IAccountUseCase
	Health          *handlers.HealthHandler
	Auth            *handlers.AuthHandler
	ServiceRequests *handlers.ServiceRequestHandler
	Inventory       *handlers.InventoryHandler
	Marketplace     *handlers.MarketplaceHandler
}

// Run wires the application and serves HTTP until ctx is cancelled.
func Run(ctx context.Context, cfg config.Config) error {
	gin.SetMode(cfg.Server.GinMode)

	app, err := getRoutes(ctx, cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           NewRouter(cfg, app),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logrus.WithField("port", cfg.Server.Port).Info("[server] listening")
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logrus.Info("[server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// getRoutes builds repositories, use cases and handlers on top of DynamoDB.
func getRoutes(ctx context.Context, cfg config.Config) (App, error) {
	ddb := database.ConnectDynamoDB(ctx)
	if cfg.DynamoDB.AutoCreateTables {
		if err := repository.EnsureTables(ctx, ddb); err != nil {
			return App{}, err
		}
	}

	users := repository.NewUserDynamoRepository(ddb)
	inventory := repository.NewInventoryDynamoRepository(ddb)
	serviceRequests := repository.NewServiceRequestDynamoRepository(ddb)
	listings := repository.NewListingDynamoRepository(ddb)
	transactions := repository.NewTransactionDynamoRepository(ddb)

	if cfg.JWT.UsesDefaultSecret() {
		logrus.Warn("[server] JWT_SECRET is not set, using the development secret")
	}
	tokens := security.NewJWTIssuer(cfg.JWT.Secret, cfg.JWT.Expiry)
	hasher := security.NewBcryptHasher(security.DefaultBcryptCost)

	accounts := usecase.NewAccountUseCase(users, inventory, tokens, hasher)
	ledger := usecase.NewAccountLedger(users)

	return App{
		Accounts:        accounts,
		Health:          handlers.NewHealthHandler(),
		Auth:            handlers.NewAuthHandler(accounts),
		ServiceRequests: handlers.NewServiceRequestHandler(usecase.NewServiceRequestUseCase(serviceRequests, ledger)),
		Inventory:       handlers.NewInventoryHandler(usecase.NewInventoryUseCase(inventory, users)),
		Marketplace:     handlers.NewMarketplaceHandler(usecase.NewMarketplaceUseCase(listings, transactions, users)),
	}, nil
}

// NewRouter mounts every route of the API on a new engine.
func NewRouter(cfg config.Config, app App) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, cfg)

	router.GET("/", app.Health.Root)
	router.GET("/health", app.Health.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.NoRoute(app.Health.NotFound)

	limiter := middleware.NewRateLimiter(cfg.RateLimit)
	api := router.Group(PathAPI, limiter.Middleware())
	protect := middleware.Auth(app.Accounts)

	addAuthRoutes(api, protect, app.Auth)
	addServiceRequestRoutes(api, protect, app.ServiceRequests)
	addInventoryRoutes(api, protect, app.Inventory)
	addMarketplaceRoutes(api, protect, app.Marketplace)
	return router
}

func setMiddlewares(router *gin.Engine, cfg config.Config) {
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS(cfg.Server))
}
