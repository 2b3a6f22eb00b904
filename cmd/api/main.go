package main

import (
	"context"
	"os/signal"
	"syscall"

	_ "vermafarm/docs"
	"vermafarm/internal/adapter/http/routes"
	"vermafarm/internal/infrastructure/config"
	"vermafarm/internal/infrastructure/logger"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
)

// @title           VermaFarm API
// @version         1.0
// @description     Vermicompost marketplace: service requests, inventory and produce listings backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   VermaFarm Support
// @contact.email  support@vermafarm.in

// @license.name  MIT

// @host localhost:5000

// @BasePath  /api

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg := config.Load()
	logger.Setup(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := routes.Run(ctx, cfg); err != nil {
		logrus.WithError(err).Fatal("[server] stopped")
	}
}
