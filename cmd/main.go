package main

import (
	"context"

	"wholesaler/wholesaler_catalog_service/api"
	"wholesaler/wholesaler_catalog_service/config"
	"wholesaler/wholesaler_catalog_service/pkg/jaeger"
	"wholesaler/wholesaler_catalog_service/pkg/logger"
	"wholesaler/wholesaler_catalog_service/storage/postgres"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	cfg := config.Load()

	loggerLevel := logger.LevelDebug

	switch cfg.Environment {
	case config.DebugMode:
		loggerLevel = logger.LevelDebug
		gin.SetMode(gin.DebugMode)
	case config.TestMode:
		loggerLevel = logger.LevelDebug
		gin.SetMode(gin.TestMode)
	default:
		loggerLevel = logger.LevelInfo
		gin.SetMode(gin.ReleaseMode)
	}

	log := logger.NewLogger(cfg.ServiceName, loggerLevel)
	defer func() {
		_ = logger.Cleanup(log)
	}()
	log.Info("Service env", logger.Any("cfg", cfg.ServiceName))

	if cfg.JaegerHostPort != "" {
		closer, err := jaeger.InitGlobalTracer(cfg.ServiceName, cfg.JaegerHostPort)
		if err != nil {
			log.Panic("jaeger.InitGlobalTracer", logger.Error(err))
		}
		defer closer.Close()
	}

	if err := runMigrations(cfg); err != nil {
		log.Panic("runMigrations", logger.Error(err))
	}

	pgStore, err := postgres.NewPostgres(context.Background(), cfg, log)
	if err != nil {
		log.Panic("postgres.NewPostgres", logger.Error(err))
	}
	defer pgStore.CloseDB()

	router := api.SetUpRouter(cfg, log, pgStore)

	log.Info("HTTP: Server being started...", logger.String("port", cfg.HTTPPort))

	if err := router.Run(cfg.HTTPPort); err != nil {
		log.Panic("router.Run", logger.Error(err))
	}
}

func runMigrations(cfg config.Config) error {
	m, err := migrate.New(
		cfg.MigrationsPath,
		postgres.DatabaseURL(cfg),
	)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	srcErr, dbErr := m.Close()
	if srcErr != nil {
		return srcErr
	}
	return dbErr
}
