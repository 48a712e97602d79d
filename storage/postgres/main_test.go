package postgres_test

import (
	"context"
	"os"
	"testing"

	"wholesaler/wholesaler_catalog_service/config"
	"wholesaler/wholesaler_catalog_service/pkg/logger"
	"wholesaler/wholesaler_catalog_service/storage"
	"wholesaler/wholesaler_catalog_service/storage/postgres"

	"github.com/gin-gonic/gin"
	"github.com/jaswdr/faker/v2"
)

var (
	err      error
	cfg      config.Config
	strg     storage.StorageI
	fakeData faker.Faker
)

// POSTGRES_HOST="localhost"
// POSTGRES_PORT=5432
// POSTGRES_DATABASE="wholesaler_catalog_test"
// POSTGRES_USER="wholesaler_catalog"
// POSTGRES_PASSWORD="wholesaler_catalog"

// requireDB skips tests that need a live database when none is configured.
func requireDB(t *testing.T) {
	if strg == nil {
		t.Skip("POSTGRES_HOST is not set, skipping database tests")
	}
}

// the code should take the config from the environment
func TestMain(m *testing.M) {
	var loggerLevel string

	cfg = config.Load()

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

	if os.Getenv("POSTGRES_HOST") != "" {
		strg, err = postgres.NewPostgres(context.Background(), cfg, log)
		if err != nil {
			panic(err)
		}
	}

	fakeData = faker.New()

	os.Exit(m.Run())
}
