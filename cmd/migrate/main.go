package main

import (
	"context"
	"os"

	_ "github.com/go-sql-driver/mysql"

	"github.com/picstream/picstream-go/internal/config"
	"github.com/picstream/picstream-go/internal/db"
	"github.com/picstream/picstream-go/internal/logger"
	"github.com/picstream/picstream-go/internal/migration"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()

	database, err := initDb(ctx, cfg)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Warnf(ctx, "DB close error: %v", err)
		}
	}()

	if err := migration.MigrateUp(database.DB); err != nil {
		logger.Errorf(ctx, "❌  Migration up failed: %v", err)
		os.Exit(1)
	}

	logger.Info(ctx, "✅  Migrations applied successfully")
}

func initDb(ctx context.Context, cfg *config.Settings) (*db.Database, error) {
	// golang-migrate runs multi-statement files
	return db.New(ctx, cfg.MariaDBDSN+"&multiStatements=true", cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime)
}
