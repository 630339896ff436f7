package main

import (
	"flag"
	"log"

	"learnhub/internal/config"
	"learnhub/internal/database"
	"learnhub/internal/logger"
)

func main() {
	migrationsDir := flag.String("dir", "database/migrations", "directory holding *.up.sql files")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.NewMigrateOracleDB(cfg.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db, *migrationsDir); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}
