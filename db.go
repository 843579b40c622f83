package main

import (
	"os"
	"strings"

	"rejiscan/models"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// db is nil when DB_DSN is unset; handlers that need persistence check it.
var db *gorm.DB

func initDB(dsn string) error {
	var err error
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}
	// Control schema migrations with env DB_AUTO_MIGRATE (default true).
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	if shouldMigrate {
		// Migrate models individually so a failure on one doesn't block others
		if err := db.AutoMigrate(&models.Scan{}); err != nil {
			log.Warn().Err(err).Msg("migration warning (scans)")
		}
		if err := db.AutoMigrate(&models.ScanItem{}); err != nil {
			log.Warn().Err(err).Msg("migration warning (scan_items)")
		}
	}
	return nil
}
