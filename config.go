package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config collects all environment-driven settings, read once at startup.
type Config struct {
	Port         string
	DBDSN        string // empty disables persistence
	ExcludesFile string // optional keywords file replacing the default vocabulary
	ExtraExclude []string
	Languages    []string
	PageSegMode  int
	ScanLogFile  string
}

func loadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env not found, using process environment")
	}
	cfg := Config{
		Port:         os.Getenv("PORT"),
		DBDSN:        os.Getenv("DB_DSN"),
		ExcludesFile: os.Getenv("EXCLUDES_FILE"),
		ScanLogFile:  os.Getenv("OCR_LOG_FILE"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.ScanLogFile == "" {
		cfg.ScanLogFile = "logs/ocr.log"
	}
	cfg.ExtraExclude = splitList(os.Getenv("EXTRA_EXCLUDE_KEYWORDS"))
	cfg.Languages = splitList(os.Getenv("OCR_LANGUAGES"))
	if len(cfg.Languages) == 0 {
		cfg.Languages = []string{"jpn", "jpn_vert"}
	}
	cfg.PageSegMode = 6
	if v := os.Getenv("OCR_PSM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PageSegMode = n
		} else {
			log.Warn().Str("OCR_PSM", v).Msg("ignoring invalid page seg mode")
		}
	}
	return cfg
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
