package main

import (
	"os"
	"time"

	"rejiscan/pkg/ocr"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := loadConfig()

	if cfg.DBDSN != "" {
		if err := initDB(cfg.DBDSN); err != nil {
			log.Fatal().Err(err).Msg("failed to connect postgres database")
		}
	} else {
		log.Warn().Msg("DB_DSN not set, scan persistence disabled")
	}

	var err error
	scanLog, err = NewFileScanLog(cfg.ScanLogFile)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.ScanLogFile).Msg("cannot create scan log")
	}

	vocab := buildVocabulary(cfg)
	pipeline = ocr.NewPipeline(ocr.Tesseract{}, vocab, scanLog)
	pipeline.SetConfig(ocr.Config{Languages: cfg.Languages, PageSegMode: cfg.PageSegMode})

	if cfg.ExcludesFile != "" {
		stop, err := pipeline.WatchKeywordsFile(cfg.ExcludesFile, cfg.ExtraExclude)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.ExcludesFile).Msg("keywords watch unavailable")
		} else {
			defer stop()
		}
	}

	r := gin.Default()
	setupRoutes(r)

	log.Info().Str("port", cfg.Port).Strs("languages", cfg.Languages).Msg("starting receipt OCR service")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// buildVocabulary applies the override rules: a keywords file replaces the
// defaults, EXTRA_EXCLUDE_KEYWORDS is always appended.
func buildVocabulary(cfg Config) *ocr.Vocabulary {
	if cfg.ExcludesFile != "" {
		kw, err := ocr.LoadKeywordsFile(cfg.ExcludesFile)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.ExcludesFile).Msg("cannot load exclusion keywords")
		}
		return ocr.VocabularyFromKeywords(append(kw, cfg.ExtraExclude...))
	}
	return ocr.NewVocabulary(cfg.ExtraExclude...)
}
