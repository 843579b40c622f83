package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Config carries the language/mode settings handed to the OCR engine.
type Config struct {
	// Languages is the ordered traineddata list. Default covers horizontal
	// and vertical Japanese script.
	Languages []string
	// PageSegMode is the Tesseract page segmentation mode. 6 treats the
	// receipt as a single uniform block of text.
	PageSegMode int
}

// DefaultConfig returns the engine settings for Japanese store receipts.
func DefaultConfig() Config {
	return Config{
		Languages:   []string{"jpn", "jpn_vert"},
		PageSegMode: int(gosseract.PSM_SINGLE_BLOCK),
	}
}

// Engine converts a preprocessed image into raw multi-line text. It is a
// black box to the parser: slow calls and garbled output are expected, only
// the absence of any text is treated as a failure by the pipeline.
type Engine interface {
	Recognize(ctx context.Context, image []byte, cfg Config) (string, error)
}

// Tesseract is the production Engine backed by gosseract. A fresh client is
// created per call and closed after it, so concurrent requests never share
// engine state.
type Tesseract struct{}

// Recognize runs Tesseract over PNG/JPEG bytes and returns its raw text.
func (Tesseract) Recognize(ctx context.Context, image []byte, cfg Config) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}
	client := gosseract.NewClient()
	defer client.Close()
	if len(cfg.Languages) > 0 {
		if err := client.SetLanguage(cfg.Languages...); err != nil {
			return "", fmt.Errorf("set languages: %w", err)
		}
	}
	if cfg.PageSegMode > 0 {
		if err := client.SetPageSegMode(gosseract.PageSegMode(cfg.PageSegMode)); err != nil {
			return "", fmt.Errorf("set page seg mode: %w", err)
		}
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrNoText
	}
	return text, nil
}
