package ocr

import "errors"

// ErrInvalidImage is returned when the uploaded bytes cannot be decoded as an image.
var ErrInvalidImage = errors.New("invalid or unreadable image")

// ErrNoText is returned when the OCR engine produced no text at all.
var ErrNoText = errors.New("ocr produced no text")
