package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// PreprocessOptions tune the image pipeline run before OCR.
type PreprocessOptions struct {
	// MinDimension is the resolution floor: when the shorter image side is
	// below it the image is upscaled, since glyph recognition degrades on
	// small photos.
	MinDimension int
	// Contrast is the percentage passed to contrast adjustment.
	Contrast float64
	// SharpenSigma controls the sharpening pass; 0 disables it.
	SharpenSigma float64
	// ThresholdWindow is the (odd) window size of the mean adaptive threshold.
	ThresholdWindow int
	// ThresholdBias is subtracted from the local mean before thresholding.
	ThresholdBias int
}

// DefaultPreprocessOptions returns the settings tuned for receipt photos.
func DefaultPreprocessOptions() PreprocessOptions {
	return PreprocessOptions{
		MinDimension:    1000,
		Contrast:        15,
		SharpenSigma:    0.7,
		ThresholdWindow: 15,
		ThresholdBias:   7,
	}
}

// Preprocess normalizes an uploaded image for OCR: grayscale, contrast and
// sharpen, upscale to the resolution floor, adaptive threshold, PNG encode.
// Pure: identical input and options produce identical output. Undecodable
// data fails with ErrInvalidImage before any OCR work happens.
func Preprocess(data []byte, opts PreprocessOptions) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	gray := imaging.Grayscale(img)
	if opts.Contrast != 0 {
		gray = imaging.AdjustContrast(gray, opts.Contrast)
	}
	if opts.SharpenSigma > 0 {
		gray = imaging.Sharpen(gray, opts.SharpenSigma)
	}
	if opts.MinDimension > 0 {
		w := gray.Bounds().Dx()
		h := gray.Bounds().Dy()
		if w < h && w < opts.MinDimension {
			gray = imaging.Resize(gray, opts.MinDimension, 0, imaging.Lanczos)
		} else if h <= w && h < opts.MinDimension {
			gray = imaging.Resize(gray, 0, opts.MinDimension, imaging.Lanczos)
		}
	}
	out := adaptiveThreshold(gray, opts.ThresholdWindow, opts.ThresholdBias)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode processed image: %w", err)
	}
	return buf.Bytes(), nil
}

// adaptiveThreshold binarizes against the local mean so print separates from
// paper under uneven lighting. Uses an integral image so the window mean is
// O(1) per pixel.
func adaptiveThreshold(img image.Image, window int, bias int) *image.NRGBA {
	if window < 3 {
		window = 3
	}
	if window%2 == 0 {
		window++
	}
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	out := imaging.New(w, h, color.NRGBA{255, 255, 255, 255})
	half := window / 2
	ints := make([]int, w*h)
	for y := 0; y < h; y++ {
		rowSum := 0
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			v := int((r + g + b) / 3 >> 8)
			rowSum += v
			idx := y*w + x
			if y == 0 {
				ints[idx] = rowSum
			} else {
				ints[idx] = ints[(y-1)*w+x] + rowSum
			}
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			x0, y0 := x-half, y-half
			x1, y1 := x+half, y+half
			if x0 < 0 {
				x0 = 0
			}
			if y0 < 0 {
				y0 = 0
			}
			if x1 >= w {
				x1 = w - 1
			}
			if y1 >= h {
				y1 = h - 1
			}
			sum := ints[y1*w+x1]
			if y0 > 0 {
				sum -= ints[(y0-1)*w+x1]
			}
			if x0 > 0 {
				sum -= ints[y1*w+x0-1]
			}
			if y0 > 0 && x0 > 0 {
				sum += ints[(y0-1)*w+x0-1]
			}
			mean := sum / ((x1 - x0 + 1) * (y1 - y0 + 1))
			rv, gv, bv, _ := img.At(x, y).RGBA()
			pix := int((rv + gv + bv) / 3 >> 8)
			th := mean - bias
			if th < 0 {
				th = 0
			}
			if pix < th {
				out.Set(x, y, color.NRGBA{0, 0, 0, 255})
			}
		}
	}
	return out
}
