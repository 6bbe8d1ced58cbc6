package ocr

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	// Register decoders for formats common in scanned note uploads.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// PreprocessConfig controls image cleanup applied before recognition.
// Handwritten photos benefit from grayscale conversion and a contrast
// boost; very large photos are downscaled to keep recognition fast.
type PreprocessConfig struct {
	// Grayscale converts the image to grayscale.
	Grayscale bool

	// Contrast adjustment percentage in the range (-100, 100).
	// 0 leaves contrast unchanged.
	Contrast float64

	// Sharpen is the sigma for a sharpening pass. 0 disables sharpening.
	Sharpen float64

	// MaxWidth downscales images wider than this many pixels,
	// preserving aspect ratio. 0 disables downscaling.
	MaxWidth int
}

// DefaultPreprocessConfig returns preprocessing defaults tuned for
// phone photos of handwritten pages.
func DefaultPreprocessConfig() PreprocessConfig {
	return PreprocessConfig{
		Grayscale: true,
		Contrast:  15,
		Sharpen:   0.5,
		MaxWidth:  2400,
	}
}

// Preprocess applies the configured cleanup steps and returns the
// resulting image. The input image is not modified.
func Preprocess(img image.Image, config PreprocessConfig) image.Image {
	out := imaging.Clone(img)
	if config.MaxWidth > 0 && out.Bounds().Dx() > config.MaxWidth {
		out = imaging.Resize(out, config.MaxWidth, 0, imaging.Lanczos)
	}
	if config.Grayscale {
		out = imaging.Grayscale(out)
	}
	if config.Contrast != 0 {
		out = imaging.AdjustContrast(out, config.Contrast)
	}
	if config.Sharpen > 0 {
		out = imaging.Sharpen(out, config.Sharpen)
	}
	return out
}

// LoadImage reads an image file from disk. PNG, JPEG, GIF, TIFF, BMP,
// and WebP are supported.
func LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return img, nil
}

// EncodePNG serializes an image as PNG bytes, the format handed to the
// recognition engine.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
