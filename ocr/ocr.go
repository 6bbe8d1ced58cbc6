//go:build ocr

// Package ocr extracts word-level text detections from page images.
//
// This package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/inkgraph/model"
)

// Client wraps Tesseract for OCR operations.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	client := gosseract.NewClient()
	return &Client{client: client}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified as a "+" separated string (e.g., "eng+fra").
// Default is "eng" (English).
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// SetPageSegMode sets the page segmentation mode.
// This affects how Tesseract analyzes the page layout.
// See gosseract.PageSegMode constants for available modes.
func (c *Client) SetPageSegMode(mode gosseract.PageSegMode) error {
	return c.client.SetPageSegMode(mode)
}

// DetectWords performs OCR on image data (PNG, TIFF, JPEG, etc.) and
// returns one text detection per recognized word, with pixel-space
// bounding boxes and confidence scaled to [0,1]. Empty words are
// dropped.
func (c *Client) DetectWords(imageData []byte) ([]model.Detection, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	detections := make([]model.Detection, 0, len(boxes))
	for _, box := range boxes {
		word := strings.TrimSpace(box.Word)
		if word == "" {
			continue
		}
		detections = append(detections, model.Detection{
			Kind: model.KindText,
			Text: word,
			BBox: model.BBox{
				X1: float64(box.Box.Min.X),
				Y1: float64(box.Box.Min.Y),
				X2: float64(box.Box.Max.X),
				Y2: float64(box.Box.Max.Y),
			},
			Confidence: box.Confidence / 100,
		})
	}
	return detections, nil
}

// RecognizeImage performs OCR on image data and returns the recognized
// text with leading/trailing whitespace trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}
