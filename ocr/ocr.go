//go:build ocr

// Package ocr produces layout regions for a scanned page image when no
// external layout detector output is available.
//
// This package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr tesseract-ocr-kor
//
// It is compiled only with the "ocr" build tag:
//
//	go build -tags ocr
package ocr

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/ordina/boundary"
	"github.com/tsawler/ordina/model"
)

// Client wraps Tesseract for page-region detection.
type Client struct {
	client *gosseract.Client
	config Config
}

// New creates a new OCR client with default configuration.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a new OCR client with custom configuration.
func NewWithConfig(config Config) (*Client, error) {
	client := gosseract.NewClient()
	if config.Languages != "" {
		if err := client.SetLanguage(strings.Split(config.Languages, "+")...); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set languages: %w", err)
		}
	}
	return &Client{client: client, config: config}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// RecognizeImage performs OCR on image data (PNG, TIFF, JPEG, etc.).
// Returns the recognized text with leading/trailing whitespace trimmed.
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

// DetectRegions recognizes text lines in a page image and converts them into
// layout regions. Lines whose text looks like a question-numbering mark are
// pre-labeled "question_number"; everything else is labeled "text". With no
// layout detector in this path, the recognizer's own confidence stands in
// for the detector confidence.
func (c *Client) DetectRegions(imageData []byte) ([]model.Region, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	regions := make([]model.Region, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}

		class := "text"
		if boundary.MatchesMarker(text) {
			class = "question_number"
		}

		confidence := box.Confidence / 100

		regions = append(regions, model.Region{
			ID:    uuid.NewString(),
			Class: class,
			BBox: model.NewBBox(
				float64(box.Box.Min.X),
				float64(box.Box.Min.Y),
				float64(box.Box.Dx()),
				float64(box.Box.Dy()),
			),
			DetectorConfidence: confidence,
			Text:               text,
			TextConfidence:     confidence,
		})
	}

	return regions, nil
}

// SetPageSegMode sets the page segmentation mode.
// This affects how Tesseract analyzes the page layout.
// See gosseract.PageSegMode constants for available modes.
func (c *Client) SetPageSegMode(mode gosseract.PageSegMode) error {
	return c.client.SetPageSegMode(mode)
}
