// Package tesseract is the boundary to the Tesseract OCR engine.
//
// The engine is a black box: it receives a raster image and recognition
// options and returns raw text. Command runs the tesseract executable,
// the libtess subpackage links libtesseract through gosseract.
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
)

const (
	// DefaultLanguage recognizes Japanese and English
	DefaultLanguage = "jpn+eng"
	// DefaultPageSegMode assumes a single uniform block of text
	DefaultPageSegMode = 6
	// EngineModeLSTM restricts recognition to the neural net engine
	EngineModeLSTM = 1
)

// Request holds one recognition call
type Request struct {
	Image       image.Image
	Language    string
	PageSegMode int
	EngineMode  int
	// PreserveInterwordSpaces keeps runs of spaces between words
	PreserveInterwordSpaces bool
}

// NewRequest returns a request with the default options for img
func NewRequest(img image.Image, language string, psm int) Request {
	if language == "" {
		language = DefaultLanguage
	}
	return Request{
		Image:                   img,
		Language:                language,
		PageSegMode:             psm,
		EngineMode:              EngineModeLSTM,
		PreserveInterwordSpaces: true,
	}
}

// Engine recognizes text in an image
type Engine interface {
	Name() string
	Recognize(ctx context.Context, req Request) (string, error)
}

// EncodeImage returns the request image as PNG bytes
func EncodeImage(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("no image to recognize")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return buf.Bytes(), nil
}

func boolVar(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
