// Package libtess recognizes text through libtesseract using gosseract.
// Building it requires cgo and the tesseract and leptonica headers.
package libtess

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/Hanaasagi/ocrdiff/pkg/tesseract"
)

// Engine recognizes text with a fresh gosseract client per call
type Engine struct {
	tessdataPrefix string
	clientFactory  func() *gosseract.Client
}

// New creates an engine. An empty tessdataPrefix keeps the library default.
func New(tessdataPrefix string) *Engine {
	return &Engine{
		tessdataPrefix: tessdataPrefix,
		clientFactory:  gosseract.NewClient,
	}
}

// Name returns the engine name
func (e *Engine) Name() string { return "library" }

// Recognize performs OCR on the request image.
//
// gosseract initializes the engine with its default mode, so
// req.EngineMode is only honored by traineddata that ship LSTM models
// alone.
func (e *Engine) Recognize(ctx context.Context, req tesseract.Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := tesseract.EncodeImage(req.Image)
	if err != nil {
		return "", err
	}

	client := e.clientFactory()
	defer client.Close() // nolint: errcheck

	if e.tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(e.tessdataPrefix); err != nil {
			return "", fmt.Errorf("set tessdata prefix: %w", err)
		}
	}

	if err := client.SetLanguage(strings.Split(req.Language, "+")...); err != nil {
		return "", fmt.Errorf("set languages: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(req.PageSegMode)); err != nil {
		return "", fmt.Errorf("set page segmentation mode: %w", err)
	}

	preserve := "0"
	if req.PreserveInterwordSpaces {
		preserve = "1"
	}
	if err := client.SetVariable(gosseract.SettableVariable("preserve_interword_spaces"), preserve); err != nil {
		return "", fmt.Errorf("set preserve_interword_spaces: %w", err)
	}

	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	slog.Debug("Recognizing with libtesseract", "language", req.Language, "psm", req.PageSegMode)

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}
