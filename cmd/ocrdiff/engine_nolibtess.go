//go:build nolibtess

package main

import (
	"errors"

	"github.com/Hanaasagi/ocrdiff/pkg/tesseract"
)

func newLibraryEngine(string) (tesseract.Engine, error) {
	return nil, errors.New("built with nolibtess, the library engine is unavailable")
}
