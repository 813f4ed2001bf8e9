//go:build !nolibtess

package main

import (
	"github.com/Hanaasagi/ocrdiff/pkg/tesseract"
	"github.com/Hanaasagi/ocrdiff/pkg/tesseract/libtess"
)

func newLibraryEngine(tessdataPrefix string) (tesseract.Engine, error) {
	return libtess.New(tessdataPrefix), nil
}
