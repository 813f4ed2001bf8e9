package pipeline

import (
	"errors"
	"fmt"
)

// Kind classifies a fatal pipeline error
type Kind string

const (
	KindImageDecode   Kind = "IMAGE_DECODE"
	KindFileNotFound  Kind = "FILE_NOT_FOUND"
	KindOCREngine     Kind = "OCR_ENGINE_FAILURE"
	KindArtifactWrite Kind = "ARTIFACT_WRITE"
)

// Error aborts a run. Runs are never retried.
type Error struct {
	Kind  Kind
	Path  string
	Cause error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Path != "" {
		msg += fmt.Sprintf(": %s", e.Path)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(kind Kind, path string, cause error) *Error {
	return &Error{Kind: kind, Path: path, Cause: cause}
}

// KindOf returns the kind of err, or "" when err is not a pipeline error
func KindOf(err error) Kind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return ""
}

// IsKind reports whether err is a pipeline error of the given kind
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
