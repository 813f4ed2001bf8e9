package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/Hanaasagi/ocrdiff/pkg/imageprep"
	"github.com/Hanaasagi/ocrdiff/pkg/seqdiff"
	"github.com/Hanaasagi/ocrdiff/pkg/tesseract"
	"github.com/Hanaasagi/ocrdiff/pkg/textnorm"
)

const (
	DefaultWorkDir        = "work_image"
	DefaultArtifactPrefix = "work"
)

// Options configures a run
type Options struct {
	Preprocess  imageprep.Config
	Language    string
	PageSegMode int

	// WorkDir receives the stage images. It is created when missing.
	WorkDir        string
	ArtifactPrefix string
	SaveArtifacts  bool
}

// DefaultOptions returns the defaults of a single run
func DefaultOptions() Options {
	return Options{
		Preprocess:     imageprep.DefaultConfig(),
		Language:       tesseract.DefaultLanguage,
		PageSegMode:    tesseract.DefaultPageSegMode,
		WorkDir:        DefaultWorkDir,
		ArtifactPrefix: DefaultArtifactPrefix,
		SaveArtifacts:  true,
	}
}

// Result is the outcome of a successful run
type Result struct {
	RunID string

	// RawActual is the unmodified engine output
	RawActual string
	// Actual and Expected are normalized
	Actual   string
	Expected string

	Diff seqdiff.Report

	// Threshold is the binarization threshold, -1 when not binarized
	Threshold int
	Artifacts []string
	Duration  time.Duration
}

// ActualCount counts the characters of the normalized OCR output
func (r *Result) ActualCount(ignoreSpaces bool) int {
	return textnorm.CountCharacters(r.Actual, ignoreSpaces)
}

// ExpectedCount counts the characters of the normalized ground truth
func (r *Result) ExpectedCount(ignoreSpaces bool) int {
	return textnorm.CountCharacters(r.Expected, ignoreSpaces)
}

// Pipeline evaluates an OCR engine against ground truth transcriptions
type Pipeline struct {
	engine tesseract.Engine
	opts   Options
}

// New creates a pipeline around engine
func New(engine tesseract.Engine, opts Options) *Pipeline {
	if opts.ArtifactPrefix == "" {
		opts.ArtifactPrefix = DefaultArtifactPrefix
	}
	if opts.Language == "" {
		opts.Language = tesseract.DefaultLanguage
	}
	return &Pipeline{engine: engine, opts: opts}
}

// Options returns the run options
func (p *Pipeline) Options() Options {
	return p.opts
}

// Run evaluates one image against its expected text. Every stage runs in
// sequence; the first failure aborts the run.
func (p *Pipeline) Run(ctx context.Context, imagePath, expectedPath string) (*Result, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := slog.With("run_id", runID)

	log.Info("Starting run", "image", imagePath, "expected", expectedPath, "engine", p.engine.Name())

	rawExpected, err := ReadExpected(expectedPath)
	if err != nil {
		return nil, err
	}

	img, format, err := imageprep.DecodeFile(imagePath)
	if err != nil {
		return nil, newError(KindImageDecode, imagePath, err)
	}
	log.Debug("Decoded image", "format", format, "bounds", img.Bounds().String())

	prep := imageprep.Preprocess(img, p.opts.Preprocess)
	log.Debug("Preprocessed image", "stages", len(prep.Artifacts), "threshold", prep.Threshold)

	var artifacts []string
	if p.opts.SaveArtifacts {
		artifacts, err = imageprep.SaveArtifacts(p.opts.WorkDir, p.opts.ArtifactPrefix, prep.Artifacts)
		if err != nil {
			return nil, newError(KindArtifactWrite, p.opts.WorkDir, err)
		}
	}

	req := tesseract.NewRequest(prep.Final, p.opts.Language, p.opts.PageSegMode)
	rawActual, err := p.engine.Recognize(ctx, req)
	if err != nil {
		return nil, newError(KindOCREngine, imagePath, err)
	}

	actual := textnorm.Normalize(rawActual)
	expected := textnorm.Normalize(rawExpected)
	diff := seqdiff.CompareText(actual, expected)

	res := &Result{
		RunID:     runID,
		RawActual: rawActual,
		Actual:    actual,
		Expected:  expected,
		Diff:      diff,
		Threshold: prep.Threshold,
		Artifacts: artifacts,
		Duration:  time.Since(start),
	}

	log.Info("Finished run", "similarity", diff.Ratio, "duration", res.Duration)
	return res, nil
}

// ReadExpected reads a ground truth file verbatim
func ReadExpected(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", newError(KindFileNotFound, path, fs.ErrNotExist)
		}
		return "", fmt.Errorf("reading expected text: %w", err)
	}
	return string(data), nil
}
