package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/sync/errgroup"
)

// Case is one image and its ground truth in a batch manifest
type Case struct {
	Name     string `toml:"name"`
	Image    string `toml:"image"`
	Expected string `toml:"expected"`

	// Optional per case overrides
	Language    string `toml:"language"`
	PageSegMode *int   `toml:"psm"`
}

// Manifest lists the cases of a corpus
type Manifest struct {
	Cases []Case `toml:"case"`
}

// LoadManifest decodes a TOML manifest. Relative paths are resolved against
// the manifest directory and missing names default to the image file name.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("failed to decode TOML manifest: %w", err)
	}

	base := filepath.Dir(path)
	seen := make(map[string]bool, len(m.Cases))

	for i := range m.Cases {
		c := &m.Cases[i]
		if c.Image == "" || c.Expected == "" {
			return nil, fmt.Errorf("case %d: image and expected are required", i+1)
		}

		c.Image = resolvePath(base, c.Image)
		c.Expected = resolvePath(base, c.Expected)

		if c.Name == "" {
			c.Name = strings.TrimSuffix(filepath.Base(c.Image), filepath.Ext(c.Image))
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("case %d: duplicate name %q", i+1, c.Name)
		}
		seen[c.Name] = true
	}

	return &m, nil
}

func resolvePath(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// CaseResult is the outcome of one case. Exactly one of Result and Err is set.
type CaseResult struct {
	Case   Case
	Result *Result
	Err    error
}

// RunBatch evaluates every case with at most jobs runs at a time.
//
// Runs share nothing: each one gets its own work subdirectory named after
// the case. A failed case does not stop the others. Results keep the order
// of cases.
func (p *Pipeline) RunBatch(ctx context.Context, cases []Case, jobs int) []CaseResult {
	if jobs < 1 {
		jobs = 1
	}

	results := make([]CaseResult, len(cases))

	var g errgroup.Group
	g.SetLimit(jobs)

	for i, c := range cases {
		g.Go(func() error {
			opts := p.opts
			opts.WorkDir = filepath.Join(p.opts.WorkDir, c.Name)
			if c.Language != "" {
				opts.Language = c.Language
			}
			if c.PageSegMode != nil {
				opts.PageSegMode = *c.PageSegMode
			}

			res, err := New(p.engine, opts).Run(ctx, c.Image, c.Expected)
			if err != nil {
				slog.Warn("Case failed", "case", c.Name, "error", err)
			}
			results[i] = CaseResult{Case: c, Result: res, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// Summary aggregates the results of a batch
type Summary struct {
	Total     int
	Failed    int
	MeanRatio float64
}

// Summarize computes the mean similarity over the successful cases
func Summarize(results []CaseResult) Summary {
	s := Summary{Total: len(results)}
	sum := 0.0
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
			continue
		}
		sum += r.Result.Diff.Ratio
	}
	if ok := s.Total - s.Failed; ok > 0 {
		s.MeanRatio = sum / float64(ok)
	}
	return s
}
