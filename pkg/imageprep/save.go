package imageprep

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// EncodePNG writes img to path as PNG, creating the parent directory
func EncodePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating image directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating image file: %w", err)
	}
	defer file.Close() // nolint: errcheck

	writer := bufio.NewWriter(file)
	if err := png.Encode(writer, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("writing png: %w", err)
	}

	return nil
}

// SaveArtifacts writes every artifact as <dir>/<prefix>_<stage>.png and
// returns the written paths in stage order
func SaveArtifacts(dir, prefix string, artifacts []Artifact) ([]string, error) {
	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path := filepath.Join(dir, a.Name(prefix)+".png")
		if err := EncodePNG(path, a.Image); err != nil {
			return paths, fmt.Errorf("saving %s: %w", a.Stage, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
