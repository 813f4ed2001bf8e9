package main

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/Hanaasagi/ocrdiff/internal/pipeline"
	"github.com/Hanaasagi/ocrdiff/internal/report"
	"github.com/Hanaasagi/ocrdiff/pkg/imageprep"
	"github.com/Hanaasagi/ocrdiff/pkg/tesseract"
)

const (
	EngineCommand = "command"
	EngineLibrary = "library"
)

type Config struct {
	Preprocess imageprep.Config `toml:"preprocess"`
	OCR        OCRConfig        `toml:"ocr"`
	Output     OutputConfig     `toml:"output"`
	Colors     ColorConfig      `toml:"colors"`
}

type OCRConfig struct {
	Language       string `toml:"language"`
	PSM            int    `toml:"psm"`
	Engine         string `toml:"engine"` // "command" or "library"
	TesseractCmd   string `toml:"tesseract_cmd"`
	TessdataPrefix string `toml:"tessdata_prefix"`
}

type OutputConfig struct {
	WorkDir       string `toml:"work_dir"`
	SaveArtifacts bool   `toml:"save_artifacts"`
	IgnoreSpaces  bool   `toml:"ignore_spaces"`
	CharDiff      bool   `toml:"char_diff"`
	ShowUnchanged bool   `toml:"show_unchanged"`
	Color         string `toml:"color"` // "auto", "always" or "never"
}

type ColorConfig struct {
	Added   string `toml:"added"`
	Removed string `toml:"removed"`
	Marker  string `toml:"marker"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Preprocess: imageprep.DefaultConfig(),
		OCR: OCRConfig{
			Language:     tesseract.DefaultLanguage,
			PSM:          tesseract.DefaultPageSegMode,
			Engine:       EngineCommand,
			TesseractCmd: tesseract.DefaultCommandPath(),
		},
		Output: OutputConfig{
			WorkDir:       pipeline.DefaultWorkDir,
			SaveArtifacts: true,
			IgnoreSpaces:  true,
			CharDiff:      true,
			ShowUnchanged: false,
			Color:         string(report.ColorAuto),
		},
		Colors: ColorConfig{
			Added:   "green",
			Removed: "red",
			Marker:  "yellow",
		},
	}
}

func LoadConfigFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil // no config file, return defaults
	}

	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("failed to decode TOML config: %w", err)
	}

	return config, nil
}

// Validate rejects values that would only fail halfway through a run
func (c *Config) Validate() error {
	switch c.OCR.Engine {
	case EngineCommand, EngineLibrary:
	default:
		return fmt.Errorf("unknown engine %q (want %s or %s)", c.OCR.Engine, EngineCommand, EngineLibrary)
	}
	if c.OCR.PSM < 0 || c.OCR.PSM > 13 {
		return fmt.Errorf("page segmentation mode %d out of range 0-13", c.OCR.PSM)
	}
	if c.OCR.Language == "" {
		return fmt.Errorf("language must not be empty")
	}
	if _, err := report.ParseColorMode(c.Output.Color); err != nil {
		return err
	}
	if _, err := report.NewStyles(c.Colors.Added, c.Colors.Removed, c.Colors.Marker); err != nil {
		return fmt.Errorf("colors: %w", err)
	}
	return nil
}

func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

func (c *Config) PipelineOptions() pipeline.Options {
	opts := pipeline.DefaultOptions()
	opts.Preprocess = c.Preprocess
	opts.Language = c.OCR.Language
	opts.PageSegMode = c.OCR.PSM
	opts.WorkDir = c.Output.WorkDir
	opts.SaveArtifacts = c.Output.SaveArtifacts
	return opts
}

func (c *Config) ReportOptions() (report.Options, error) {
	styles, err := report.NewStyles(c.Colors.Added, c.Colors.Removed, c.Colors.Marker)
	if err != nil {
		return report.Options{}, err
	}
	return report.Options{
		IgnoreSpaces:  c.Output.IgnoreSpaces,
		CharDiff:      c.Output.CharDiff,
		ShowUnchanged: c.Output.ShowUnchanged,
		Styles:        styles,
	}, nil
}

func (c *Config) ColorMode() report.ColorMode {
	mode, err := report.ParseColorMode(c.Output.Color)
	if err != nil {
		return report.ColorAuto
	}
	return mode
}

// NewEngine builds the configured OCR backend
func (c *Config) NewEngine() (tesseract.Engine, error) {
	switch c.OCR.Engine {
	case EngineCommand, "":
		return tesseract.NewCommand(c.OCR.TesseractCmd, tesseract.WithTessdataPrefix(c.OCR.TessdataPrefix)), nil
	case EngineLibrary:
		return newLibraryEngine(c.OCR.TessdataPrefix)
	default:
		return nil, fmt.Errorf("unknown engine %q", c.OCR.Engine)
	}
}
