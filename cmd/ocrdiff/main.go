package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"

	"github.com/adrg/xdg"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Hanaasagi/ocrdiff/cmd"
	"github.com/Hanaasagi/ocrdiff/internal/logger"
	"github.com/Hanaasagi/ocrdiff/internal/pipeline"
	"github.com/Hanaasagi/ocrdiff/internal/report"
)

const (
	appName     = "ocrdiff"
	defaultSize = 4096
)

var (
	Version     = "0.1.0"
	CommitSha   = "unknown"
	FullVersion = Version + "-" + CommitSha
)

var (
	appDir            = filepath.Join(xdg.StateHome, appName)
	defaultConfigPath = filepath.Join(xdg.ConfigHome, appName, "config.toml")
)

// App holds what the persistent flags resolve to
type App struct {
	configPath string
	logLevel   string
	logFile    string

	config *Config
}

// Overrides are the per command flags layered over the configuration file
type Overrides struct {
	gray          bool
	binarize      bool
	language      string
	psm           int
	engine        string
	tesseractCmd  string
	workDir       string
	noArtifacts   bool
	ignoreSpaces  bool
	showUnchanged bool
	colorMode     string
}

func (o *Overrides) register(c *cobra.Command) {
	c.Flags().BoolVar(&o.gray, "gray", true, "Convert the image to grayscale before recognition")
	c.Flags().BoolVarP(&o.binarize, "binarize", "b", false, "Apply Otsu binarization (implies --gray)")
	c.Flags().StringVarP(&o.language, "lang", "l", "", "Tesseract language, e.g. jpn+eng")
	c.Flags().IntVar(&o.psm, "psm", 0, "Tesseract page segmentation mode")
	c.Flags().StringVar(&o.engine, "engine", "", "OCR backend: command or library")
	c.Flags().StringVar(&o.tesseractCmd, "tesseract-cmd", "", "Path of the tesseract executable")
	c.Flags().StringVarP(&o.workDir, "work-dir", "w", "", "Directory receiving the intermediate images")
	c.Flags().BoolVar(&o.noArtifacts, "no-artifacts", false, "Do not write intermediate images")
	c.Flags().BoolVar(&o.ignoreSpaces, "ignore-spaces", true, "Exclude half and full width spaces from counts")
	c.Flags().BoolVar(&o.showUnchanged, "show-unchanged", false, "Print unchanged characters in the character diff")
	c.Flags().StringVar(&o.colorMode, "color", "", "Colorize output: auto, always or never")
}

// apply copies every flag given on the command line into cfg
func (o *Overrides) apply(c *cobra.Command, cfg *Config) {
	changed := c.Flags().Changed

	if changed("gray") {
		cfg.Preprocess.ConvertToGray = o.gray
	}
	if changed("binarize") {
		cfg.Preprocess.ApplyBinarization = o.binarize
	}
	if changed("lang") {
		cfg.OCR.Language = o.language
	}
	if changed("psm") {
		cfg.OCR.PSM = o.psm
	}
	if changed("engine") {
		cfg.OCR.Engine = o.engine
	}
	if changed("tesseract-cmd") {
		cfg.OCR.TesseractCmd = o.tesseractCmd
	}
	if changed("work-dir") {
		cfg.Output.WorkDir = o.workDir
	}
	if changed("no-artifacts") {
		cfg.Output.SaveArtifacts = !o.noArtifacts
	}
	if changed("ignore-spaces") {
		cfg.Output.IgnoreSpaces = o.ignoreSpaces
	}
	if changed("show-unchanged") {
		cfg.Output.ShowUnchanged = o.showUnchanged
	}
	if changed("color") {
		cfg.Output.Color = o.colorMode
	}
}

func (a *App) setup() error {
	// .env pins OCRDIFF_LOG and TESSDATA_PREFIX per corpus
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	if _, err := logger.InitLogger(a.logFile, logger.ResolveLevel(a.logLevel)); err != nil {
		return err
	}

	if a.logFile != "-" {
		crashFilePath := filepath.Join(filepath.Dir(a.logFile), "crash")
		if f, err := os.Create(crashFilePath); err == nil {
			_ = debug.SetCrashOutput(f, debug.CrashOptions{})
		}
	}

	config, err := LoadConfigFromFile(a.configPath)
	if err != nil {
		return err
	}
	a.config = config

	slog.Debug("Loaded configuration", "path", a.configPath, "version", FullVersion)
	return nil
}

// prepare applies the overrides and checks the resulting configuration
func (a *App) prepare(c *cobra.Command, o *Overrides) error {
	o.apply(c, a.config)
	if err := a.config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.config.ColorMode().Apply(os.Stdout)
	return nil
}

func (a *App) newPipeline() (*pipeline.Pipeline, error) {
	engine, err := a.config.NewEngine()
	if err != nil {
		return nil, err
	}
	return pipeline.New(engine, a.config.PipelineOptions()), nil
}

// writeOutput stores the report without styling
func writeOutput(target, rendered string) error {
	plain, err := report.Plain(rendered)
	if err != nil {
		return fmt.Errorf("stripping styles: %w", err)
	}

	file, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("creating target file: %w", err)
	}
	defer file.Close() // nolint: errcheck

	writer := bufio.NewWriterSize(file, defaultSize)
	if _, err := writer.WriteString(plain); err != nil {
		return fmt.Errorf("writing to target file: %w", err)
	}
	return writer.Flush()
}

func runOne(ctx context.Context, app *App, w io.Writer, imagePath, expectedPath, target string) error {
	p, err := app.newPipeline()
	if err != nil {
		return err
	}

	res, err := p.Run(ctx, imagePath, expectedPath)
	if err != nil {
		return err
	}

	opts, err := app.config.ReportOptions()
	if err != nil {
		return err
	}

	rendered := report.Render(res, opts)
	if _, err := io.WriteString(w, rendered); err != nil {
		return err
	}

	if target != "" {
		return writeOutput(target, rendered)
	}
	return nil
}

func runBatch(ctx context.Context, app *App, w io.Writer, manifestPath string, jobs int, verbose bool, target string) error {
	manifest, err := pipeline.LoadManifest(manifestPath)
	if err != nil {
		return err
	}

	p, err := app.newPipeline()
	if err != nil {
		return err
	}

	opts, err := app.config.ReportOptions()
	if err != nil {
		return err
	}

	results := p.RunBatch(ctx, manifest.Cases, jobs)

	var rendered string
	if verbose {
		for _, r := range results {
			if r.Err != nil {
				continue
			}
			rendered += color.New(color.Bold).Sprintf("==== %s ====", r.Case.Name) + "\n"
			rendered += report.Render(r.Result, opts)
		}
	}
	rendered += report.RenderSummary(results, opts)

	if _, err := io.WriteString(w, rendered); err != nil {
		return err
	}
	if target != "" {
		if err := writeOutput(target, rendered); err != nil {
			return err
		}
	}

	if s := pipeline.Summarize(results); s.Failed > 0 {
		return fmt.Errorf("%d of %d cases failed", s.Failed, s.Total)
	}
	return nil
}

func newRootCommand() *cobra.Command {
	app := &App{}

	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "Measure OCR accuracy against ground truth transcriptions",
		Long: color.New(color.FgHiMagenta).Sprintf(
			"Run an image through preprocessing and tesseract, then diff the text against its transcription. %s",
			color.New(color.FgBlue).Sprintf("(%s)", FullVersion),
		),
		Version:       FullVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			return app.setup()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&app.configPath, "config", "c", defaultConfigPath, "Configuration file")
	rootCmd.PersistentFlags().StringVar(&app.logLevel, "log-level", "", "Log level: debug, info, warn or error (default $"+logger.EnvLevel+" or info)")
	rootCmd.PersistentFlags().StringVar(&app.logFile, "log-file", filepath.Join(appDir, appName+".log"), `Log file, "-" for stderr`)

	runOverrides := &Overrides{}
	var runTarget string
	runCmd := &cobra.Command{
		Use:   "run IMAGE EXPECTED",
		Short: "Evaluate one image against its expected text",
		Example: "  ocrdiff run input/Japanese_text.png input/Japanese_text.txt\n" +
			"  ocrdiff run -b --psm 4 -l eng page.png page.txt -o report.txt",
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			if err := app.prepare(c, runOverrides); err != nil {
				return err
			}
			return runOne(c.Context(), app, c.OutOrStdout(), args[0], args[1], runTarget)
		},
	}
	runOverrides.register(runCmd)
	runCmd.Flags().StringVarP(&runTarget, "output", "o", "", "Also write the report, without colors, to this file")

	batchOverrides := &Overrides{}
	var (
		batchTarget string
		jobs        int
		verbose     bool
	)
	batchCmd := &cobra.Command{
		Use:     "batch MANIFEST",
		Short:   "Evaluate every case of a TOML manifest",
		Example: "  ocrdiff batch corpus.toml -j 4",
		Args:    cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if err := app.prepare(c, batchOverrides); err != nil {
				return err
			}
			return runBatch(c.Context(), app, c.OutOrStdout(), args[0], jobs, verbose, batchTarget)
		},
	}
	batchOverrides.register(batchCmd)
	batchCmd.Flags().IntVarP(&jobs, "jobs", "j", 1, "Number of cases evaluated at the same time")
	batchCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print the full report of every case")
	batchCmd.Flags().StringVarP(&batchTarget, "output", "o", "", "Also write the output, without colors, to this file")

	configOverrides := &Overrides{}
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			configOverrides.apply(c, app.config)
			return app.config.Encode(c.OutOrStdout())
		},
	}
	configOverrides.register(configCmd)

	rootCmd.AddCommand(runCmd, batchCmd, configCmd)

	rootCmd.SetHelpTemplate(cmd.HelpTemplate)
	rootCmd.SetUsageFunc(func(c *cobra.Command) error {
		return cmd.ColorUsageFunc(c.OutOrStderr(), c)
	})

	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		slog.Error("Error executing command", "error", err)
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), err)
		stop()
		os.Exit(1)
	}
}
