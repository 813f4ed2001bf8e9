package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

const (
	defaultCommand        = "tesseract"
	defaultWindowsCommand = `C:\Program Files\Tesseract-OCR\tesseract.exe`
)

// DefaultCommandPath returns the executable looked up when none is configured
func DefaultCommandPath() string {
	if runtime.GOOS == "windows" {
		return defaultWindowsCommand
	}
	return defaultCommand
}

// Command runs the tesseract executable, feeding the image on stdin and
// reading the text from stdout
type Command struct {
	path           string
	tessdataPrefix string
}

// CommandOption configures a Command
type CommandOption func(*Command)

// WithTessdataPrefix points the engine at a tessdata directory
func WithTessdataPrefix(prefix string) CommandOption {
	return func(c *Command) {
		c.tessdataPrefix = prefix
	}
}

// NewCommand creates an engine for the executable at path.
// An empty path selects DefaultCommandPath.
func NewCommand(path string, opts ...CommandOption) *Command {
	if path == "" {
		path = DefaultCommandPath()
	}

	c := &Command{path: path}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the engine name
func (c *Command) Name() string { return "command" }

// Path returns the executable path
func (c *Command) Path() string { return c.path }

// Args returns the command line arguments for req
func (c *Command) Args(req Request) []string {
	args := []string{"stdin", "stdout"}
	if c.tessdataPrefix != "" {
		args = append(args, "--tessdata-dir", c.tessdataPrefix)
	}
	args = append(args,
		"-l", req.Language,
		"--psm", strconv.Itoa(req.PageSegMode),
		"--oem", strconv.Itoa(req.EngineMode),
		"-c", "preserve_interword_spaces="+boolVar(req.PreserveInterwordSpaces),
	)
	return args
}

// Recognize runs the executable once for req
func (c *Command) Recognize(ctx context.Context, req Request) (string, error) {
	data, err := EncodeImage(req.Image)
	if err != nil {
		return "", err
	}

	args := c.Args(req)
	slog.Debug("Running tesseract", "path", c.path, "args", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, c.path, args...)
	cmd.Stdin = bytes.NewReader(data)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("running %s: %w (stderr: %s)", c.path, err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}
