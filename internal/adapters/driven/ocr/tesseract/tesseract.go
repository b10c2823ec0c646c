// Package tesseract implements OCR by running the tesseract CLI.
package tesseract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/custodia-labs/docdigest/internal/core/ports/driven"
)

// Ensure types implement the interfaces.
var (
	_ driven.OCREngineFactory = (*Factory)(nil)
	_ driven.OCREngine        = (*Engine)(nil)
)

// Default configuration values.
const (
	DefaultCommand = "tesseract"
	DefaultTimeout = 2 * time.Minute
)

var (
	// ErrToolNotFound indicates the tesseract binary is not on PATH.
	ErrToolNotFound = errors.New("tesseract not found")

	// ErrTerminated indicates the engine was already terminated.
	ErrTerminated = errors.New("ocr engine terminated")
)

// Factory creates one Engine per extraction.
type Factory struct {
	command  string
	timeout  time.Duration
	runner   CommandRunner
	lookPath func(string) (string, error)
}

// New creates a factory that runs command (default "tesseract").
func New(command string, timeout time.Duration) *Factory {
	return NewWithRunner(command, timeout, execRunner{}, exec.LookPath)
}

// NewWithRunner creates a factory with an injected runner and PATH lookup.
func NewWithRunner(
	command string,
	timeout time.Duration,
	runner CommandRunner,
	lookPath func(string) (string, error),
) *Factory {
	if command == "" {
		command = DefaultCommand
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Factory{command: command, timeout: timeout, runner: runner, lookPath: lookPath}
}

// CheckAvailable reports whether the tesseract binary can be found.
func (f *Factory) CheckAvailable() error {
	if _, err := f.lookPath(f.command); err != nil {
		return fmt.Errorf("%w: %s", ErrToolNotFound, InstallInstructions())
	}
	return nil
}

// InstallInstructions explains how to install tesseract.
func InstallInstructions() string {
	return "install tesseract (macOS: brew install tesseract; Debian/Ubuntu: apt install tesseract-ocr)"
}

// NewEngine prepares a scratch directory for one recognition.
func (f *Factory) NewEngine(ctx context.Context, opts driven.OCROptions) (driven.OCREngine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	report(opts.Logger, "initializing tesseract", 0)

	if err := f.CheckAvailable(); err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "docdigest-ocr-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}

	report(opts.Logger, "initialized tesseract", 1)
	return &Engine{
		factory: f,
		opts:    opts,
		dir:     dir,
	}, nil
}

// Engine recognises a single image.
type Engine struct {
	factory *Factory
	opts    driven.OCROptions

	mu         sync.Mutex
	dir        string
	terminated bool
}

// Recognize writes image to the scratch directory and runs tesseract on it.
func (e *Engine) Recognize(ctx context.Context, image []byte) (*driven.OCRResult, error) {
	e.mu.Lock()
	if e.terminated {
		e.mu.Unlock()
		return nil, ErrTerminated
	}
	dir := e.dir
	e.mu.Unlock()

	input := filepath.Join(dir, "input")
	if err := os.WriteFile(input, image, 0600); err != nil {
		return nil, fmt.Errorf("write image: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.factory.timeout)
	defer cancel()

	report(e.opts.Logger, "recognizing text", 0)
	out, err := e.factory.runner.Run(ctx, e.factory.command, e.args(input)...)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("recognition timed out after %s: %w", e.factory.timeout, err)
		}
		return nil, err
	}
	report(e.opts.Logger, "recognizing text", 1)

	return &driven.OCRResult{Text: string(out)}, nil
}

func (e *Engine) args(input string) []string {
	args := []string{input, "stdout"}
	if e.opts.Language != "" {
		args = append(args, "-l", e.opts.Language)
	}
	args = append(args, "--oem", strconv.Itoa(e.opts.EngineMode))
	return args
}

// Terminate removes the scratch directory. A second call returns ErrTerminated.
func (e *Engine) Terminate() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.terminated {
		return ErrTerminated
	}
	e.terminated = true
	return os.RemoveAll(e.dir)
}

func report(logger driven.OCRLogger, status string, progress float64) {
	if logger != nil {
		logger(driven.OCRProgress{Status: status, Progress: progress})
	}
}
