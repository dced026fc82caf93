package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/janelang/shji/internal/cli/config"
	"github.com/janelang/shji/internal/cli/output"
	"github.com/janelang/shji/internal/repl"
	"github.com/janelang/shji/internal/state"
)

// ErrEvaluationFailed is returned once a failure has already been printed.
var ErrEvaluationFailed = errors.New("evaluation failed")

// stdinArg selects standard input as the program source.
const stdinArg = "-"

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext collects the loaded config, the logger and a renderer for cmd.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Color),
	}
}

// SessionOptions maps the configuration onto REPL session options.
func (c *CommandContext) SessionOptions(version, source string) repl.Options {
	return repl.Options{
		Prompt:         c.Cfg.Prompt,
		ContinuePrompt: c.Cfg.ContinuePrompt,
		Debug:          c.Cfg.Debug,
		Version:        version,
		Source:         source,
		Logger:         c.Logger,
	}
}

// OpenTranscript opens the configured transcript store. It returns a nil
// store and a no-op cleanup when transcripts are disabled.
func (c *CommandContext) OpenTranscript() (state.Store, func(), error) {
	if !c.Cfg.TranscriptEnabled() {
		return nil, func() {}, nil
	}
	store, cleanup, err := openTranscript(c.Cfg.Transcript, c.Logger)
	if err != nil {
		return nil, nil, err
	}
	return store, cleanup, nil
}

func openTranscript(path string, logger *slog.Logger) (*state.SQLiteStore, func(), error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create transcript directory: %w", err)
		}
	}

	store := state.NewSQLiteStore(logger)
	if err := store.Open(path); err != nil {
		return nil, nil, err
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

// getConfig returns the loaded configuration, or the defaults when the root
// command did not load one (e.g. a subcommand executed on its own in tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

// readSource reads a program from path, or from stdin when path is "-".
func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == stdinArg {
		in := cmd.InOrStdin()
		if output.IsTerminal(in) {
			return "", fmt.Errorf("refusing to read a program from a terminal; pipe it in or pass a file")
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// sourceName labels a program source for transcripts and messages.
func sourceName(path string) string {
	if path == stdinArg {
		return "stdin"
	}
	return filepath.Base(path)
}
