package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/janelang/shji/internal/cli/output"
	"github.com/janelang/shji/internal/repl"
	"github.com/janelang/shji/pkg/runtime"
)

// RunOptions holds options for the run command.
type RunOptions struct {
	Watch   bool
	DumpEnv string
}

var dumpFormats = []string{"yaml", "json", "table"}

// NewRunCommand creates the run command.
func NewRunCommand(version string) *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run <file|->",
		Short: "Evaluate a program file",
		Long: `Evaluate a whole file as one program and print its result.

Use - to read the program from standard input. With --watch the file is
evaluated again in a fresh environment every time it changes.`,
		Example: `  # Evaluate a file
  shji run examples/power.jn

  # Pipe a program in and dump the final bindings
  echo 'let x = 2 ^ 8' | shji run - --dump-env yaml

  # Re-run on every save
  shji run scratch.jn --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args[0], version, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-run the file whenever it changes")
	cmd.Flags().StringVar(&opts.DumpEnv, "dump-env", "", "Print the final environment (yaml|json|table)")
	_ = cmd.RegisterFlagCompletionFunc("dump-env", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return dumpFormats, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runRun(cmd *cobra.Command, path, version string, opts *RunOptions) error {
	if opts.DumpEnv != "" && !slices.Contains(dumpFormats, opts.DumpEnv) {
		return fmt.Errorf("invalid --dump-env format %q (want yaml, json or table)", opts.DumpEnv)
	}
	if opts.Watch && path == stdinArg {
		return fmt.Errorf("--watch needs a file, not stdin")
	}

	cc := NewCommandContext(cmd)
	store, cleanup, err := cc.OpenTranscript()
	if err != nil {
		return err
	}
	defer cleanup()

	once := func(ctx context.Context) error {
		src, err := readSource(cmd, path)
		if err != nil {
			return err
		}
		sessOpts := cc.SessionOptions(version, sourceName(path))
		sessOpts.Transcript = store
		session := repl.New(cc.Renderer, sessOpts)

		if _, err := session.Exec(ctx, src); err != nil {
			return ErrEvaluationFailed
		}
		if opts.DumpEnv != "" {
			return dumpEnvironment(cc.Renderer, session.Environment(), opts.DumpEnv)
		}
		return nil
	}

	if !opts.Watch {
		return once(cmd.Context())
	}

	w := &fileWatcher{
		path:     path,
		debounce: cc.Cfg.WatchDebounce,
		logger:   cc.Logger,
		onChange: func(ctx context.Context) error {
			cc.Renderer.Styled(cc.Renderer.Styles().Muted, "-- "+sourceName(path)+" --")
			if err := once(ctx); err != nil && !errors.Is(err, ErrEvaluationFailed) {
				cc.Renderer.Error(err)
			}
			return nil
		},
	}
	if err := w.onChange(cmd.Context()); err != nil {
		return err
	}
	return w.Run(cmd.Context())
}

// envEntry is one binding as written by --dump-env. Value holds the native
// Go form so that numbers and booleans keep their type in json and yaml.
type envEntry struct {
	Kind  string `json:"kind" yaml:"kind"`
	Value any    `json:"value" yaml:"value"`
}

func environmentEntries(env *runtime.Environment) map[string]envEntry {
	out := make(map[string]envEntry, env.Len())
	for name, v := range env.Snapshot() {
		out[name] = envEntry{Kind: v.Kind().String(), Value: runtime.Native(v)}
	}
	return out
}

func dumpEnvironment(r *output.Renderer, env *runtime.Environment, format string) error {
	entries := environmentEntries(env)
	switch format {
	case "json":
		return writeJSON(r.Out(), entries)
	case "yaml":
		enc := yaml.NewEncoder(r.Out())
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("failed to encode environment: %w", err)
		}
		return enc.Close()
	default:
		t := r.Table()
		t.AppendHeader(table.Row{"Name", "Kind", "Value"})
		for _, name := range env.Names() {
			v := env.Get(name)
			t.AppendRow(table.Row{name, entries[name].Kind, v.Inspect()})
		}
		t.Render()
		return nil
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
