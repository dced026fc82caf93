package commands

import (
	"github.com/spf13/cobra"

	"github.com/janelang/shji/internal/cli/output"
	"github.com/janelang/shji/internal/repl"
)

// NewREPLCommand creates the interactive read-eval-print loop command.
func NewREPLCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive interpreter",
		Long: `Start the SHJI read-eval-print loop.

End a line with \ or leave a { open to continue on the next line.
Directives:
  .exit     leave the loop
  .repeat   run the previous input again
  .clear    forget every variable`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunREPL(cmd, version)
		},
	}
}

// RunREPL runs the loop on cmd's streams. A terminal gets line editing and
// history; anything else is read line by line.
func RunREPL(cmd *cobra.Command, version string) error {
	cc := NewCommandContext(cmd)

	store, cleanup, err := cc.OpenTranscript()
	if err != nil {
		return err
	}
	defer cleanup()

	opts := cc.SessionOptions(version, "repl")
	opts.Transcript = store
	session := repl.New(cc.Renderer, opts)

	var in repl.LineReader
	if output.IsTerminal(cmd.InOrStdin()) {
		in, err = repl.NewReadline(opts.Prompt, cc.Cfg.HistoryFile)
		if err != nil {
			return err
		}
	} else {
		in = repl.NewScanner(cmd.InOrStdin())
	}
	defer func() { _ = in.Close() }()

	cc.Logger.Debug("repl started", "debug", opts.Debug, "transcript", cc.Cfg.Transcript)
	return session.Run(cmd.Context(), in)
}
