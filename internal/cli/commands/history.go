package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded evaluations from the transcript",
		Long: `List the most recent evaluations recorded in the transcript database.

The transcript is only written when the transcript setting (or --transcript)
names a SQLite file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContext(cmd)
			if !cc.Cfg.TranscriptEnabled() {
				return fmt.Errorf("no transcript configured; set transcript in shji.yaml or pass --transcript")
			}

			store, cleanup, err := cc.OpenTranscript()
			if err != nil {
				return err
			}
			defer cleanup()

			evals, err := store.ListEvaluations(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cc.Renderer.Out(), evals)
			}
			if len(evals) == 0 {
				cc.Renderer.Println("(no evaluations)")
				return nil
			}

			t := cc.Renderer.Table()
			t.AppendHeader(table.Row{"ID", "Session", "When", "Input", "Result"})
			for _, e := range evals {
				result := e.Output
				if e.Failed() {
					result = "error: " + e.Error
				}
				t.AppendRow(table.Row{
					e.ID,
					shortID(e.SessionID),
					e.CreatedAt.Local().Format(time.DateTime),
					oneLine(e.Input),
					oneLine(result),
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of evaluations to show (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print evaluations as JSON")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// oneLine folds line breaks so multi-line inputs fit a table cell.
func oneLine(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", " ⏎ ")
}
