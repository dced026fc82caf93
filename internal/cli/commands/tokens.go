package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/janelang/shji/pkg/parser"
)

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "tokens <file|->",
		Short: "Print the token stream of a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContext(cmd)
			src, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}

			toks, lexErr := parser.Tokenize(src)
			if asJSON {
				rows := make([]map[string]any, 0, len(toks))
				for _, tok := range toks {
					rows = append(rows, map[string]any{
						"type":    tok.Type.String(),
						"literal": tok.Literal,
						"line":    tok.Pos.Line,
						"column":  tok.Pos.Column,
					})
				}
				if err := writeJSON(cc.Renderer.Out(), rows); err != nil {
					return err
				}
			} else {
				t := cc.Renderer.Table()
				t.AppendHeader(table.Row{"#", "Type", "Literal", "Line", "Column"})
				for i, tok := range toks {
					t.AppendRow(table.Row{i, tok.Type.String(), tok.Literal, tok.Pos.Line, tok.Pos.Column})
				}
				t.Render()
			}

			if lexErr != nil {
				cc.Renderer.Error(lexErr)
				return ErrEvaluationFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print tokens as JSON")
	return cmd
}
