package commands

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/janelang/shji/pkg/ast"
	"github.com/janelang/shji/pkg/parser"
)

var astFormats = []string{"dump", "source", "stats"}

// NewASTCommand creates the ast command.
func NewASTCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "ast <file|->",
		Short: "Print the syntax tree of a program",
		Long: `Parse a program and print its syntax tree.

Formats:
  dump     structural dump of every node
  source   source text reconstructed from the tree
  stats    node counts per kind`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(astFormats, format) {
				return fmt.Errorf("invalid --format %q (want dump, source or stats)", format)
			}

			cc := NewCommandContext(cmd)
			src, err := readSource(cmd, args[0])
			if err != nil {
				return err
			}

			program, diags, lexErr := parser.Parse(src)
			if lexErr != nil {
				cc.Renderer.Error(lexErr)
				return ErrEvaluationFailed
			}

			styles := cc.Renderer.Styles()
			switch format {
			case "dump":
				cc.Renderer.Styled(styles.Dump, program.Dump())
			case "source":
				cc.Renderer.Styled(styles.Source, strings.TrimRight(program.String(), "\n"))
			case "stats":
				renderNodeStats(cc.Renderer.Table(), program)
			}

			for _, d := range diags {
				cc.Renderer.Error(d)
			}
			if len(diags) > 0 {
				return ErrEvaluationFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dump", "Output format (dump|source|stats)")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return astFormats, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

type nodeCount struct {
	kind  string
	count int
}

// countNodes tallies every node below and including root by its Go type name.
func countNodes(root ast.Node) []nodeCount {
	counts := map[string]int{}
	ast.Walk(root, func(n ast.Node) bool {
		counts[strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")]++
		return true
	})

	out := make([]nodeCount, 0, len(counts))
	for kind, n := range counts {
		out = append(out, nodeCount{kind: kind, count: n})
	}
	slices.SortFunc(out, func(a, b nodeCount) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.kind, b.kind)
	})
	return out
}

func renderNodeStats(t table.Writer, program *ast.Program) {
	counts := countNodes(program)
	total := 0
	t.AppendHeader(table.Row{"Node", "Count"})
	for _, c := range counts {
		t.AppendRow(table.Row{c.kind, c.count})
		total += c.count
	}
	t.AppendFooter(table.Row{"Total", total})
	t.Render()
}
