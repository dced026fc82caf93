package repl

import (
	"slices"

	"github.com/chzyer/readline"

	"github.com/janelang/shji/pkg/token"
)

// LineReader is the line source of the host loop.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

var _ LineReader = (*readline.Instance)(nil)

// NewReadline opens an interactive line editor. An empty historyFile keeps
// history in memory only.
func NewReadline(prompt, historyFile string) (LineReader, error) {
	return readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		AutoComplete:    newCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".exit",
	})
}

// newCompleter completes directives and language keywords.
func newCompleter() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, d := range directiveNames {
		items = append(items, readline.PcItem(d))
	}
	keywords := token.Keywords()
	slices.Sort(keywords)
	for _, kw := range keywords {
		items = append(items, readline.PcItem(kw))
	}
	return readline.NewPrefixCompleter(items...)
}
