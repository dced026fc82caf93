// Package output renders SHJI host output: coloured sections, errors and tables.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ColorMode selects when ANSI colour is emitted.
type ColorMode string

// Colour modes accepted by the color setting.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates s. The empty string means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
	}
}

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Renderer writes styled output to a pair of writers.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	styles *Styles
}

// NewRenderer creates a renderer. In auto mode colour follows whether out is a TTY.
func NewRenderer(out, errOut io.Writer, mode ColorMode) *Renderer {
	colored := mode == ColorAlways || (mode == ColorAuto && IsTerminal(out))
	return &Renderer{
		out:    out,
		errOut: errOut,
		styles: NewStyles(out, colored),
	}
}

// Out returns the standard output writer.
func (r *Renderer) Out() io.Writer { return r.out }

// ErrOut returns the error output writer.
func (r *Renderer) ErrOut() io.Writer { return r.errOut }

// Styles returns the active style set.
func (r *Renderer) Styles() *Styles { return r.styles }

// Println writes a plain line to Out.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to Out.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Styled writes s rendered with style, followed by a newline.
func (r *Renderer) Styled(style lipgloss.Style, s string) {
	_, _ = fmt.Fprintln(r.out, style.Render(s))
}

// Section writes a bold heading followed by body, both in style.
func (r *Renderer) Section(title string, style lipgloss.Style, body string) {
	_, _ = fmt.Fprintln(r.out, style.Bold(true).Render(title))
	_, _ = fmt.Fprintln(r.out, style.Render(body))
}

// Error writes err in the error style to ErrOut.
func (r *Renderer) Error(err error) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render(err.Error()))
}

// Errorf writes a formatted message in the error style to ErrOut.
func (r *Renderer) Errorf(format string, a ...any) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render(fmt.Sprintf(format, a...)))
}

// Table returns a go-pretty table writer mirrored to Out.
func (r *Renderer) Table() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	return t
}

// Styles is the palette used by the host.
type Styles struct {
	Header  lipgloss.Style
	Tokens  lipgloss.Style
	Dump    lipgloss.Style
	Source  lipgloss.Style
	Value   lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
}

// NewStyles builds the palette for w. Without colour every style renders plain text.
func NewStyles(w io.Writer, colored bool) *Styles {
	re := lipgloss.NewRenderer(w)
	if colored {
		if re.ColorProfile() == termenv.Ascii {
			re.SetColorProfile(termenv.ANSI)
		}
	} else {
		re.SetColorProfile(termenv.Ascii)
	}

	return &Styles{
		Header:  re.NewStyle().Bold(true),
		Tokens:  re.NewStyle().Foreground(lipgloss.Color("3")),
		Dump:    re.NewStyle().Foreground(lipgloss.Color("2")),
		Source:  re.NewStyle().Foreground(lipgloss.Color("4")),
		Value:   re.NewStyle(),
		Error:   re.NewStyle().Foreground(lipgloss.Color("1")),
		Warning: re.NewStyle().Foreground(lipgloss.Color("5")),
		Muted:   re.NewStyle().Faint(true),
	}
}
