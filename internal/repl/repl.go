// Package repl implements the interactive SHJI host loop.
//
// A session owns one Environment for its whole lifetime. Each unit of input
// is tokenized, parsed and, when no diagnostics were raised (or when debug
// output is on), evaluated. Errors are printed and the loop carries on.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/chzyer/readline"

	"github.com/janelang/shji/internal/cli/output"
	"github.com/janelang/shji/internal/state"
	"github.com/janelang/shji/pkg/eval"
	"github.com/janelang/shji/pkg/parser"
	"github.com/janelang/shji/pkg/runtime"
)

// Default prompts.
const (
	DefaultPrompt         = "jn> "
	DefaultContinuePrompt = "..> "
)

// Options configures a Session.
type Options struct {
	Prompt         string
	ContinuePrompt string
	Debug          bool
	Version        string
	// Source labels the transcript session, e.g. "repl" or a file name.
	Source     string
	Logger     *slog.Logger
	Transcript state.Store
}

// DiagnosticsError is returned by Exec when parsing raised diagnostics.
type DiagnosticsError struct {
	Diagnostics []*parser.ParseError
}

func (e *DiagnosticsError) Error() string {
	if len(e.Diagnostics) == 1 {
		return e.Diagnostics[0].Error()
	}
	return fmt.Sprintf("%d parse errors, first: %s", len(e.Diagnostics), e.Diagnostics[0].Error())
}

// Session is one host loop over a persistent environment.
type Session struct {
	opts      Options
	r         *output.Renderer
	env       *runtime.Environment
	evaluator *eval.Evaluator
	logger    *slog.Logger

	last      string
	sessionID string
}

// New creates a session rendering through r.
func New(r *output.Renderer, opts Options) *Session {
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}
	if opts.ContinuePrompt == "" {
		opts.ContinuePrompt = DefaultContinuePrompt
	}
	if opts.Source == "" {
		opts.Source = "repl"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	env := runtime.NewEnvironment()
	return &Session{
		opts:      opts,
		r:         r,
		env:       env,
		evaluator: eval.New(env, eval.WithLogger(logger)),
		logger:    logger,
	}
}

// Environment returns the session's bindings.
func (s *Session) Environment() *runtime.Environment {
	return s.env
}

// Banner returns the header line printed when the loop starts.
func (s *Session) Banner() string {
	return "SHJI Version " + s.opts.Version
}

// Run reads units from in until `.exit`, end of input or ctx cancellation.
func (s *Session) Run(ctx context.Context, in LineReader) error {
	s.r.Styled(s.r.Styles().Header, s.Banner())
	in.SetPrompt(s.opts.Prompt)

	var unit Unit
	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := in.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			unit.Reset()
			in.SetPrompt(s.opts.Prompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			if !unit.Empty() {
				s.submit(ctx, unit.Flush())
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if unit.Empty() {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if IsDirective(line) {
				if s.directive(ctx, line) {
					return nil
				}
				continue
			}
		}

		unit.Add(line)
		if unit.Incomplete() {
			in.SetPrompt(s.opts.ContinuePrompt)
			continue
		}
		in.SetPrompt(s.opts.Prompt)
		s.submit(ctx, unit.Flush())
	}
}

func (s *Session) submit(ctx context.Context, src string) {
	s.last = src
	_, _ = s.Exec(ctx, src)
}

// Exec runs one unit of source and prints its outcome. The returned error is
// the failure that was printed: a *parser.LexError, a *DiagnosticsError or
// an *eval.RuntimeError.
func (s *Session) Exec(ctx context.Context, src string) (runtime.Value, error) {
	styles := s.r.Styles()
	tz := parser.NewTokenizer(src)
	p := parser.New(tz)

	program, lexErr := p.ParseProgram()
	if lexErr != nil {
		s.r.Error(lexErr)
		s.record(ctx, src, "", lexErr)
		return nil, lexErr
	}
	diags := p.Errors()

	if s.opts.Debug {
		tz.Reset()
		var toks []string
		for tok := range tz.All() {
			toks = append(toks, tok.String())
		}
		s.r.Section("Lexer Output:", styles.Tokens, strings.Join(toks, " "))
		s.r.Section("Parser Output:", styles.Dump, program.Dump())
		s.r.Section("Reconstructed AST:", styles.Source, strings.TrimRight(program.String(), "\n"))
	}

	if len(diags) > 0 {
		for _, d := range diags {
			s.r.Error(d)
		}
		if !s.opts.Debug {
			err := &DiagnosticsError{Diagnostics: diags}
			s.record(ctx, src, "", err)
			return nil, err
		}
	}

	value, err := s.evaluator.Eval(program)
	if err != nil {
		s.r.Error(err)
		s.record(ctx, src, "", err)
		return nil, err
	}

	var rendered string
	if len(program.Statements) > 0 {
		rendered = value.Inspect()
		s.r.Styled(styles.Value, rendered)
	}
	s.record(ctx, src, rendered, nil)
	return value, nil
}

// record appends the unit to the transcript. Store failures are logged and
// switch the transcript off for the rest of the session.
func (s *Session) record(ctx context.Context, src, out string, evalErr error) {
	if s.opts.Transcript == nil {
		return
	}
	if s.sessionID == "" {
		sess, err := s.opts.Transcript.StartSession(ctx, s.opts.Source)
		if err != nil {
			s.logger.Warn("transcript disabled", "error", err)
			s.opts.Transcript = nil
			return
		}
		s.sessionID = sess.ID
	}

	e := &state.Evaluation{SessionID: s.sessionID, Input: src, Output: out}
	if evalErr != nil {
		e.Error = evalErr.Error()
	}
	if err := s.opts.Transcript.RecordEvaluation(ctx, e); err != nil {
		s.logger.Warn("transcript disabled", "error", err)
		s.opts.Transcript = nil
	}
}
