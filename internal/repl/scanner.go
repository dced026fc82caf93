package repl

import (
	"bufio"
	"io"
)

// scannerReader feeds the loop from a non-interactive stream.
type scannerReader struct {
	s *bufio.Scanner
}

// NewScanner returns a LineReader over r that ignores prompts.
func NewScanner(r io.Reader) LineReader {
	return &scannerReader{s: bufio.NewScanner(r)}
}

func (r *scannerReader) Readline() (string, error) {
	if r.s.Scan() {
		return r.s.Text(), nil
	}
	if err := r.s.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (r *scannerReader) SetPrompt(string) {}

func (r *scannerReader) Close() error { return nil }
