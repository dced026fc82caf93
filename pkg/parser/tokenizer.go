package parser

import (
	"iter"
	"unicode/utf8"

	"github.com/janelang/shji/pkg/token"
)

// Tokenizer scans Jane source text into tokens.
//
// A Tokenizer is single-owner state: it is driven either one token at a
// time through NextToken or as a restartable sequence through All.
type Tokenizer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // column of ch (0-based)

	err  *LexError
	done bool
}

// NewTokenizer creates a new Tokenizer for the given input.
func NewTokenizer(input string) *Tokenizer {
	t := &Tokenizer{input: input}
	t.Reset()
	return t
}

// Reset rewinds all scanning state to the beginning of the input.
func (t *Tokenizer) Reset() {
	t.pos = 0
	t.readPos = 0
	t.ch = 0
	t.line = 1
	t.col = -1
	t.err = nil
	t.done = false
	t.readChar()
}

// Err returns the lexical failure that stopped the scan, if any.
func (t *Tokenizer) Err() error {
	if t.err == nil {
		return nil
	}
	return t.err
}

// All rewinds the tokenizer and yields every token up to and including EOF.
func (t *Tokenizer) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		t.Reset()
		for {
			tok := t.NextToken()
			if !yield(tok) || tok.Type == token.EOF {
				return
			}
		}
	}
}

// readChar advances to the next character.
func (t *Tokenizer) readChar() {
	if t.ch == '\n' {
		t.line++
		t.col = 0
	} else {
		t.col++
	}

	if t.readPos >= len(t.input) {
		t.ch = 0 // ASCII NUL = EOF
	} else {
		t.ch = t.input[t.readPos]
	}
	t.pos = t.readPos
	t.readPos++
}

// peekChar returns the next character without advancing.
func (t *Tokenizer) peekChar() byte {
	if t.readPos >= len(t.input) {
		return 0
	}
	return t.input[t.readPos]
}

func (t *Tokenizer) currentPos() token.Position {
	return token.Position{Line: t.line, Column: t.col}
}

// NextToken returns the next token. Once EOF has been returned every
// further call returns EOF again.
func (t *Tokenizer) NextToken() token.Token {
	if t.done {
		return token.Token{Type: token.EOF, Pos: t.currentPos()}
	}

	t.skipWhitespace()

	pos := t.currentPos()
	var tok token.Token

	switch t.ch {
	case 0:
		t.done = true
		return token.Token{Type: token.EOF, Pos: pos}
	case '\n':
		tok = t.newToken(token.EOL, "\n")
	case '=':
		switch t.peekChar() {
		case '=':
			tok = t.newTwoCharToken(token.EQ)
		case '>':
			tok = t.newTwoCharToken(token.DOUBLE_ARROW)
		default:
			tok = t.newToken(token.ASSIGN, "=")
		}
	case '+':
		if t.peekChar() == '+' {
			tok = t.newTwoCharToken(token.INCREMENT)
		} else {
			tok = t.newToken(token.PLUS, "+")
		}
	case '-':
		switch t.peekChar() {
		case '-':
			tok = t.newTwoCharToken(token.DECREMENT)
		case '>':
			tok = t.newTwoCharToken(token.SINGLE_ARROW)
		default:
			tok = t.newToken(token.MINUS, "-")
		}
	case '!':
		if t.peekChar() == '=' {
			tok = t.newTwoCharToken(token.NOT_EQ)
		} else {
			tok = t.newToken(token.BANG, "!")
		}
	case '<':
		if t.peekChar() == '=' {
			tok = t.newTwoCharToken(token.LTE)
		} else {
			tok = t.newToken(token.LT, "<")
		}
	case '>':
		if t.peekChar() == '=' {
			tok = t.newTwoCharToken(token.GTE)
		} else {
			tok = t.newToken(token.GT, ">")
		}
	case '*':
		tok = t.newToken(token.ASTERISK, "*")
	case '/':
		tok = t.newToken(token.SLASH, "/")
	case '^':
		tok = t.newToken(token.HAT, "^")
	case '~':
		tok = t.newToken(token.TILDE, "~")
	case '?':
		tok = t.newToken(token.QUESTION, "?")
	case ',':
		tok = t.newToken(token.COMMA, ",")
	case ';':
		tok = t.newToken(token.SEMICOLON, ";")
	case ':':
		tok = t.newToken(token.COLON, ":")
	case '(':
		tok = t.newToken(token.LPAREN, "(")
	case ')':
		tok = t.newToken(token.RPAREN, ")")
	case '{':
		tok = t.newToken(token.LBRACE, "{")
	case '}':
		tok = t.newToken(token.RBRACE, "}")
	case '[':
		tok = t.newToken(token.LBRACKET, "[")
	case ']':
		tok = t.newToken(token.RBRACKET, "]")
	case '"', '\'':
		t.err = &LexError{Pos: pos, Message: ErrStringLiteral}
		t.done = true
		return token.Token{Type: token.EOF, Pos: pos}
	default:
		switch {
		case isLetter(t.ch):
			literal := t.readIdentifier()
			return token.Token{Type: token.LookupIdent(literal), Literal: literal, Pos: pos}
		case isDigit(t.ch):
			return token.Token{Type: token.INT, Literal: t.readNumber(), Pos: pos}
		default:
			tok = t.newToken(token.ILLEGAL, t.readIllegal())
		}
	}

	tok.Pos = pos
	t.readChar()
	return tok
}

// readIllegal spells the unknown character under the cursor. A multi-byte
// UTF-8 sequence is kept whole and the cursor is left on its last byte.
func (t *Tokenizer) readIllegal() string {
	if t.ch < utf8.RuneSelf {
		return string([]byte{t.ch})
	}
	r, size := utf8.DecodeRuneInString(t.input[t.pos:])
	if r == utf8.RuneError {
		return string([]byte{t.ch})
	}
	for range size - 1 {
		t.readChar()
	}
	return string(r)
}

func (t *Tokenizer) newToken(typ token.TokenType, literal string) token.Token {
	return token.Token{Type: typ, Literal: literal}
}

// newTwoCharToken consumes the lookahead character and returns a token
// spelled by both.
func (t *Tokenizer) newTwoCharToken(typ token.TokenType) token.Token {
	first := t.ch
	t.readChar()
	return token.Token{Type: typ, Literal: string([]byte{first, t.ch})}
}

// skipWhitespace skips spaces, tabs and carriage returns. Newlines are
// significant and are not skipped.
func (t *Tokenizer) skipWhitespace() {
	for t.ch == ' ' || t.ch == '\t' || t.ch == '\r' {
		t.readChar()
	}
}

// readIdentifier reads an identifier. After the first character hyphens
// and dots are allowed so that flag names and dotted paths stay whole.
func (t *Tokenizer) readIdentifier() string {
	start := t.pos
	for isLetter(t.ch) || isDigit(t.ch) || t.ch == '-' || t.ch == '.' {
		t.readChar()
	}
	return t.input[start:t.pos]
}

// readNumber reads a maximal run of decimal digits.
func (t *Tokenizer) readNumber() string {
	start := t.pos
	for isDigit(t.ch) {
		t.readChar()
	}
	return t.input[start:t.pos]
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// Tokenize returns every token of input up to and including EOF, along with
// the lexical failure that cut the scan short, if any.
func Tokenize(input string) ([]token.Token, error) {
	t := NewTokenizer(input)
	var tokens []token.Token
	for tok := range t.All() {
		tokens = append(tokens, tok)
	}
	return tokens, t.Err()
}
