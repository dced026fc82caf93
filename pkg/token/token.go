// Package token defines the lexical token kinds of the Jane language.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // token.TokenType reads clearly at call sites
type TokenType int32

//nolint:revive // ALL_CAPS kind names follow the lexer tradition
const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF
	EOL // "\n", acts as a statement terminator

	// Literals
	IDENT // add, foo_bar, x.y, --flag
	INT   // 12345

	// Operators
	ASSIGN       // =
	PLUS         // +
	MINUS        // -
	BANG         // !
	ASTERISK     // *
	SLASH        // /
	HAT          // ^
	TILDE        // ~
	QUESTION     // ?
	LT           // <
	GT           // >
	LTE          // <=
	GTE          // >=
	EQ           // ==
	NOT_EQ       // !=
	INCREMENT    // ++
	DECREMENT    // --
	SINGLE_ARROW // ->
	DOUBLE_ARROW // =>

	// Delimiters
	COMMA     // ,
	SEMICOLON // ;
	COLON     // :
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]

	// Keywords
	FUNCTION
	LET
	TRUE
	FALSE
	IF
	ELSE
	RETURN
	FOR
	IN
	ABYSS
)

var tokenNames = map[TokenType]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	EOL:     "EOL",

	IDENT: "IDENT",
	INT:   "INT",

	ASSIGN:       "=",
	PLUS:         "+",
	MINUS:        "-",
	BANG:         "!",
	ASTERISK:     "*",
	SLASH:        "/",
	HAT:          "^",
	TILDE:        "~",
	QUESTION:     "?",
	LT:           "<",
	GT:           ">",
	LTE:          "<=",
	GTE:          ">=",
	EQ:           "==",
	NOT_EQ:       "!=",
	INCREMENT:    "++",
	DECREMENT:    "--",
	SINGLE_ARROW: "->",
	DOUBLE_ARROW: "=>",

	COMMA:     ",",
	SEMICOLON: ";",
	COLON:     ":",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	LBRACKET:  "[",
	RBRACKET:  "]",

	FUNCTION: "FUNCTION",
	LET:      "LET",
	TRUE:     "TRUE",
	FALSE:    "FALSE",
	IF:       "IF",
	ELSE:     "ELSE",
	RETURN:   "RETURN",
	FOR:      "FOR",
	IN:       "IN",
	ABYSS:    "ABYSS",
}

// String returns the string representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// IsKeyword reports whether t is one of the reserved words.
func (t TokenType) IsKeyword() bool {
	return t >= FUNCTION && t <= ABYSS
}

// IsTerminator reports whether t ends a statement.
func (t TokenType) IsTerminator() bool {
	return t == EOL || t == SEMICOLON
}

var keywords = map[string]TokenType{
	"fn":     FUNCTION,
	"let":    LET,
	"true":   TRUE,
	"false":  FALSE,
	"if":     IF,
	"else":   ELSE,
	"return": RETURN,
	"for":    FOR,
	"in":     IN,
	"abyss":  ABYSS,
}

// LookupIdent returns the keyword token type for ident, or IDENT if ident
// is not reserved.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Keywords returns the reserved words in no particular order.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for k := range keywords {
		out = append(out, k)
	}
	return out
}

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// String renders the token the way debug tooling prints it.
func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Literal: %q, Line: %d, Column: %d}", t.Type, t.Literal, t.Pos.Line, t.Pos.Column)
}
