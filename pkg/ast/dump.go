package ast

import (
	"strconv"
	"strings"

	"github.com/janelang/shji/pkg/token"
)

// field is one `name value` pair of a node dump.
type field struct {
	name  string
	value string
}

// absent is how a missing optional child is dumped.
const absent = `""`

// render joins fields as `{name value name value}`.
func render(fields ...field) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(f.name)
		sb.WriteByte(' ')
		sb.WriteString(f.value)
	}
	sb.WriteByte('}')
	return sb.String()
}

func tokenField(tok token.Token) field {
	return scalarField("Token", tok.Literal)
}

func scalarField(name, value string) field {
	return field{name: name, value: strconv.Quote(value)}
}

func exprField(name string, e Expr) field {
	if e == nil {
		return field{name: name, value: absent}
	}
	return field{name: name, value: e.Dump()}
}

func identField(name string, id *Identifier) field {
	if id == nil {
		return field{name: name, value: absent}
	}
	return field{name: name, value: id.Dump()}
}

func blockField(name string, b *Block) field {
	if b == nil {
		return field{name: name, value: absent}
	}
	return field{name: name, value: b.Dump()}
}

// listField renders nodes as `[ dump dump]`.
func listField[N Node](name string, nodes []N) field {
	var sb strings.Builder
	sb.WriteByte('[')
	for _, n := range nodes {
		sb.WriteByte(' ')
		sb.WriteString(n.Dump())
	}
	sb.WriteByte(']')
	return field{name: name, value: sb.String()}
}

func stringsField(name string, values []string) field {
	var sb strings.Builder
	sb.WriteByte('[')
	for _, v := range values {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Quote(v))
	}
	sb.WriteByte(']')
	return field{name: name, value: sb.String()}
}
