// Package parser provides whole-program parsing using Participle v2.
// Grammar is defined as Go structs with tags.
//
// The engine itself consumes raw characters one at a time and never
// needs a parse; this package serves the file runner and structured
// listings, where the loop nesting is worth recovering up front.
package parser

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/picobf/picobf/pkg/ops"
)

// Program is the top-level AST node: a flat sequence of items.
type Program struct {
	Items []*Item `parser:"@@*"`
}

// Item is a single operation or a bracketed loop.
type Item struct {
	Op   *string `parser:"  @Op"`
	Loop *Loop   `parser:"| @@"`
}

// Loop is a bracketed body of items.
type Loop struct {
	Body []*Item `parser:"'[' @@* ']'"`
}

var bfLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Op", Pattern: `[+\-<>.,]`},
	{Name: "Bracket", Pattern: `[\[\]]`},

	// Everything else is commentary.
	{Name: "Comment", Pattern: `[^+\-<>.,\[\]]+`},
})

// Parser is the program parser.
var Parser = participle.MustBuild[Program](
	participle.Lexer(bfLexer),
	participle.Elide("Comment"),
)

// Parse parses program source into an AST. Unlike the engine's
// feed path, unbalanced brackets are an error here.
func Parse(source string) (*Program, error) {
	return Parser.ParseString("", source)
}

// Ops flattens the program back to its feedable character sequence,
// with all commentary stripped.
func (p *Program) Ops() []byte {
	var out []byte
	for _, item := range p.Items {
		out = item.ops(out)
	}
	return out
}

func (i *Item) ops(out []byte) []byte {
	switch {
	case i.Op != nil:
		out = append(out, (*i.Op)[0])
	case i.Loop != nil:
		out = append(out, '[')
		for _, item := range i.Loop.Body {
			out = item.ops(out)
		}
		out = append(out, ']')
	}
	return out
}

// Listing renders the loop structure, one operation per line,
// indented by nesting depth.
func (p *Program) Listing() string {
	var b strings.Builder
	writeItems(&b, p.Items, 0)
	return b.String()
}

func writeItems(b *strings.Builder, items []*Item, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, item := range items {
		switch {
		case item.Op != nil:
			c := (*item.Op)[0]
			op, _ := ops.Decode(c)
			fmt.Fprintf(b, "%s%c  %s\n", indent, c, op)
		case item.Loop != nil:
			fmt.Fprintf(b, "%s[\n", indent)
			writeItems(b, item.Loop.Body, depth+1)
			fmt.Fprintf(b, "%s]\n", indent)
		}
	}
}
