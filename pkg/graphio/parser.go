// Package graphio reads and writes the whitespace separated graph file
// format: vertex count, edge count, for the backbone format the fixed vertex
// count, then one 1-based vertex pair per edge and, for the backbone format,
// one (vertex, label) pair per fixed vertex. Line breaks are not significant.
package graphio

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/framework"
)

// Format selects the file layout.
type Format string

const (
	// FormatPlain is V, E and E edges.
	FormatPlain Format = "plain"
	// FormatBackbone is V, E, F, E edges and F fixed labels.
	FormatBackbone Format = "backbone"
)

// ParseFormat resolves a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatPlain, FormatBackbone:
		return f, nil
	}
	return "", fmt.Errorf("unknown graph format %q, want %q or %q", name, FormatPlain, FormatBackbone)
}

// ErrTooManyVertices is wrapped when a graph exceeds WithMaxVertices.
var ErrTooManyVertices = errors.New("too many vertices")

type document struct {
	Numbers []*number `parser:"@@*"`
}

type number struct {
	Pos   lexer.Position
	Value int `parser:"@Int"`
}

var graphLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "whitespace", Pattern: `\s+`},
})

var parseDocument = participle.MustBuild[document](
	participle.Lexer(graphLexer),
)

// ParseOption configures Parse.
type ParseOption func(*parseOptions)

type parseOptions struct {
	maxVertices int
}

// WithMaxVertices rejects graphs declaring more than n vertices before
// anything is allocated for them. Zero means no limit.
func WithMaxVertices(n int) ParseOption {
	return func(o *parseOptions) { o.maxVertices = n }
}

// ParseString parses a graph held in memory.
func ParseString(s string, format Format, opts ...ParseOption) (*framework.Graph, error) {
	return Parse(strings.NewReader(s), format, opts...)
}

// Parse reads a graph in the given format. Every failure is an
// *framework.InputFormatError carrying the offending position when known.
func Parse(r io.Reader, format Format, opts ...ParseOption) (*framework.Graph, error) {
	var o parseOptions
	for _, opt := range opts {
		opt(&o)
	}
	if format != FormatPlain && format != FormatBackbone {
		return nil, &framework.InputFormatError{Err: fmt.Errorf("unknown graph format %q", format)}
	}
	doc, err := parseDocument.Parse("", r)
	if err != nil {
		return nil, syntaxError(err)
	}

	c := &cursor{numbers: doc.Numbers}
	vertexCount, err := c.next("vertex count")
	if err != nil {
		return nil, err
	}
	if vertexCount.Value < 1 {
		return nil, c.errorf(vertexCount, "vertex count must be positive, got %d", vertexCount.Value)
	}
	if o.maxVertices > 0 && vertexCount.Value > o.maxVertices {
		return nil, c.wrap(vertexCount, fmt.Errorf("%w: %d vertices, at most %d allowed", ErrTooManyVertices, vertexCount.Value, o.maxVertices))
	}
	edgeCount, err := c.next("edge count")
	if err != nil {
		return nil, err
	}
	if edgeCount.Value < 0 {
		return nil, c.errorf(edgeCount, "edge count must be non-negative, got %d", edgeCount.Value)
	}
	var fixedCount *number
	if format == FormatBackbone {
		if fixedCount, err = c.next("fixed vertex count"); err != nil {
			return nil, err
		}
		if fixedCount.Value < 0 || fixedCount.Value > vertexCount.Value {
			return nil, c.errorf(fixedCount, "fixed vertex count must be in [0,%d], got %d", vertexCount.Value, fixedCount.Value)
		}
	}

	n := vertexCount.Value
	edges := make([][2]int, 0, min(edgeCount.Value, len(doc.Numbers)))
	for i := 0; i < edgeCount.Value; i++ {
		what := fmt.Sprintf("edge %d", i+1)
		u, err := c.vertex(what, n)
		if err != nil {
			return nil, err
		}
		v, err := c.vertex(what, n)
		if err != nil {
			return nil, err
		}
		if u.Value == v.Value {
			return nil, c.wrap(v, fmt.Errorf("%w: vertex %d", framework.ErrSelfLoop, v.Value))
		}
		edges = append(edges, [2]int{u.Value - 1, v.Value - 1})
	}

	var backbone []int
	if fixedCount != nil {
		backbone = make([]int, n)
		for i := 0; i < fixedCount.Value; i++ {
			what := fmt.Sprintf("fixed vertex %d", i+1)
			v, err := c.vertex(what, n)
			if err != nil {
				return nil, err
			}
			label, err := c.next(what + " label")
			if err != nil {
				return nil, err
			}
			if label.Value < 1 {
				return nil, c.errorf(label, "label of vertex %d must be at least 1, got %d", v.Value, label.Value)
			}
			if backbone[v.Value-1] != 0 {
				return nil, c.errorf(v, "vertex %d is fixed twice", v.Value)
			}
			backbone[v.Value-1] = label.Value
		}
	}

	if extra := c.peek(); extra != nil {
		return nil, c.errorf(extra, "unexpected trailing data %d", extra.Value)
	}

	g, err := framework.NewGraph(n, edges, backbone)
	if err != nil {
		return nil, &framework.InputFormatError{Err: err}
	}
	return g, nil
}

type cursor struct {
	numbers []*number
	pos     int
}

func (c *cursor) peek() *number {
	if c.pos >= len(c.numbers) {
		return nil
	}
	return c.numbers[c.pos]
}

func (c *cursor) next(what string) (*number, error) {
	tok := c.peek()
	if tok == nil {
		err := &framework.InputFormatError{Err: fmt.Errorf("missing %s: unexpected end of input", what)}
		if len(c.numbers) > 0 {
			last := c.numbers[len(c.numbers)-1].Pos
			err.Line, err.Column = last.Line, last.Column
		}
		return nil, err
	}
	c.pos++
	return tok, nil
}

func (c *cursor) vertex(what string, n int) (*number, error) {
	tok, err := c.next(what)
	if err != nil {
		return nil, err
	}
	if tok.Value < 1 || tok.Value > n {
		return nil, c.wrap(tok, fmt.Errorf("%w: %s refers to vertex %d, want [1,%d]", framework.ErrVertexRange, what, tok.Value, n))
	}
	return tok, nil
}

func (c *cursor) errorf(tok *number, format string, args ...any) error {
	return c.wrap(tok, fmt.Errorf(format, args...))
}

func (c *cursor) wrap(tok *number, err error) error {
	return &framework.InputFormatError{Line: tok.Pos.Line, Column: tok.Pos.Column, Err: err}
}

func syntaxError(err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		return &framework.InputFormatError{Line: pos.Line, Column: pos.Column, Err: errors.New(perr.Message())}
	}
	return &framework.InputFormatError{Err: err}
}
