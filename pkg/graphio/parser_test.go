package graphio_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/framework"
	"github.com/borsosbarna/graph-labeling/pkg/graphio"
)

func TestParsePlain(t *testing.T) {
	g, err := graphio.ParseString("4\n3\n1 2\n2 3\n3 4\n", graphio.FormatPlain)
	require.NoError(t, err)

	require.Equal(t, 4, g.VertexCount())
	require.Equal(t, 3, g.EdgeCount())
	require.Equal(t, []int{0, 2}, g.Adjacent(1))
	require.Len(t, g.FreeVertices(), 4)
}

func TestParseBackbone(t *testing.T) {
	// Single-line header as well as line-per-value layouts are accepted.
	g, err := graphio.ParseString("5 4 2\n1 2\n2 3\n3 4\n4 5\n2 7\n5 1\n", graphio.FormatBackbone)
	require.NoError(t, err)

	label, fixed := g.Fixed(1)
	require.True(t, fixed)
	require.Equal(t, 7, label)
	label, fixed = g.Fixed(4)
	require.True(t, fixed)
	require.Equal(t, 1, label)
	require.Equal(t, 2, g.FixedCount())
	require.Equal(t, []int{0, 2, 3}, g.FreeVertices())
}

func TestParseDuplicateEdgesCollapse(t *testing.T) {
	g, err := graphio.ParseString("3 3 1 2 2 1 2 3", graphio.FormatPlain)
	require.NoError(t, err)
	require.Equal(t, 2, g.EdgeCount())
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		format   graphio.Format
		wantLine int
		wantErr  error
	}{
		{name: "Empty", input: "", format: graphio.FormatPlain},
		{name: "NotANumber", input: "3\n2\n1 x\n", format: graphio.FormatPlain, wantLine: 3},
		{name: "ZeroVertices", input: "0\n0\n", format: graphio.FormatPlain, wantLine: 1},
		{name: "NegativeEdgeCount", input: "3\n-1\n", format: graphio.FormatPlain, wantLine: 2},
		{name: "VertexOutOfRange", input: "3\n1\n1 4\n", format: graphio.FormatPlain, wantLine: 3, wantErr: framework.ErrVertexRange},
		{name: "VertexZero", input: "3\n1\n0 2\n", format: graphio.FormatPlain, wantLine: 3, wantErr: framework.ErrVertexRange},
		{name: "SelfLoop", input: "3\n1\n2 2\n", format: graphio.FormatPlain, wantLine: 3, wantErr: framework.ErrSelfLoop},
		{name: "MissingEdge", input: "3\n2\n1 2\n", format: graphio.FormatPlain, wantLine: 3},
		{name: "TrailingData", input: "2\n1\n1 2\n9\n", format: graphio.FormatPlain, wantLine: 4},
		{name: "TooManyFixed", input: "2\n0\n3\n", format: graphio.FormatBackbone, wantLine: 3},
		{name: "FixedLabelZero", input: "2\n1\n1\n1 2\n2 0\n", format: graphio.FormatBackbone, wantLine: 5},
		{name: "FixedTwice", input: "3\n0\n2\n1 4\n1 5\n", format: graphio.FormatBackbone, wantLine: 5},
		{name: "MissingLabel", input: "3\n0\n1\n2\n", format: graphio.FormatBackbone, wantLine: 4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := graphio.ParseString(tc.input, tc.format)
			require.Error(t, err)
			require.ErrorIs(t, err, framework.ErrInputFormat)

			var ferr *framework.InputFormatError
			require.True(t, errors.As(err, &ferr))
			require.Equal(t, tc.wantLine, ferr.Line)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestParseMaxVertices(t *testing.T) {
	g, err := graphio.ParseString("3 2\n1 2\n2 3\n", graphio.FormatPlain, graphio.WithMaxVertices(3))
	require.NoError(t, err)
	require.Equal(t, 3, g.VertexCount())

	_, err = graphio.ParseString("3000000 0 0", graphio.FormatBackbone, graphio.WithMaxVertices(3))
	require.ErrorIs(t, err, framework.ErrInputFormat)
	require.ErrorIs(t, err, graphio.ErrTooManyVertices)

	var ferr *framework.InputFormatError
	require.True(t, errors.As(err, &ferr))
	require.Equal(t, 1, ferr.Line)
	require.Equal(t, 1, ferr.Column)
}

func TestParseFormat(t *testing.T) {
	f, err := graphio.ParseFormat("Backbone")
	require.NoError(t, err)
	require.Equal(t, graphio.FormatBackbone, f)

	_, err = graphio.ParseFormat("csv")
	require.Error(t, err)
}

func TestWriteThenParse(t *testing.T) {
	in := "4\n4\n2\n1 2\n1 4\n2 3\n3 4\n1 3\n4 6\n"
	g, err := graphio.ParseString(in, graphio.FormatBackbone)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, graphio.Write(&buf, g, graphio.FormatBackbone))
	require.Equal(t, in, buf.String())

	require.Error(t, graphio.Write(&buf, g, graphio.FormatPlain))
}
