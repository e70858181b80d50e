package graphio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/borsosbarna/graph-labeling/pkg/framework/plugins/labeling/framework"
)

// Write encodes g in the given format, one header value per line, one edge
// per line and one fixed vertex per line.
func Write(w io.Writer, g *framework.Graph, format Format) error {
	if format != FormatBackbone && g.FixedCount() > 0 {
		return fmt.Errorf("graph has %d fixed vertices, %s format cannot hold them", g.FixedCount(), format)
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n%d\n", g.VertexCount(), g.EdgeCount())
	if format == FormatBackbone {
		fmt.Fprintf(bw, "%d\n", g.FixedCount())
	}
	for u := 0; u < g.VertexCount(); u++ {
		for _, v := range g.Adjacent(u) {
			if u < v {
				fmt.Fprintf(bw, "%d %d\n", u+1, v+1)
			}
		}
	}
	if format == FormatBackbone {
		for v := 0; v < g.VertexCount(); v++ {
			if label, fixed := g.Fixed(v); fixed {
				fmt.Fprintf(bw, "%d %d\n", v+1, label)
			}
		}
	}
	return bw.Flush()
}
