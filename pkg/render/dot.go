// Package render turns a generated complex into Graphviz output.
//
// ToDOT emits an undirected DOT graph with the generator's grid positions
// pinned, so the rendered picture matches the layout the TUI shows. The
// RenderSVG and RenderPNG helpers rasterize the DOT through
// goccy/go-graphviz with the neato engine (which honors pinned positions).
package render

import (
	"bytes"
	"fmt"

	"github.com/mwessel/phigrid/pkg/metric"
	"github.com/mwessel/phigrid/pkg/system"
)

// Architecture fill colors, chosen to match the TUI bands: integrated is
// scored high, random medium, modular low.
var archFill = map[system.Architecture]string{
	system.ArchIntegrated: "#7bd88f",
	system.ArchRandom:     "#ffd866",
	system.ArchModular:    "#ff6188",
}

// Options configures DOT generation.
type Options struct {
	// Spacing is the distance between adjacent grid cells in points.
	// Zero uses the default of 90.
	Spacing float64

	// Thresholds classify the Φ value for the label color. Zero value
	// uses [metric.DefaultThresholds].
	Thresholds metric.Thresholds

	// ShortIDs truncates element UUIDs to their first segment in node
	// labels. Full IDs make for unwieldy nodes.
	ShortIDs bool
}

// ToDOT converts a complex to Graphviz DOT format.
//
// Nodes are pinned to their generation-grid positions (pos="x,y!"), edges
// are undirected, and the graph label carries the architecture and its Φ
// value. Parallel edges are emitted once per occurrence, which Graphviz
// draws as multi-edges.
func ToDOT(c *system.Complex, opts Options) string {
	spacing := opts.Spacing
	if spacing == 0 {
		spacing = 90
	}
	th := opts.Thresholds
	if th == (metric.Thresholds{}) {
		th = metric.DefaultThresholds()
	}

	var buf bytes.Buffer
	buf.WriteString("graph phi {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  label=\"%s  Φ = %.1f (%s)\";\n", c.Architecture, c.Phi, th.Classify(c.Phi))
	buf.WriteString("  labelloc=t;\n")
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fillcolor=%q, fontsize=10, fixedsize=true, width=0.6];\n",
		archFill[c.Architecture])
	buf.WriteString("\n")

	for _, el := range c.Graph.Elements() {
		label := string(el.ID)
		if opts.ShortIDs {
			label = shortID(label)
		}
		// Negate Y so row 0 renders at the top, matching the grid.
		fmt.Fprintf(&buf, "  %q [label=%q, pos=\"%g,%g!\"];\n",
			string(el.ID), label, el.Pos.X*spacing, -el.Pos.Y*spacing)
	}

	buf.WriteString("\n")
	index := indexByID(c.Graph)
	for _, el := range c.Graph.Elements() {
		neighbors, err := c.Graph.Neighbors(el.ID)
		if err != nil {
			continue
		}
		for _, nb := range neighbors {
			if index[nb] > index[el.ID] {
				fmt.Fprintf(&buf, "  %q -- %q;\n", string(el.ID), string(nb))
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func indexByID(g *system.Graph) map[system.ElementID]int {
	index := make(map[system.ElementID]int, g.Len())
	for i, el := range g.Elements() {
		index[el.ID] = i
	}
	return index
}

func shortID(id string) string {
	for i, r := range id {
		if r == '-' {
			return id[:i]
		}
	}
	return id
}
