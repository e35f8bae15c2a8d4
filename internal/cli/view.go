package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mwessel/phigrid/pkg/config"
	"github.com/mwessel/phigrid/pkg/metric"
	"github.com/mwessel/phigrid/pkg/system"
)

// =============================================================================
// Terminal Grid View
// =============================================================================

// edgeKey is an index pair with a < b, used to look up edges regardless
// of direction.
type edgeKey struct{ a, b int }

// complexView precomputes everything needed to draw a complex in the
// terminal: element indexes, grid dimensions, and the edge multiset.
type complexView struct {
	c     *system.Complex
	width int             // grid columns
	edges map[edgeKey]int // undirected edge -> multiplicity
	index map[system.ElementID]int
}

// newComplexView indexes the complex for drawing. The grid width is
// recovered from the element positions.
func newComplexView(c *system.Complex) complexView {
	v := complexView{
		c:     c,
		width: 1,
		edges: make(map[edgeKey]int),
		index: make(map[system.ElementID]int, c.Graph.Len()),
	}
	for i, el := range c.Graph.Elements() {
		v.index[el.ID] = i
		if w := int(el.Pos.X) + 1; w > v.width {
			v.width = w
		}
	}
	for _, el := range c.Graph.Elements() {
		neighbors, err := c.Graph.Neighbors(el.ID)
		if err != nil {
			continue
		}
		i := v.index[el.ID]
		for _, nb := range neighbors {
			j := v.index[nb]
			if j > i {
				v.edges[edgeKey{i, j}]++
			}
		}
	}
	return v
}

// hasEdge reports whether any edge joins indexes i and j.
func (v complexView) hasEdge(i, j int) bool {
	if i > j {
		i, j = j, i
	}
	return v.edges[edgeKey{i, j}] > 0
}

// renderGrid draws the element grid with lattice connections.
//
// Horizontal and vertical neighbors with an edge get ── and │ connectors;
// everything else (long-range edges, clique diagonals, random links) is
// listed by renderExtraEdges, since arbitrary chords cannot be drawn in a
// character grid without crossing the nodes themselves.
func (v complexView) renderGrid() string {
	n := v.c.Graph.Len()
	rows := (n + v.width - 1) / v.width
	node := archNodeStyle(v.c.Architecture)

	var b strings.Builder
	for r := 0; r < rows; r++ {
		// Node row: "[ 0]──[ 1]  [ 2]..."
		for col := 0; col < v.width; col++ {
			i := r*v.width + col
			if i >= n {
				break
			}
			b.WriteString(node.Render(fmt.Sprintf("(%2d)", i)))
			if col < v.width-1 && i+1 < n {
				if v.hasEdge(i, i+1) {
					b.WriteString(styleDim.Render("──"))
				} else {
					b.WriteString("  ")
				}
			}
		}
		b.WriteString("\n")

		// Connector row: vertical bars to the row below.
		if r < rows-1 {
			for col := 0; col < v.width; col++ {
				i := r*v.width + col
				if i >= n {
					break
				}
				if i+v.width < n && v.hasEdge(i, i+v.width) {
					b.WriteString(" " + styleDim.Render("│") + "  ")
				} else {
					b.WriteString("    ")
				}
				if col < v.width-1 {
					b.WriteString("  ")
				}
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderExtraEdges lists the edges the grid drawing cannot show:
// long-range shortcuts, clique diagonals, and random links. Parallel
// edges are annotated with their multiplicity.
func (v complexView) renderExtraEdges() string {
	var extras []string
	keys := make([]edgeKey, 0, len(v.edges))
	for k := range v.edges {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].a != keys[j].a {
			return keys[i].a < keys[j].a
		}
		return keys[i].b < keys[j].b
	})

	for _, k := range keys {
		lattice := (k.b == k.a+1 && k.a/v.width == k.b/v.width) || k.b == k.a+v.width
		count := v.edges[k]
		if lattice && count == 1 {
			continue
		}
		s := fmt.Sprintf("%d ↔ %d", k.a, k.b)
		if count > 1 {
			s += fmt.Sprintf(" (×%d)", count)
		}
		extras = append(extras, s)
	}

	if len(extras) == 0 {
		return ""
	}
	return styleLabel.Render("other links: ") + styleDim.Render(strings.Join(extras, ", "))
}

// renderReadout formats the Φ readout with its band color.
func renderReadout(phi float64, th metric.Thresholds) string {
	band := th.Classify(phi)
	return styleLabel.Render("Φ = ") + bandStyle(band).Render(fmt.Sprintf("%.1f", phi)) +
		styleDim.Render(fmt.Sprintf(" (%s)", band))
}

// renderModules formats the presentational module annotations.
// These flags never influence generation or the metric.
func renderModules(m config.Modules) string {
	box := func(on bool) string {
		if on {
			return styleIconOK.Render("[x]")
		}
		return styleDim.Render("[ ]")
	}
	return box(m.Language) + styleLabel.Render(" language module   ") +
		box(m.SelfModel) + styleLabel.Render(" self-model module")
}

// renderSummary is the non-interactive text rendering of a complex,
// used by 'phigrid generate --format table'.
func renderSummary(c *system.Complex, th metric.Thresholds, modules config.Modules) string {
	v := newComplexView(c)

	var b strings.Builder
	b.WriteString(styleTitle.Render(fmt.Sprintf("%s architecture", c.Architecture)))
	b.WriteString("\n")
	b.WriteString(renderReadout(c.Phi, th))
	b.WriteString("   ")
	b.WriteString(styleDim.Render(fmt.Sprintf("%d elements, %d edges", c.Graph.Len(), c.Graph.EdgeCount())))
	b.WriteString("\n\n")
	b.WriteString(v.renderGrid())
	if extra := v.renderExtraEdges(); extra != "" {
		b.WriteString("\n")
		b.WriteString(extra)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(renderModules(modules))
	b.WriteString("\n")
	return b.String()
}
