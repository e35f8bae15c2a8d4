package cli

import (
	"strings"
	"testing"

	"github.com/mwessel/phigrid/pkg/config"
	"github.com/mwessel/phigrid/pkg/metric"
	"github.com/mwessel/phigrid/pkg/system"
	"github.com/mwessel/phigrid/pkg/topology"
)

func generateView(t *testing.T, arch system.Architecture) complexView {
	t.Helper()
	c, err := topology.Generate(arch, 16, topology.WithSeed(5))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return newComplexView(c)
}

func TestComplexViewRecoversGridWidth(t *testing.T) {
	v := generateView(t, system.ArchIntegrated)
	if v.width != 4 {
		t.Errorf("width = %d, want 4", v.width)
	}
	if len(v.index) != 16 {
		t.Errorf("indexed %d elements, want 16", len(v.index))
	}
}

func TestComplexViewEdgeLookup(t *testing.T) {
	v := generateView(t, system.ArchIntegrated)

	// Lattice neighbors in a 4-wide integrated grid.
	if !v.hasEdge(0, 1) {
		t.Error("missing lattice edge 0-1")
	}
	if !v.hasEdge(1, 0) {
		t.Error("hasEdge is not direction-agnostic")
	}
	if !v.hasEdge(0, 4) {
		t.Error("missing vertical lattice edge 0-4")
	}
	// Long-range shortcut.
	if !v.hasEdge(0, 15) {
		t.Error("missing long-range edge 0-15")
	}
	// Row boundary: 3 and 4 are adjacent indexes but different rows.
	if v.hasEdge(3, 4) {
		t.Error("unexpected edge across row boundary 3-4")
	}
}

func TestComplexViewParallelEdgeMultiplicity(t *testing.T) {
	els := []system.Element{
		system.NewElement(system.Position{X: 0, Y: 0}),
		system.NewElement(system.Position{X: 1, Y: 0}),
	}
	g := system.NewGraph(els)
	for range 3 {
		if err := g.Connect(els[0].ID, els[1].ID); err != nil {
			t.Fatal(err)
		}
	}
	c := system.NewComplex(g, system.ArchRandom, 12.8)

	v := newComplexView(c)
	if got := v.edges[edgeKey{0, 1}]; got != 3 {
		t.Errorf("multiplicity = %d, want 3", got)
	}

	extras := v.renderExtraEdges()
	if !strings.Contains(extras, "×3") {
		t.Errorf("extra edges %q does not annotate multiplicity", extras)
	}
}

func TestRenderGridShape(t *testing.T) {
	v := generateView(t, system.ArchModular)
	grid := v.renderGrid()

	// 4 node rows and 3 connector rows.
	lines := strings.Split(strings.TrimRight(grid, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("grid has %d lines, want 7:\n%s", len(lines), grid)
	}
	for _, label := range []string{"( 0)", "( 7)", "(15)"} {
		if !strings.Contains(grid, label) {
			t.Errorf("grid missing node %s:\n%s", label, grid)
		}
	}
}

func TestRenderExtraEdgesIntegrated(t *testing.T) {
	v := generateView(t, system.ArchIntegrated)
	extras := v.renderExtraEdges()

	// The 0-15 shortcut and the 3-12 cross-link cannot be drawn in the
	// grid, so they must appear here.
	if !strings.Contains(extras, "0 ↔ 15") {
		t.Errorf("extras %q missing 0 ↔ 15", extras)
	}
	if !strings.Contains(extras, "3 ↔ 12") {
		t.Errorf("extras %q missing 3 ↔ 12", extras)
	}
}

func TestRenderReadoutBands(t *testing.T) {
	th := metric.DefaultThresholds()
	tests := []struct {
		phi  float64
		band string
	}{
		{74.5, "high"},
		{12.8, "medium"},
		{3.2, "low"},
	}
	for _, tt := range tests {
		out := renderReadout(tt.phi, th)
		if !strings.Contains(out, tt.band) {
			t.Errorf("renderReadout(%v) = %q, missing band %q", tt.phi, out, tt.band)
		}
	}
}

func TestRenderModules(t *testing.T) {
	out := renderModules(config.Modules{Language: true})
	if !strings.Contains(out, "[x]") || !strings.Contains(out, "[ ]") {
		t.Errorf("renderModules = %q, want one checked and one unchecked box", out)
	}
}

func TestRenderSummary(t *testing.T) {
	c, err := topology.Generate(system.ArchIntegrated, 16)
	if err != nil {
		t.Fatal(err)
	}
	out := renderSummary(c, metric.DefaultThresholds(), config.Modules{})

	for _, want := range []string{"integrated architecture", "74.5", "16 elements", "( 0)", "language module"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
