package graphio

import (
	"testing"

	"github.com/mwessel/phigrid/pkg/system"
	"github.com/mwessel/phigrid/pkg/topology"
)

func TestRoundTripPreservesEdges(t *testing.T) {
	for _, arch := range system.Architectures() {
		t.Run(arch.String(), func(t *testing.T) {
			original, err := topology.Generate(arch, 16, topology.WithSeed(9))
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}

			data, err := MarshalComplex(original)
			if err != nil {
				t.Fatalf("MarshalComplex: %v", err)
			}
			restored, err := UnmarshalComplex(data)
			if err != nil {
				t.Fatalf("UnmarshalComplex: %v", err)
			}

			if restored.Architecture != original.Architecture {
				t.Errorf("architecture = %s, want %s", restored.Architecture, original.Architecture)
			}
			if restored.Phi != original.Phi {
				t.Errorf("phi = %v, want %v", restored.Phi, original.Phi)
			}
			if restored.Graph.Len() != original.Graph.Len() {
				t.Fatalf("element count = %d, want %d", restored.Graph.Len(), original.Graph.Len())
			}
			if restored.Graph.EdgeCount() != original.Graph.EdgeCount() {
				t.Errorf("edge count = %d, want %d", restored.Graph.EdgeCount(), original.Graph.EdgeCount())
			}

			// Per-element degrees must survive, parallel edges included.
			for _, el := range original.Graph.Elements() {
				origDeg, _ := original.Graph.Degree(el.ID)
				restDeg, err := restored.Graph.Degree(el.ID)
				if err != nil {
					t.Fatalf("restored graph missing element %s", el.ID)
				}
				if restDeg != origDeg {
					t.Errorf("degree(%s) = %d, want %d", el.ID, restDeg, origDeg)
				}
			}
		})
	}
}

func TestRoundTripParallelEdges(t *testing.T) {
	els := []system.Element{
		system.NewElement(system.Position{X: 0, Y: 0}),
		system.NewElement(system.Position{X: 1, Y: 0}),
	}
	g := system.NewGraph(els)
	if err := g.Connect(els[0].ID, els[1].ID); err != nil {
		t.Fatal(err)
	}
	if err := g.Connect(els[0].ID, els[1].ID); err != nil {
		t.Fatal(err)
	}
	c := system.NewComplex(g, system.ArchRandom, 12.8)

	snap := FromComplex(c)
	if len(snap.Edges) != 2 {
		t.Fatalf("snapshot has %d edges, want 2 (parallel edge preserved)", len(snap.Edges))
	}

	restored, err := ToComplex(snap)
	if err != nil {
		t.Fatalf("ToComplex: %v", err)
	}
	if got := restored.Graph.EdgeCount(); got != 2 {
		t.Errorf("restored EdgeCount() = %d, want 2", got)
	}
}

func TestToComplexRejectsUnknownArchitecture(t *testing.T) {
	_, err := ToComplex(Snapshot{Architecture: "torus"})
	if err == nil {
		t.Error("ToComplex accepted unknown architecture")
	}
}

func TestToComplexRejectsDanglingEdge(t *testing.T) {
	snap := Snapshot{
		Architecture: "modular",
		Nodes:        []Node{{ID: "a"}},
		Edges:        []Edge{{From: "a", To: "ghost"}},
	}
	if _, err := ToComplex(snap); err == nil {
		t.Error("ToComplex accepted an edge to a missing node")
	}
}

func TestFileRoundTrip(t *testing.T) {
	c, err := topology.Generate(system.ArchModular, 16)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	path := t.TempDir() + "/complex.json"
	if err := WriteComplexFile(c, path); err != nil {
		t.Fatalf("WriteComplexFile: %v", err)
	}
	restored, err := ReadComplexFile(path)
	if err != nil {
		t.Fatalf("ReadComplexFile: %v", err)
	}
	if restored.Graph.EdgeCount() != c.Graph.EdgeCount() {
		t.Errorf("edge count = %d, want %d", restored.Graph.EdgeCount(), c.Graph.EdgeCount())
	}
}
