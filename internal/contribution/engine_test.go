package contribution

import (
	"testing"

	"github.com/rawblock/clustercompare/internal/model"
	"github.com/rawblock/clustercompare/internal/numeric"
	"github.com/rawblock/clustercompare/internal/trace"
)

func buildOverlappingCollection() *model.Collection {
	c := model.New()
	c.AddCluster([]model.NodeID{1, 2, 3})
	c.AddCluster([]model.NodeID{2, 3, 4})
	return c
}

func TestMultiResolutionContribution(t *testing.T) {
	a := buildOverlappingCollection()
	b := buildOverlappingCollection()

	m, err := Run(MultiResolution, a, b, trace.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := a.Clusters[0].Contrib; got != 3 {
		t.Fatalf("expected A0 contrib 3, got %v", got)
	}
	if got := a.ContribSum(); got != 6 {
		t.Fatalf("expected A contrib sum 6, got %v", got)
	}
	if m.NNZ() == 0 {
		t.Fatalf("expected a non-empty matrix")
	}
}

func TestOverlapContributionConservesNodeCount(t *testing.T) {
	a := buildOverlappingCollection()
	b := buildOverlappingCollection()

	_, err := Run(Overlap, a, b, trace.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := a.Clusters[0].Contrib; !numeric.Equal(got, 2.0, 4) {
		t.Fatalf("expected A0 overlap contrib ~2.0 (1 + 0.5 + 0.5), got %v", got)
	}
	if got := a.ContribSum(); !numeric.Equal(got, 4.0, 4) {
		t.Fatalf("expected A contrib sum == distinct node count 4, got %v", got)
	}
	if got := b.ContribSum(); !numeric.Equal(got, 4.0, 4) {
		t.Fatalf("expected B contrib sum == distinct node count 4, got %v", got)
	}
}

func TestMatrixPositivityInvariant(t *testing.T) {
	a := buildOverlappingCollection()
	b := buildOverlappingCollection()
	m, err := Run(Overlap, a, b, trace.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.ForEach(func(i, j int, v float64) {
		if v <= 0 {
			t.Fatalf("matrix entry (%d,%d)=%v violates positivity invariant", i, j, v)
		}
	})
}

func TestEmptyCollectionRejected(t *testing.T) {
	a := model.New()
	b := buildOverlappingCollection()
	if _, err := Run(MultiResolution, a, b, trace.Config{}); err == nil {
		t.Fatalf("expected error for empty collection")
	}
}

func TestCheckConservation(t *testing.T) {
	a := buildOverlappingCollection()
	b := buildOverlappingCollection()
	if _, err := Run(Overlap, a, b, trace.Config{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CheckConservation(Overlap, a); err != nil {
		t.Fatalf("expected conservation to hold, got %v", err)
	}
	// Multi-resolution mode has no conservation target; always a no-op.
	a2 := buildOverlappingCollection()
	b2 := buildOverlappingCollection()
	if _, err := Run(MultiResolution, a2, b2, trace.Config{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := CheckConservation(MultiResolution, a2); err != nil {
		t.Fatalf("expected no-op for multi-resolution mode, got %v", err)
	}
}

func TestDisjointSingletons(t *testing.T) {
	a := model.New()
	a.AddCluster([]model.NodeID{1})
	a.AddCluster([]model.NodeID{2})
	a.AddCluster([]model.NodeID{3})
	b := model.New()
	b.AddCluster([]model.NodeID{1})
	b.AddCluster([]model.NodeID{2})
	b.AddCluster([]model.NodeID{3})

	m, err := Run(MultiResolution, a, b, trace.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Each node maps 1:1 to exactly one matrix cell of value 1.
	if m.NNZ() != 3 {
		t.Fatalf("expected 3 stored entries, got %d", m.NNZ())
	}
	for i := 0; i < 3; i++ {
		v, ok := m.Get(i, i)
		if !ok || v != 1 {
			t.Fatalf("expected diagonal entry (%d,%d)=1, got %v (%v)", i, i, v, ok)
		}
	}
}
