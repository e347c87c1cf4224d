package omega

import (
	"testing"

	"github.com/rawblock/clustercompare/internal/model"
	"github.com/rawblock/clustercompare/internal/numeric"
)

func build(groups ...[]model.NodeID) *model.Collection {
	c := model.New()
	for _, g := range groups {
		c.AddCluster(g)
	}
	return c
}

func TestIdenticalPartitionsGiveIndexOne(t *testing.T) {
	a := build([]model.NodeID{1, 2, 3}, []model.NodeID{4, 5})
	b := build([]model.NodeID{1, 2, 3}, []model.NodeID{4, 5})

	res, err := Evaluate(a, b, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !numeric.Equal(res.Unadjusted, 1.0, 3) {
		t.Fatalf("expected perfect unadjusted agreement, got %v", res.Unadjusted)
	}
	if !numeric.Equal(res.Index, 1.0, 3) {
		t.Fatalf("expected Omega Index 1.0 for identical partitions, got %v", res.Index)
	}
}

func TestDisjointSingletonsGiveIndexZero(t *testing.T) {
	a := build([]model.NodeID{1}, []model.NodeID{2}, []model.NodeID{3})
	b := build([]model.NodeID{1}, []model.NodeID{2}, []model.NodeID{3})

	// Every pair has co-membership 0 on both sides, so unadjusted agreement
	// is already 1 and the adjustment has nothing to correct for.
	res, err := Evaluate(a, b, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !numeric.Equal(res.Unadjusted, 1.0, 3) {
		t.Fatalf("expected unadjusted agreement 1.0 for all-singleton partitions, got %v", res.Unadjusted)
	}
	// Expected agreement is also 1.0 here (every pair is trivially a
	// zero/zero match on both sides), so the adjustment denominator is
	// zero and the index falls back to 0 rather than an undefined 0/0.
	if res.Index != 0 {
		t.Fatalf("expected Omega Index 0 in the degenerate zero-denominator case, got %v", res.Index)
	}
}

func TestDisagreeingPartitionsScoreBelowOne(t *testing.T) {
	a := build([]model.NodeID{1, 2, 3, 4})
	b := build([]model.NodeID{1, 2}, []model.NodeID{3, 4})

	res, err := Evaluate(a, b, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Unadjusted >= 1.0 {
		t.Fatalf("expected imperfect unadjusted agreement, got %v", res.Unadjusted)
	}
	if res.Index >= 1.0 {
		t.Fatalf("expected Omega Index below 1.0 for disagreeing partitions, got %v", res.Index)
	}
}

func TestExtendedSoftensOverlapPenalty(t *testing.T) {
	// Node 3 belongs to both of a's clusters; in plain mode it contributes
	// full weight 1 to every pair it forms, in extended mode only 1/|cluster|.
	a := build([]model.NodeID{1, 3}, []model.NodeID{2, 3})
	b := build([]model.NodeID{1, 2, 3})

	plain, err := Evaluate(a, b, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ext, err := Evaluate(a, b, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if numeric.Equal(plain.Unadjusted, ext.Unadjusted, 3) {
		t.Fatalf("expected extended weighting to change the unadjusted rate, both gave %v", plain.Unadjusted)
	}
}

func TestEmptyCollectionRejected(t *testing.T) {
	a := model.New()
	b := build([]model.NodeID{1, 2})
	if _, err := Evaluate(a, b, false); err == nil {
		t.Fatal("expected an error for an empty collection")
	}
}
