// Package contribution assigns each node a unit of evidence, splits it
// among the clusters that own it in both collections, and accumulates the
// sparse co-occurrence matrix both the greatest-match engine and the NMI
// evaluator consume.
//
// A switch over a mode selects how evidence is weighted, iterating a flat
// list and mutating per-cluster state as it goes — the same shape as a
// weighted merge pass over edges, except the "evidence" here is a node's
// membership rather than a graph edge, and the mutation is a fractional
// accumulation rather than a union-find merge.
package contribution

import (
	"github.com/rawblock/clustercompare/internal/model"
	"github.com/rawblock/clustercompare/internal/numeric"
	"github.com/rawblock/clustercompare/internal/sparsematrix"
	"github.com/rawblock/clustercompare/internal/trace"
	"github.com/rawblock/clustercompare/internal/xerrors"
)

// Mode selects how a node's evidence is distributed among its owning
// clusters.
type Mode int

const (
	// MultiResolution: each owning cluster gets +1, and every (A, B) pair
	// of owning clusters gets +1 in the co-occurrence matrix. A node
	// "exists" independently at each resolution.
	MultiResolution Mode = iota
	// Overlap: a node splits fractional share 1/k among its k owning
	// A-clusters and 1/l among its l owning B-clusters; each (A, B) pair
	// receives 1/(k*l), so that summing over all l B-matches recovers the
	// A-side's 1/k contribution exactly.
	Overlap
)

func (m Mode) String() string {
	if m == Overlap {
		return "overlap"
	}
	return "multi-resolution"
}

// UsesContrib reports whether this mode's cluster capacity is Contrib
// (overlap) rather than member count (multi-resolution) — the same flag
// model.Cluster.Capacity expects.
func (m Mode) UsesContrib() bool { return m == Overlap }

// Run executes one contribution pass over collections a and b, returning
// the sparse co-occurrence matrix. It resets Contrib on every cluster of
// both sides first, then re-accumulates from scratch — callers that want
// to skip recomputation for an already-evaluated pair should check
// a.ContribSum()/b.ContribSum() themselves before calling Run.
func Run(mode Mode, a, b *model.Collection, tr trace.Config) (*sparsematrix.Matrix, error) {
	if !a.NonEmpty() || !b.NonEmpty() {
		return nil, xerrors.New("contribution.Run", xerrors.EmptyCollection, nil)
	}

	a.ResetContrib()
	b.ResetContrib()
	m := sparsematrix.New()

	for _, n := range unionNodesInOrder(a, b) {
		aIdx := a.NodeIndex[n]
		bIdx := b.NodeIndex[n]

		switch mode {
		case MultiResolution:
			for _, ai := range aIdx {
				a.Clusters[ai].Contrib++
			}
			for _, bj := range bIdx {
				b.Clusters[bj].Contrib++
			}
			for _, ai := range aIdx {
				for _, bj := range bIdx {
					m.Add(ai, bj, 1)
				}
			}
		case Overlap:
			k := len(aIdx)
			l := len(bIdx)
			if k > 0 {
				share := 1.0 / float64(k)
				for _, ai := range aIdx {
					a.Clusters[ai].Contrib += share
				}
			}
			if l > 0 {
				share := 1.0 / float64(l)
				for _, bj := range bIdx {
					b.Clusters[bj].Contrib += share
				}
			}
			if k > 0 && l > 0 {
				pairShare := 1.0 / (float64(k) * float64(l))
				for _, ai := range aIdx {
					for _, bj := range bIdx {
						m.Add(ai, bj, pairShare)
					}
				}
			}
		}
	}

	a.InvalidateContribSum()
	b.InvalidateContribSum()
	tr.Stagef("contribution", "mode=%v rows=%d entries=%d total=%v", mode, len(m.RowIndices()), m.NNZ(), m.Total())
	return m, nil
}

// CheckConservation verifies invariant 2 of the contribution engine: in
// overlap mode, Σ mbscont over a collection's clusters must equal its
// distinct node count (each node's 1/k shares summing back to exactly 1).
// Multi-resolution mode has no such target — a node's contribution grows
// with the number of clusters it belongs to by design — so this only
// checks overlap mode and is a no-op otherwise.
func CheckConservation(mode Mode, col *model.Collection) error {
	if mode != Overlap {
		return nil
	}
	want := float64(len(col.NodeIndex))
	got := col.ContribSum()
	if !numeric.Equal(got, want, want) {
		return xerrors.Newf("contribution.CheckConservation", xerrors.Overflow,
			"contribution sum %v diverged from node count %v", got, want)
	}
	return nil
}

// unionNodesInOrder returns every node id appearing in either collection,
// in first-seen order across a's clusters then b's clusters — deterministic
// without relying on Go's randomized map iteration.
func unionNodesInOrder(a, b *model.Collection) []model.NodeID {
	seen := make(map[model.NodeID]struct{}, len(a.NodeIndex)+len(b.NodeIndex))
	out := make([]model.NodeID, 0, len(a.NodeIndex)+len(b.NodeIndex))
	collect := func(col *model.Collection) {
		for _, cl := range col.Clusters {
			for _, n := range cl.Members {
				if _, ok := seen[n]; ok {
					continue
				}
				seen[n] = struct{}{}
				out = append(out, n)
			}
		}
	}
	collect(a)
	collect(b)
	return out
}
