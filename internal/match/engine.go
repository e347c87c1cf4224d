// Package match implements the greatest-match engine: for each cluster of
// one collection, find the best-scoring cluster of the other that shares
// at least one member.
//
// A member-by-member traversal would maintain a per-B "origin + running
// count" counter and take the running max as new members reveal more
// co-occurrence; that traversal is correct only because the score is
// monotone non-decreasing in the counter for a fixed (A, B) pair. That
// same monotonicity means the traversal and a direct scan of the final
// co-occurrence row give the same maximum, so this engine scans the
// contribution engine's already-computed sparse matrix directly instead.
package match

import (
	"github.com/rawblock/clustercompare/internal/model"
	"github.com/rawblock/clustercompare/internal/sparsematrix"
)

// Scoring selects the greatest-match score function.
type Scoring int

const (
	// F1Score is 2*m / (capacity(A) + capacity(B)).
	F1Score Scoring = iota
	// PartialProbability is m^2 / (capacity(A) * capacity(B)).
	PartialProbability
)

func score(kind Scoring, m, capA, capB float64) float64 {
	switch kind {
	case PartialProbability:
		if capA == 0 || capB == 0 {
			return 0
		}
		return (m * m) / (capA * capB)
	default:
		if capA+capB == 0 {
			return 0
		}
		return 2 * m / (capA + capB)
	}
}

// Result holds, for one cluster, its best score against the opposite
// collection and the matched cluster's index (-1 if no co-occurring
// cluster exists at all).
type Result struct {
	Score     float64
	MatchedAt int
}

// RunAtoB computes, for every cluster of collection a (row side of the
// matrix), its greatest match against collection b's clusters. useContrib
// selects overlap-mode capacity (Contrib) vs multi-resolution capacity
// (member count).
func RunAtoB(mat *sparsematrix.Matrix, a, b *model.Collection, kind Scoring, useContrib bool) []Result {
	results := make([]Result, len(a.Clusters))
	for i := range results {
		results[i] = Result{MatchedAt: -1}
	}
	for _, i := range mat.RowIndices() {
		row := mat.Row(i)
		capA := a.Clusters[i].Capacity(useContrib)
		best := Result{MatchedAt: -1}
		for _, e := range row {
			capB := b.Clusters[e.Col].Capacity(useContrib)
			s := score(kind, e.Val, capA, capB)
			// Strict less: first-seen maximum wins on ties, and
			// row/column traversal order is already the deterministic
			// ascending order sparsematrix guarantees.
			if best.MatchedAt == -1 || s > best.Score {
				best = Result{Score: s, MatchedAt: e.Col}
			}
		}
		results[i] = best
	}
	return results
}

// RunBtoA computes the symmetric reverse direction: for every cluster of
// collection b, its greatest match against collection a's clusters. It
// scans every stored matrix entry once and buckets by column, since the
// matrix is row-keyed by A-cluster and has no column index of its own.
func RunBtoA(mat *sparsematrix.Matrix, a, b *model.Collection, kind Scoring, useContrib bool) []Result {
	results := make([]Result, len(b.Clusters))
	for i := range results {
		results[i] = Result{MatchedAt: -1}
	}
	mat.ForEach(func(i, j int, v float64) {
		capA := a.Clusters[i].Capacity(useContrib)
		capB := b.Clusters[j].Capacity(useContrib)
		s := score(kind, v, capA, capB)
		cur := results[j]
		if cur.MatchedAt == -1 || s > cur.Score {
			results[j] = Result{Score: s, MatchedAt: i}
		}
	})
	return results
}

// Scores extracts the bare score slice from a Result slice, for callers
// (the F1 aggregator) that only need the scalar values.
func Scores(results []Result) []float64 {
	out := make([]float64, len(results))
	for i, r := range results {
		out[i] = r.Score
	}
	return out
}
