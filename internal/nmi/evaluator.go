// Package nmi implements the NMI Evaluator: entropy of each side, joint
// entropy of the co-occurrence matrix, mutual information, and the four
// standard normalizers (max, sqrt, avg, min).
package nmi

import (
	"math"

	"github.com/rawblock/clustercompare/internal/model"
	"github.com/rawblock/clustercompare/internal/numeric"
	"github.com/rawblock/clustercompare/internal/sparsematrix"
	"github.com/rawblock/clustercompare/internal/xerrors"
)

// Result bundles every quantity the evaluator computes, in whatever log
// base the caller selected.
type Result struct {
	HA, HB float64
	HAB    float64
	I      float64
	Max    float64
	Sqrt   float64
	Avg    float64
	Min    float64
}

// entropyOf computes -Σ (s/total) * log(s/total) over per-cluster
// contribution sums, skipping zero terms.
func entropyOf(sums []float64, total float64, logf func(float64) float64) float64 {
	if total == 0 {
		return 0
	}
	var acc numeric.KahanSum
	for _, s := range sums {
		if s <= 0 {
			continue
		}
		p := s / total
		acc.Add(-p * logf(p))
	}
	return acc.Value()
}

func jointEntropy(mat *sparsematrix.Matrix, total float64, logf func(float64) float64) float64 {
	if total == 0 {
		return 0
	}
	var acc numeric.KahanSum
	mat.ForEach(func(_, _ int, v float64) {
		if v <= 0 {
			return
		}
		p := v / total
		acc.Add(-p * logf(p))
	})
	return acc.Value()
}

func clusterSums(col *model.Collection) []float64 {
	out := make([]float64, len(col.Clusters))
	for i, c := range col.Clusters {
		out[i] = c.Contrib
	}
	return out
}

// Evaluate computes NMI from the co-occurrence matrix and the two
// collections' per-cluster contribution sums (already populated by the
// contribution engine). ln selects natural log (nats) vs log2 (bits);
// the normalized forms are base-independent, H(A)/H(B)/H(A,B) are not.
//
// A single-cluster side makes NMI undefined rather than 0 — 0 would be
// indistinguishable from "completely dissimilar" — so that case is
// reported as a MeasureUndefined error rather than silently returning 0.
func Evaluate(mat *sparsematrix.Matrix, a, b *model.Collection, ln bool) (Result, error) {
	if len(a.Clusters) < 2 || len(b.Clusters) < 2 {
		return Result{}, xerrors.New("nmi.Evaluate", xerrors.MeasureUndefined, nil)
	}

	logf := numeric.LogFunc(ln)
	totalA := a.ContribSum()
	totalB := b.ContribSum()
	n := mat.Total()

	ha := entropyOf(clusterSums(a), totalA, logf)
	hb := entropyOf(clusterSums(b), totalB, logf)
	hab := jointEntropy(mat, n, logf)
	mi := ha + hb - hab
	if mi < 0 {
		// Rounding can push a near-zero mutual information slightly
		// negative; clamp rather than report an impossible value.
		mi = 0
	}

	res := Result{HA: ha, HB: hb, HAB: hab, I: mi}
	if ha == 0 || hb == 0 {
		// Both sides had >= 2 clusters but all contribution mass landed on
		// one of them — I is necessarily 0 too, and every normalizer
		// divides by a zero entropy, so this is undefined the same way.
		return res, xerrors.New("nmi.Evaluate", xerrors.MeasureUndefined, nil)
	}

	res.Max = mi / math.Max(ha, hb)
	res.Sqrt = mi / numeric.Geometric(ha, hb)
	res.Avg = 2 * mi / (ha + hb)
	res.Min = mi / math.Min(ha, hb)
	return res, nil
}
