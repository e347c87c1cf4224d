// Package f1agg combines per-cluster greatest-match scores into the three
// Mean-F1-of-Greatest-Match variants (F1p, F1h, F1s) under
// weighted/unweighted/combined averaging.
package f1agg

import "github.com/rawblock/clustercompare/internal/numeric"

// Kind selects how per-cluster greatest-match scores are averaged into one
// side's aggregate.
type Kind int

const (
	// Weighted averages scores by cluster capacity.
	Weighted Kind = iota
	// Unweighted is a plain arithmetic mean over clusters.
	Unweighted
	// Combined is the geometric mean of the weighted and unweighted
	// averages, exposed identically alongside the other two kinds for
	// every F1 variant.
	Combined
)

// Variant selects which Mean-F1-of-Greatest-Match is reported.
type Variant int

const (
	// F1p combines partial-probability-scored averages harmonically.
	F1p Variant = iota
	// F1h combines F1-scored averages harmonically.
	F1h
	// F1s averages F1-scored averages arithmetically.
	F1s
)

// Average reduces one side's per-cluster scores to a single aggregate
// under the given Kind.
func Average(kind Kind, scores, capacities []float64) float64 {
	switch kind {
	case Weighted:
		return weightedAvg(scores, capacities)
	case Combined:
		return numeric.Geometric(unweightedAvg(scores), weightedAvg(scores, capacities))
	default:
		return unweightedAvg(scores)
	}
}

func unweightedAvg(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range scores {
		total += s
	}
	return total / float64(len(scores))
}

func weightedAvg(scores, capacities []float64) float64 {
	num, den := 0.0, 0.0
	for i, s := range scores {
		w := capacities[i]
		num += s * w
		den += w
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// Combine reduces two sides' aggregates (ḡ1, ḡ2) into the final symmetric
// score for the given Variant: harmonic for F1p/F1h, arithmetic for F1s.
func Combine(variant Variant, g1, g2 float64) float64 {
	if variant == F1s {
		return numeric.Arithmetic(g1, g2)
	}
	return numeric.Harmonic(g1, g2)
}

// Result bundles the full output of one F1 evaluation: the combined score
// plus the recall/precision-like per-side aggregates — recall and
// precision of collection 2 against ground-truth collection 1 correspond
// respectively to ḡ₁ and ḡ₂.
type Result struct {
	Score     float64
	Recall    float64 // ḡ1: collection 1 (ground truth) side aggregate
	Precision float64 // ḡ2: collection 2 side aggregate
}

// Evaluate computes one F1 variant under one averaging Kind given each
// side's greatest-match scores and capacities.
func Evaluate(variant Variant, kind Kind, scores1, caps1, scores2, caps2 []float64) Result {
	g1 := Average(kind, scores1, caps1)
	g2 := Average(kind, scores2, caps2)
	return Result{
		Score:     Combine(variant, g1, g2),
		Recall:    g1,
		Precision: g2,
	}
}
