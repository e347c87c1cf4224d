// Package numeric provides the scale-aware floating point comparisons and
// summation helpers used throughout the engine. Every
// accumulated quantity in this system — contribution sums, co-occurrence
// masses, entropy terms — grows its own rounding error with scale, so a
// fixed epsilon comparison would either reject true ties on large inputs
// or accept false ones on tiny inputs. These helpers fold that scale
// dependence into one formula used everywhere a "close enough" comparison
// is needed.
package numeric

import "math"

// baseEps is the sqrt of float64 machine epsilon.
var baseEps = math.Sqrt(2.220446049250313e-16)

// scaleTolerance returns the tolerance for comparing two values that are
// themselves the result of accumulating on the order of `size` terms.
// size must be >= 1; values below 1 are clamped up since log2 of a
// sub-unity size would shrink rather than grow the tolerance.
func scaleTolerance(size float64) float64 {
	if size < 1 {
		size = 1
	}
	return baseEps * (1 + math.Log2(size))
}

// Equal reports whether a and b are equal within the scale-aware tolerance
// for accumulations of the given size.
func Equal(a, b, size float64) bool {
	denom := math.Abs(a) + math.Abs(b) + baseEps
	return 2*math.Abs(a-b)/denom <= scaleTolerance(size)
}

// Less is the strict, scale-aware less-than: a < b and not Equal(a, b, size).
func Less(a, b, size float64) bool {
	if Equal(a, b, size) {
		return false
	}
	return a < b
}

// EqualInt is the integer fallback: direct comparison, no tolerance.
func EqualInt(a, b int64) bool { return a == b }

// LessInt is the integer fallback: direct comparison, no tolerance.
func LessInt(a, b int64) bool { return a < b }

// Harmonic returns the harmonic mean of two non-negative values, 0 if both
// are 0 (avoiding a NaN from 0/0).
func Harmonic(a, b float64) float64 {
	if a+b == 0 {
		return 0
	}
	return 2 * a * b / (a + b)
}

// Geometric returns the geometric mean of two non-negative values.
func Geometric(a, b float64) float64 {
	if a < 0 || b < 0 {
		return 0
	}
	return math.Sqrt(a * b)
}

// Arithmetic returns the arithmetic mean of two values.
func Arithmetic(a, b float64) float64 {
	return (a + b) / 2
}

// LogFunc selects the logarithm base used for entropy computations: natural
// log (nats) when ln is true, log2 (bits) otherwise. The normalized NMI
// forms are base-independent, but H(A)/H(B)/H(A,B) are reported in whatever
// base the caller picked.
func LogFunc(ln bool) func(float64) float64 {
	if ln {
		return math.Log
	}
	return math.Log2
}

// KahanSum accumulates terms with compensated summation, limiting rounding
// error growth on the long sums entropy and contribution totals produce.
type KahanSum struct {
	sum float64
	c   float64
}

// Add folds x into the running sum.
func (k *KahanSum) Add(x float64) {
	y := x - k.c
	t := k.sum + y
	k.c = (t - k.sum) - y
	k.sum = t
}

// Value returns the accumulated sum.
func (k *KahanSum) Value() float64 { return k.sum }
