// Package sparsematrix implements a row-keyed, column-sorted co-occurrence
// container. Rows are hashed for O(1) average row location; within a row,
// (column, value) pairs are kept in a slice sorted by column to keep cache
// locality and allow binary-search lookup once a row grows past a small
// linear-scan threshold.
package sparsematrix

import (
	"sort"

	"github.com/rawblock/clustercompare/internal/xerrors"
)

// linearScanThreshold is the row length below which a linear scan beats a
// binary search in practice.
const linearScanThreshold = 11

type entry struct {
	col int
	val float64
}

// Matrix is a sparse mapping (row, col) -> accumulated value. Every stored
// value is expected to stay strictly positive; Add does not itself enforce
// this, so callers (the contribution engine) must never drive a cell to
// zero or below.
type Matrix struct {
	rows map[int][]entry
}

// New returns an empty matrix.
func New() *Matrix {
	return &Matrix{rows: make(map[int][]entry)}
}

// find returns the index of col within a sorted row, and whether it was found.
func find(row []entry, col int) (int, bool) {
	if len(row) <= linearScanThreshold {
		for i, e := range row {
			if e.col == col {
				return i, true
			}
			if e.col > col {
				return i, false
			}
		}
		return len(row), false
	}
	i := sort.Search(len(row), func(i int) bool { return row[i].col >= col })
	if i < len(row) && row[i].col == col {
		return i, true
	}
	return i, false
}

// Add accumulates delta into cell (i, j), inserting it if absent. delta may
// be any sign during intermediate bookkeeping, but callers must never drive
// a stored cell to zero or below — the positivity invariant is the
// contribution engine's responsibility to uphold, not this container's.
func (m *Matrix) Add(i, j int, delta float64) {
	row := m.rows[i]
	idx, ok := find(row, j)
	if ok {
		row[idx].val += delta
		m.rows[i] = row
		return
	}
	row = append(row, entry{})
	copy(row[idx+1:], row[idx:])
	row[idx] = entry{col: j, val: delta}
	m.rows[i] = row
}

// Get returns the value at (i, j) and whether it is present.
func (m *Matrix) Get(i, j int) (float64, bool) {
	row, ok := m.rows[i]
	if !ok {
		return 0, false
	}
	idx, found := find(row, j)
	if !found {
		return 0, false
	}
	return row[idx].val, true
}

// At is a fallible accessor: out-of-range access fails with an
// InvalidInput-kind error rather than returning a zero value, so callers
// can't confuse "absent" with "zero".
func (m *Matrix) At(i, j int) (float64, error) {
	v, ok := m.Get(i, j)
	if !ok {
		return 0, xerrors.Newf("sparsematrix.At", xerrors.InvalidInput, "no entry at (%d, %d)", i, j)
	}
	return v, nil
}

// RowIndices returns the row keys that have at least one stored entry, in
// ascending order — a deterministic traversal order for the greatest-match
// engine and for NMI's H(A,B) accumulation.
func (m *Matrix) RowIndices() []int {
	out := make([]int, 0, len(m.rows))
	for i := range m.rows {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// Row returns the (column, value) pairs of row i in ascending column order.
// The returned slice must not be mutated by the caller.
func (m *Matrix) Row(i int) []struct {
	Col int
	Val float64
} {
	row := m.rows[i]
	out := make([]struct {
		Col int
		Val float64
	}, len(row))
	for k, e := range row {
		out[k] = struct {
			Col int
			Val float64
		}{Col: e.col, Val: e.val}
	}
	return out
}

// ForEach visits every stored entry in deterministic (row ascending, then
// column ascending) order.
func (m *Matrix) ForEach(f func(i, j int, v float64)) {
	for _, i := range m.RowIndices() {
		for _, e := range m.rows[i] {
			f(i, e.col, e.val)
		}
	}
}

// Total returns the sum of all stored values.
func (m *Matrix) Total() float64 {
	total := 0.0
	m.ForEach(func(_, _ int, v float64) { total += v })
	return total
}

// NNZ returns the number of stored (row, col) pairs.
func (m *Matrix) NNZ() int {
	count := 0
	for _, row := range m.rows {
		count += len(row)
	}
	return count
}
