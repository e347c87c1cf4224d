// Package agghash computes an order-independent fingerprint of a node-id
// multiset, used to detect unequal node bases between two collections
// before evaluation and to reject mis-paired inputs.
//
// The fingerprint accumulates three commutative scalars — count, sum,
// sum of squares — and only mixes them into a single 64-bit digest at the
// end, via a content-addressing hash primitive (chainhash) rather than a
// hand-rolled bit mixer. Because the digest is taken over the three
// accumulated scalars rather than over the node ids directly, the result
// is invariant to the order nodes were added in: the accumulation, not
// the hash, carries the commutativity.
package agghash

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Hash is an accumulating, order-independent fingerprint over a multiset
// of uint32 node ids.
type Hash struct {
	N     uint64
	Sum   uint64
	SumSq uint64
}

// New returns the fingerprint of the empty multiset.
func New() Hash { return Hash{} }

// Add folds one node id into the fingerprint and returns the updated value.
// Hash is a small value type; callers that build incrementally should
// reassign: h = h.Add(id).
func (h Hash) Add(id uint32) Hash {
	v := uint64(id)
	return Hash{
		N:     h.N + 1,
		Sum:   h.Sum + v,
		SumSq: h.SumSq + v*v,
	}
}

// AddAll folds every id in ids into the fingerprint.
func (h Hash) AddAll(ids []uint32) Hash {
	for _, id := range ids {
		h = h.Add(id)
	}
	return h
}

// Equal reports whether two fingerprints describe multisets with the same
// count, sum, and sum of squares. This is a necessary, not sufficient,
// condition for the underlying multisets being identical — collisions are
// astronomically unlikely for real cluster files but not impossible, which
// is why this is used as a pre-check/reject signal, not a proof of equality.
func (h Hash) Equal(o Hash) bool {
	return h.N == o.N && h.Sum == o.Sum && h.SumSq == o.SumSq
}

// Empty reports whether no node has been added yet.
func (h Hash) Empty() bool { return h.N == 0 }

// Digest mixes the three accumulated fields into a stable 64-bit value
// using chainhash.HashH (single SHA-256), truncated to the first 8 bytes. Any
// deterministic mixer would do; this reuses an existing hash dependency
// rather than hand-rolling one.
func (h Hash) Digest() uint64 {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:8], h.N)
	binary.LittleEndian.PutUint64(buf[8:16], h.Sum)
	binary.LittleEndian.PutUint64(buf[16:24], h.SumSq)
	sum := chainhash.HashH(buf[:])
	return binary.LittleEndian.Uint64(sum[:8])
}
