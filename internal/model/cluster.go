// Package model holds the core data types of the clustering-comparison
// engine: Cluster and Collection. Clusters live in a slice owned by their
// Collection and are referenced everywhere else by index rather than by
// pointer — an arena-and-index layout that keeps ownership unambiguous
// (the Collection's slice is the only owner) while letting the
// node→clusters map and the co-occurrence matrix hold cheap, non-owning
// int references instead of raw back-pointers.
package model

import "github.com/rawblock/clustercompare/internal/agghash"

// NodeID is a 32-bit node identifier. Comparisons are by value; no
// external ordering is imposed.
type NodeID = uint32

// Cluster owns an ordered sequence of member node ids plus the
// bookkeeping the contribution engine attaches to it. Clusters are created
// once during load and are immutable thereafter except for Contrib.
type Cluster struct {
	// Index is this cluster's position in its owning Collection's Clusters
	// slice — the stable identity other components reference it by.
	Index int
	// Members is the ordered sequence of node ids, duplicates optionally
	// removed at load time (loader's Unique option).
	Members []NodeID
	// Contrib is mbscont: a non-negative contribution scalar, integral in
	// multi-resolution mode and fractional in overlap mode. Zero until the
	// contribution engine has run; written exactly once per evaluation.
	Contrib float64
}

// Capacity returns the value the greatest-match engine calls "capacity"
// for this cluster: member count in multi-resolution mode, Contrib in
// overlap mode. The caller picks which by passing the right flag, since a
// Cluster alone doesn't know which mode produced it.
func (c *Cluster) Capacity(useContrib bool) float64 {
	if useContrib {
		return c.Contrib
	}
	return float64(len(c.Members))
}

// Collection owns a set of clusters, a node→clusters index, a node-base
// fingerprint, and a lazily computed total contribution sum.
type Collection struct {
	Clusters []*Cluster
	// NodeIndex maps a node id to the indices (into Clusters) of every
	// cluster containing it. Order within the slice is insertion order;
	// that's enough determinism for every consumer.
	NodeIndex map[NodeID][]int

	nodeBase   agghash.Hash
	contSum    float64
	contSumSet bool
}

// New returns an empty Collection ready for the loader to populate.
func New() *Collection {
	return &Collection{NodeIndex: make(map[NodeID][]int)}
}

// NonEmpty reports whether this collection has at least one node; every
// operation in this module requires both sides non-empty.
func (c *Collection) NonEmpty() bool { return len(c.NodeIndex) > 0 }

// AddCluster appends a new cluster with the given members, wiring the
// node→clusters index as it goes. It returns the new cluster's index.
func (c *Collection) AddCluster(members []NodeID) int {
	idx := len(c.Clusters)
	cl := &Cluster{Index: idx, Members: members}
	c.Clusters = append(c.Clusters, cl)
	for _, n := range members {
		if len(c.NodeIndex[n]) == 0 {
			c.nodeBase = c.nodeBase.Add(n)
		}
		c.NodeIndex[n] = append(c.NodeIndex[n], idx)
	}
	c.contSumSet = false
	return idx
}

// NodeBase returns the aggregated hash fingerprint of every distinct node
// this collection has seen, each counted once however many clusters
// contain it, including members of extend-mode's noise cluster.
func (c *Collection) NodeBase() agghash.Hash { return c.nodeBase }

// ResetContrib zeroes every cluster's Contrib and invalidates the cached
// total, in preparation for a fresh contribution-engine pass over a
// collection being reused across evaluations.
func (c *Collection) ResetContrib() {
	for _, cl := range c.Clusters {
		cl.Contrib = 0
	}
	c.contSum = 0
	c.contSumSet = false
}

// ContribSum returns Σ mbscont over every cluster, computing and caching it
// on first call after the contribution engine has run.
func (c *Collection) ContribSum() float64 {
	if c.contSumSet {
		return c.contSum
	}
	total := 0.0
	for _, cl := range c.Clusters {
		total += cl.Contrib
	}
	c.contSum = total
	c.contSumSet = true
	return total
}

// InvalidateContribSum forces the next ContribSum call to recompute,
// without touching the per-cluster Contrib values. Used when the
// contribution engine mutates Contrib directly rather than through
// ResetContrib+re-accumulate.
func (c *Collection) InvalidateContribSum() { c.contSumSet = false }
