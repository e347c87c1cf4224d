// Package loader implements the collection loader adapter: given a stream
// of raw clusters from an external source, build a model.Collection,
// optionally filtered to a node base (sync), extended with a synthetic
// noise cluster of leftover members (extend), and/or deduplicated within
// each cluster (unique).
//
// The package never reads a file itself — that's the CNL reader's job
// (internal/cnl), kept out of this package since the text format is an
// external collaborator the core only consumes through a
// stream-of-clusters interface.
package loader

import (
	"github.com/rawblock/clustercompare/internal/model"
	"github.com/rawblock/clustercompare/internal/trace"
	"github.com/rawblock/clustercompare/internal/xerrors"
)

// ClusterSource yields raw clusters one at a time. Next returns the next
// cluster's ordered member ids, false when the source is exhausted, and a
// non-nil error on an unrecoverable read failure. Members may contain
// duplicates; the loader's Unique option is responsible for collapsing
// them, not the source.
type ClusterSource interface {
	Next() (members []model.NodeID, ok bool, err error)
}

// Options configures a single Load call: node-base sync filtering, unique
// dedup, and cluster size bounds.
type Options struct {
	// NodeBase, when non-nil, restricts loading to sync mode: any member
	// not present in NodeBase is discarded from its cluster.
	NodeBase map[model.NodeID]struct{}
	// Extend collects every NodeBase member that appears in no loaded
	// cluster into one synthetic "noise" cluster appended at the end. With
	// a nil NodeBase, Extend adds nothing.
	Extend bool
	// Unique deduplicates members within each cluster as it's loaded.
	Unique bool
	// CMin and CMax bound cluster size (post dedup/sync filtering); a
	// cluster outside [CMin, CMax] is discarded entirely, along with its
	// members (under Extend, those of them in NodeBase and in no loaded
	// cluster end up in the noise cluster). Zero CMax means unbounded.
	CMin, CMax int

	Trace trace.Config
}

// Load consumes src to completion and returns the resulting Collection.
func Load(src ClusterSource, opts Options, label string) (*model.Collection, error) {
	col := model.New()
	seen := make(map[model.NodeID]struct{})
	var noise []model.NodeID
	var noiseSeen map[model.NodeID]struct{}
	if opts.Extend {
		noiseSeen = make(map[model.NodeID]struct{})
	}

	n := 0
	for {
		members, ok, err := src.Next()
		if err != nil {
			return nil, xerrors.New("loader.Load", xerrors.IoError, err)
		}
		if !ok {
			break
		}
		n++

		members = filterAndDedup(members, opts)
		if len(members) == 0 {
			opts.Trace.Stagef("loader", "%s: cluster %d empty after filtering, skipped", label, n)
			continue
		}
		if opts.CMin > 0 && len(members) < opts.CMin {
			continue
		}
		if opts.CMax > 0 && len(members) > opts.CMax {
			continue
		}

		col.AddCluster(members)
		for _, m := range members {
			seen[m] = struct{}{}
		}
	}

	if opts.Extend {
		if opts.NodeBase != nil {
			for m := range opts.NodeBase {
				if _, ok := seen[m]; !ok {
					if _, dup := noiseSeen[m]; !dup {
						noise = append(noise, m)
						noiseSeen[m] = struct{}{}
					}
				}
			}
		}
		if len(noise) > 0 {
			col.AddCluster(noise)
		}
	}

	if !col.NonEmpty() {
		return nil, xerrors.New("loader.Load", xerrors.EmptyCollection, nil)
	}

	opts.Trace.Stagef("loader", "%s: loaded %d clusters, %d nodes", label, len(col.Clusters), len(col.NodeIndex))
	return col, nil
}

func filterAndDedup(members []model.NodeID, opts Options) []model.NodeID {
	out := make([]model.NodeID, 0, len(members))
	var localSeen map[model.NodeID]struct{}
	if opts.Unique {
		localSeen = make(map[model.NodeID]struct{}, len(members))
	}
	for _, m := range members {
		if opts.NodeBase != nil {
			if _, ok := opts.NodeBase[m]; !ok {
				continue
			}
		}
		if opts.Unique {
			if _, dup := localSeen[m]; dup {
				continue
			}
			localSeen[m] = struct{}{}
		}
		out = append(out, m)
	}
	return out
}
