// Package clustercompare is the public facade wiring the loader, the
// contribution engine, the greatest-match engine, the F1 aggregator, the
// NMI evaluator, and the Omega index into one entry point: read two CNL
// cluster files (optionally filtered to a shared sync node base) and
// report whichever similarity measures the caller asked for.
package clustercompare

import (
	"io"
	"log"

	"github.com/rawblock/clustercompare/internal/cnl"
	"github.com/rawblock/clustercompare/internal/contribution"
	"github.com/rawblock/clustercompare/internal/f1agg"
	"github.com/rawblock/clustercompare/internal/loader"
	"github.com/rawblock/clustercompare/internal/match"
	"github.com/rawblock/clustercompare/internal/model"
	"github.com/rawblock/clustercompare/internal/nmi"
	"github.com/rawblock/clustercompare/internal/omega"
	"github.com/rawblock/clustercompare/internal/trace"
	"github.com/rawblock/clustercompare/internal/xerrors"
)

// Config selects which measures to compute and how the two inputs are
// loaded.
type Config struct {
	// Overlap selects fractional-share contribution; the default is
	// multi-resolution (integer counts).
	Overlap bool
	// Unique deduplicates members within each cluster at load time.
	Unique bool
	// CMin and CMax bound cluster size at load time; zero CMax is
	// unbounded.
	CMin, CMax int

	F1Variant f1agg.Variant
	F1Kind    f1agg.Kind

	NMI        bool
	NMIAll     bool
	NaturalLog bool

	Omega    bool
	OmegaExt bool

	Trace trace.Config
}

// Report bundles every measure Config requested. NMI and Omega carry their
// own error slot rather than aborting the whole run, since an undefined
// measure (e.g. NMI on a single-cluster side) is a reportable outcome, not
// a pipeline failure.
type Report struct {
	F1 f1agg.Result

	NMI    nmi.Result
	NMIErr error

	Omega    omega.Result
	OmegaErr error
}

// Inputs bundles the two collections to compare plus an optional sync
// file restricting both to a shared node base.
type Inputs struct {
	A, B         io.Reader
	NameA, NameB string
	Sync         io.Reader
	SyncName     string
}

// LoadNodeBase reads every node id mentioned anywhere in a CNL file,
// ignoring its cluster structure, for use as a loader.Options.NodeBase.
func LoadNodeBase(r io.Reader, name string) (map[model.NodeID]struct{}, error) {
	src := cnl.NewSource(r, name, nil)
	base := make(map[model.NodeID]struct{})
	for {
		members, ok, err := src.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		for _, m := range members {
			base[m] = struct{}{}
		}
	}
	return base, nil
}

// Load reads one CNL cluster file into a Collection.
func Load(r io.Reader, name string, nodeBase map[model.NodeID]struct{}, cfg Config) (*model.Collection, error) {
	src := cnl.NewSource(r, name, nil)
	opts := loader.Options{
		NodeBase: nodeBase,
		Unique:   cfg.Unique,
		CMin:     cfg.CMin,
		CMax:     cfg.CMax,
		Trace:    cfg.Trace,
	}
	return loader.Load(src, opts, name)
}

// Run loads both inputs (and the optional sync file) and evaluates every
// measure Config requests.
func Run(in Inputs, cfg Config) (Report, error) {
	var nodeBase map[model.NodeID]struct{}
	if in.Sync != nil {
		var err error
		nodeBase, err = LoadNodeBase(in.Sync, in.SyncName)
		if err != nil {
			return Report{}, err
		}
	}

	a, err := Load(in.A, in.NameA, nodeBase, cfg)
	if err != nil {
		return Report{}, err
	}
	b, err := Load(in.B, in.NameB, nodeBase, cfg)
	if err != nil {
		return Report{}, err
	}

	if in.Sync != nil && !a.NodeBase().Equal(b.NodeBase()) {
		return Report{}, xerrors.New("clustercompare.Run", xerrors.NodeBaseMismatch, nil)
	}
	if in.Sync == nil && !a.NodeBase().Equal(b.NodeBase()) {
		log.Printf("clustercompare: %s and %s have unequal node bases and no sync was requested; F1 and NMI will be penalized accordingly", in.NameA, in.NameB)
	}

	return Compare(a, b, cfg)
}

// Compare runs the pipeline over two already-loaded collections.
func Compare(a, b *model.Collection, cfg Config) (Report, error) {
	mode := contribution.MultiResolution
	if cfg.Overlap {
		mode = contribution.Overlap
	}

	mat, err := contribution.Run(mode, a, b, cfg.Trace)
	if err != nil {
		return Report{}, err
	}
	if err := contribution.CheckConservation(mode, a); err != nil {
		return Report{}, err
	}
	if err := contribution.CheckConservation(mode, b); err != nil {
		return Report{}, err
	}

	useContrib := mode.UsesContrib()
	scoring := match.F1Score
	if cfg.F1Variant == f1agg.F1p {
		scoring = match.PartialProbability
	}
	aToB := match.RunAtoB(mat, a, b, scoring, useContrib)
	bToA := match.RunBtoA(mat, a, b, scoring, useContrib)

	report := Report{
		F1: f1agg.Evaluate(cfg.F1Variant, cfg.F1Kind,
			match.Scores(aToB), capacities(a, useContrib),
			match.Scores(bToA), capacities(b, useContrib)),
	}

	if cfg.NMI {
		report.NMI, report.NMIErr = nmi.Evaluate(mat, a, b, cfg.NaturalLog)
	}
	if cfg.Omega || cfg.OmegaExt {
		report.Omega, report.OmegaErr = omega.Evaluate(a, b, cfg.OmegaExt)
	}

	cfg.Trace.Stagef("compare", "f1=%v nmi_requested=%v omega_requested=%v", report.F1.Score, cfg.NMI, cfg.Omega || cfg.OmegaExt)
	return report, nil
}

func capacities(col *model.Collection, useContrib bool) []float64 {
	out := make([]float64, len(col.Clusters))
	for i, c := range col.Clusters {
		out[i] = c.Capacity(useContrib)
	}
	return out
}
