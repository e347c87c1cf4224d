package clustercompare

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/rawblock/clustercompare/internal/f1agg"
	"github.com/rawblock/clustercompare/internal/numeric"
	"github.com/rawblock/clustercompare/internal/xerrors"
)

func TestRunIdenticalPartitionsScorePerfectly(t *testing.T) {
	cnlText := "1 2 3\n4 5\n"
	in := Inputs{
		A: strings.NewReader(cnlText), NameA: "a.cnl",
		B: strings.NewReader(cnlText), NameB: "b.cnl",
	}
	cfg := Config{F1Variant: f1agg.F1h, F1Kind: f1agg.Weighted, NMI: true}
	report, err := Run(in, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !numeric.Equal(report.F1.Score, 1.0, 3) {
		t.Fatalf("expected F1 score 1.0 for identical partitions, got %v", report.F1.Score)
	}
	if report.NMIErr != nil {
		t.Fatalf("unexpected NMI error: %v", report.NMIErr)
	}
	if !numeric.Equal(report.NMI.Max, 1.0, 3) {
		t.Fatalf("expected NMI_max 1.0, got %v", report.NMI.Max)
	}
}

func TestRunOmegaRequested(t *testing.T) {
	in := Inputs{
		A: strings.NewReader("1 2 3\n4 5\n"), NameA: "a.cnl",
		B: strings.NewReader("1 2 3\n4 5\n"), NameB: "b.cnl",
	}
	cfg := Config{F1Variant: f1agg.F1s, F1Kind: f1agg.Unweighted, Omega: true}
	report, err := Run(in, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.OmegaErr != nil {
		t.Fatalf("unexpected Omega error: %v", report.OmegaErr)
	}
	if !numeric.Equal(report.Omega.Index, 1.0, 3) {
		t.Fatalf("expected Omega Index 1.0 for identical partitions, got %v", report.Omega.Index)
	}
}

func TestRunNMIUndefinedOnSingleCluster(t *testing.T) {
	in := Inputs{
		A: strings.NewReader("1 2 3 4 5\n"), NameA: "a.cnl",
		B: strings.NewReader("1 2 3\n4 5\n"), NameB: "b.cnl",
	}
	cfg := Config{F1Variant: f1agg.F1p, F1Kind: f1agg.Weighted, NMI: true}
	report, err := Run(in, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.NMIErr == nil {
		t.Fatal("expected MeasureUndefined for a single-cluster side")
	}
	if !xerrors.Is(report.NMIErr, xerrors.MeasureUndefined) {
		t.Fatalf("expected MeasureUndefined kind, got %v", report.NMIErr)
	}
}

func TestRunSyncMismatchDetected(t *testing.T) {
	// a.cnl only ever mentions node 1 after filtering to the sync base,
	// while b.cnl mentions both 1 and 2 — different surviving node bases.
	in := Inputs{
		A: strings.NewReader("1\n"), NameA: "a.cnl",
		B: strings.NewReader("1 2\n"), NameB: "b.cnl",
		Sync: strings.NewReader("1 2\n"), SyncName: "sync.cnl",
	}
	cfg := Config{F1Variant: f1agg.F1h, F1Kind: f1agg.Weighted}
	_, err := Run(in, cfg)
	if err == nil {
		t.Fatal("expected NodeBaseMismatch error")
	}
	if !xerrors.Is(err, xerrors.NodeBaseMismatch) {
		t.Fatalf("expected NodeBaseMismatch kind, got %v", err)
	}
}

func TestRunUnequalNodeBasesWithoutSyncWarns(t *testing.T) {
	// No sync requested, and b.cnl mentions node 6 that a.cnl never does:
	// the run must still succeed, but a warning belongs on stderr per the
	// unequal-node-base scenario.
	in := Inputs{
		A: strings.NewReader("1 2 3\n4 5\n"), NameA: "a.cnl",
		B: strings.NewReader("1 2 3\n4 5 6\n"), NameB: "b.cnl",
	}
	cfg := Config{F1Variant: f1agg.F1h, F1Kind: f1agg.Weighted}

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	report, err := Run(in, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if numeric.Equal(report.F1.Score, 1.0, 3) {
		t.Fatalf("expected F1 score below 1.0 for unequal node bases, got %v", report.F1.Score)
	}
	if !strings.Contains(buf.String(), "unequal node bases") {
		t.Fatalf("expected a warning about unequal node bases, got log output %q", buf.String())
	}
}

func TestRunEmptyInputErrors(t *testing.T) {
	in := Inputs{
		A: strings.NewReader(""), NameA: "a.cnl",
		B: strings.NewReader("1 2\n"), NameB: "b.cnl",
	}
	if _, err := Run(in, Config{}); err == nil {
		t.Fatal("expected EmptyCollection error for an empty input file")
	}
}
