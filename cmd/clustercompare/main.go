// Command clustercompare compares two node clusterings (CNL format) under
// Mean-F1-of-Greatest-Match, Normalized Mutual Information, and the
// optional Omega Index.
package main

import (
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/rawblock/clustercompare/internal/f1agg"
	"github.com/rawblock/clustercompare/internal/trace"
	"github.com/rawblock/clustercompare/internal/xerrors"
	"github.com/rawblock/clustercompare/pkg/clustercompare"
)

var cli struct {
	InputA string `arg:"" name:"a" type:"existingfile" help:"First clustering (CNL format)."`
	InputB string `arg:"" name:"b" type:"existingfile" help:"Second clustering (CNL format)."`

	Ovp         bool    `help:"Overlap evaluation (fractional shares); default is multi-resolution."`
	Sync        string  `help:"Filter both inputs to the node base of <file> (CNL format)." type:"existingfile"`
	Membership  float64 `help:"Expected average membership (>0); checked for range, otherwise not used." default:"1"`
	Unique      bool    `help:"Deduplicate members within each cluster at load."`
	F1          string  `help:"F1 variant." enum:"partprob,harmonic,average" default:"partprob"`
	Kind        string  `help:"F1 averaging policy." enum:"weighted,unweighed,combined" default:"weighted"`
	NMI         bool    `help:"Enable NMI evaluation."`
	All         bool    `help:"Emit all four NMI normalizations."`
	Ln          bool    `help:"Use natural log for entropy (default log2)."`
	Omega       bool    `help:"Enable Omega Index."`
	Extended    bool    `help:"Enable extended Omega Index (implies --omega)."`
	Detailed    bool    `help:"Verbose per-stage tracing to stdout."`
	Label       string  `help:"Ground-truth labeling input (auxiliary, passed through unread)." type:"path"`
	Identifiers string  `help:"Ground-truth identifiers input (auxiliary, passed through unread)." type:"path"`
}

// Exit codes: EINVAL for argument problems, EDOM for invalid numeric
// ranges, 1 for anything else.
func exitCodeFor(err error) int {
	switch {
	case xerrors.Is(err, xerrors.Overflow):
		return int(syscall.EDOM)
	case xerrors.Is(err, xerrors.InvalidInput),
		xerrors.Is(err, xerrors.FormatError),
		xerrors.Is(err, xerrors.EmptyCollection),
		xerrors.Is(err, xerrors.NodeBaseMismatch):
		return int(syscall.EINVAL)
	default:
		return 1
	}
}

func parseF1Variant(s string) f1agg.Variant {
	switch s {
	case "harmonic":
		return f1agg.F1h
	case "average":
		return f1agg.F1s
	default:
		return f1agg.F1p
	}
}

func parseF1Kind(s string) f1agg.Kind {
	switch s {
	case "unweighed":
		return f1agg.Unweighted
	case "combined":
		return f1agg.Combined
	default:
		return f1agg.Weighted
	}
}

func openOrExit(path string) *os.File {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "clustercompare: %v\n", err)
		os.Exit(int(syscall.EINVAL))
	}
	return f
}

func main() {
	kong.Parse(&cli, kong.Description(
		"Compares two node clusterings under Mean-F1-of-Greatest-Match, NMI, and the Omega Index."))

	if cli.Membership <= 0 {
		fmt.Fprintln(os.Stderr, "clustercompare: --membership must be > 0")
		os.Exit(int(syscall.EDOM))
	}

	fa := openOrExit(cli.InputA)
	defer fa.Close()
	fb := openOrExit(cli.InputB)
	defer fb.Close()

	var syncReader io.Reader
	if cli.Sync != "" {
		fs := openOrExit(cli.Sync)
		defer fs.Close()
		syncReader = fs
	}

	tr := trace.Config{}
	if cli.Detailed {
		tr = trace.NewDetailed(os.Stdout)
	}

	f1Variant := parseF1Variant(cli.F1)
	f1Kind := parseF1Kind(cli.Kind)

	report, err := clustercompare.Run(clustercompare.Inputs{
		A: fa, NameA: cli.InputA,
		B: fb, NameB: cli.InputB,
		Sync: syncReader, SyncName: cli.Sync,
	}, clustercompare.Config{
		Overlap:    cli.Ovp,
		Unique:     cli.Unique,
		F1Variant:  f1Variant,
		F1Kind:     f1Kind,
		NMI:        cli.NMI,
		NMIAll:     cli.All,
		NaturalLog: cli.Ln,
		Omega:      cli.Omega,
		OmegaExt:   cli.Extended,
		Trace:      tr,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "clustercompare: %v\n", err)
		os.Exit(exitCodeFor(err))
	}

	printReport(report)
}

func printReport(report clustercompare.Report) {
	fmt.Printf("F1=%.6f recall=%.6f precision=%.6f\n", report.F1.Score, report.F1.Recall, report.F1.Precision)

	if cli.NMI {
		switch {
		case xerrors.Is(report.NMIErr, xerrors.MeasureUndefined):
			fmt.Println("NMI: undefined (a collection has fewer than two clusters with nonzero contribution)")
		case report.NMIErr != nil:
			fmt.Fprintf(os.Stderr, "clustercompare: NMI: %v\n", report.NMIErr)
		case cli.All:
			fmt.Printf("NMI_max=%.6f NMI_sqrt=%.6f NMI_avg=%.6f NMI_min=%.6f\n",
				report.NMI.Max, report.NMI.Sqrt, report.NMI.Avg, report.NMI.Min)
		default:
			fmt.Printf("NMI_max=%.6f\n", report.NMI.Max)
		}
	}

	if cli.Omega || cli.Extended {
		label := "Omega"
		if cli.Extended {
			label = "Omega(extended)"
		}
		if report.OmegaErr != nil {
			fmt.Fprintf(os.Stderr, "clustercompare: %s: %v\n", label, report.OmegaErr)
		} else {
			fmt.Printf("%s=%.6f\n", label, report.Omega.Index)
		}
	}
}
