package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"golang.org/x/term"

	"github.com/go-i2p/scratchpool/lib/workload"
)

// report is the JSON form of a bench run.
type report struct {
	Results []workload.Result `json:"results"`
	Summary workload.Summary  `json:"summary"`
}

// wantJSON reports whether output should be JSON: when asked for, or when
// stdout is not a terminal.
func wantJSON(forced bool, out *os.File) bool {
	return forced || !term.IsTerminal(int(out.Fd()))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeResults(w io.Writer, results []workload.Result, asJSON bool) error {
	summary := workload.Summarize(results)
	if asJSON {
		return writeJSON(w, report{Results: results, Summary: summary})
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "POOL\tOPS\tOPS/S\tIDLE\tHITS\tMISSES\tREJECTED\tDROPPED")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%.0f\t%d\t%d\t%d\t%d\t%d\n",
			r.Pool, r.Operations, r.Throughput(), r.Stats.Idle,
			r.Stats.Hits, r.Stats.Misses, r.Stats.Rejected, r.Stats.Dropped)
	}
	fmt.Fprintf(tw, "TOTAL\t%d\t\t\t\t%d\t%d\t%d\n",
		summary.Operations, summary.Misses, summary.Rejected, summary.Dropped)
	return tw.Flush()
}
