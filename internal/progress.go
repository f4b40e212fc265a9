package internal

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

const Version = "2.0.0"

// ProgressReporter receives periodic counter snapshots from the pipeline.
type ProgressReporter interface {
	Update(StatsSnapshot)
	Finish()
}

type nopReporter struct{}

func (nopReporter) Update(StatsSnapshot) {}
func (nopReporter) Finish()              {}

// NewNopReporter returns a reporter that discards everything, for
// non-interactive runs and tests.
func NewNopReporter() ProgressReporter { return nopReporter{} }

// BarReporter renders a terminal spinner with live counters. The total is
// unknown up front (the walk is lazy), so the bar is indeterminate.
type BarReporter struct {
	out io.Writer
	bar *progressbar.ProgressBar
}

func NewBarReporter(out io.Writer) *BarReporter {
	bar := progressbar.NewOptions64(-1,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("scanning"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetRenderBlankState(true),
	)
	return &BarReporter{out: out, bar: bar}
}

func (r *BarReporter) Update(s StatsSnapshot) {
	r.bar.Describe(fmt.Sprintf("scanning: %d scanned / %d selected / %d errors",
		s.Scanned, s.Selected, s.Errors))
	_ = r.bar.Set64(s.Scanned)
}

func (r *BarReporter) Finish() {
	_ = r.bar.Finish()
	fmt.Fprintln(r.out)
}

const banner = `   __ _ _                                 _
  / _(_) | ___  ___ ___  _ __   ___ __ _| |_
 | |_| | |/ _ \/ __/ _ \| '_ \ / __/ _' | __|
 |  _| | |  __/ (_| (_) | | | | (_| (_| | |_
 |_| |_|_|\___|\___\___/|_| |_|\___\__,_|\__|`

func PrintBanner(out io.Writer) {
	fmt.Fprintln(out, banner)
	fmt.Fprintf(out, "             %s\n", color.New(color.Bold).Sprintf("fileconcat %s", Version))
}

func PrintConfigSummary(out io.Writer, o *ScanOptions) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %s\n", bold("Input directory:"), o.InputDir)
	fmt.Fprintf(out, "%s %s\n", bold("Output file:    "), o.OutputFile)
	fmt.Fprintf(out, "%s %v\n", bold("Recursive:      "), o.Recursive)
	fmt.Fprintf(out, "%s %v, %v\n", bold("Headers, Body:  "), !o.NoHeaders, !o.NoBody)
	fmt.Fprintf(out, "%s %q, exclude: %q, mode: %s\n", bold("Path pattern:   "), o.Pattern, o.ExcludePattern, o.Mode)
	fmt.Fprintf(out, "%s %q, exclude: %q\n", bold("Content pattern:"), o.ContentPattern, o.ContentExcludePattern)
	fmt.Fprintf(out, "%s %d lines\n", bold("Batch size:     "), o.BatchSize)
	fmt.Fprintln(out)
}

func PrintNoMatches(out io.Writer, s StatsSnapshot) {
	fmt.Fprintf(out, "%s (scanned %d files in %.1fs)\n",
		color.New(color.FgYellow).Sprint("No files matched the given criteria."),
		s.Scanned, s.Elapsed.Seconds())
}

func PrintDone(out io.Writer, s StatsSnapshot, outputFile string, written int64) {
	size := "unknown"
	if st, err := os.Stat(outputFile); err == nil {
		size = humanSize(st.Size())
	}
	fmt.Fprintf(out, "%s scanned %d files, selected %d, errors %d, in %.1fs.\n",
		color.New(color.FgGreen).Sprint("Done."),
		s.Scanned, s.Selected, s.Errors, s.Elapsed.Seconds())
	fmt.Fprintf(out, "Wrote %d records to %s (%s)\n", written, outputFile, size)
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
