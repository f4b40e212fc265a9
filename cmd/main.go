package main

import (
	"FileConcat/internal"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:    "fileconcat",
		Usage:   "Gather files from a directory into one file",
		Version: internal.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "in",
				Aliases:  []string{"i"},
				Usage:    "Input directory from which to read files",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "out",
				Aliases:  []string{"o"},
				Usage:    "Path to the resulting file",
				Required: true,
			},
			&cli.BoolFlag{
				Name:    "recursive",
				Aliases: []string{"r"},
				Usage:   "Recurse into subdirectories. If not set, only top-level files are processed",
			},
			&cli.BoolFlag{
				Name:    "no-headers",
				Aliases: []string{"H"},
				Usage:   "Write only file contents, without '# path' header lines",
			},
			&cli.BoolFlag{
				Name:    "no-body",
				Aliases: []string{"B"},
				Usage:   "Write only file headers, without contents",
			},
			&cli.StringFlag{
				Name:    "pattern",
				Aliases: []string{"p"},
				Usage:   "Include only files whose relative path or name matches this pattern",
			},
			&cli.StringFlag{
				Name:    "exclude-pattern",
				Aliases: []string{"x"},
				Usage:   "Exclude files whose relative path or name matches this pattern",
			},
			&cli.StringFlag{
				Name:    "content-pattern",
				Aliases: []string{"P"},
				Usage:   "Include only files whose content matches this pattern",
			},
			&cli.StringFlag{
				Name:    "content-exclude-pattern",
				Aliases: []string{"X"},
				Usage:   "Exclude files whose content matches this pattern",
			},
			&cli.StringFlag{
				Name:    "match-mode",
				Aliases: []string{"m"},
				Value:   "exact",
				Usage:   "How to interpret patterns: exact, substring or regex",
			},
			&cli.IntFlag{
				Name:  "batch-size",
				Value: internal.DefaultBatchSize,
				Usage: "Number of lines to read at once when scanning file contents",
			},
			&cli.IntFlag{
				Name:  "threads",
				Usage: "Max concurrent content checks (default scales with CPU)",
			},
			&cli.StringFlag{
				Name:  "logfile",
				Usage: "Write logs into file instead of stderr",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warn",
				Usage: "Log level: debug, info, warn, error",
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "Disable the progress bar",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func run(c *cli.Context) error {
	internal.InitLogger(c.String("logfile"), c.String("log-level"))

	opts := internal.ScanOptions{
		InputDir:              c.String("in"),
		OutputFile:            c.String("out"),
		Recursive:             c.Bool("recursive"),
		NoHeaders:             c.Bool("no-headers"),
		NoBody:                c.Bool("no-body"),
		Pattern:               c.String("pattern"),
		ExcludePattern:        c.String("exclude-pattern"),
		ContentPattern:        c.String("content-pattern"),
		ContentExcludePattern: c.String("content-exclude-pattern"),
		Mode:                  internal.MatchMode(c.String("match-mode")),
		BatchSize:             c.Int("batch-size"),
		Threads:               c.Int("threads"),
	}
	if err := opts.Validate(); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if err := opts.Prepare(); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	internal.PrintBanner(os.Stdout)
	internal.PrintConfigSummary(os.Stdout, &opts)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var reporter internal.ProgressReporter = internal.NewNopReporter()
	if !c.Bool("no-progress") && isatty.IsTerminal(os.Stderr.Fd()) {
		reporter = internal.NewBarReporter(os.Stderr)
	}

	var stats internal.ScanStats
	stats.Start()

	writer := internal.NewConcatWriter(opts.OutputFile, !opts.NoHeaders, !opts.NoBody)
	pipeline := internal.NewPipeline(&opts, &stats)

	runErr := pipeline.Run(ctx, writer.Write, reporter.Update)
	reporter.Update(stats.Snapshot())
	reporter.Finish()

	if closeErr := writer.Close(); runErr == nil {
		runErr = closeErr
	}
	if runErr != nil {
		if ctx.Err() != nil {
			logrus.Warn("scan cancelled")
			return cli.Exit("cancelled", 1)
		}
		return cli.Exit(fmt.Sprintf("scan failed: %v", runErr), 1)
	}

	snap := stats.Snapshot()
	if snap.Selected == 0 {
		internal.PrintNoMatches(os.Stdout, snap)
		return nil
	}
	internal.PrintDone(os.Stdout, snap, opts.OutputFile, writer.Written)
	return nil
}
