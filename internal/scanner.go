package internal

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"
)

// SelectedFile is a candidate that survived every filter.
type SelectedFile struct {
	Path string
	Rel  string
}

// contentTask is a unit of work for the content-check pool.
type contentTask struct {
	seq  uint64
	cand Candidate
}

// scanResult carries one resolved candidate back to the delivery loop.
// Every sequence number submitted downstream produces exactly one result.
type scanResult struct {
	seq      uint64
	file     SelectedFile
	selected bool
}

// Pipeline composes walker, path filter, binary heuristic and content
// filter, and streams selected files to the sink. Path filtering happens
// inline during the walk (cheap, no I/O); content checks run on a worker
// pool, and a sequence-keyed buffer restores traversal order before the
// sink sees anything.
type Pipeline struct {
	opts  *ScanOptions
	stats *ScanStats
}

// NewPipeline wires prepared options and a stats accumulator. opts must
// have had Prepare called.
func NewPipeline(opts *ScanOptions, stats *ScanStats) *Pipeline {
	return &Pipeline{opts: opts, stats: stats}
}

// Run executes one scan. sink receives selected files in traversal order;
// a sink error is fatal and aborts the run. progress, if non-nil, receives
// periodic counter snapshots. Recoverable per-file errors never escape:
// they surface only in the Errors counter.
func (p *Pipeline) Run(ctx context.Context, sink func(SelectedFile) error, progress func(StatsSnapshot)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := p.opts
	stats := p.stats
	content := opts.contentFilter

	results := make(chan scanResult, 2048)
	var wg sync.WaitGroup

	var pool *ants.PoolWithFunc
	if content.Enabled() {
		var err error
		pool, err = ants.NewPoolWithFunc(opts.Threads, func(i interface{}) {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			t := i.(contentTask)
			res := scanResult{seq: t.seq, file: SelectedFile{Path: t.cand.Path, Rel: t.cand.Rel}}
			verdict, err := content.Check(t.cand.Path)
			stats.Scanned.Add(1)
			switch {
			case err != nil:
				stats.Errors.Add(1)
				logrus.WithFields(logrus.Fields{"file": t.cand.Path, "err": err}).Warn("content check failed")
			case verdict == ContentExcluded:
				stats.SkippedContent.Add(1)
			default:
				stats.Selected.Add(1)
				res.selected = true
			}
			select {
			case results <- res:
			case <-ctx.Done():
			}
		})
		if err != nil {
			return fmt.Errorf("worker pool: %w", err)
		}
		defer pool.Release()
	}

	onWalkError := func(path string, err error) {
		stats.Scanned.Add(1)
		stats.Errors.Add(1)
		logrus.WithFields(logrus.Fields{"path": path, "err": err}).Warn("traversal error")
	}

	walkErr := make(chan error, 1)
	go func() {
		defer func() {
			wg.Wait()
			close(results)
		}()
		var seq uint64
		walker := NewWalker(opts.absInput, opts.Recursive)
		walkErr <- walker.Walk(ctx, func(c Candidate) error {
			if c.Path == opts.absOutput {
				// never concatenate our own output
				return nil
			}
			name := filepath.Base(c.Path)
			if !opts.pathFilter.Allow(c.Rel, name) {
				stats.Scanned.Add(1)
				stats.SkippedPath.Add(1)
				return nil
			}
			if !content.Enabled() {
				stats.Scanned.Add(1)
				stats.Selected.Add(1)
				res := scanResult{seq: seq, file: SelectedFile{Path: c.Path, Rel: c.Rel}, selected: true}
				seq++
				select {
				case results <- res:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			if opts.binary.IsLikelyBinary(name) {
				stats.Scanned.Add(1)
				stats.SkippedBinary.Add(1)
				return nil
			}
			wg.Add(1)
			if err := pool.Invoke(contentTask{seq: seq, cand: c}); err != nil {
				wg.Done()
				stats.Scanned.Add(1)
				stats.Errors.Add(1)
				logrus.WithError(err).Error("submit content check")
				return nil
			}
			seq++
			return nil
		}, onWalkError)
	}()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	// In-order delivery: results may arrive out of traversal order from
	// the pool, so buffer them by sequence number and release the run of
	// ready entries each time the next expected one lands.
	pending := make(map[uint64]scanResult)
	var next uint64
	var sinkErr error
	done := ctx.Done()

drain:
	for {
		select {
		case res, ok := <-results:
			if !ok {
				break drain
			}
			if sinkErr != nil {
				continue
			}
			pending[res.seq] = res
			for {
				r, ready := pending[next]
				if !ready {
					break
				}
				delete(pending, next)
				next++
				if !r.selected {
					continue
				}
				if err := sink(r.file); err != nil {
					sinkErr = err
					cancel()
					break
				}
			}
		case <-ticker.C:
			snap := stats.Snapshot()
			if progress != nil {
				progress(snap)
			}
			// debug level: the progress bar already renders these counters live
			logrus.Debugf("stats: scanned=%d selected=%d skipped_path=%d skipped_binary=%d skipped_content=%d errors=%d",
				snap.Scanned, snap.Selected, snap.SkippedPath, snap.SkippedBinary, snap.SkippedContent, snap.Errors)
		case <-done:
			// keep draining until the walker closes results
			done = nil
		}
	}

	err := <-walkErr
	if sinkErr != nil {
		return sinkErr
	}
	if err != nil {
		return err
	}
	return ctx.Err()
}
