package internal

import (
	"sync/atomic"
	"time"
)

// ScanStats atomic counters for one run. Every resolved candidate bumps
// Scanned plus exactly one outcome bucket, so
//
//	Scanned == Selected + SkippedPath + SkippedBinary + SkippedContent + Errors
//
// whenever no candidate is mid-resolution.
type ScanStats struct {
	start          time.Time
	Scanned        atomic.Int64
	Selected       atomic.Int64
	SkippedPath    atomic.Int64
	SkippedBinary  atomic.Int64
	SkippedContent atomic.Int64
	Errors         atomic.Int64
}

func (s *ScanStats) Start() {
	s.start = time.Now()
}

func (s *ScanStats) Elapsed() time.Duration {
	return time.Since(s.start)
}

// StatsSnapshot is a point-in-time copy for progress rendering and the
// final summary.
type StatsSnapshot struct {
	Scanned        int64
	Selected       int64
	SkippedPath    int64
	SkippedBinary  int64
	SkippedContent int64
	Errors         int64
	Elapsed        time.Duration
}

func (s *ScanStats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Scanned:        s.Scanned.Load(),
		Selected:       s.Selected.Load(),
		SkippedPath:    s.SkippedPath.Load(),
		SkippedBinary:  s.SkippedBinary.Load(),
		SkippedContent: s.SkippedContent.Load(),
		Errors:         s.Errors.Load(),
		Elapsed:        s.Elapsed(),
	}
}
