package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"
)

// DefaultBatchSize is the number of lines read per batch during content
// checks when the caller does not set one.
const DefaultBatchSize = 100

// ScanOptions - public scan configuration from the CLI. Immutable after
// Prepare.
type ScanOptions struct {
	InputDir              string
	OutputFile            string
	Recursive             bool
	NoHeaders             bool
	NoBody                bool
	Pattern               string
	ExcludePattern        string
	ContentPattern        string
	ContentExcludePattern string
	Mode                  MatchMode
	BatchSize             int
	Threads               int

	absInput      string
	absOutput     string
	pathFilter    *PathFilter
	contentFilter *ContentFilter
	binary        *BinaryHeuristic
}

// Validate checks invariants that do not require pattern compilation.
func (o *ScanOptions) Validate() error {
	if o.InputDir == "" {
		return errors.New("input directory is required")
	}
	if o.OutputFile == "" {
		return errors.New("output file is required")
	}
	st, err := os.Stat(o.InputDir)
	if err != nil {
		return fmt.Errorf("input directory: %w", err)
	}
	if !st.IsDir() {
		return fmt.Errorf("input path is not a directory: %s", o.InputDir)
	}
	if o.NoHeaders && o.NoBody {
		return errors.New("--no-headers and --no-body cannot be set at the same time")
	}
	if o.BatchSize < 1 {
		return fmt.Errorf("batch size must be >= 1, got %d", o.BatchSize)
	}
	if !o.Mode.Valid() {
		return fmt.Errorf("unknown match mode %q", o.Mode)
	}
	return nil
}

// Prepare resolves paths, compiles one matcher per pattern slot and sets
// thread defaults. A compilation failure is a fatal configuration error,
// reported before any traversal starts.
func (o *ScanOptions) Prepare() error {
	var err error
	if o.absInput, err = filepath.Abs(o.InputDir); err != nil {
		return fmt.Errorf("resolve input: %w", err)
	}
	if o.absOutput, err = filepath.Abs(o.OutputFile); err != nil {
		return fmt.Errorf("resolve output: %w", err)
	}
	if o.pathFilter, err = NewPathFilter(o.Mode, o.Pattern, o.ExcludePattern); err != nil {
		return err
	}
	if o.contentFilter, err = NewContentFilter(o.Mode, o.ContentPattern, o.ContentExcludePattern, o.BatchSize); err != nil {
		return err
	}
	o.binary = NewBinaryHeuristic()
	if o.Threads <= 0 {
		o.Threads = runtime.GOMAXPROCS(0)
	}
	logrus.Debugf("compiled filters: path include=%s exclude=%s, content include=%s exclude=%s",
		desc(o.pathFilter.include), desc(o.pathFilter.exclude),
		desc(o.contentFilter.include), desc(o.contentFilter.exclude))
	return nil
}
