package internal

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// ErrNotText marks file content that cannot be decoded as UTF-8 text.
var ErrNotText = errors.New("not valid utf-8 text")

// ContentVerdict is the terminal outcome of a content check.
type ContentVerdict int

const (
	ContentIncluded ContentVerdict = iota
	ContentExcluded
)

// ContentFilter streams a file in batches of lines and applies the content
// include/exclude patterns. With no patterns configured every file passes
// without being opened.
type ContentFilter struct {
	include   Matcher
	exclude   Matcher
	batchSize int
}

func NewContentFilter(mode MatchMode, includePat, excludePat string, batchSize int) (*ContentFilter, error) {
	inc, err := NewMatcher(mode, includePat)
	if err != nil {
		return nil, err
	}
	exc, err := NewMatcher(mode, excludePat)
	if err != nil {
		return nil, err
	}
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	return &ContentFilter{include: inc, exclude: exc, batchSize: batchSize}, nil
}

func (f *ContentFilter) Enabled() bool {
	return f != nil && (f.include != nil || f.exclude != nil)
}

// Check opens the file and streams it through the patterns. The handle is
// released on every exit path. A returned error means the file could not
// be read or decoded; the caller counts it and excludes the file.
func (f *ContentFilter) Check(path string) (ContentVerdict, error) {
	if !f.Enabled() {
		return ContentIncluded, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return ContentExcluded, err
	}
	defer file.Close()
	return f.check(bufio.NewReaderSize(file, 64*1024))
}

// check is the streaming state machine. At most batchSize lines are held
// at once; each line is evaluated as it lands, so an exclude hit stops
// reading immediately instead of at the batch boundary.
func (f *ContentFilter) check(br *bufio.Reader) (ContentVerdict, error) {
	includeHit := f.include == nil
	batch := make([]string, 0, f.batchSize)
	eof := false
	for !eof {
		batch = batch[:0]
		for len(batch) < f.batchSize && !eof {
			// batchSize bounds line count, not line length: a file with no
			// newlines at all arrives here as a single string.
			line, rerr := br.ReadString('\n')
			if rerr == io.EOF {
				eof = true
			} else if rerr != nil {
				return ContentExcluded, rerr
			}
			if len(line) == 0 {
				continue
			}
			line = strings.TrimRight(line, "\r\n")
			if !utf8.ValidString(line) || strings.ContainsRune(line, 0) {
				return ContentExcluded, ErrNotText
			}
			batch = append(batch, line)

			if f.exclude != nil && f.exclude.Match(line) {
				return ContentExcluded, nil
			}
			if !includeHit && f.include.Match(line) {
				includeHit = true
				if f.exclude == nil {
					return ContentIncluded, nil
				}
				// keep reading: a later line may still hit the exclude
			}
		}
	}
	if includeHit {
		return ContentIncluded, nil
	}
	return ContentExcluded, nil
}
