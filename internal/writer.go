package internal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// ConcatWriter appends selected files to the output file in the order
// received. The file is created lazily on the first record, so an empty
// selection leaves nothing behind. Sink write failures are fatal to the
// run; source read failures only produce an inline marker.
type ConcatWriter struct {
	path    string
	headers bool
	body    bool

	f   *os.File
	w   *bufio.Writer
	buf []byte

	// Written counts records emitted so far.
	Written int64
}

func NewConcatWriter(path string, headers, body bool) *ConcatWriter {
	return &ConcatWriter{path: path, headers: headers, body: body}
}

func (cw *ConcatWriter) open() error {
	if cw.w != nil {
		return nil
	}
	if dir := filepath.Dir(cw.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(cw.path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	cw.f = f
	cw.w = bufio.NewWriterSize(f, 256*1024)
	cw.buf = make([]byte, 64*1024)
	return nil
}

// Write emits one record: a "# <relative path>" header line and/or the
// verbatim body, followed by the blank-line separator.
func (cw *ConcatWriter) Write(file SelectedFile) error {
	if err := cw.open(); err != nil {
		return err
	}
	if cw.headers {
		if _, err := fmt.Fprintf(cw.w, "# %s\n", file.Rel); err != nil {
			return err
		}
	}
	if cw.body {
		if err := cw.copyBody(file.Path); err != nil {
			return err
		}
	}
	if err := cw.w.WriteByte('\n'); err != nil {
		return err
	}
	cw.Written++
	return nil
}

// copyBody streams the source into the output unmodified. A failed source
// read is recoverable: a marker line replaces the rest of the body.
func (cw *ConcatWriter) copyBody(path string) error {
	src, err := os.Open(path)
	if err != nil {
		return cw.writeReadError(path, err)
	}
	defer src.Close()
	for {
		n, rerr := src.Read(cw.buf)
		if n > 0 {
			if _, werr := cw.w.Write(cw.buf[:n]); werr != nil {
				return werr
			}
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return cw.writeReadError(path, rerr)
		}
	}
}

func (cw *ConcatWriter) writeReadError(path string, err error) error {
	logrus.WithFields(logrus.Fields{"file": path, "err": err}).Warn("could not read file for output")
	_, werr := fmt.Fprintf(cw.w, "[Error reading the file: %v]\n", err)
	return werr
}

// Close flushes and closes the output file if one was created.
func (cw *ConcatWriter) Close() error {
	if cw.w == nil {
		return nil
	}
	if err := cw.w.Flush(); err != nil {
		cw.f.Close()
		return err
	}
	return cw.f.Close()
}
