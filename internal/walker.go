package internal

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
)

// defaultExcludedDirs are pruned before descent; their contents are never
// visited or counted.
var defaultExcludedDirs = map[string]struct{}{
	".git": {}, ".hg": {}, ".svn": {},
	".idea": {}, ".vscode": {},
	"__pycache__": {}, "node_modules": {},
	"dist": {}, "build": {}, "out": {}, "target": {},
	".gradle": {}, ".mvn": {},
	".venv": {}, "venv": {},
}

// Candidate is one regular file yielded by the walker, consumed exactly
// once by the pipeline.
type Candidate struct {
	Path string // absolute, for I/O
	Rel  string // slash-separated, relative to the root
}

// Walker enumerates regular files under a single root: depth-first when
// recursive, direct children only otherwise. Yield order is the underlying
// filesystem enumeration order, which is not guaranteed across platforms.
type Walker struct {
	root      string
	recursive bool
	prune     map[string]struct{}
}

func NewWalker(root string, recursive bool) *Walker {
	return &Walker{root: root, recursive: recursive, prune: defaultExcludedDirs}
}

// Walk calls fn for every candidate. Unreadable directories are reported
// through onError and skipped; traversal never aborts on a single bad
// entry. A non-nil error from fn stops the walk and is returned as-is.
func (w *Walker) Walk(ctx context.Context, fn func(Candidate) error, onError func(path string, err error)) error {
	if !w.recursive {
		ents, err := os.ReadDir(w.root)
		if err != nil {
			onError(w.root, err)
			return nil
		}
		for _, e := range ents {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if !e.Type().IsRegular() {
				continue
			}
			if err := fn(Candidate{Path: filepath.Join(w.root, e.Name()), Rel: e.Name()}); err != nil {
				return err
			}
		}
		return nil
	}

	return filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			onError(path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != w.root {
				if _, pruned := w.prune[d.Name()]; pruned {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if !d.Type().IsRegular() {
			// symlinks and special files are skipped silently
			return nil
		}
		rel, rerr := filepath.Rel(w.root, path)
		if rerr != nil {
			onError(path, rerr)
			return nil
		}
		return fn(Candidate{Path: path, Rel: filepath.ToSlash(rel)})
	})
}
