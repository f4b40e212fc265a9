package internal

import (
	"path/filepath"
	"strings"
)

// defaultBinaryExts are extensions that make no sense to search for text
// patterns. O(1) map lookup.
var defaultBinaryExts = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".bmp": {},
	".ico": {},
	".pdf": {},
	".zip": {}, ".tar": {}, ".gz": {}, ".bz2": {}, ".7z": {},
	".jar": {},
	".exe": {}, ".dll": {}, ".so": {}, ".dylib": {},
	".class": {},
	".bin":   {},
	".woff": {}, ".woff2": {}, ".ttf": {}, ".otf": {},
}

// BinaryHeuristic decides by extension whether a file is presumably binary
// and not worth opening for content checks. No byte-level sniffing.
type BinaryHeuristic struct {
	exts map[string]struct{}
}

func NewBinaryHeuristic() *BinaryHeuristic {
	return &BinaryHeuristic{exts: defaultBinaryExts}
}

func (h *BinaryHeuristic) IsLikelyBinary(name string) bool {
	_, ok := h.exts[strings.ToLower(filepath.Ext(name))]
	return ok
}
