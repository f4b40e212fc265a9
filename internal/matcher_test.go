package internal

import "testing"

// ==== Matcher tests ====

func TestExactMatcher(t *testing.T) {
	m, err := NewMatcher(MatchExact, "file.txt")
	if err != nil {
		t.Fatal(err)
	}
	if !m.Match("file.txt") {
		t.Error("exact failed to match equal string")
	}
	if m.Match("myfile.txt") || m.Match("FILE.TXT") {
		t.Error("exact must not match substrings or other case")
	}
}

func TestSubstringMatcher_CaseInsensitive(t *testing.T) {
	m, err := NewMatcher(MatchSubstring, "handler")
	if err != nil {
		t.Fatal(err)
	}
	if !m.Match("Handler.go") {
		t.Error("substring must be case-insensitive")
	}
	if !m.Match("src/request_handler.py") {
		t.Error("substring failed to match inside a path")
	}
	if m.Match("src/main.go") {
		t.Error("substring incorrectly matched")
	}
}

func TestRegexMatcher_Unanchored(t *testing.T) {
	m, err := NewMatcher(MatchRegex, `\.txt$`)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Match("dir/notes.txt") {
		t.Error("regex failed to search inside path")
	}
	if m.Match("dir/notes.txt.bak") {
		t.Error("regex incorrectly matched")
	}
}

func TestNewMatcher_EmptyPatternIsNoFilter(t *testing.T) {
	m, err := NewMatcher(MatchRegex, "")
	if err != nil || m != nil {
		t.Fatalf("empty pattern should yield nil matcher, got %v, %v", m, err)
	}
}

func TestNewMatcher_InvalidRegex(t *testing.T) {
	if _, err := NewMatcher(MatchRegex, "["); err == nil {
		t.Fatal("expected regex compile error")
	}
}

// ==== PathFilter tests ====

func TestPathFilter_NoPatternsPassEverything(t *testing.T) {
	f, err := NewPathFilter(MatchExact, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if !f.Allow("any/path.go", "path.go") {
		t.Error("empty filter must allow everything")
	}
}

func TestPathFilter_ExactMatchesNameOrRelPath(t *testing.T) {
	f, err := NewPathFilter(MatchExact, "file.txt", "")
	if err != nil {
		t.Fatal(err)
	}
	if !f.Allow("dir/file.txt", "file.txt") {
		t.Error("exact pattern must match the bare file name")
	}
	if !f.Allow("file.txt", "file.txt") {
		t.Error("exact pattern must match the full relative path")
	}
	if f.Allow("dir/myfile.txt", "myfile.txt") {
		t.Error("exact pattern must never match a superstring of the name")
	}

	f, err = NewPathFilter(MatchExact, "dir/file.txt", "")
	if err != nil {
		t.Fatal(err)
	}
	if !f.Allow("dir/file.txt", "file.txt") {
		t.Error("exact pattern with separator must match the relative path")
	}
	if f.Allow("other/file.txt", "file.txt") {
		t.Error("exact pattern with separator must not match another directory")
	}
}

func TestPathFilter_ExcludeWinsOverInclude(t *testing.T) {
	f, err := NewPathFilter(MatchSubstring, "src", "test")
	if err != nil {
		t.Fatal(err)
	}
	if f.Allow("src/foo_test.go", "foo_test.go") {
		t.Error("a path matching both include and exclude must be rejected")
	}
	if !f.Allow("src/foo.go", "foo.go") {
		t.Error("include-only match must pass")
	}
	if f.Allow("lib/foo.go", "foo.go") {
		t.Error("non-include match must be rejected")
	}
}

func TestPathFilter_SubstringTestsRelPathOnly(t *testing.T) {
	f, err := NewPathFilter(MatchSubstring, "config", "")
	if err != nil {
		t.Fatal(err)
	}
	if !f.Allow("Config/app.yaml", "app.yaml") {
		t.Error("substring must match inside the relative path, any case")
	}
}
