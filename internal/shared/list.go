package shared

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Entry is one declared shared repository.
type Entry struct {
	URL  string
	Name string // mirror directory name, see Normalize
}

// ParseList splits raw on commas and newlines. Blank entries and '#' comment
// lines are dropped; duplicates keep their first position.
func ParseList(raw string) []Entry {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})

	seen := make(map[string]bool, len(fields))
	var entries []Entry
	for _, f := range fields {
		url := strings.TrimSpace(f)
		if url == "" || strings.HasPrefix(url, "#") || seen[url] {
			continue
		}
		seen[url] = true
		entries = append(entries, Entry{URL: url, Name: Normalize(url)})
	}
	return entries
}

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Normalize derives the mirror name of url from its last two path segments,
// collapsing every run of non-alphanumeric characters to '_'.
func Normalize(url string) string {
	u := strings.TrimRight(url, "/")
	u = strings.TrimSuffix(u, ".git")

	segments := strings.FieldsFunc(u, func(r rune) bool { return r == '/' || r == ':' })
	if len(segments) > 2 {
		segments = segments[len(segments)-2:]
	}
	name := nonAlnum.ReplaceAllString(strings.Join(segments, "/"), "_")
	return strings.Trim(name, "_")
}

// sameRemote reports whether a mirror cloned from origin serves declared.
// git records a local clone source as an absolute path, so local paths are
// compared after resolving them against the working directory.
func sameRemote(origin, declared string) bool {
	if origin == declared {
		return true
	}
	if !isLocalPath(origin) || !isLocalPath(declared) {
		return false
	}
	return resolveLocal(origin) == resolveLocal(declared)
}

func isLocalPath(url string) bool {
	if strings.HasPrefix(url, "file://") {
		return true
	}
	if strings.Contains(url, "://") {
		return false
	}
	// scp-like syntax: user@host:path has a colon before any slash
	if i := strings.Index(url, ":"); i >= 0 && !strings.Contains(url[:i], "/") {
		return false
	}
	return true
}

func resolveLocal(path string) string {
	path = strings.TrimSuffix(strings.TrimPrefix(path, "file://"), "/")
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if real, err := filepath.EvalSymlinks(path); err == nil {
		path = real
	}
	return filepath.Clean(path)
}
