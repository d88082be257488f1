// Package ignore decides whether a hook item is excluded from a run.
//
// Patterns come from two files, read in this order:
//
//	.githooks/.ignore            applies to every trigger
//	.githooks/<trigger>/.ignore  applies to one trigger
//
// Blank lines and lines starting with '#' are skipped. Each remaining line is
// a shell glob ('*', '?', '[...]') tested against the base name of the hook
// file. A line starting with '!' re-includes names matched by an earlier line.
package ignore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/moby/patternmatcher"
	"github.com/moby/patternmatcher/ignorefile"
	"golang.org/x/sys/unix"

	"github.com/raphi011/githooks/internal/hooks"
)

// RuleSet is the ordered list of patterns for one trigger.
type RuleSet struct {
	Patterns []string
}

// Load builds the rule set for trigger. Missing files contribute nothing.
func Load(repoRoot, trigger string) (RuleSet, error) {
	var rs RuleSet
	for _, path := range Files(repoRoot, trigger) {
		patterns, err := readFile(path)
		if err != nil {
			return RuleSet{}, err
		}
		rs.Patterns = append(rs.Patterns, patterns...)
	}
	return rs, nil
}

// Files returns the ignore files consulted for trigger, repository-wide first.
func Files(repoRoot, trigger string) []string {
	root := hooks.HooksRoot(repoRoot)
	return []string{
		filepath.Join(root, hooks.IgnoreFile),
		filepath.Join(root, trigger, hooks.IgnoreFile),
	}
}

func readFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		// A single-file trigger makes <trigger>/.ignore fail with ENOTDIR.
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, unix.ENOTDIR) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open ignore file: %w", err)
	}
	defer f.Close()

	patterns, err := ignorefile.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return patterns, nil
}

// Match reports whether name is ignored by the rule set.
func (rs RuleSet) Match(name string) (bool, error) {
	if len(rs.Patterns) == 0 {
		return false, nil
	}
	patterns := make([]string, len(rs.Patterns))
	for i, p := range rs.Patterns {
		patterns[i] = shellClasses(p)
	}
	pm, err := patternmatcher.New(patterns)
	if err != nil {
		return false, fmt.Errorf("invalid ignore pattern: %w", err)
	}
	return pm.MatchesOrParentMatches(name)
}

// shellClasses rewrites the shell negation "[!...]" to the "[^...]" form the
// matcher understands. Escaped brackets and a '!' later in a class are left
// alone.
func shellClasses(pattern string) string {
	b := []byte(pattern)
	inClass := false
	for i := 0; i < len(b); i++ {
		switch {
		case b[i] == '\\':
			i++
		case !inClass && b[i] == '[':
			inClass = true
			if i+1 < len(b) && b[i+1] == '!' {
				b[i+1] = '^'
				i++
			}
			// A ']' right after the opening bracket is a member, not the end.
			if i+1 < len(b) && b[i+1] == ']' {
				i++
			}
		case inClass && b[i] == ']':
			inClass = false
		}
	}
	return string(b)
}

// IsIgnored reports whether the hook at hookPath is excluded for trigger.
// Only the base name of hookPath is matched.
func IsIgnored(repoRoot, trigger, hookPath string) (bool, error) {
	rs, err := Load(repoRoot, trigger)
	if err != nil {
		return false, err
	}
	return rs.Match(filepath.Base(hookPath))
}
