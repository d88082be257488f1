package hooks

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Repository layout under the working tree.
const (
	Dir            = ".githooks"
	IgnoreFile     = ".ignore"
	SharedFile     = ".shared"
	SharedYAMLFile = ".shared.yaml"
	TrustAllMarker = "trust-all"
)

// HooksRoot returns the .githooks directory of the repository at root.
func HooksRoot(repoRoot string) string {
	return filepath.Join(repoRoot, Dir)
}

// HasTrustAllMarker reports whether the repository asks to waive per-item
// trust checks.
func HasTrustAllMarker(repoRoot string) bool {
	_, err := os.Stat(filepath.Join(repoRoot, Dir, TrustAllMarker))
	return err == nil
}

type sharedYAML struct {
	URLs []string `yaml:"urls"`
}

// LocalSharedList returns the shared repository URLs the repository declares,
// one per line: first the entries of .shared, then those of .shared.yaml.
// Comment lines are dropped. Missing files yield an empty list.
func LocalSharedList(repoRoot string) (string, error) {
	var urls []string

	data, err := os.ReadFile(filepath.Join(repoRoot, Dir, SharedFile))
	switch {
	case err == nil:
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			urls = append(urls, line)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("failed to read %s: %w", SharedFile, err)
	}

	data, err = os.ReadFile(filepath.Join(repoRoot, Dir, SharedYAMLFile))
	switch {
	case err == nil:
		var doc sharedYAML
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", SharedYAMLFile, err)
		}
		for _, u := range doc.URLs {
			if u = strings.TrimSpace(u); u != "" {
				urls = append(urls, u)
			}
		}
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("failed to read %s: %w", SharedYAMLFile, err)
	}

	return strings.Join(urls, "\n"), nil
}
