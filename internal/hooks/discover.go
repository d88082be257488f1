package hooks

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LegacySuffix marks a hook that was moved aside when githooks was installed.
const LegacySuffix = ".replaced.githook"

// Discover returns the items for trigger under root. root/<trigger> may be a
// single file or a directory of scripts. A missing path yields no items.
func Discover(root, trigger string, origin Origin) ([]Item, error) {
	path := filepath.Join(root, trigger)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if !info.IsDir() {
		if !info.Mode().IsRegular() {
			return nil, nil
		}
		return []Item{newItem(path, trigger, origin, info)}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var items []Item
	for _, name := range names {
		p := filepath.Join(path, name)
		// Stat follows symlinks so linked scripts count as items.
		fi, err := os.Stat(p)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		items = append(items, newItem(p, trigger, origin, fi))
	}
	return items, nil
}

// Legacy returns the legacy item for trigger in hooksDir, if one exists and
// is executable.
func Legacy(hooksDir, trigger string) (Item, bool) {
	path := filepath.Join(hooksDir, trigger+LegacySuffix)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() || !isExecutable(info) {
		return Item{}, false
	}
	return newItem(path, trigger, OriginLegacy, info), true
}

func newItem(path, trigger string, origin Origin, info fs.FileInfo) Item {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return Item{
		Path:       abs,
		Trigger:    trigger,
		Origin:     origin,
		Executable: isExecutable(info),
	}
}

func isExecutable(info fs.FileInfo) bool {
	return info.Mode().Perm()&0o111 != 0
}
