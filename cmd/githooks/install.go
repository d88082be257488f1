package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/raphi011/githooks/internal/hooks"
	"github.com/raphi011/githooks/internal/storage"
)

// shimMarker identifies hook files written by install.
const shimMarker = "# githooks shim"

// shimScript returns the entry point installed for trigger.
func shimScript(binary, trigger string) string {
	return fmt.Sprintf("#!/bin/sh\n%s\nexec %s run %s -- \"$@\"\n", shimMarker, shellQuote(binary), trigger)
}

// shellQuote wraps s in single quotes for /bin/sh.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// isShim reports whether path is a hook file written by install.
func isShim(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return strings.Contains(string(data), "\n"+shimMarker+"\n")
}

// installAction describes what install or uninstall did for one trigger.
type installAction struct {
	Trigger string
	Action  string
}

// installShims writes a shim for every trigger into hooksDir. A foreign hook
// already in place is moved to its legacy name so it keeps running first.
func installShims(hooksDir, binary string, triggers []string) ([]installAction, error) {
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return nil, err
	}

	var actions []installAction
	for _, trigger := range triggers {
		path := filepath.Join(hooksDir, trigger)
		action := "installed"

		if _, err := os.Lstat(path); err == nil && !isShim(path) {
			legacy := path + hooks.LegacySuffix
			if _, err := os.Lstat(legacy); err == nil {
				return actions, fmt.Errorf("cannot move %s aside: %s already exists", path, legacy)
			}
			if err := os.Rename(path, legacy); err != nil {
				return actions, err
			}
			action = "installed, previous hook kept as " + filepath.Base(legacy)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return actions, err
		}

		if err := storage.WriteFile(path, []byte(shimScript(binary, trigger)), 0o755); err != nil {
			return actions, fmt.Errorf("write %s: %w", path, err)
		}
		actions = append(actions, installAction{Trigger: trigger, Action: action})
	}
	return actions, nil
}

// uninstallShims removes the shims in hooksDir and puts replaced hooks back.
// Hook files that are not shims are left alone.
func uninstallShims(hooksDir string, triggers []string) ([]installAction, error) {
	var actions []installAction
	for _, trigger := range triggers {
		path := filepath.Join(hooksDir, trigger)
		if !isShim(path) {
			continue
		}
		if err := os.Remove(path); err != nil {
			return actions, err
		}

		action := "removed"
		legacy := path + hooks.LegacySuffix
		if _, err := os.Lstat(legacy); err == nil {
			if err := os.Rename(legacy, path); err != nil {
				return actions, err
			}
			action = "removed, previous hook restored"
		}
		actions = append(actions, installAction{Trigger: trigger, Action: action})
	}
	return actions, nil
}

// executablePath returns the absolute path of the running binary.
func executablePath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(exe)
}
