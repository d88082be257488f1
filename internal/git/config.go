package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ConfigScope selects the git config file a key is read from or written to.
type ConfigScope string

const (
	ScopeGlobal ConfigScope = "--global"
	ScopeLocal  ConfigScope = "--local"
)

// ConfigGet returns the value of key. ok is false when the key is not set.
// dir is ignored for global keys.
func ConfigGet(ctx context.Context, dir string, scope ConfigScope, key string) (value string, ok bool, err error) {
	output, err := outputGit(ctx, scopeDir(dir, scope), "config", string(scope), "--get", key)
	if err != nil {
		var exitErr *exec.ExitError
		// git config exits 1 when the key is missing
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %v", key, err)
	}
	return strings.TrimRight(string(output), "\n"), true, nil
}

// ConfigSet writes key=value.
func ConfigSet(ctx context.Context, dir string, scope ConfigScope, key, value string) error {
	if err := runGit(ctx, scopeDir(dir, scope), "config", string(scope), key, value); err != nil {
		return fmt.Errorf("failed to set %s: %v", key, err)
	}
	return nil
}

// ConfigUnset removes key. Removing a missing key is not an error.
func ConfigUnset(ctx context.Context, dir string, scope ConfigScope, key string) error {
	_, ok, err := ConfigGet(ctx, dir, scope, key)
	if err != nil || !ok {
		return err
	}
	if err := runGit(ctx, scopeDir(dir, scope), "config", string(scope), "--unset-all", key); err != nil {
		return fmt.Errorf("failed to unset %s: %v", key, err)
	}
	return nil
}

func scopeDir(dir string, scope ConfigScope) string {
	if scope == ScopeGlobal {
		return ""
	}
	return dir
}
