package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SharedSettings configures shared hook repository mirrors.
type SharedSettings struct {
	CacheDir string `toml:"cache_dir"` // mirror root (absolute or ~/...)
	Retries  int    `toml:"retries"`   // extra clone/pull attempts on failure
}

// RunSettings configures hook execution.
type RunSettings struct {
	Shell string `toml:"shell"` // interpreter for non-executable hooks without shebang
}

// UISettings configures terminal output.
type UISettings struct {
	Theme string `toml:"theme"` // default, nord or none
}

// Settings holds the githooks tool settings.
type Settings struct {
	Shared SharedSettings `toml:"shared"`
	Run    RunSettings    `toml:"run"`
	UI     UISettings     `toml:"ui"`
}

// Default returns the default settings.
func Default() Settings {
	s := Settings{
		Shared: SharedSettings{Retries: 2},
		Run:    RunSettings{Shell: "sh"},
	}
	if home, err := os.UserHomeDir(); err == nil {
		s.Shared.CacheDir = filepath.Join(home, ".githooks", "shared")
	}
	return s
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// SettingsPath returns the path to the settings file.
func SettingsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "githooks", "config.toml"), nil
}

// LoadSettings reads settings from path.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func LoadSettings(path string) (Settings, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg)
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidatePath(cfg.Shared.CacheDir, "shared.cache_dir"); err != nil {
		return Default(), err
	}
	if cfg.Shared.Retries < 0 {
		return Default(), fmt.Errorf("shared.retries must not be negative, got %d", cfg.Shared.Retries)
	}
	if cfg.Run.Shell == "" {
		cfg.Run.Shell = "sh"
	}

	expanded, err := expandPath(cfg.Shared.CacheDir)
	if err != nil {
		return Default(), fmt.Errorf("expand shared.cache_dir: %w", err)
	}
	cfg.Shared.CacheDir = expanded

	return applyEnv(cfg)
}

// Load reads settings from the default location.
func Load() (Settings, error) {
	path, err := SettingsPath()
	if err != nil {
		return Default(), nil
	}
	return LoadSettings(path)
}

func applyEnv(cfg Settings) (Settings, error) {
	dir := os.Getenv("GITHOOKS_CACHE_DIR")
	if dir == "" {
		return cfg, nil
	}
	if err := ValidatePath(dir, "GITHOOKS_CACHE_DIR"); err != nil {
		return Default(), err
	}
	expanded, err := expandPath(dir)
	if err != nil {
		return Default(), err
	}
	cfg.Shared.CacheDir = expanded
	return cfg, nil
}

const defaultSettingsFile = `# githooks settings

[shared]
# Where shared hook repositories are mirrored. Must be absolute or start with ~.
# cache_dir = "~/.githooks/shared"

# Extra attempts when cloning or pulling a shared repository fails.
# retries = 2

[run]
# Interpreter for hook files that are neither executable nor carry a shebang.
# shell = "sh"

[ui]
# Color theme: default, nord or none.
# theme = "default"
`

// DefaultSettingsFile returns the commented template written by "config init".
func DefaultSettingsFile() string {
	return defaultSettingsFile
}

type settingsKey struct{}
type workDirKey struct{}

// WithSettings returns a context carrying s.
func WithSettings(ctx context.Context, s *Settings) context.Context {
	return context.WithValue(ctx, settingsKey{}, s)
}

// SettingsFromContext returns the settings stored in ctx, or defaults.
func SettingsFromContext(ctx context.Context) *Settings {
	if s, ok := ctx.Value(settingsKey{}).(*Settings); ok && s != nil {
		return s
	}
	d := Default()
	return &d
}

// WithWorkDir returns a context carrying the working directory.
func WithWorkDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, workDirKey{}, dir)
}

// WorkDirFromContext returns the working directory stored in ctx.
// Falls back to os.Getwd when not set or empty.
func WorkDirFromContext(ctx context.Context) string {
	if dir, ok := ctx.Value(workDirKey{}).(string); ok && dir != "" {
		return dir
	}
	wd, _ := os.Getwd()
	return wd
}
