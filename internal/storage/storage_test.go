package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFile_CreatesDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "pre-commit")
	if err := WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("file not created: %v", err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Errorf("mode = %v, want 0755", info.Mode().Perm())
	}
}

func TestWriteFile_Overwrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := WriteFile(path, []byte("first"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(path, []byte("second"), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", data, "second")
	}

	// No temp files left behind
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected 1 entry in dir, got %d", len(entries))
	}
}

func TestAppendLine(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "log")
	for _, line := range []string{"one", "two"} {
		if err := AppendLine(path, line, 0o644); err != nil {
			t.Fatalf("AppendLine(%q) error = %v", line, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "one\ntwo\n" {
		t.Errorf("content = %q, want %q", data, "one\ntwo\n")
	}
}

func TestAppendLine_RejectsNewlines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "log")
	err := AppendLine(path, "a\nb", 0o644)
	if err == nil || !strings.Contains(err.Error(), "newlines") {
		t.Errorf("AppendLine() error = %v, want newline rejection", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("file should not be created for a rejected line")
	}
}
