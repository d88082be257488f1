package hooks

import (
	"path/filepath"
	"testing"
)

func TestLocalSharedList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		shared  string
		yaml    string
		want    string
		wantErr bool
	}{
		{
			name: "no files",
			want: "",
		},
		{
			name:   "plain list with comments",
			shared: "# team hooks\ngit@host:org/repo.git\n\n  https://example.com/a/b  \n",
			want:   "git@host:org/repo.git\nhttps://example.com/a/b",
		},
		{
			name: "yaml list",
			yaml: "urls:\n  - git@host:org/one.git\n  - ''\n  - git@host:org/two.git\n",
			want: "git@host:org/one.git\ngit@host:org/two.git",
		},
		{
			name:   "both files, plain first",
			shared: "git@host:org/plain.git\n",
			yaml:   "urls: [git@host:org/yaml.git]\n",
			want:   "git@host:org/plain.git\ngit@host:org/yaml.git",
		},
		{
			name:    "broken yaml",
			yaml:    "urls: [unterminated\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo := t.TempDir()
			if tt.shared != "" {
				writeHook(t, filepath.Join(repo, Dir, SharedFile), tt.shared, 0o644)
			}
			if tt.yaml != "" {
				writeHook(t, filepath.Join(repo, Dir, SharedYAMLFile), tt.yaml, 0o644)
			}

			got, err := LocalSharedList(repo)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LocalSharedList() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("LocalSharedList() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasTrustAllMarker(t *testing.T) {
	t.Parallel()

	repo := t.TempDir()
	if HasTrustAllMarker(repo) {
		t.Error("HasTrustAllMarker() = true without marker")
	}
	writeHook(t, filepath.Join(repo, Dir, TrustAllMarker), "", 0o644)
	if !HasTrustAllMarker(repo) {
		t.Error("HasTrustAllMarker() = false with marker")
	}
}

func TestHooksRoot(t *testing.T) {
	t.Parallel()

	if got := HooksRoot("/repo"); got != filepath.Join("/repo", ".githooks") {
		t.Errorf("HooksRoot() = %q", got)
	}
}
