package main

import "testing"

func TestAddSharedLine(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		url       string
		want      string
		wantAdded bool
	}{
		{"empty file", "", "git@host:org/a.git", "git@host:org/a.git\n", true},
		{"appends", "# hooks\ngit@host:org/a.git\n", "git@host:org/b.git", "# hooks\ngit@host:org/a.git\ngit@host:org/b.git\n", true},
		{"missing trailing newline", "git@host:org/a.git", "git@host:org/b.git", "git@host:org/a.git\ngit@host:org/b.git\n", true},
		{"already listed", "git@host:org/a.git, git@host:org/b.git\n", "git@host:org/b.git", "git@host:org/a.git, git@host:org/b.git\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, added := addSharedLine(tt.raw, tt.url)
			if got != tt.want || added != tt.wantAdded {
				t.Errorf("addSharedLine() = (%q, %v), want (%q, %v)", got, added, tt.want, tt.wantAdded)
			}
		})
	}
}

func TestRemoveSharedLine(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		url         string
		want        string
		wantRemoved bool
	}{
		{"only entry", "git@host:org/a.git\n", "git@host:org/a.git", "", true},
		{"keeps comments", "# hooks\ngit@host:org/a.git\ngit@host:org/b.git\n", "git@host:org/a.git", "# hooks\ngit@host:org/b.git\n", true},
		{"comma separated", "git@host:org/a.git,git@host:org/b.git\n", "git@host:org/b.git", "git@host:org/a.git\n", true},
		{"not listed", "git@host:org/a.git\n", "git@host:org/c.git", "git@host:org/a.git\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, removed := removeSharedLine(tt.raw, tt.url)
			if got != tt.want || removed != tt.wantRemoved {
				t.Errorf("removeSharedLine() = (%q, %v), want (%q, %v)", got, removed, tt.want, tt.wantRemoved)
			}
		})
	}
}
