package styles

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name        string
		theme       string
		wantPrimary any
		wantErr     bool
	}{
		{"empty selects default", "", lipgloss.Color("62"), false},
		{"nord", "nord", lipgloss.Color("#88c0d0"), false},
		{"none", "none", lipgloss.NoColor{}, false},
		{"unknown", "solarized", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Init(tt.theme)
			if tt.wantErr {
				if err == nil || !strings.Contains(err.Error(), "unknown theme") {
					t.Fatalf("Init(%q) error = %v, want unknown theme", tt.theme, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Init(%q) error = %v", tt.theme, err)
			}
			if Current().Primary != tt.wantPrimary {
				t.Errorf("Primary = %v, want %v", Current().Primary, tt.wantPrimary)
			}
			if Primary != tt.wantPrimary {
				t.Errorf("global Primary not updated: %v", Primary)
			}
		})
	}

	if err := Init(""); err != nil {
		t.Fatal(err)
	}
}

func TestThemeNames(t *testing.T) {
	got := strings.Join(ThemeNames(), ",")
	if got != "default,none,nord" {
		t.Errorf("ThemeNames() = %q", got)
	}
}

func TestTrustState(t *testing.T) {
	if err := Init("none"); err != nil {
		t.Fatal(err)
	}
	defer Init("")

	tests := map[string]string{
		"accepted":  "✓ accepted",
		"trust-all": "✓ trust-all",
		"disabled":  "✕ disabled",
		"changed":   "? changed",
		"new":       "? new",
		"ignored":   "- ignored",
		"other":     "other",
	}
	for state, want := range tests {
		if got := TrustState(state); !strings.Contains(got, want) {
			t.Errorf("TrustState(%q) = %q, want to contain %q", state, got, want)
		}
	}
}
