package hooks

import (
	"slices"
	"testing"
)

func TestIsKnownTrigger(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"pre-commit", "post-merge", "commit-msg"} {
		if !IsKnownTrigger(name) {
			t.Errorf("IsKnownTrigger(%q) = false", name)
		}
	}
	if IsKnownTrigger("pre-comit") {
		t.Error("IsKnownTrigger(pre-comit) = true")
	}
}

func TestSuggestTrigger(t *testing.T) {
	t.Parallel()

	if got := SuggestTrigger("pre-comit"); got != "pre-commit" {
		t.Errorf("SuggestTrigger(pre-comit) = %q, want pre-commit", got)
	}
	if got := SuggestTrigger("zzz"); got != "" {
		t.Errorf("SuggestTrigger(zzz) = %q, want empty", got)
	}
}

func TestClientTriggers(t *testing.T) {
	t.Parallel()

	got := ClientTriggers()
	for _, want := range []string{"pre-commit", "post-merge", "pre-push"} {
		if !slices.Contains(got, want) {
			t.Errorf("ClientTriggers() missing %q", want)
		}
	}
	for _, server := range []string{"pre-receive", "update", "post-receive"} {
		if slices.Contains(got, server) {
			t.Errorf("ClientTriggers() contains server hook %q", server)
		}
	}
}
