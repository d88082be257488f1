package hooks

import (
	"slices"

	"github.com/sahilm/fuzzy"
)

// Triggers lists the hook names git knows about.
var Triggers = []string{
	"applypatch-msg",
	"pre-applypatch",
	"post-applypatch",
	"pre-commit",
	"pre-merge-commit",
	"prepare-commit-msg",
	"commit-msg",
	"post-commit",
	"pre-rebase",
	"post-checkout",
	"post-merge",
	"pre-push",
	"pre-receive",
	"update",
	"proc-receive",
	"post-receive",
	"post-update",
	"reference-transaction",
	"push-to-checkout",
	"pre-auto-gc",
	"post-rewrite",
	"sendemail-validate",
	"fsmonitor-watchman",
	"p4-changelist",
	"p4-prepare-changelist",
	"p4-post-changelist",
	"p4-pre-submit",
	"post-index-change",
}

// serverTriggers run in bare repositories on push and are not installed.
var serverTriggers = []string{
	"pre-receive",
	"update",
	"proc-receive",
	"post-receive",
	"post-update",
	"push-to-checkout",
	"fsmonitor-watchman",
}

// RefreshTrigger is the trigger on which shared repositories are updated.
const RefreshTrigger = "post-merge"

// IsKnownTrigger reports whether name is a git hook name.
func IsKnownTrigger(name string) bool {
	return slices.Contains(Triggers, name)
}

// ClientTriggers returns the triggers "install" writes entry points for.
func ClientTriggers() []string {
	var out []string
	for _, t := range Triggers {
		if !slices.Contains(serverTriggers, t) {
			out = append(out, t)
		}
	}
	return out
}

// SuggestTrigger returns the known trigger closest to name, or "" if
// nothing matches.
func SuggestTrigger(name string) string {
	matches := fuzzy.Find(name, Triggers)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
