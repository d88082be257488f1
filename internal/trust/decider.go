package trust

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/raphi011/githooks/internal/config"
	"github.com/raphi011/githooks/internal/hooks"
	"github.com/raphi011/githooks/internal/log"
)

// Decision is the outcome for one hook item.
type Decision int

const (
	Skip Decision = iota
	Run
)

func (d Decision) String() string {
	if d == Run {
		return "run"
	}
	return "skip"
}

// State describes a hook's trust standing without asking anybody.
type State string

const (
	StateTrustAll State = "trust-all"
	StateAccepted State = "accepted"
	StateDisabled State = "disabled"
	StateChanged  State = "changed"
	StateNew      State = "new"
)

// Decider applies the trust rules of one repository.
type Decider struct {
	RepoRoot string
	Store    *Store
	Config   config.Store
	Prompter Prompter
}

// NewDecider creates a Decider.
func NewDecider(repoRoot string, store *Store, cfg config.Store, p Prompter) *Decider {
	return &Decider{RepoRoot: repoRoot, Store: store, Config: cfg, Prompter: p}
}

// Decide returns whether item may run, prompting for new or changed hooks
// and recording the answer.
func (d *Decider) Decide(ctx context.Context, sess *Session, item hooks.Item) (Decision, error) {
	l := log.FromContext(ctx)

	if hooks.HasTrustAllMarker(d.RepoRoot) {
		trusted, err := d.trustAll(ctx, sess)
		if err != nil {
			return Skip, err
		}
		if trusted {
			l.Debug("trust-all", "session", sess.ID, "path", item.Path)
			return Run, nil
		}
	}

	rec, known := d.Store.Lookup(item.Path)
	if known && rec.Status == StatusDisabled {
		l.Printf("githooks: skipping disabled hook %s\n", item.Path)
		return Skip, nil
	}

	fp, err := Fingerprint(item.Path)
	if err != nil {
		return Skip, err
	}

	reason := ReasonNew
	if known {
		if rec.Fingerprint == fp {
			return Run, nil
		}
		reason = ReasonChanged
	}

	if sess.acceptAll {
		if err := d.Store.Accept(ctx, item.Path, fp); err != nil {
			return Skip, err
		}
		return Run, nil
	}

	choice, err := d.Prompter.Choose(ctx, item, reason)
	if err != nil {
		if !errors.Is(err, ErrNoTerminal) {
			return Skip, fmt.Errorf("trust prompt failed: %w", err)
		}
		l.Warn("cannot ask about hook, skipping", "path", item.Path, "reason", reason)
		choice = Decline
	}
	l.Debug("trust decision", "session", sess.ID, "path", item.Path, "reason", reason, "choice", choice)

	switch choice {
	case AcceptAll:
		sess.acceptAll = true
		fallthrough
	case Accept:
		if err := d.Store.Accept(ctx, item.Path, fp); err != nil {
			return Skip, err
		}
		return Run, nil
	case Disable:
		if err := d.Store.Disable(ctx, item.Path); err != nil {
			return Skip, err
		}
		l.Printf("githooks: disabled %s\n", item.Path)
		return Skip, nil
	default:
		l.Printf("githooks: declined %s\n", item.Path)
		return Skip, nil
	}
}

// trustAll resolves the repository's trust-all flag once per session.
func (d *Decider) trustAll(ctx context.Context, sess *Session) (bool, error) {
	if sess.trustAllResolved {
		return sess.trustAll, nil
	}

	v, ok, err := d.Config.Get(ctx, config.Local, config.KeyTrustAll)
	if err != nil {
		return false, err
	}

	var trusted bool
	if ok {
		trusted = isYes(v)
	} else {
		answer, err := d.Prompter.ConfirmTrustAll(ctx)
		switch {
		case errors.Is(err, ErrNoTerminal):
			// Left unset so the question comes up again on a terminal.
			log.FromContext(ctx).Warn("cannot ask about trust-all, treating as N")
		case err != nil:
			return false, fmt.Errorf("trust-all prompt failed: %w", err)
		default:
			trusted = answer
			if err := d.Config.Set(ctx, config.Local, config.KeyTrustAll, yesNo(answer)); err != nil {
				return false, err
			}
		}
	}

	sess.trustAllResolved = true
	sess.trustAll = trusted
	return trusted, nil
}

// Inspect reports item's state without prompting or writing anything.
func (d *Decider) Inspect(ctx context.Context, item hooks.Item) (State, error) {
	if hooks.HasTrustAllMarker(d.RepoRoot) {
		v, ok, err := d.Config.Get(ctx, config.Local, config.KeyTrustAll)
		if err != nil {
			return "", err
		}
		if ok && isYes(v) {
			return StateTrustAll, nil
		}
	}

	rec, ok := d.Store.Lookup(item.Path)
	if !ok {
		return StateNew, nil
	}
	if rec.Status == StatusDisabled {
		return StateDisabled, nil
	}
	fp, err := Fingerprint(item.Path)
	if err != nil {
		return "", err
	}
	if fp == rec.Fingerprint {
		return StateAccepted, nil
	}
	return StateChanged, nil
}

func isYes(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "y")
}

func yesNo(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}
