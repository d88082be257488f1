package trust

import (
	"context"
	"errors"

	"github.com/raphi011/githooks/internal/hooks"
)

// ErrNoTerminal is returned by a Prompter that cannot reach the operator.
var ErrNoTerminal = errors.New("no terminal available for prompting")

// Choice is the operator's answer for a new or changed hook.
type Choice int

const (
	// Accept runs the hook and records its fingerprint.
	Accept Choice = iota
	// AcceptAll accepts this hook and every remaining one of this invocation.
	AcceptAll
	// Decline skips the hook for this invocation only.
	Decline
	// Disable skips the hook now and in every future invocation.
	Disable
)

func (c Choice) String() string {
	switch c {
	case Accept:
		return "accept"
	case AcceptAll:
		return "accept-all"
	case Decline:
		return "decline"
	case Disable:
		return "disable"
	default:
		return "unknown"
	}
}

// Reason tells the operator why a hook needs a decision.
type Reason string

const (
	ReasonNew     Reason = "new"
	ReasonChanged Reason = "changed"
)

// Prompter asks the operator for trust decisions.
type Prompter interface {
	// ConfirmTrustAll asks whether all current and future hooks of the
	// repository should be trusted.
	ConfirmTrustAll(ctx context.Context) (bool, error)
	// Choose asks what to do with a new or changed hook.
	Choose(ctx context.Context, item hooks.Item, reason Reason) (Choice, error)
}
