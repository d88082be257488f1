package prompt

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/raphi011/githooks/internal/hooks"
	"github.com/raphi011/githooks/internal/trust"
	"github.com/raphi011/githooks/internal/ui/styles"
)

// DefaultTTY is the controlling terminal on Unix systems.
const DefaultTTY = "/dev/tty"

// trustOptions are listed in trust.Choice order.
var trustOptions = []Option{
	{Label: "Accept and run", Key: "y"},
	{Label: "Accept all remaining hooks of this run", Key: "a"},
	{Label: "Skip this time", Key: "n"},
	{Label: "Disable permanently", Key: "d"},
}

// TTYPrompter asks trust questions on the controlling terminal.
type TTYPrompter struct {
	Path string
}

// NewTTYPrompter creates a prompter on /dev/tty.
func NewTTYPrompter() *TTYPrompter {
	return &TTYPrompter{Path: DefaultTTY}
}

func (p *TTYPrompter) open() (*os.File, error) {
	f, err := os.OpenFile(p.Path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", trust.ErrNoTerminal, err)
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		f.Close()
		return nil, trust.ErrNoTerminal
	}
	return f, nil
}

// ConfirmTrustAll implements trust.Prompter.
func (p *TTYPrompter) ConfirmTrustAll(ctx context.Context) (bool, error) {
	tty, err := p.open()
	if err != nil {
		return false, err
	}
	defer tty.Close()

	res, err := Confirm(ctx, "This repository wants you to trust all current and future hooks without checks. Trust all?", tty, tty)
	if err != nil {
		return false, err
	}
	if res.Cancelled {
		return false, ErrCancelled
	}
	return res.Confirmed, nil
}

// Choose implements trust.Prompter.
func (p *TTYPrompter) Choose(ctx context.Context, item hooks.Item, reason trust.Reason) (trust.Choice, error) {
	tty, err := p.open()
	if err != nil {
		return trust.Decline, err
	}
	defer tty.Close()

	res, err := Select(ctx, describe(item, reason), "What should githooks do?", trustOptions, tty, tty)
	if err != nil {
		return trust.Decline, err
	}
	if res.Cancelled {
		return trust.Decline, ErrCancelled
	}
	return trust.Choice(res.Index), nil
}

// describe renders the box shown above the trust choices.
func describe(item hooks.Item, reason trust.Reason) string {
	title := "New hook"
	if reason == trust.ReasonChanged {
		title = "Changed hook"
	}
	var b strings.Builder
	b.WriteString(styles.WarningStyle.Render(title) + " for " + styles.Bold.Render(item.Trigger) + "\n")
	b.WriteString(item.Path + "\n")
	b.WriteString(styles.MutedStyle.Render("origin: " + string(item.Origin)))
	return styles.RoundedBorder.Render(b.String())
}
