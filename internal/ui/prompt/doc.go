// Package prompt provides the interactive questions githooks asks.
//
// Git runs hooks with stdin and stdout wired to the invoking command, so
// prompts talk to the controlling terminal (/dev/tty) directly. Without one
// the prompter reports trust.ErrNoTerminal and the caller fails closed.
//
// Available prompts:
//   - [Confirm]: Yes/No confirmation prompt
//   - [Select]: Single selection from a list, with optional shortcut keys
//   - [TTYPrompter]: trust.Prompter backed by the two above
package prompt
