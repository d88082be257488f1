package trust

import "github.com/google/uuid"

// Session carries the trust state of one githooks invocation. Nothing in it
// outlives the process.
type Session struct {
	ID string

	acceptAll bool

	trustAllResolved bool
	trustAll         bool
}

// NewSession starts a session with a fresh invocation ID.
func NewSession() *Session {
	return &Session{ID: uuid.NewString()}
}
