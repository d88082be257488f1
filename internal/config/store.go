package config

import (
	"context"
	"sync"

	"github.com/raphi011/githooks/internal/git"
)

// Scope selects whether a key belongs to the user or to one repository.
type Scope int

const (
	Global Scope = iota
	Local
)

func (s Scope) String() string {
	if s == Local {
		return "local"
	}
	return "global"
}

// Configuration keys.
const (
	KeyTrustAll = "githooks.trust.all"
	KeyShared   = "githooks.shared"
)

// Store is a persistent key/value store scoped per user and per repository.
type Store interface {
	// Get returns the value of key; ok is false when the key is unset.
	Get(ctx context.Context, scope Scope, key string) (value string, ok bool, err error)
	Set(ctx context.Context, scope Scope, key, value string) error
	Unset(ctx context.Context, scope Scope, key string) error
}

// GitStore stores keys in git config. Local keys go to the repository at Dir.
type GitStore struct {
	Dir string
}

// NewGitStore creates a GitStore for the repository at dir.
func NewGitStore(dir string) *GitStore {
	return &GitStore{Dir: dir}
}

func (s *GitStore) Get(ctx context.Context, scope Scope, key string) (string, bool, error) {
	return git.ConfigGet(ctx, s.Dir, gitScope(scope), key)
}

func (s *GitStore) Set(ctx context.Context, scope Scope, key, value string) error {
	return git.ConfigSet(ctx, s.Dir, gitScope(scope), key, value)
}

func (s *GitStore) Unset(ctx context.Context, scope Scope, key string) error {
	return git.ConfigUnset(ctx, s.Dir, gitScope(scope), key)
}

func gitScope(s Scope) git.ConfigScope {
	if s == Local {
		return git.ScopeLocal
	}
	return git.ScopeGlobal
}

// MemoryStore is an in-memory Store safe for concurrent use.
type MemoryStore struct {
	mu     sync.Mutex
	values map[Scope]map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[Scope]map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, scope Scope, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[scope][key]
	return v, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, scope Scope, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values[scope] == nil {
		s.values[scope] = make(map[string]string)
	}
	s.values[scope][key] = value
	return nil
}

func (s *MemoryStore) Unset(_ context.Context, scope Scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values[scope], key)
	return nil
}
