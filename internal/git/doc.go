// Package git provides git operations via shell commands.
//
// All operations use [os/exec.Command] to call the git CLI directly rather than
// using Go git libraries. This approach is simpler, more reliable, and ensures
// compatibility with user configurations (SSH keys, credential helpers, aliases).
//
// # Repository Layout
//
//   - [RepoRoot]: working tree root hooks are resolved against
//   - [GitDir]: private metadata directory holding the checksum store
//   - [HooksDir]: directory git runs hook entry points from (core.hooksPath aware)
//
// # Shared Hook Mirrors
//
//   - [Clone], [Pull], [OriginURL]: mirror maintenance, also exposed through [Client]
//
// # Configuration
//
//   - [ConfigGet], [ConfigSet], [ConfigUnset]: scoped git config access
package git
