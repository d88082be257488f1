// Package config handles githooks settings and persistent key/value configuration.
//
// Two independent layers exist:
//
// # Settings File
//
// Tool settings are read from ~/.config/githooks/config.toml with environment
// variable overrides:
//
//   - GITHOOKS_CACHE_DIR env var: where shared hook repositories are mirrored
//   - Config file settings
//   - Default values
//
// Example:
//
//	[shared]
//	cache_dir = "~/.githooks/shared"
//	retries = 2
//
//	[run]
//	shell = "sh"
//
// Directory paths must be absolute or start with ~.
//
// # Key/Value Store
//
// Decisions and lists that belong to a user or a repository are kept in a
// [Store]. [GitStore] persists them with git config (global scope for the
// user, local scope for the repository); [MemoryStore] is an in-process
// substitute for tests.
//
//   - [KeyTrustAll] (local): "Y" or "N", the repository-wide trust-all answer
//   - [KeyShared] (global): comma or newline separated shared repository URLs
package config
