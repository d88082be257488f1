// Package hooks discovers the hook items that run for a trigger.
//
// A repository ships hooks under .githooks/. For every trigger git fires,
// the resolver assembles an execution plan of four stages, always in this
// order:
//
//  1. legacy: <hooks-dir>/<trigger>.replaced.githook, the hook that occupied
//     the git slot before githooks was installed (only if executable)
//  2. shared-global: hooks from shared repositories listed in the global
//     githooks.shared config key
//  3. shared-local: hooks from shared repositories listed in
//     .githooks/.shared or .githooks/.shared.yaml
//  4. local: .githooks/<trigger>
//
// # Discovery
//
// A trigger is either a single file (.githooks/pre-commit) or a directory
// (.githooks/pre-commit/) holding several scripts. Directory entries run in
// lexicographic order. Hidden entries and subdirectories are never items, so
// a trigger-scoped .ignore file can live next to the scripts.
//
// Items are discovered fresh on every invocation and never mutated.
//
// # Shared lists
//
// The .shared file holds one URL per line, '#' starts a comment line.
// .shared.yaml holds the same list as a YAML document:
//
//	urls:
//	  - git@github.com:org/hooks.git
//	  - https://example.com/team/hooks
package hooks
