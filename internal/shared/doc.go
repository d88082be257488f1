// Package shared mirrors shared hook repositories and discovers their hooks.
//
// A shared list is a comma or newline separated list of clone URLs. Each URL
// maps to a mirror directory under the cache root named after the last two
// segments of the URL path:
//
//	git@github.com:org/hooks.git  ->  <cache>/org_hooks
//
// Mirrors are only cloned or pulled on post-merge and by "githooks shared
// update"; every other trigger reads whatever is on disk and never touches
// the network. A mirror whose origin URL differs from the declared URL is
// ignored. Mirrors are never deleted.
//
// Hooks are discovered in <mirror>/.githooks if it exists, else in the
// mirror root, the same way as in the repository itself.
package shared
