// Package trust decides whether a hook item may run.
//
// Every repository keeps an append-only log of trust decisions in
// <git-dir>/.githooks.checksum, one record per line:
//
//	<fingerprint> <absolute-path>   hook accepted with that content
//	disabled> <absolute-path>       hook disabled permanently
//
// The last line for a path wins. The log is replayed into a map on open and
// never rewritten; accepting or disabling appends a new line under the
// advisory lock <git-dir>/.githooks.checksum.lock. Lines that do not parse
// are skipped, so a damaged log only causes re-prompting.
//
// The fingerprint is the git blob id of the file content, the same value
// "git hash-object <file>" prints.
//
// A repository that contains .githooks/trust-all asks to waive per-item
// checks. The operator's answer is stored in the local git config key
// githooks.trust.all (Y or N) and asked for once when unset.
package trust
