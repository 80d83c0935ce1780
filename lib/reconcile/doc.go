// Package reconcile diffs collected form values against the config
// store, writes the changes in place, and decides which side effects
// a change-set must trigger.
//
// The restart decision is the safety-critical piece: engine changes
// outside a small allowlist always force a full engine restart, while
// a visits change alone is applied hot against the live engine. The
// conservative default is to restart on anything unknown.
package reconcile
