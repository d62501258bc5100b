// Package scan implements the parallel scanning engine: it walks an
// unbounded directory forest using internal/pool, attributes bytes per
// the apparent/on-disk, hard-link, and filesystem-boundary rules, and
// builds the shared internal/tree under concurrent mutation.
package scan

import "time"

// Config carries every scanner-observable setting, passed by reference
// to every scanning task.
type Config struct {
	// ApparentSize selects raw file length over block-rounded on-disk
	// usage.
	ApparentSize bool
	// CountHardLinks disables inode-based deduplication: every
	// reference to a multiply-linked inode contributes its own size.
	CountHardLinks bool
	// StayOnFilesystem skips children whose device differs from their
	// root's device.
	StayOnFilesystem bool
	// IgnoreDirs is the canonicalized set of absolute paths whose
	// subtrees are skipped entirely.
	IgnoreDirs map[string]bool
	// ThreadCount is the worker count for the task pool; 0 selects the
	// pool's auto default.
	ThreadCount int
	// ShowProgress enables the throttled stderr progress reporter.
	ShowProgress bool
	// EnumerationTimeout bounds how long a single directory's
	// enumeration may take before it is recorded as skipped. Zero
	// selects DefaultEnumerationTimeout.
	EnumerationTimeout time.Duration
}

// DefaultEnumerationTimeout is the bounded wait applied to a single
// directory's enumeration before it is recorded as skipped.
const DefaultEnumerationTimeout = 5 * time.Second

func (c Config) timeout() time.Duration {
	if c.EnumerationTimeout > 0 {
		return c.EnumerationTimeout
	}
	return DefaultEnumerationTimeout
}

func (c Config) ignored(path string) bool {
	return c.IgnoreDirs != nil && c.IgnoreDirs[path]
}
