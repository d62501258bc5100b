package scan

import "sync/atomic"

// Stats tracks scan progress and failure counters. All fields are safe
// for concurrent use; a *Stats is shared by every task in one Scan call
// and polled by internal/progress.
type Stats struct {
	itemsScanned atomic.Int64
	dirsScanned  atomic.Int64
	bytesScanned atomic.Int64
	ioErrors     atomic.Int64
	skipped      atomic.Int64
	currentPath  atomic.Value // string
}

// ItemsScanned returns the number of files attributed so far.
func (s *Stats) ItemsScanned() int64 { return s.itemsScanned.Load() }

// DirsScanned returns the number of directories entered so far.
func (s *Stats) DirsScanned() int64 { return s.dirsScanned.Load() }

// BytesScanned returns the cumulative attributed byte total so far.
func (s *Stats) BytesScanned() int64 { return s.bytesScanned.Load() }

// IOErrors returns the count of non-permission stat/enumerate failures.
func (s *Stats) IOErrors() int64 { return s.ioErrors.Load() }

// Skipped returns the count of directories skipped because their
// enumeration timed out. Enumeration failures are counted by IOErrors.
func (s *Stats) Skipped() int64 { return s.skipped.Load() }

// CurrentPath returns the most recently observed path, for display.
func (s *Stats) CurrentPath() string {
	v, _ := s.currentPath.Load().(string)
	return v
}

func (s *Stats) setCurrentPath(p string) {
	s.currentPath.Store(p)
}
