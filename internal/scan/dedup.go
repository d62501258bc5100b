package scan

import (
	"sync"

	"github.com/jvanrhyn/diskwalk/internal/platform"
)

// inodeKey identifies a file independent of its path, used for
// hard-link deduplication.
type inodeKey struct {
	device uint64
	inode  uint64
}

// inodeTable is the global, single-lock inode->seen map. Contention is
// acceptable because the critical section is a map lookup plus insert.
type inodeTable struct {
	mu   sync.Mutex
	seen map[inodeKey]struct{}
}

func newInodeTable() *inodeTable {
	return &inodeTable{seen: make(map[inodeKey]struct{})}
}

// claim returns true if this is the first time key has been seen
// (the caller should attribute the file's size), false if another file
// already claimed this inode.
func (t *inodeTable) claim(key inodeKey) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.seen[key]; ok {
		return false
	}
	t.seen[key] = struct{}{}
	return true
}

// visitedSet is the cycle-avoidance guard: a directory identity
// (device, inode) seen a second time during a scan is not re-entered.
// Serialized the same way as inodeTable.
type visitedSet struct {
	mu   sync.Mutex
	seen map[inodeKey]struct{}
}

func newVisitedSet() *visitedSet {
	return &visitedSet{seen: make(map[inodeKey]struct{})}
}

// enter returns true the first time key is seen.
func (v *visitedSet) enter(key inodeKey) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.seen[key]; ok {
		return false
	}
	v.seen[key] = struct{}{}
	return true
}

func identityKey(id platform.Identity) inodeKey {
	return inodeKey{device: id.Device, inode: id.Inode}
}
