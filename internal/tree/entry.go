// Package tree implements the shared mutable entry graph produced by a
// scan: per-node atomic size counters, a mutex-guarded child list, and no
// parent pointers (callers hold a navigation stack instead).
package tree

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Kind identifies the filesystem type of an Entry.
type Kind uint8

const (
	KindFile Kind = iota
	KindDir
	KindSymlink
)

func (k Kind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindSymlink:
		return "symlink"
	default:
		return "file"
	}
}

// Entry is a node in the scan forest. Numeric fields are updated
// concurrently during the scan phase via atomic operations; children are
// guarded by mu, which protects the slice only, never its contents.
type Entry struct {
	Path   string
	Name   string
	Kind   Kind
	Marked atomic.Bool

	size         atomic.Int64
	apparentSize atomic.Int64
	entryCount   atomic.Int64

	MTime         time.Time
	DeviceID      uint64
	Inode         uint64
	LinkCount     uint64
	SymlinkTarget string

	mu       sync.Mutex
	children []*Entry
}

// New creates a leaf or directory placeholder entry for path.
func New(path, name string, kind Kind) *Entry {
	return &Entry{Path: path, Name: name, Kind: kind}
}

// Size returns the effective byte total attributed to this subtree.
func (e *Entry) Size() int64 { return e.size.Load() }

// SetSize sets the effective size directly (used by roll-up and leaf
// attribution).
func (e *Entry) SetSize(v int64) { e.size.Store(v) }

// AddSize atomically adds delta to the effective size.
func (e *Entry) AddSize(delta int64) int64 { return e.size.Add(delta) }

// ApparentSize returns the raw byte length (files) or sum thereof
// (directories).
func (e *Entry) ApparentSize() int64 { return e.apparentSize.Load() }

// SetApparentSize sets the apparent size directly.
func (e *Entry) SetApparentSize(v int64) { e.apparentSize.Store(v) }

// AddApparentSize atomically adds delta to the apparent size.
func (e *Entry) AddApparentSize(delta int64) int64 { return e.apparentSize.Add(delta) }

// EntryCount returns the number of counted descendants.
func (e *Entry) EntryCount() int64 { return e.entryCount.Load() }

// SetEntryCount sets the entry count directly.
func (e *Entry) SetEntryCount(v int64) { e.entryCount.Store(v) }

// AddEntryCount atomically adds delta to the entry count.
func (e *Entry) AddEntryCount(delta int64) int64 { return e.entryCount.Add(delta) }

// AppendChild appends c under the child-list lock. Safe to call
// concurrently from scan workers.
func (e *Entry) AppendChild(c *Entry) {
	e.mu.Lock()
	e.children = append(e.children, c)
	e.mu.Unlock()
}

// Children returns a snapshot slice of the current children. The slice
// itself is a fresh copy; Entry pointers inside are shared.
func (e *Entry) Children() []*Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*Entry, len(e.children))
	copy(out, e.children)
	return out
}

// SetChildren atomically replaces the child list.
func (e *Entry) SetChildren(children []*Entry) {
	e.mu.Lock()
	e.children = children
	e.mu.Unlock()
}

// RemoveChild removes the first child with the given path, if present.
// Returns true if a child was removed.
func (e *Entry) RemoveChild(path string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, c := range e.children {
		if c.Path == path {
			e.children = append(e.children[:i], e.children[i+1:]...)
			return true
		}
	}
	return false
}

// SortChildrenBySize sorts the child list descending by size, breaking
// ties lexicographically by path.
func (e *Entry) SortChildrenBySize() {
	e.mu.Lock()
	defer e.mu.Unlock()
	sort.SliceStable(e.children, func(i, j int) bool {
		a, b := e.children[i], e.children[j]
		if a.Size() != b.Size() {
			return a.Size() > b.Size()
		}
		return a.Path < b.Path
	})
}

// InodeKey identifies a file independent of its path by its
// (device, inode) pair.
type InodeKey struct {
	Device uint64
	Inode  uint64
}

// RollUp walks the subtree rooted at e depth-first, summing children's
// sizes and entry counts into their parent and sorting each directory's
// children descending by size. Leaves are left untouched.
func RollUp(e *Entry) {
	if e.Kind != KindDir {
		return
	}
	children := e.Children()
	var size, apparent, count int64
	for _, c := range children {
		RollUp(c)
		size += c.Size()
		apparent += c.ApparentSize()
		count += c.EntryCount()
	}
	e.SetSize(size)
	e.SetApparentSize(apparent)
	e.SetEntryCount(count)
	e.SortChildrenBySize()
}

// Walk invokes fn for e and every descendant, depth-first, pre-order.
// fn returning false stops descent into that node's children (but
// sibling traversal continues).
func Walk(e *Entry, fn func(*Entry) bool) {
	if e == nil {
		return
	}
	if !fn(e) {
		return
	}
	for _, c := range e.Children() {
		Walk(c, fn)
	}
}
