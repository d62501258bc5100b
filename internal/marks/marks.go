// Package marks implements the cross-tree mark set: the set of entries
// flagged for deletion, its deletion driver, and the membership
// invariants that keep it consistent with the tree it projects.
package marks

import (
	"sort"

	"github.com/jvanrhyn/diskwalk/internal/platform"
	"github.com/jvanrhyn/diskwalk/internal/tree"
)

// Tab selects which pane the mark view currently shows.
type Tab int

const (
	// QuickView shows the external quick-view collaborator.
	QuickView Tab = iota
	// MarkedFiles shows the ordered mark list.
	MarkedFiles
)

func (t Tab) String() string {
	if t == MarkedFiles {
		return "marked"
	}
	return "quickview"
}

// Set is the MarkSet: the derived, path-ordered projection of every
// Entry reachable from roots whose Marked flag is set.
type Set struct {
	roots    []*tree.Entry
	entries  []*tree.Entry
	selected int
	tab      Tab
}

// NewSet builds an empty MarkSet over roots. Rebuild must be called at
// least once before use.
func NewSet(roots []*tree.Entry) *Set {
	return &Set{roots: roots, tab: QuickView}
}

// SetRoots replaces the root forest the set projects over; callers must
// call Rebuild afterward (used on refresh: the set always rebuilds
// from scratch rather than trying to carry old node identities over).
func (s *Set) SetRoots(roots []*tree.Entry) {
	s.roots = roots
}

// Rebuild performs a depth-first sweep over the roots,
// regenerating the ordered-by-path projection from the current
// marked-flag state of the tree. Called whenever a mark flag changes,
// a refresh completes, or after a deletion.
func (s *Set) Rebuild() {
	var entries []*tree.Entry
	for _, root := range s.roots {
		tree.Walk(root, func(e *tree.Entry) bool {
			if e.Marked.Load() {
				entries = append(entries, e)
			}
			return true
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	s.entries = entries
	if s.selected >= len(s.entries) {
		s.selected = len(s.entries) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

// Toggle flips e's Marked flag and rebuilds the projection.
func (s *Set) Toggle(e *tree.Entry) {
	e.Marked.Store(!e.Marked.Load())
	s.Rebuild()
}

// Mark sets e's Marked flag to true and rebuilds.
func (s *Set) Mark(e *tree.Entry) {
	e.Marked.Store(true)
	s.Rebuild()
}

// Entries returns the current ordered projection.
func (s *Set) Entries() []*tree.Entry { return s.entries }

// Len returns the number of marked entries.
func (s *Set) Len() int { return len(s.entries) }

// Selected returns the entry under the mark-pane cursor, or nil if
// empty.
func (s *Set) Selected() *tree.Entry {
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[s.selected]
}

// SelectedIndex returns the mark-pane cursor row.
func (s *Set) SelectedIndex() int { return s.selected }

// MoveSelection moves the mark-pane cursor by delta, clamped.
func (s *Set) MoveSelection(delta int) {
	if len(s.entries) == 0 {
		return
	}
	s.selected += delta
	if s.selected < 0 {
		s.selected = 0
	}
	if s.selected >= len(s.entries) {
		s.selected = len(s.entries) - 1
	}
}

// Tab returns the active mark-pane tab.
func (s *Set) Tab() Tab { return s.tab }

// SetTab switches the active tab (selected by digit key).
func (s *Set) SetTab(t Tab) { s.tab = t }

// RemoveSelected unmarks the entry currently under the cursor.
func (s *Set) RemoveSelected() {
	e := s.Selected()
	if e == nil {
		return
	}
	e.Marked.Store(false)
	s.Rebuild()
}

// RemoveAll unmarks every entry in the projection, giving mark-all
// followed by mark-all-again toggle semantics when paired with the
// controller's mark-everything action.
func (s *Set) RemoveAll() {
	for _, e := range s.entries {
		e.Marked.Store(false)
	}
	s.Rebuild()
}

// MarkedTotalSize sums Size() across the current projection.
func (s *Set) MarkedTotalSize() int64 {
	var total int64
	for _, e := range s.entries {
		total += e.Size()
	}
	return total
}

// ConfirmPhrase is the literal, case-sensitive string a user must type
// to authorize deletion.
const ConfirmPhrase = "YES"

// DeleteAll removes every filesystem entry currently in the MarkSet.
// input must equal ConfirmPhrase exactly or DeleteAll returns
// ErrNotConfirmed without touching the filesystem. Directories are
// removed recursively; files and symlinks are removed as themselves,
// never following symlink targets. Deletion continues past individual
// failures, which are collected and returned together.
func (s *Set) DeleteAll(input string) ([]*tree.Entry, error) {
	if input != ConfirmPhrase {
		return nil, ErrNotConfirmed
	}
	var deleted []*tree.Entry
	var errs deleteErrors
	for _, e := range s.entries {
		isDir := e.Kind == tree.KindDir
		if err := platform.Remove(e.Path, isDir); err != nil {
			errs = append(errs, deleteError{path: e.Path, err: err})
			continue
		}
		e.Marked.Store(false)
		deleted = append(deleted, e)
	}
	s.Rebuild()
	if len(errs) > 0 {
		return deleted, errs
	}
	return deleted, nil
}
