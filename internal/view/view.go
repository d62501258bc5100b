// Package view implements the directory-contents projection that backs
// the table the UI renders, independent of any particular rendering
// library.
package view

import (
	"sort"
	"strings"

	"github.com/jvanrhyn/diskwalk/internal/tree"
)

// SortMode selects the column ViewModel sorts by.
type SortMode int

const (
	// BySize orders by attributed size (the default).
	BySize SortMode = iota
	// ByName orders lexicographically by entry name.
	ByName
	// ByCount orders by entry count (attributed files contained).
	ByCount
	// ByMtime orders by last-modification time, most recent first.
	ByMtime
)

// Row is one formatted line of the directory-contents table. Fields are
// pre-rendered strings so the UI layer never reaches back into *tree.Entry
// on every frame.
type Row struct {
	Entry     *tree.Entry
	Name      string
	SizeText  string
	PctText   string
	MtimeText string
	Bar       string
	Marked    bool
}

// Model projects one directory's children into a sorted, cursor-tracked
// table. It holds no reference to the scan engine; RebuildFrom is given
// the directory entry each time the current directory changes or a
// refresh completes.
type Model struct {
	dir       *tree.Entry
	entries   []*tree.Entry
	mode      SortMode
	ascending bool
	cursor    int
	top       int

	formatFn  func(*tree.Entry, int64) Row
	formatted []Row
	dirty     bool
}

// NewModel builds an empty ViewModel. formatFn renders one entry given
// the parent's total size (for bar-graph scaling); it is supplied by
// the UI layer so view stays free of any rendering library dependency.
func NewModel(formatFn func(*tree.Entry, int64) Row) *Model {
	return &Model{mode: BySize, formatFn: formatFn}
}

// RebuildFrom replaces the displayed directory and its children,
// resets the cursor to the top, and re-sorts per the current mode.
func (m *Model) RebuildFrom(dir *tree.Entry) {
	m.dir = dir
	m.entries = dir.Children()
	m.cursor = 0
	m.top = 0
	m.resort()
	m.invalidateFormatCache()
}

// SetSortMode changes the active sort column. Toggling the same mode
// again flips direction, giving a single key a sort-then-reverse cycle.
func (m *Model) SetSortMode(mode SortMode) {
	if m.mode == mode {
		m.ascending = !m.ascending
	} else {
		m.mode = mode
		m.ascending = false
	}
	selected := m.SelectedEntry()
	m.resort()
	m.restoreCursor(selected)
	m.invalidateFormatCache()
}

func (m *Model) resort() {
	entries := append([]*tree.Entry(nil), m.entries...)
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if m.ascending {
			return !m.less(a, b)
		}
		return m.less(a, b)
	})
	m.entries = entries
}

func (m *Model) less(a, b *tree.Entry) bool {
	switch m.mode {
	case ByName:
		if a.Name != b.Name {
			return a.Name < b.Name
		}
	case ByCount:
		if a.EntryCount() != b.EntryCount() {
			return a.EntryCount() > b.EntryCount()
		}
	case ByMtime:
		if !a.MTime.Equal(b.MTime) {
			return a.MTime.After(b.MTime)
		}
	default:
		if a.Size() != b.Size() {
			return a.Size() > b.Size()
		}
	}
	return a.Path < b.Path // tie-break: keep equal-key rows in a stable order
}

func (m *Model) restoreCursor(prev *tree.Entry) {
	if prev == nil {
		return
	}
	for i, e := range m.entries {
		if e == prev {
			m.cursor = i
			return
		}
	}
	m.cursor = 0
}

// MoveCursor moves the selection by delta rows, clamped to the
// entries slice, and adjusts the scroll window (top) to keep it
// visible within a viewport of viewportHeight rows.
func (m *Model) MoveCursor(delta, viewportHeight int) {
	if len(m.entries) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if viewportHeight <= 0 {
		return
	}
	if m.cursor < m.top {
		m.top = m.cursor
	}
	if m.cursor >= m.top+viewportHeight {
		m.top = m.cursor - viewportHeight + 1
	}
}

// SelectedEntry returns the entry under the cursor, or nil if empty.
func (m *Model) SelectedEntry() *tree.Entry {
	if len(m.entries) == 0 || m.cursor < 0 || m.cursor >= len(m.entries) {
		return nil
	}
	return m.entries[m.cursor]
}

// Cursor returns the current cursor row index.
func (m *Model) Cursor() int { return m.cursor }

// Top returns the current scroll offset.
func (m *Model) Top() int { return m.top }

// Dir returns the directory entry currently displayed.
func (m *Model) Dir() *tree.Entry { return m.dir }

// Entries returns the sorted child slice currently displayed.
func (m *Model) Entries() []*tree.Entry { return m.entries }

// invalidateFormatCache forces the next call to FormattedRows to
// regenerate every Row.
func (m *Model) invalidateFormatCache() {
	m.dirty = true
}

// FormattedRows returns the cached formatted rows, rebuilding them
// first if the entry list, sort order, or mark state has changed since
// the last call.
func (m *Model) FormattedRows(isMarked func(*tree.Entry) bool) []Row {
	if !m.dirty && m.formatted != nil {
		if isMarked != nil {
			for i := range m.formatted {
				m.formatted[i].Marked = isMarked(m.formatted[i].Entry)
			}
		}
		return m.formatted
	}
	total := int64(0)
	if m.dir != nil {
		total = m.dir.Size()
	}
	rows := make([]Row, len(m.entries))
	for i, e := range m.entries {
		row := m.formatFn(e, total)
		if isMarked != nil {
			row.Marked = isMarked(e)
		}
		rows[i] = row
	}
	m.formatted = rows
	m.dirty = false
	return rows
}

// FilterByName returns the indices of entries whose name contains
// substr, case-insensitively.
func (m *Model) FilterByName(substr string) []int {
	substr = strings.ToLower(substr)
	var out []int
	for i, e := range m.entries {
		if strings.Contains(strings.ToLower(e.Name), substr) {
			out = append(out, i)
		}
	}
	return out
}
