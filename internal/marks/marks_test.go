package marks

import (
	"testing"

	"github.com/jvanrhyn/diskwalk/internal/tree"
)

func buildForest() []*tree.Entry {
	root := tree.New("/r", "r", tree.KindDir)
	p := tree.New("/r/p", "p", tree.KindFile)
	p.SetSize(100)
	q := tree.New("/r/q", "q", tree.KindFile)
	q.SetSize(50)
	root.AppendChild(p)
	root.AppendChild(q)
	tree.RollUp(root)
	return []*tree.Entry{root}
}

func TestRebuildReflectsMarkedFlags(t *testing.T) {
	roots := buildForest()
	s := NewSet(roots)
	p := roots[0].Children()[0]
	s.Mark(p)
	if s.Len() != 1 || s.Entries()[0] != p {
		t.Fatalf("expected MarkSet to contain p, got %v", s.Entries())
	}
}

func TestToggleClearsFlagAndMembership(t *testing.T) {
	roots := buildForest()
	s := NewSet(roots)
	p := roots[0].Children()[0]
	s.Toggle(p)
	if !p.Marked.Load() || s.Len() != 1 {
		t.Fatalf("expected p marked and in set after first toggle")
	}
	s.Toggle(p)
	if p.Marked.Load() || s.Len() != 0 {
		t.Fatalf("expected p unmarked and removed after second toggle ")
	}
}

func TestMarkedTotalSize(t *testing.T) {
	roots := buildForest()
	s := NewSet(roots)
	for _, c := range roots[0].Children() {
		s.Mark(c)
	}
	if got := s.MarkedTotalSize(); got != 150 {
		t.Fatalf("MarkedTotalSize() = %d, want 150", got)
	}
}

func TestRemoveAllClearsEveryFlag(t *testing.T) {
	roots := buildForest()
	s := NewSet(roots)
	for _, c := range roots[0].Children() {
		s.Mark(c)
	}
	s.RemoveAll()
	if s.Len() != 0 {
		t.Fatalf("expected empty set after RemoveAll, got %d", s.Len())
	}
	for _, c := range roots[0].Children() {
		if c.Marked.Load() {
			t.Fatalf("expected %s unmarked after RemoveAll", c.Path)
		}
	}
}

func TestDeleteAllRequiresExactConfirmation(t *testing.T) {
	roots := buildForest()
	s := NewSet(roots)
	s.Mark(roots[0].Children()[0])
	if _, err := s.DeleteAll("yes"); err != ErrNotConfirmed {
		t.Fatalf("expected ErrNotConfirmed for lowercase input, got %v", err)
	}
	if _, err := s.DeleteAll("Y E S"); err != ErrNotConfirmed {
		t.Fatalf("expected ErrNotConfirmed for malformed input, got %v", err)
	}
}

func TestSetTabAndMoveSelection(t *testing.T) {
	roots := buildForest()
	s := NewSet(roots)
	for _, c := range roots[0].Children() {
		s.Mark(c)
	}
	s.SetTab(MarkedFiles)
	if s.Tab() != MarkedFiles {
		t.Fatalf("expected tab MarkedFiles")
	}
	first := s.Selected()
	s.MoveSelection(1)
	if s.Selected() == first {
		t.Fatalf("expected selection to move")
	}
	s.MoveSelection(100)
	if s.Selected() != s.Entries()[len(s.Entries())-1] {
		t.Fatalf("expected selection clamp to last entry")
	}
}
