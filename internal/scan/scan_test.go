package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jvanrhyn/diskwalk/internal/tree"
)

func buildTestTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(os.MkdirAll(filepath.Join(root, "a", "b"), 0o755))
	must(os.WriteFile(filepath.Join(root, "a", "file1"), make([]byte, 100), 0o644))
	must(os.WriteFile(filepath.Join(root, "a", "b", "file2"), make([]byte, 200), 0o644))
	must(os.WriteFile(filepath.Join(root, "file3"), make([]byte, 300), 0o644))
	return root
}

func findChild(e *tree.Entry, name string) *tree.Entry {
	for _, c := range e.Children() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestScanConservation(t *testing.T) {
	root := buildTestTree(t)
	s := New(Config{ApparentSize: true, EnumerationTimeout: DefaultEnumerationTimeout})
	defer s.Close()

	stats := &Stats{}
	roots, err := s.Scan(context.Background(), []string{root}, stats)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(roots) != 1 {
		t.Fatalf("expected 1 root entry, got %d", len(roots))
	}

	e := roots[0]
	if e.Size() != 600 {
		t.Errorf("root size = %d, want 600", e.Size())
	}
	if e.EntryCount() != 3 {
		t.Errorf("root entry count = %d, want 3", e.EntryCount())
	}

	a := findChild(e, "a")
	if a == nil {
		t.Fatal("missing child \"a\"")
	}
	if a.Size() != 300 {
		t.Errorf("a size = %d, want 300", a.Size())
	}

	file3 := findChild(e, "file3")
	if file3 == nil || file3.Kind != tree.KindFile {
		t.Fatal("missing file3 leaf")
	}
	if file3.Size() != 300 {
		t.Errorf("file3 size = %d, want 300", file3.Size())
	}
}

func TestScanSortedDescendingAfterRollup(t *testing.T) {
	root := buildTestTree(t)
	s := New(Config{ApparentSize: true, EnumerationTimeout: DefaultEnumerationTimeout})
	defer s.Close()

	roots, err := s.Scan(context.Background(), []string{root}, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	children := roots[0].Children()
	for i := 1; i < len(children); i++ {
		if children[i-1].Size() < children[i].Size() {
			t.Fatalf("children not sorted descending by size: %v", children)
		}
	}
}

func TestScanFileRoot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "solo")
	if err := os.WriteFile(path, make([]byte, 42), 0o644); err != nil {
		t.Fatal(err)
	}
	s := New(Config{ApparentSize: true, EnumerationTimeout: DefaultEnumerationTimeout})
	defer s.Close()

	roots, err := s.Scan(context.Background(), []string{path}, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(roots) != 1 || roots[0].Kind != tree.KindFile || roots[0].Size() != 42 {
		t.Fatalf("unexpected file-root result: %+v", roots[0])
	}
}

func TestScanIgnoresConfiguredDirs(t *testing.T) {
	root := buildTestTree(t)
	s := New(Config{
		ApparentSize:       true,
		EnumerationTimeout: DefaultEnumerationTimeout,
		IgnoreDirs:         map[string]bool{filepath.Join(root, "a"): true},
	})
	defer s.Close()

	roots, err := s.Scan(context.Background(), []string{root}, nil)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	e := roots[0]
	if e.Size() != 300 {
		t.Errorf("expected ignored subtree excluded, size = %d, want 300", e.Size())
	}
	a := findChild(e, "a")
	if a == nil {
		t.Fatal("ignored dir should still appear as an entry, just unattributed")
	}
	if a.Size() != 0 || a.EntryCount() != 0 {
		t.Errorf("ignored dir should contribute zero size/count, got size=%d count=%d", a.Size(), a.EntryCount())
	}
}

func TestScanWithCanceledContextDoesNotPanic(t *testing.T) {
	root := buildTestTree(t)
	s := New(Config{ApparentSize: true, EnumerationTimeout: DefaultEnumerationTimeout})
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A canceled context should not panic; the scan may still produce a
	// root entry since the top-level stat happens before any context
	// check, but directory fan-out tasks observe ctx.Done() promptly.
	_, err := s.Scan(ctx, []string{root}, nil)
	_ = err
}

func TestReadDirTimeoutIsAccounted(t *testing.T) {
	dir := t.TempDir()
	s := New(Config{EnumerationTimeout: time.Nanosecond})
	defer s.Close()

	stats := &Stats{}
	entries, err := s.readDirWithTimeout(context.Background(), dir, stats)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries != nil {
		t.Fatalf("expected nil entries on timeout, got %v", entries)
	}
	if stats.Skipped() != 1 {
		t.Errorf("Skipped() = %d, want 1", stats.Skipped())
	}
}
