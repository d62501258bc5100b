package tree

import (
	"strings"
	"testing"

	"github.com/jvanrhyn/diskwalk/internal/sizefmt"
	difftree "github.com/jvanrhyn/diskwalk/internal/tree"
)

func buildSample() *difftree.Entry {
	root := difftree.New("/r", "r", difftree.KindDir)
	a := difftree.New("/r/a", "a", difftree.KindFile)
	a.SetSize(100)
	b := difftree.New("/r/b", "b", difftree.KindFile)
	b.SetSize(200)
	root.AppendChild(a)
	root.AppendChild(b)
	difftree.RollUp(root)
	return root
}

func TestPrintUnboundedShowsEveryChild(t *testing.T) {
	var buf strings.Builder
	Print(&buf, buildSample(), 0, 0, sizefmt.Bytes)
	out := buf.String()
	if !strings.Contains(out, "a") || !strings.Contains(out, "b") {
		t.Fatalf("expected both children printed, got %q", out)
	}
}

func TestPrintDepthBoundsRecursion(t *testing.T) {
	var buf strings.Builder
	Print(&buf, buildSample(), 1, 0, sizefmt.Bytes)
	out := buf.String()
	if strings.Contains(out, "a") || strings.Contains(out, "b") {
		t.Fatalf("expected children suppressed at depth 1, got %q", out)
	}
}

func TestPrintTopBoundsChildCount(t *testing.T) {
	var buf strings.Builder
	Print(&buf, buildSample(), 0, 1, sizefmt.Bytes)
	out := buf.String()
	if !strings.Contains(out, "more") {
		t.Fatalf("expected truncation marker, got %q", out)
	}
}
