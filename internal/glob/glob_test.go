package glob

import (
	"testing"

	"github.com/jvanrhyn/diskwalk/internal/tree"
)

func TestMatchStarAndQuestion(t *testing.T) {
	cases := []struct {
		pattern, name string
		want          bool
	}{
		{"*.go", "main.go", true},
		{"*.go", "main.go.bak", false},
		{"file?.txt", "file1.txt", true},
		{"file?.txt", "file12.txt", false},
		{"*", "anything", true},
		{"README*", "readme.md", true}, // case-insensitive
	}
	for _, c := range cases {
		m, err := Compile(c.pattern)
		if err != nil {
			t.Fatalf("Compile(%q): %v", c.pattern, err)
		}
		if got := m.Match(c.name); got != c.want {
			t.Errorf("Match(%q) against %q = %v, want %v", c.name, c.pattern, got, c.want)
		}
	}
}

func TestLiteralMetacharactersAreEscaped(t *testing.T) {
	m, err := Compile("a.b")
	if err != nil {
		t.Fatal(err)
	}
	if m.Match("axb") {
		t.Errorf("expected literal '.' not to match any character")
	}
	if !m.Match("a.b") {
		t.Errorf("expected exact literal match")
	}
}

func TestFindAllWalksSubtree(t *testing.T) {
	root := tree.New("/r", "r", tree.KindDir)
	a := tree.New("/r/a.go", "a.go", tree.KindFile)
	b := tree.New("/r/sub", "sub", tree.KindDir)
	c := tree.New("/r/sub/b.go", "b.go", tree.KindFile)
	b.AppendChild(c)
	root.AppendChild(a)
	root.AppendChild(b)

	m, _ := Compile("*.go")
	matches := m.FindAll(root)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d: %v", len(matches), matches)
	}
}
