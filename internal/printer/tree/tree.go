// Package tree implements the non-interactive recursive tree printer
// (-T/--tree), honoring -d/--depth and -t/--top as display-only
// bounds: depth and top never affect what gets scanned, only what
// gets printed.
package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/jvanrhyn/diskwalk/internal/sizefmt"
	difftree "github.com/jvanrhyn/diskwalk/internal/tree"
)

// Print writes a recursive, indented listing of root to out. depth <= 0
// means unbounded; top <= 0 means show every child at each level.
func Print(out io.Writer, root *difftree.Entry, depth, top int, unit sizefmt.Unit) {
	printNode(out, root, 0, depth, top, unit)
}

func printNode(out io.Writer, e *difftree.Entry, level, depth, top int, unit sizefmt.Unit) {
	indent := strings.Repeat("  ", level)
	fmt.Fprintf(out, "%s%s  %s\n", indent, sizefmt.Format(e.Size(), unit), e.Name)

	if depth > 0 && level+1 >= depth {
		return
	}
	children := e.Children()
	shown := children
	if top > 0 && len(children) > top {
		shown = children[:top]
	}
	for _, c := range shown {
		printNode(out, c, level+1, depth, top, unit)
	}
	if top > 0 && len(children) > top {
		fmt.Fprintf(out, "%s  ... %d more\n", strings.Repeat("  ", level+1), len(children)-top)
	}
}
