// Package aggregate implements the non-interactive printer: one line
// per root, sorted ascending by size, plus a trailing total when more
// than one root was scanned.
package aggregate

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/jvanrhyn/diskwalk/internal/sizefmt"
	"github.com/jvanrhyn/diskwalk/internal/tree"
)

// Print writes one line per root (ascending by size) to out, using
// unit for size formatting. When len(roots) > 1 a trailing "total"
// line is appended. Coloring follows noColors (the --no-colors flag).
func Print(out io.Writer, roots []*tree.Entry, unit sizefmt.Unit, noColors bool) {
	sorted := append([]*tree.Entry(nil), roots...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Size() < sorted[j].Size() })

	sizeColor := color.New(color.FgGreen)
	if noColors {
		sizeColor.DisableColor()
	}

	var total int64
	for _, e := range sorted {
		total += e.Size()
		fmt.Fprintf(out, "%s\t%s\n", sizeColor.Sprint(sizefmt.Format(e.Size(), unit)), e.Path)
	}
	if len(sorted) > 1 {
		fmt.Fprintf(out, "%s\ttotal\n", sizeColor.Sprint(sizefmt.Format(total, unit)))
	}
}
