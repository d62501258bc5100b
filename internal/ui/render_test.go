package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderOverlayCentersPopupOverBackground(t *testing.T) {
	base := "Hello World\nSecond Line\nThird Line"
	popup := "POPUP"
	width, height := 11, 3

	result := renderOverlay(base, popup, width, height)
	lines := strings.Split(result, "\n")
	if len(lines) != height {
		t.Fatalf("expected %d lines, got %d", height, len(lines))
	}
	for i, line := range lines {
		if len(line) != width {
			t.Fatalf("line %d has width %d, expected %d: %q", i, len(line), width, line)
		}
	}

	if lines[0] != "Hello World" {
		t.Fatalf("first line changed unexpectedly: %q", lines[0])
	}
	if lines[1] != "SecPOPUPine" {
		t.Fatalf("popup not centered on middle line: %q", lines[1])
	}
	if lines[2] != "Third Line " {
		t.Fatalf("third line changed unexpectedly: %q", lines[2])
	}
}

func TestRenderOverlayPreservesBackgroundOutsidePopup(t *testing.T) {
	base := "ABCDEFGHIJKLMNOP"
	popup := "XYZ"
	width, height := 16, 1

	result := renderOverlay(base, popup, width, height)
	lines := strings.Split(result, "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if want := "ABCDEFXYZJKLMNOP"; lines[0] != want {
		t.Fatalf("expected %q, got %q", want, lines[0])
	}
}

func TestRenderOverlayEdgeCases(t *testing.T) {
	t.Run("empty popup leaves background untouched", func(t *testing.T) {
		base := "Hello World"
		result := renderOverlay(base, "", 11, 1)
		if lines := strings.Split(result, "\n"); lines[0] != base {
			t.Fatalf("expected unchanged background %q, got %q", base, lines[0])
		}
	})

	t.Run("popup wider than the screen is clipped, not overrun", func(t *testing.T) {
		result := renderOverlay("Hi", "Very Long Popup Text", 20, 1)
		if lines := strings.Split(result, "\n"); len(lines[0]) != 20 {
			t.Fatalf("expected line width 20, got %d", len(lines[0]))
		}
	})

	t.Run("multi-line popup overlays only the rows it spans", func(t *testing.T) {
		base := "Line1\nLine2\nLine3"
		popup := "POP1\nPOP2"
		result := renderOverlay(base, popup, 6, 3)
		lines := strings.Split(result, "\n")
		if len(lines) != 3 {
			t.Fatalf("expected 3 lines, got %d", len(lines))
		}
		if lines[0] != "LPOP1 " || lines[1] != "LPOP2 " || lines[2] != "Line3 " {
			t.Fatalf("unexpected overlay result: %v", lines)
		}
	})
}

func TestRenderOverlayBorderedPopupAlignment(t *testing.T) {
	width, height := 80, 24
	body := strings.Repeat("Background Content Line\n", height-1) + "Background Content Line"

	popup := lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Width(20).Render("Test Content")

	result := renderOverlay(body, popup, width, height)
	resultLines := strings.Split(result, "\n")

	topLine := -1
	for i, line := range resultLines {
		if strings.Contains(line, "╔") {
			topLine = i
			break
		}
	}
	if topLine == -1 {
		t.Fatal("could not find the popup's top border in the rendered overlay")
	}

	popupLines := strings.Split(popup, "\n")
	popW := 0
	for _, l := range popupLines {
		if w := lipgloss.Width(l); w > popW {
			popW = w
		}
	}
	wantRow := (height - len(popupLines)) / 2
	wantCol := (width - popW) / 2

	if topLine != wantRow {
		t.Errorf("expected popup top row %d, found at %d", wantRow, topLine)
	}
	if gotCol := strings.Index(resultLines[topLine], "╔"); gotCol != wantCol {
		t.Errorf("expected popup start column %d, found at %d", wantCol, gotCol)
	}
}
