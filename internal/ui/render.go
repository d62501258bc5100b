package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jvanrhyn/diskwalk/internal/sizefmt"
	"github.com/jvanrhyn/diskwalk/internal/tree"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	footerStyle = lipgloss.NewStyle().Faint(true)
	markStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	selStyle    = lipgloss.NewStyle().Reverse(true)
)

func (m *Model) render() string {
	ow, oh := m.screenSize()
	body := m.renderBody()

	switch m.mode {
	case GlobInput:
		popup := m.renderGlobPopup()
		return renderOverlay(body, popup, ow, oh)
	case Help:
		popup := m.renderHelpPopup()
		return renderOverlay(body, popup, ow, oh)
	case ConfirmDelete:
		popup := m.renderConfirmPopup()
		return renderOverlay(body, popup, ow, oh)
	case Refreshing:
		popup := m.renderSpinnerPopup("refreshing...")
		return renderOverlay(body, popup, ow, oh)
	default:
		return lipgloss.Place(maxInt(1, ow), maxInt(1, oh), lipgloss.Left, lipgloss.Top, body,
			lipgloss.WithWhitespaceChars(" "))
	}
}

func (m *Model) screenSize() (int, int) {
	ow, oh := m.width, m.height
	if ow <= 0 {
		ow = 80
	}
	if oh <= 0 {
		oh = 24
	}
	return ow, oh
}

func (m *Model) renderBody() string {
	head := headerStyle.Render("diskwalk — " + m.breadcrumb())
	rows := m.view.FormattedRows(m.isMarkedFn())

	var lines []string
	for i, r := range rows {
		prefix := " "
		if r.Marked {
			prefix = markStyle.Render("*")
		}
		line := fmt.Sprintf("%s %8s  %6s  %s  %-16s  %s", prefix, r.SizeText, r.PctText, r.Bar, r.MtimeText, r.Name)
		if i == m.view.Cursor() {
			line = selStyle.Render(line)
		}
		lines = append(lines, line)
	}
	table := strings.Join(lines, "\n")

	status := m.status
	foot := footerStyle.Render("↑/↓ move  enter open  backspace up  s/n/c/m sort  space mark  d delete  r refresh  / glob  ? help  q quit")

	main := lipgloss.JoinVertical(lipgloss.Left, head, table, status, foot)

	if m.marks.Len() == 0 && m.mode != MarkPaneFocus {
		return main
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, main, m.renderMarkPane())
}

func (m *Model) renderMarkPane() string {
	var b strings.Builder
	tabLabel := "QuickView"
	if m.marks.Tab().String() == "marked" {
		tabLabel = "MarkedFiles"
	}
	fmt.Fprintf(&b, "[ %s ]\n", tabLabel)
	if m.marks.Tab().String() == "marked" {
		for i, e := range m.marks.Entries() {
			line := fmt.Sprintf("%8s  %s", sizefmt.Format(e.Size(), m.format), e.Path)
			if i == m.marks.SelectedIndex() {
				line = selStyle.Render(line)
			}
			b.WriteString(line + "\n")
		}
		fmt.Fprintf(&b, "\ntotal: %s\n", sizefmt.Format(m.marks.MarkedTotalSize(), m.format))
	} else {
		b.WriteString(m.qv.Render(40, m.viewportHeight()))
	}
	style := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Width(42).Padding(0, 1)
	return style.Render(b.String())
}

func (m *Model) isMarkedFn() func(*tree.Entry) bool {
	marked := make(map[*tree.Entry]bool)
	for _, e := range m.marks.Entries() {
		marked[e] = true
	}
	return func(e *tree.Entry) bool { return marked[e] }
}

func (m *Model) breadcrumb() string {
	parts := make([]string, len(m.navStack))
	for i, e := range m.navStack {
		name := e.Name
		if name == "" {
			name = "/"
		}
		parts[i] = name
	}
	return strings.Join(parts, " / ")
}

func (m *Model) renderGlobPopup() string {
	style := lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(1, 2).Width(50)
	return style.Render("search: " + m.globBuf + "█")
}

func (m *Model) renderHelpPopup() string {
	style := lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(1, 2).Width(60)
	return style.Render(strings.Join([]string{
		"diskwalk help",
		"",
		"  up/down, j/k    move cursor",
		"  left/backspace  go to parent directory",
		"  right/enter     open directory",
		"  space           toggle mark",
		"  d               delete marked / mark current",
		"  r, R            refresh",
		"  s / n / c / m   sort by size / name / count / mtime",
		"  /               glob filter",
		"  tab             focus mark pane",
		"  o               open with system viewer",
		"  q               quit",
		"",
		"press any key to close",
	}, "\n"))
}

func (m *Model) renderConfirmPopup() string {
	style := lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(1, 2).Width(60).Align(lipgloss.Center)
	content := fmt.Sprintf("delete %d marked entries (%s)?\ntype YES and press enter to confirm\n\n%s",
		m.marks.Len(), sizefmt.Format(m.marks.MarkedTotalSize(), m.format), m.confirmBuf)
	return style.Render(content)
}

func (m *Model) renderSpinnerPopup(label string) string {
	style := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1, 2).Width(40).Align(lipgloss.Center)
	return style.Render(m.spin.View() + " " + label)
}

// renderOverlay composes popup centered over a full-screen rendering of
// base, without shifting layout: it operates on already-built strings
// rather than reaching into a model's internal state.
func renderOverlay(base, popup string, width, height int) string {
	screen := lipgloss.Place(maxInt(1, width), maxInt(1, height), lipgloss.Left, lipgloss.Top, base,
		lipgloss.WithWhitespaceChars(" "))

	bgLines := strings.Split(screen, "\n")
	popLines := strings.Split(popup, "\n")

	popW := 0
	for _, l := range popLines {
		if w := lipgloss.Width(l); w > popW {
			popW = w
		}
	}
	popH := len(popLines)

	startRow := maxInt(0, (height-popH)/2)
	startCol := maxInt(0, (width-popW)/2)

	finalLines := make([]string, 0, len(bgLines))
	for i, line := range bgLines {
		if i >= startRow && i < startRow+popH {
			pi := i - startRow
			bgRunes := []rune(padRight(line, width))
			popRunes := []rune(popLines[pi])
			result := make([]rune, len(bgRunes))
			copy(result, bgRunes)
			end := minInt(len(result), startCol+len(popRunes))
			for j, r := range popRunes {
				if startCol+j < end {
					result[startCol+j] = r
				}
			}
			finalLines = append(finalLines, string(result))
			continue
		}
		finalLines = append(finalLines, padRight(line, width))
	}
	for len(finalLines) < maxInt(1, height) {
		finalLines = append(finalLines, strings.Repeat(" ", maxInt(1, width)))
	}
	if len(finalLines) > maxInt(1, height) {
		finalLines = finalLines[:maxInt(1, height)]
	}
	return strings.Join(finalLines, "\n")
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
