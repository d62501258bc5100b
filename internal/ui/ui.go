// Package ui implements the interactive controller: a bubbletea
// Elm-architecture model driving a two-pane layout (the current
// directory table and an optional mark pane), with a differential
// overlay compositor for popups and an explicit state machine covering
// every input mode.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jvanrhyn/diskwalk/internal/glob"
	"github.com/jvanrhyn/diskwalk/internal/marks"
	"github.com/jvanrhyn/diskwalk/internal/platform"
	"github.com/jvanrhyn/diskwalk/internal/quickview"
	"github.com/jvanrhyn/diskwalk/internal/scan"
	"github.com/jvanrhyn/diskwalk/internal/sizefmt"
	"github.com/jvanrhyn/diskwalk/internal/tree"
	"github.com/jvanrhyn/diskwalk/internal/view"
)

// Mode is the controller's top-level state machine.
type Mode int

const (
	Normal Mode = iota
	GlobInput
	Help
	ConfirmDelete
	Refreshing
	MarkPaneFocus
)

// coalesceWindow is compared against the time since the previous
// movement key. moveCursor still applies each key's delta as soon as it
// arrives, so a burst of movement keys is not merged into one move.
const coalesceWindow = 5 * time.Millisecond

// Model is the root bubbletea model. Construct with New and run it with
// tea.NewProgram.
type Model struct {
	scanner *scan.Scanner
	scanCfg scan.Config
	rootDirs []string

	navStack []*tree.Entry
	view     *view.Model
	marks    *marks.Set
	qv       quickview.Viewer

	mode       Mode
	width      int
	height     int
	spin       spinner.Model
	status     string
	dirty      bool
	lastFrame  string

	globBuf    string
	confirmBuf string

	pendingDelta int
	lastKeyTime  time.Time

	format sizefmt.Unit

	// exitSelections collects marked paths printed to stdout on exit
	// (the shell-pipeline selection protocol).
	exitSelections []string
}

type refreshDoneMsg struct {
	entry *tree.Entry
	err   error
}

type tickMsg struct{}

// New builds the controller over an already-scanned forest.
func New(scanner *scan.Scanner, cfg scan.Config, roots []string, forest []*tree.Entry, format sizefmt.Unit) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		scanner:  scanner,
		scanCfg:  cfg,
		rootDirs: roots,
		navStack: []*tree.Entry{syntheticRoot(forest)},
		spin:     sp,
		mode:     Normal,
		format:   format,
		qv:       quickview.NullViewer{},
		dirty:    true,
	}
	m.view = view.NewModel(m.formatRow)
	m.marks = marks.NewSet(forest)
	m.view.RebuildFrom(m.navStack[0])
	return m
}

// syntheticRoot wraps multiple scan roots under one navigable node so
// the controller always has a single current directory, even with
// several positional paths on the command line.
func syntheticRoot(forest []*tree.Entry) *tree.Entry {
	if len(forest) == 1 && forest[0].Kind == tree.KindDir {
		return forest[0]
	}
	root := tree.New("", "/", tree.KindDir)
	root.SetChildren(forest)
	// The roots are already rolled up by the scan; sum them as they are.
	var size, apparent, count int64
	for _, e := range forest {
		size += e.Size()
		apparent += e.ApparentSize()
		count += e.EntryCount()
	}
	root.SetSize(size)
	root.SetApparentSize(apparent)
	root.SetEntryCount(count)
	root.SortChildrenBySize()
	return root
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, tick())
}

func tick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.dirty = true
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tickMsg:
		return m, tick()

	case refreshDoneMsg:
		return m.handleRefreshDone(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case GlobInput:
		return m.handleGlobKey(msg)
	case Help:
		m.mode = Normal
		m.dirty = true
		return m, nil
	case ConfirmDelete:
		return m.handleConfirmKey(msg)
	case Refreshing:
		return m, nil
	case MarkPaneFocus:
		return m.handleMarkPaneKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.mode = GlobInput
		m.globBuf = ""
		m.dirty = true
	case "?":
		m.mode = Help
		m.dirty = true
	case "d":
		if m.marks.Len() > 0 {
			m.mode = ConfirmDelete
			m.confirmBuf = ""
			m.dirty = true
		} else if e := m.view.SelectedEntry(); e != nil {
			m.marks.Mark(e)
			m.view.MoveCursor(1, m.viewportHeight())
			m.dirty = true
		}
	case "r", "R":
		return m, m.startRefresh()
	case "tab":
		if m.marks.Len() > 0 || m.marks.Tab() != 0 {
			m.mode = MarkPaneFocus
			m.dirty = true
		}
	case "s":
		m.view.SetSortMode(view.BySize)
		m.dirty = true
	case "n":
		m.view.SetSortMode(view.ByName)
		m.dirty = true
	case "c":
		m.view.SetSortMode(view.ByCount)
		m.dirty = true
	case "m":
		m.view.SetSortMode(view.ByMtime)
		m.dirty = true
	case " ":
		if e := m.view.SelectedEntry(); e != nil {
			m.marks.Toggle(e)
			m.dirty = true
		}
	case "o":
		if e := m.view.SelectedEntry(); e != nil {
			platform.Open(e.Path)
		}
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "pgup":
		m.moveCursor(-m.viewportHeight())
	case "pgdown":
		m.moveCursor(m.viewportHeight())
	case "home", "g":
		m.moveCursor(-len(m.view.Entries()))
	case "end", "G":
		m.moveCursor(len(m.view.Entries()))
	case "left", "backspace", "h":
		m.ascend()
	case "right", "enter", "l":
		m.descend()
	}
	return m, nil
}

func (m *Model) handleGlobKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = Normal
		m.dirty = true
	case "enter":
		m.commitGlob()
		m.mode = Normal
		m.dirty = true
	case "backspace":
		if len(m.globBuf) > 0 {
			m.globBuf = m.globBuf[:len(m.globBuf)-1]
			m.dirty = true
		}
	default:
		if len(msg.String()) == 1 {
			m.globBuf += msg.String()
			m.dirty = true
		}
	}
	return m, nil
}

func (m *Model) commitGlob() {
	matcher, err := glob.Compile(m.globBuf)
	if err != nil {
		m.status = fmt.Sprintf("invalid pattern: %v", err)
		return
	}
	dir := m.navStack[len(m.navStack)-1]
	matches := matcher.FindAll(dir)
	virtual := tree.New(dir.Path, "[Search Results]", tree.KindDir)
	virtual.SetChildren(matches)
	var total int64
	for _, e := range matches {
		total += e.Size()
	}
	virtual.SetSize(total)
	virtual.SetEntryCount(int64(len(matches)))
	m.navStack = append(m.navStack, virtual)
	m.view.RebuildFrom(virtual)
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.confirmBuf == marks.ConfirmPhrase {
			_, err := m.marks.DeleteAll(m.confirmBuf)
			if err != nil {
				m.status = fmt.Sprintf("delete: %v", err)
			}
			m.mode = Normal
			m.dirty = true
			return m, m.startRefresh()
		}
		m.mode = Normal
		m.dirty = true
	case "esc":
		m.mode = Normal
		m.dirty = true
	case "backspace":
		if len(m.confirmBuf) > 0 {
			m.confirmBuf = m.confirmBuf[:len(m.confirmBuf)-1]
			m.dirty = true
		}
	default:
		if len(msg.String()) == 1 {
			m.confirmBuf += msg.String()
			m.dirty = true
		} else {
			m.mode = Normal
			m.dirty = true
		}
	}
	return m, nil
}

func (m *Model) handleMarkPaneKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "tab":
		m.mode = Normal
		m.dirty = true
	case "up", "k":
		m.marks.MoveSelection(-1)
		m.dirty = true
	case "down", "j":
		m.marks.MoveSelection(1)
		m.dirty = true
	case "d", " ":
		m.marks.RemoveSelected()
		m.dirty = true
	case "a":
		m.marks.RemoveAll()
		m.dirty = true
	case "1":
		m.marks.SetTab(marks.QuickView)
		m.dirty = true
	case "2":
		m.marks.SetTab(marks.MarkedFiles)
		m.dirty = true
	default:
		if m.marks.Tab() == marks.QuickView {
			m.qv.HandleKey(msg.String())
		}
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	now := time.Now()
	if now.Sub(m.lastKeyTime) < coalesceWindow {
		m.pendingDelta += delta
	} else {
		m.pendingDelta = delta
	}
	m.lastKeyTime = now
	m.view.MoveCursor(m.pendingDelta, m.viewportHeight())
	m.pendingDelta = 0
	if e := m.view.SelectedEntry(); e != nil {
		m.qv.SetSelection(e)
	}
	m.dirty = true
}

func (m *Model) ascend() {
	if len(m.navStack) <= 1 {
		return
	}
	m.navStack = m.navStack[:len(m.navStack)-1]
	m.view.RebuildFrom(m.navStack[len(m.navStack)-1])
	m.dirty = true
}

func (m *Model) descend() {
	e := m.view.SelectedEntry()
	if e == nil || e.Kind != tree.KindDir {
		return
	}
	m.navStack = append(m.navStack, e)
	m.view.RebuildFrom(e)
	m.dirty = true
}

func (m *Model) startRefresh() tea.Cmd {
	m.mode = Refreshing
	m.status = "refreshing..."
	m.dirty = true
	dir := m.navStack[len(m.navStack)-1]
	roots := []string{dir.Path}
	if len(m.navStack) == 1 {
		roots = m.rootDirs
	}
	return func() tea.Msg {
		entries, err := m.scanner.Scan(context.Background(), roots, nil)
		if err != nil {
			return refreshDoneMsg{err: err}
		}
		return refreshDoneMsg{entry: syntheticRoot(entries)}
	}
}

func (m *Model) handleRefreshDone(msg refreshDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = fmt.Sprintf("refresh failed: %v", msg.err)
		m.mode = Normal
		m.dirty = true
		return m, nil
	}
	if len(m.navStack) == 1 {
		m.navStack = []*tree.Entry{msg.entry}
		m.marks.SetRoots([]*tree.Entry{msg.entry})
	} else {
		m.navStack[len(m.navStack)-1] = msg.entry
		m.marks.SetRoots(m.navStack[:1])
	}
	m.marks.Rebuild()
	m.view.RebuildFrom(m.navStack[len(m.navStack)-1])
	m.mode = Normal
	m.status = ""
	m.dirty = true
	return m, nil
}

func (m *Model) viewportHeight() int {
	h := m.height - 8
	if h < 3 {
		h = 10
	}
	return h
}

// mtimeLayout is the compact timestamp format shown in the directory
// table's mtime column.
const mtimeLayout = "2006-01-02 15:04"

// formatRow renders one table row given the parent directory's total
// size, used by internal/view to build the displayed table.
func (m *Model) formatRow(e *tree.Entry, parentTotal int64) view.Row {
	pct := 0.0
	if parentTotal > 0 {
		pct = float64(e.Size()) / float64(parentTotal) * 100
	}
	name := e.Name
	if e.Kind == tree.KindSymlink && e.SymlinkTarget != "" {
		name = e.Name + " -> " + e.SymlinkTarget
	}
	mtimeText := ""
	if e.Kind != tree.KindSymlink && !e.MTime.IsZero() {
		mtimeText = e.MTime.Format(mtimeLayout)
	}
	return view.Row{
		Entry:     e,
		Name:      name,
		SizeText:  sizefmt.Format(e.Size(), m.format),
		PctText:   fmt.Sprintf("%5.1f%%", pct),
		MtimeText: mtimeText,
		Bar:       bar(pct, 12),
	}
}

func bar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// ExitSelections returns the marked-entry paths to print on exit, per
// the shell-pipeline selection protocol.
func (m *Model) ExitSelections() []string {
	out := make([]string, 0, m.marks.Len())
	for _, e := range m.marks.Entries() {
		out = append(out, e.Path)
	}
	return out
}

func (m *Model) View() string {
	if !m.dirty {
		return m.lastFrame
	}
	body := m.render()
	m.lastFrame = body
	m.dirty = false
	return body
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
