// Package quickview defines the external collaborator boundary for a
// pluggable file previewer (text/hex/directory-listing/image-metadata
// rendering with its own scrollable buffer) that the controller drives
// but does not implement; this package is the seam a concrete
// previewer plugs into.
package quickview

import "github.com/jvanrhyn/diskwalk/internal/tree"

// Viewer is the controller-facing surface of a quick-view previewer.
// The controller forwards key events to HandleKey only while the mark
// pane is focused, the QuickView tab is active, and Activate has been
// called; it never inspects the previewer's internal scroll state,
// search, or go-to-line features.
type Viewer interface {
	// Activate is called when the quick-view tab gains focus.
	Activate()
	// Deactivate is called when the quick-view tab loses focus or the
	// mark pane closes.
	Deactivate()
	// SetSelection is called whenever the selected file path changes.
	SetSelection(e *tree.Entry)
	// HandleKey forwards one raw key event; implementations own their
	// own keymap.
	HandleKey(key string) bool
	// Render returns the current previewer content for the given
	// viewport size.
	Render(width, height int) string
}

// NullViewer is a no-op Viewer used when no concrete previewer is
// wired in; Render reports that nothing is available rather than
// leaving the mark pane blank.
type NullViewer struct{}

func (NullViewer) Activate()                 {}
func (NullViewer) Deactivate()               {}
func (NullViewer) SetSelection(*tree.Entry)  {}
func (NullViewer) HandleKey(string) bool     { return false }
func (NullViewer) Render(_, _ int) string    { return "quick view unavailable" }

var _ Viewer = NullViewer{}
