// Package config resolves the flags parsed by cmd/diskwalk's cobra
// commands into the concrete run configuration consumed by
// internal/scan, internal/sizefmt, and the printers.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/jvanrhyn/diskwalk/internal/scan"
	"github.com/jvanrhyn/diskwalk/internal/sizefmt"
)

// Mode selects how the resolved run is presented.
type Mode int

const (
	// ModeInteractive launches the bubbletea TUI.
	ModeInteractive Mode = iota
	// ModeAggregate prints one line per root (plus a total when there is
	// more than one root) and exits.
	ModeAggregate
	// ModeTree prints the recursive tree view and exits.
	ModeTree
)

// Run is the fully resolved configuration for one invocation.
type Run struct {
	Roots        []string
	Mode         Mode
	Scan         scan.Config
	Format       sizefmt.Unit
	Depth        int
	Top          int
	NoEntryCheck bool
	NoColors     bool
	NoProgress   bool
}

// Options mirrors the raw flag values from cmd/diskwalk before path
// canonicalization and mode resolution.
type Options struct {
	Paths            []string
	ApparentSize     bool
	CountHardLinks   bool
	StayOnFilesystem bool
	Depth            int
	Top              int
	Tree             bool
	Format           string
	Threads          int
	IgnoreDirs       []string
	NoEntryCheck     bool
	NoColors         bool
	NoProgress       bool
	ForceInteractive bool
	ForceAggregate   bool
	StdoutIsTerminal bool
}

// Resolve applies the defaulting rules: roots default to ".";
// mode is interactive only when no subcommand forced a mode, stdout is
// a terminal, and --tree was not given.
func Resolve(o Options) (Run, error) {
	roots := o.Paths
	if len(roots) == 0 {
		roots = []string{"."}
	}

	mode := ModeAggregate
	switch {
	case o.ForceInteractive:
		mode = ModeInteractive
	case o.ForceAggregate:
		mode = ModeAggregate
	case o.Tree:
		mode = ModeTree
	case o.StdoutIsTerminal:
		mode = ModeInteractive
	}

	ignore := make(map[string]bool, len(o.IgnoreDirs))
	for _, d := range o.IgnoreDirs {
		abs, err := filepath.Abs(d)
		if err != nil {
			return Run{}, fmt.Errorf("config: resolving ignore dir %q: %w", d, err)
		}
		ignore[abs] = true
	}

	return Run{
		Roots: roots,
		Mode:  mode,
		Scan: scan.Config{
			ApparentSize:       o.ApparentSize,
			CountHardLinks:     o.CountHardLinks,
			StayOnFilesystem:   o.StayOnFilesystem,
			IgnoreDirs:         ignore,
			ThreadCount:        o.Threads,
			ShowProgress:       !o.NoProgress,
			EnumerationTimeout: scan.DefaultEnumerationTimeout,
		},
		Format:       sizefmt.ParseUnit(o.Format),
		Depth:        o.Depth,
		Top:          o.Top,
		NoEntryCheck: o.NoEntryCheck,
		NoColors:     o.NoColors,
		NoProgress:   o.NoProgress,
	}, nil
}

// EnumerationTimeoutOverride lets tests and power users shrink the
// bounded-wait window without touching Options' flag surface.
func (r *Run) EnumerationTimeoutOverride(d time.Duration) {
	r.Scan.EnumerationTimeout = d
}
