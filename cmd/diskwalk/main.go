// Command diskwalk recursively measures the space consumed by a set of
// filesystem roots and either launches an interactive terminal explorer
// or prints a non-interactive summary.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jvanrhyn/diskwalk/internal/config"
	"github.com/jvanrhyn/diskwalk/internal/logging"
	aggregateprinter "github.com/jvanrhyn/diskwalk/internal/printer/aggregate"
	treeprinter "github.com/jvanrhyn/diskwalk/internal/printer/tree"
	"github.com/jvanrhyn/diskwalk/internal/progress"
	"github.com/jvanrhyn/diskwalk/internal/scan"
	"github.com/jvanrhyn/diskwalk/internal/tree"
	"github.com/jvanrhyn/diskwalk/internal/ui"
)

var version = "dev"

var opts config.Options

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "diskwalk: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:     "diskwalk [flags] [paths...]",
		Version: version,
		Short:   "Parallel disk usage scanner and interactive explorer",
		Long: `diskwalk recursively measures the space consumed by one or more
filesystem roots and shows the result either as an interactive terminal
explorer or as a non-interactive summary.

With no subcommand, diskwalk chooses interactive mode when stdout is a
terminal and aggregate mode otherwise.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			opts.StdoutIsTerminal = isatty.IsTerminal(os.Stdout.Fd())
			return run(cmd, opts)
		},
	}

	registerFlags(root)

	interactiveCmd := &cobra.Command{
		Use:     "interactive [flags] [paths...]",
		Aliases: []string{"i"},
		Short:   "Force the interactive terminal explorer",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			opts.ForceInteractive = true
			return run(cmd, opts)
		},
	}
	aggregateCmd := &cobra.Command{
		Use:     "aggregate [flags] [paths...]",
		Aliases: []string{"a"},
		Short:   "Force the non-interactive summary printer",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			opts.ForceAggregate = true
			return run(cmd, opts)
		},
	}
	root.AddCommand(interactiveCmd, aggregateCmd)

	return root
}

func registerFlags(root *cobra.Command) {
	f := root.PersistentFlags()
	f.BoolVarP(&opts.ApparentSize, "apparent-size", "A", false, "attribute raw file length instead of block-rounded on-disk usage")
	f.BoolVarP(&opts.CountHardLinks, "count-hard-links", "l", false, "count every hard-link reference instead of deduplicating by inode")
	f.BoolVarP(&opts.StayOnFilesystem, "stay-on-filesystem", "x", false, "do not cross filesystem/device boundaries")
	f.IntVarP(&opts.Depth, "depth", "d", 0, "limit tree output to this many levels (0 = unbounded); display-only")
	f.IntVarP(&opts.Top, "top", "t", 0, "limit tree output to the N largest children per directory (0 = unbounded)")
	f.BoolVarP(&opts.Tree, "tree", "T", false, "print the recursive tree instead of a flat aggregate")
	f.StringVarP(&opts.Format, "format", "f", "binary", "size format: binary, metric, bytes, gb, gib, mb, mib")
	f.IntVarP(&opts.Threads, "threads", "j", 0, "worker count for the scan pool (0 = automatic)")
	f.StringSliceVarP(&opts.IgnoreDirs, "ignore-dirs", "i", nil, "directories to exclude from the scan (repeatable)")
	f.BoolVar(&opts.NoEntryCheck, "no-entry-check", false, "skip the pre-scan existence check on each root")
	f.BoolVar(&opts.NoColors, "no-colors", false, "disable colored output")
	f.BoolVar(&opts.NoProgress, "no-progress", false, "disable the scan progress line")
}

func run(cmd *cobra.Command, o config.Options) error {
	logger := logging.Init(slog.LevelWarn)
	resolved, err := config.Resolve(o)
	if err != nil {
		return err
	}
	if err := checkRoots(resolved, o.NoEntryCheck); err != nil {
		return err
	}

	scanner := scan.New(resolved.Scan)
	defer scanner.Close()

	stats := &scan.Stats{}
	var reporter *progress.Reporter
	if resolved.Scan.ShowProgress {
		reporter = progress.NewReporter(os.Stderr, progress.DefaultInterval)
		reporter.Start(stats)
	}

	forest, err := scanner.Scan(context.Background(), resolved.Roots, stats)
	if reporter != nil {
		reporter.Stop()
	}
	if err != nil {
		logger.Error("scan failed", "err", err)
		return err
	}
	if stats.IOErrors() > 0 || stats.Skipped() > 0 {
		logger.Warn("scan incomplete", "io_errors", stats.IOErrors(), "skipped_dirs", stats.Skipped())
	}

	switch resolved.Mode {
	case config.ModeInteractive:
		return runInteractive(scanner, resolved, forest)
	case config.ModeTree:
		return runTree(cmd, resolved, forest)
	default:
		return runAggregate(cmd, resolved, forest)
	}
}

func checkRoots(resolved config.Run, skip bool) error {
	if skip {
		return nil
	}
	for _, root := range resolved.Roots {
		if _, err := os.Stat(root); err != nil {
			return fmt.Errorf("diskwalk: %w", err)
		}
	}
	return nil
}

func runInteractive(scanner *scan.Scanner, run config.Run, forest []*tree.Entry) error {
	m := ui.New(scanner, run.Scan, run.Roots, forest, run.Format)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(*ui.Model); ok {
		for _, path := range fm.ExitSelections() {
			fmt.Println(path)
		}
	}
	return nil
}

func runAggregate(cmd *cobra.Command, run config.Run, forest []*tree.Entry) error {
	aggregateprinter.Print(cmd.OutOrStdout(), forest, run.Format, run.NoColors)
	return nil
}

func runTree(cmd *cobra.Command, run config.Run, forest []*tree.Entry) error {
	out := cmd.OutOrStdout()
	for _, root := range forest {
		treeprinter.Print(out, root, run.Depth, run.Top, run.Format)
	}
	return nil
}
