package scan

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/jvanrhyn/diskwalk/internal/platform"
	"github.com/jvanrhyn/diskwalk/internal/pool"
	"github.com/jvanrhyn/diskwalk/internal/tree"
)

// Scanner owns the work-stealing pool shared by one or more Scan calls,
// plus the hard-link dedup table and the cycle-avoidance visited set,
// which each Scan call starts afresh. Construct with New and Close when
// done.
type Scanner struct {
	cfg     Config
	pool    *pool.Pool
	inodes  *inodeTable
	visited *visitedSet
}

// New creates a Scanner configured per cfg. The task pool is sized by
// cfg.ThreadCount (0 = auto).
func New(cfg Config) *Scanner {
	return &Scanner{
		cfg:     cfg,
		pool:    pool.New(cfg.ThreadCount),
		inodes:  newInodeTable(),
		visited: newVisitedSet(),
	}
}

// Close stops the underlying task pool.
func (s *Scanner) Close() {
	s.pool.Stop()
}

// Scan walks every root to completion and returns one tree.Entry per
// root, fully rolled up. A file root is stat'd synchronously;
// a directory root is scanned by fanning out through the task pool and
// joining before Scan returns.
func (s *Scanner) Scan(ctx context.Context, roots []string, stats *Stats) ([]*tree.Entry, error) {
	if stats == nil {
		stats = &Stats{}
	}
	s.inodes = newInodeTable()
	s.visited = newVisitedSet()
	out := make([]*tree.Entry, 0, len(roots))

	for _, root := range roots {
		fi, err := os.Lstat(root)
		if err != nil {
			return nil, err
		}
		name := filepath.Base(root)
		if name == "." || name == string(filepath.Separator) {
			name = root
		}

		if fi.Mode()&os.ModeSymlink != 0 {
			e := tree.New(root, name, tree.KindSymlink)
			target, _ := os.Readlink(root)
			e.SymlinkTarget = target
			out = append(out, e)
			continue
		}

		if !fi.IsDir() {
			e := tree.New(root, name, tree.KindFile)
			apparent := fi.Size()
			effective := apparent
			if id, onDisk, ok := platform.Stat(fi); ok {
				if !s.cfg.ApparentSize {
					effective = onDisk
				}
				e.DeviceID, e.Inode, e.LinkCount = id.Device, id.Inode, id.LinkCount
			}
			e.SetApparentSize(apparent)
			e.SetSize(effective)
			e.SetEntryCount(1)
			e.MTime = fi.ModTime()
			out = append(out, e)
			continue
		}

		e := tree.New(root, name, tree.KindDir)
		var rootDevice uint64
		if id, _, ok := platform.Stat(fi); ok {
			rootDevice = id.Device
		}
		out = append(out, e)

		s.pool.Submit(func() {
			s.scanDirectory(ctx, e, rootDevice, stats)
		})
	}

	s.pool.Join()

	for _, e := range out {
		tree.RollUp(e)
	}
	return out, nil
}

// scanDirectory enumerates dir's children, attributes each, and fans out
// a new pool task per subdirectory.
func (s *Scanner) scanDirectory(ctx context.Context, dir *tree.Entry, rootDevice uint64, stats *Stats) {
	if s.cfg.ignored(dir.Path) {
		return
	}

	fi, statErr := os.Lstat(dir.Path)
	if statErr == nil {
		if id, _, ok := platform.Stat(fi); ok {
			key := identityKey(id)
			if !s.visited.enter(key) {
				return // directory identity already entered
			}
		}
	}

	entries, err := s.readDirWithTimeout(ctx, dir.Path, stats)
	if err != nil {
		if os.IsPermission(err) {
			return // PermissionDenied: silently skipped, not counted
		}
		stats.ioErrors.Add(1)
		return
	}
	if entries == nil {
		return // timeout: already accounted as skipped by readDirWithTimeout
	}

	stats.dirsScanned.Add(1)
	stats.setCurrentPath(dir.Path)

	for _, ent := range entries {
		childPath := filepath.Join(dir.Path, ent.Name())
		info, err := ent.Info()
		if err != nil {
			stats.ioErrors.Add(1)
			continue
		}

		switch {
		case info.Mode()&os.ModeSymlink != 0:
			s.attributeSymlink(dir, childPath, ent.Name())

		case ent.IsDir():
			child := tree.New(childPath, ent.Name(), tree.KindDir)
			dir.AppendChild(child)
			s.pool.Submit(func() {
				s.scanDirectory(ctx, child, rootDevice, stats)
			})

		case ent.Type().IsRegular():
			s.attributeFile(dir, childPath, ent.Name(), info, rootDevice, stats)

		default:
			// Other (device nodes, sockets, FIFOs, ...): skip.
		}
	}
}

func (s *Scanner) attributeSymlink(parent *tree.Entry, path, name string) {
	e := tree.New(path, name, tree.KindSymlink)
	target, _ := os.Readlink(path)
	e.SymlinkTarget = target
	parent.AppendChild(e)
}

func (s *Scanner) attributeFile(parent *tree.Entry, path, name string, info os.FileInfo, rootDevice uint64, stats *Stats) {
	id, onDisk, hasIdentity := platform.Stat(info)

	if s.cfg.StayOnFilesystem && hasIdentity && rootDevice != 0 && id.Device != rootDevice {
		return
	}

	apparent := info.Size()
	effective := apparent
	if hasIdentity && !s.cfg.ApparentSize {
		effective = onDisk
	}

	e := tree.New(path, name, tree.KindFile)
	e.MTime = info.ModTime()
	e.SetApparentSize(apparent)
	if hasIdentity {
		e.DeviceID, e.Inode, e.LinkCount = id.Device, id.Inode, id.LinkCount
	}

	attribute := true
	if hasIdentity && !s.cfg.CountHardLinks && id.LinkCount > 1 {
		attribute = s.inodes.claim(identityKey(id))
	}

	if attribute {
		e.SetSize(effective)
		e.SetEntryCount(1)
		stats.itemsScanned.Add(1)
		stats.bytesScanned.Add(effective)
	}
	parent.AppendChild(e)
}

// readDirWithTimeout runs os.ReadDir on its own goroutine and races it
// against cfg.timeout(). A nil, nil return means the directory timed
// out and was accounted as skipped.
func (s *Scanner) readDirWithTimeout(ctx context.Context, path string, stats *Stats) ([]os.DirEntry, error) {
	type result struct {
		entries []os.DirEntry
		err     error
	}
	ch := make(chan result, 1)
	go func() {
		entries, err := os.ReadDir(path)
		ch <- result{entries, err}
	}()

	timer := time.NewTimer(s.cfg.timeout())
	defer timer.Stop()

	select {
	case r := <-ch:
		return r.entries, r.err
	case <-timer.C:
		stats.skipped.Add(1)
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
