//go:build linux || darwin

package platform

import (
	"os"
	"os/exec"
	"runtime"
	"syscall"

	"golang.org/x/sys/unix"
)

// statImpl reads device/inode/link-count and disk-block usage via the
// syscall.Stat_t embedded in os.FileInfo.Sys(), grounded on
// lumipallolabs-diskdive/walker_unix.go and mobanhawi-aster/disk_unix.go.
func statImpl(fi os.FileInfo) (Identity, int64, bool) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return Identity{}, fi.Size(), false
	}
	id := Identity{
		Device:    uint64(st.Dev), //nolint:unconvert // widened on 32-bit platforms
		Inode:     uint64(st.Ino),
		LinkCount: uint64(st.Nlink),
	}
	// st.Blocks is always in 512-byte units regardless of the
	// filesystem's native block size.
	onDisk := int64(st.Blocks) * 512
	return id, onDisk, true
}

func openImpl(path string) error {
	var name string
	switch runtime.GOOS {
	case "darwin":
		name = "open"
	default:
		name = "xdg-open"
	}
	return exec.Command(name, path).Run()
}

// filesystemTotalBytesImpl is grounded on mobanhawi-aster/disk_unix.go's
// unix.Statfs call.
func filesystemTotalBytesImpl(path string) int64 {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0
	}
	//nolint:gosec // block size and count come from the kernel, not user input
	return int64(st.Blocks) * int64(st.Bsize)
}
