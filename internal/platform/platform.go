// Package platform isolates the OS-specific calls the scanner and
// controller need: opening a path with the system viewer, recursive
// removal, and the device/inode/on-disk-size identity used for
// hard-link deduplication and filesystem-boundary enforcement.
package platform

import "os"

// Identity holds the platform identity of a stat'd file: its containing
// device, its inode, and its hard-link count. Used for hard-link
// deduplication and filesystem-boundary enforcement.
type Identity struct {
	Device    uint64
	Inode     uint64
	LinkCount uint64
}

// Stat extracts Identity and the on-disk (block-rounded) byte count from
// fi. ok is false on platforms or file kinds where the underlying
// syscall stat structure isn't available, in which case callers should
// fall back to fi.Size() for both apparent and on-disk size.
func Stat(fi os.FileInfo) (id Identity, onDiskSize int64, ok bool) {
	return statImpl(fi)
}

// Remove deletes path: a recursive removal for directories, a single
// unlink for files and symlinks.
func Remove(path string, isDir bool) error {
	if isDir {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}

// Open shells out to the platform-appropriate "open with default
// application" command for path. Failures are silent 
func Open(path string) {
	go func() {
		_ = openImpl(path)
	}()
}

// FilesystemTotalBytes returns the total byte capacity of the filesystem
// containing path, or 0 if the underlying syscall fails.
func FilesystemTotalBytes(path string) int64 {
	return filesystemTotalBytesImpl(path)
}
