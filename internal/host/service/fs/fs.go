// Package fs is the host filesystem service used by the file gateway.
// It runs on top of a billy.Filesystem so the gateway can be exercised
// against an in-memory tree in tests and against the host in production.
package fs

import (
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// tempPrefix names the scratch files created next to a target during an
// atomic write.
const tempPrefix = ".hostos-tmp-"

// FileSystem implements whole-file operations over a billy.Filesystem.
type FileSystem struct {
	fs    billy.Filesystem
	chmod func(name string, mode os.FileMode) error

	// absolute makes every path absolute before it reaches fs. The host
	// backend is rooted at "/" and would otherwise resolve relative paths
	// against the root instead of the working directory.
	absolute bool
}

// NewOSFileSystem returns a FileSystem backed by the host filesystem.
// Relative paths resolve against the process working directory.
//
// The bound variant is used because its temp files are plain *os.File
// values that can be synced, and TempFile never creates directories.
func NewOSFileSystem() *FileSystem {
	return &FileSystem{fs: osfs.New("/", osfs.WithBoundOS()), chmod: os.Chmod, absolute: true}
}

// New wraps an arbitrary billy.Filesystem. Permission changes are applied
// only when the backend supports them.
func New(fs billy.Filesystem) *FileSystem {
	chmod := func(string, os.FileMode) error { return nil }
	if c, ok := fs.(interface {
		Chmod(name string, mode os.FileMode) error
	}); ok {
		chmod = c.Chmod
	}
	return &FileSystem{fs: fs, chmod: chmod}
}

// name maps a caller path onto the backend.
func (f *FileSystem) name(path string) (string, error) {
	if !f.absolute {
		return path, nil
	}
	return filepath.Abs(path)
}

// Stat returns file info for a path (follows symlinks).
func (f *FileSystem) Stat(path string) (os.FileInfo, error) {
	name, err := f.name(path)
	if err != nil {
		return nil, err
	}
	return f.fs.Stat(name)
}

// ReadAll opens path, reads it to EOF and closes it.
func (f *FileSystem) ReadAll(path string) ([]byte, error) {
	name, err := f.name(path)
	if err != nil {
		return nil, err
	}

	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, &ReadError{Path: path, Cause: err}
	}
	return content, nil
}

// WriteFileAtomic writes content to a file atomically using temp file + rename pattern.
// If the process crashes mid-write, the original file remains intact.
// The temp file is created in the same directory as the target so the rename
// never crosses a filesystem boundary.
//
// An existing target must be writable by the caller: renaming over it only
// needs write access to the directory, which would let a read-only file be
// replaced.
func (f *FileSystem) WriteFileAtomic(path string, content []byte, perm os.FileMode) error {
	path, err := f.name(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)

	if err := f.requireDir(dir); err != nil {
		return err
	}
	if err := f.checkWritable(path); err != nil {
		return err
	}

	tmpFile, err := f.fs.TempFile(dir, tempPrefix)
	if err != nil {
		return &TempFileError{Dir: dir, Cause: err}
	}

	tmpPath := tmpFile.Name()
	needsCleanup := true

	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
		}
		if needsCleanup {
			_ = f.fs.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(content); err != nil {
		return &TempWriteError{Path: tmpPath, Cause: err}
	}

	if err := sync(tmpFile); err != nil {
		return &TempSyncError{Path: tmpPath, Cause: err}
	}

	// Close file before rename (required on some systems)
	if err := tmpFile.Close(); err != nil {
		tmpFile = nil
		return &TempCloseError{Path: tmpPath, Cause: err}
	}
	tmpFile = nil

	if err := f.fs.Rename(tmpPath, path); err != nil {
		return &RenameError{Old: tmpPath, New: path, Cause: err}
	}
	needsCleanup = false

	if err := f.chmod(path, perm); err != nil {
		return &ChmodError{Path: path, Mode: perm, Cause: err}
	}

	return nil
}

// WriteFileInPlace truncates (or creates) path and writes content into it.
// A failure part way leaves the target with partial content.
func (f *FileSystem) WriteFileInPlace(path string, content []byte, perm os.FileMode) error {
	path, err := f.name(path)
	if err != nil {
		return err
	}
	if err := f.requireDir(filepath.Dir(path)); err != nil {
		return err
	}

	file, err := f.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := file.Write(content); err != nil {
		_ = file.Close()
		return &WriteError{Path: path, Cause: err}
	}

	if err := sync(file); err != nil {
		_ = file.Close()
		return &SyncError{Path: path, Cause: err}
	}

	if err := file.Close(); err != nil {
		return &CloseError{Path: path, Cause: err}
	}
	return nil
}

// requireDir fails unless dir exists and is a directory. Backends create
// missing parents on OpenFile with O_CREATE and on Rename, so this runs
// right before a write. A parent removed after the check can still be
// recreated by the backend; nothing here locks the directory.
func (f *FileSystem) requireDir(dir string) error {
	info, err := f.fs.Stat(dir)
	if err != nil {
		return &ParentError{Dir: dir, Cause: err}
	}
	if !info.IsDir() {
		return &ParentError{Dir: dir, Cause: &os.PathError{Op: "stat", Path: dir, Err: syscall.ENOTDIR}}
	}
	return nil
}

// checkWritable opens an existing path for writing without truncating it.
// A missing path is writable.
func (f *FileSystem) checkWritable(path string) error {
	file, err := f.fs.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &OpenError{Path: path, Cause: err}
	}
	return file.Close()
}

// sync flushes file to stable storage when the backend supports it.
func sync(file billy.File) error {
	if s, ok := file.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}
