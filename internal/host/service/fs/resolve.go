package fs

import (
	"errors"
	"os"
	"path/filepath"
)

// maxLinkHops bounds symlink resolution, matching the Linux ELOOP limit.
const maxLinkHops = 40

var ErrTooManyLinks = errors.New("too many levels of symbolic links")

// ResolveTarget follows symlinks at path until it reaches something that is
// not a link, returning that path. A missing final component is not an
// error: the resolved path is where a new file would be created. Writing to
// the resolved path keeps an atomic replace from swapping out the link
// itself.
func (f *FileSystem) ResolveTarget(path string) (string, error) {
	current, err := f.name(path)
	if err != nil {
		return "", err
	}
	for range maxLinkHops {
		info, err := f.fs.Lstat(current)
		if err != nil {
			if os.IsNotExist(err) {
				return current, nil
			}
			return "", err
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return current, nil
		}

		target, err := f.fs.Readlink(current)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(current), target)
		}
		current = target
	}
	return "", &os.PathError{Op: "resolve", Path: path, Err: ErrTooManyLinks}
}
