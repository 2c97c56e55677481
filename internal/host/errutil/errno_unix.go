//go:build unix

package errutil

import (
	"errors"

	"golang.org/x/sys/unix"
)

func classifyErrno(err error) (Kind, bool) {
	var errno unix.Errno
	if !errors.As(err, &errno) {
		return IOFailure, false
	}

	switch errno {
	case unix.ENOENT:
		return NotFound, true
	case unix.EACCES, unix.EPERM, unix.EROFS, unix.ETXTBSY:
		return PermissionDenied, true
	case unix.EISDIR, unix.ENOTDIR, unix.ENAMETOOLONG, unix.EINVAL, unix.ELOOP:
		return InvalidTarget, true
	}
	return IOFailure, false
}
