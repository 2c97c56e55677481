// Package errutil defines the error taxonomy shared by every host binding.
// Each failure carries the operation, the offending path and a Kind so the
// embedding engine can tell a missing file from a permission problem
// without parsing messages.
package errutil

import (
	"errors"
	"fmt"
	"io/fs"
)

// Kind classifies a host failure.
type Kind int

const (
	// IOFailure is the catch-all for device or transport failures.
	IOFailure Kind = iota
	// NotFound means the target (or, for writes, its parent directory) does not exist.
	NotFound
	// PermissionDenied means the caller lacks the required access rights,
	// or the target is read-only or locked by the host.
	PermissionDenied
	// InvalidTarget means the path is malformed or names something other
	// than a regular file.
	InvalidTarget
	// EncodingError means text and bytes could not be converted under the
	// active policy.
	EncodingError
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "NotFound"
	case PermissionDenied:
		return "PermissionDenied"
	case InvalidTarget:
		return "InvalidTarget"
	case EncodingError:
		return "EncodingError"
	default:
		return "IOFailure"
	}
}

// Error implements error so a bare Kind can be used as an errors.Is target.
func (k Kind) Error() string {
	return k.String()
}

// -- Sentinels --

var (
	ErrPathRequired  = errors.New("path is required")
	ErrMalformedPath = errors.New("path contains a NUL byte")
	ErrIsDirectory   = errors.New("path is a directory")
	ErrNotRegular    = errors.New("path is not a regular file")
	ErrNoParent      = errors.New("parent directory does not exist")
	ErrParentNotDir  = errors.New("parent path is not a directory")
	ErrInvalidUTF8   = errors.New("invalid UTF-8 sequence")
)

// Error is the single error type surfaced by the host bindings.
type Error struct {
	Op    string
	Path  string
	Kind  Kind
	Cause error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Kind, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is the Kind of this error.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// New builds an Error whose Kind is derived from cause.
func New(op, path string, cause error) *Error {
	return &Error{Op: op, Path: path, Kind: Classify(cause), Cause: cause}
}

// WithKind builds an Error with an explicit Kind.
func WithKind(op, path string, kind Kind, cause error) *Error {
	return &Error{Op: op, Path: path, Kind: kind, Cause: cause}
}

// KindOf reports the Kind of a returned error. ok is false for a nil
// error, which has no kind.
func KindOf(err error) (kind Kind, ok bool) {
	if err == nil {
		return 0, false
	}
	return Classify(err), true
}

// Classify maps an underlying error onto a Kind. Errors that already carry
// a Kind, either as *Error or through a Kind() method, keep it.
func Classify(err error) Kind {
	var he *Error
	if errors.As(err, &he) {
		return he.Kind
	}
	var kinded interface{ Kind() Kind }
	if errors.As(err, &kinded) {
		return kinded.Kind()
	}

	switch {
	case errors.Is(err, ErrPathRequired),
		errors.Is(err, ErrMalformedPath),
		errors.Is(err, ErrIsDirectory),
		errors.Is(err, ErrNotRegular),
		errors.Is(err, ErrParentNotDir):
		return InvalidTarget
	case errors.Is(err, ErrNoParent):
		return NotFound
	case errors.Is(err, ErrInvalidUTF8):
		return EncodingError
	case errors.Is(err, fs.ErrNotExist):
		return NotFound
	case errors.Is(err, fs.ErrPermission):
		return PermissionDenied
	}

	if kind, ok := classifyErrno(err); ok {
		return kind
	}
	return IOFailure
}
