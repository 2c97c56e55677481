package errutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"not exist", fs.ErrNotExist, NotFound},
		{"path error not exist", &os.PathError{Op: "open", Path: "/x", Err: syscall.ENOENT}, NotFound},
		{"permission", &os.PathError{Op: "open", Path: "/x", Err: syscall.EACCES}, PermissionDenied},
		{"read only fs", &os.PathError{Op: "open", Path: "/x", Err: syscall.EROFS}, PermissionDenied},
		{"is directory", &os.PathError{Op: "read", Path: "/x", Err: syscall.EISDIR}, InvalidTarget},
		{"not a directory", &os.PathError{Op: "open", Path: "/x/y", Err: syscall.ENOTDIR}, InvalidTarget},
		{"name too long", &os.PathError{Op: "open", Path: "/x", Err: syscall.ENAMETOOLONG}, InvalidTarget},
		{"device error", &os.PathError{Op: "read", Path: "/x", Err: syscall.EIO}, IOFailure},
		{"plain error", errors.New("boom"), IOFailure},
		{"malformed sentinel", fmt.Errorf("wrap: %w", ErrMalformedPath), InvalidTarget},
		{"missing parent sentinel", ErrNoParent, NotFound},
		{"utf8 sentinel", ErrInvalidUTF8, EncodingError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestError_IsMatchesKind(t *testing.T) {
	err := New("readFile", "/missing", fs.ErrNotExist)

	assert.True(t, errors.Is(err, NotFound))
	assert.False(t, errors.Is(err, PermissionDenied))
	assert.True(t, errors.Is(err, fs.ErrNotExist), "cause must stay reachable")
	assert.Equal(t, "/missing", err.Path)
}

func TestError_KindSurvivesWrapping(t *testing.T) {
	inner := WithKind("writeFile", "/a", EncodingError, ErrInvalidUTF8)
	wrapped := fmt.Errorf("engine call: %w", inner)

	kind, ok := KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, EncodingError, kind)
	assert.Equal(t, EncodingError, Classify(wrapped))
}

func TestKindOf_Nil(t *testing.T) {
	_, ok := KindOf(nil)
	assert.False(t, ok)

	kind, ok := KindOf(errors.New("anything"))
	assert.True(t, ok)
	assert.Equal(t, IOFailure, kind)
}

func TestError_Message(t *testing.T) {
	err := WithKind("readFile", "/etc/x", PermissionDenied, fs.ErrPermission)
	assert.Equal(t, "readFile /etc/x: PermissionDenied: permission denied", err.Error())

	noPath := WithKind("decode", "", EncodingError, ErrInvalidUTF8)
	assert.Equal(t, "decode: EncodingError: invalid UTF-8 sequence", noPath.Error())
}
