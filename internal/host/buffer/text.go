package buffer

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/Cyclone1070/hostos/internal/host/errutil"
)

// Policy decides what happens to invalid UTF-8 when converting between
// bytes and text. Both policies are deterministic.
type Policy int

const (
	// PolicyReplace substitutes U+FFFD for every ill-formed sequence.
	PolicyReplace Policy = iota
	// PolicyReject fails the conversion with an EncodingError.
	PolicyReject
)

func (p Policy) String() string {
	if p == PolicyReject {
		return "reject"
	}
	return "replace"
}

// ParsePolicy accepts "replace" or "reject". The empty string selects
// PolicyReplace.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "replace":
		return PolicyReplace, nil
	case "reject":
		return PolicyReject, nil
	}
	return PolicyReplace, fmt.Errorf("unknown invalid UTF-8 policy %q (want replace or reject)", s)
}

// FromText encodes s as UTF-8.
func FromText(s string, policy Policy) (Buffer, error) {
	if policy == PolicyReject {
		if off := invalidOffset([]byte(s)); off >= 0 {
			return Buffer{}, &EncodingError{Offset: off, Direction: "encode"}
		}
		return Buffer{data: []byte(s)}, nil
	}

	encoded, err := unicode.UTF8.NewEncoder().String(s)
	if err != nil {
		return Buffer{}, &EncodingError{Offset: -1, Direction: "encode", Cause: err}
	}
	return Buffer{data: []byte(encoded)}, nil
}

// Text decodes the content as UTF-8.
func (b Buffer) Text(policy Policy) (string, error) {
	if policy == PolicyReject {
		if off := invalidOffset(b.data); off >= 0 {
			return "", &EncodingError{Offset: off, Direction: "decode"}
		}
		return string(b.data), nil
	}

	decoded, err := unicode.UTF8.NewDecoder().Bytes(b.data)
	if err != nil {
		return "", &EncodingError{Offset: -1, Direction: "decode", Cause: err}
	}
	return string(decoded), nil
}

// invalidOffset returns the byte offset of the first ill-formed sequence,
// or -1 when p is valid UTF-8.
func invalidOffset(p []byte) int {
	if utf8.Valid(p) {
		return -1
	}
	for i := 0; i < len(p); {
		r, size := utf8.DecodeRune(p[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

// EncodingError is returned when a conversion fails under the active policy.
type EncodingError struct {
	Offset    int
	Direction string
	Cause     error
}

func (e *EncodingError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("cannot %s text: invalid UTF-8 at byte %d", e.Direction, e.Offset)
	}
	return fmt.Sprintf("cannot %s text: %v", e.Direction, e.Cause)
}

func (e *EncodingError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return errutil.ErrInvalidUTF8
}

// Kind lets errutil.KindOf callers see this as an encoding failure.
func (e *EncodingError) Kind() errutil.Kind { return errutil.EncodingError }
