package file

import (
	"github.com/Cyclone1070/hostos/internal/host/buffer"
)

// ContentKind tells which case of Content is populated.
type ContentKind int

const (
	KindBytes ContentKind = iota
	KindText
)

func (k ContentKind) String() string {
	if k == KindText {
		return "text"
	}
	return "bytes"
}

// Content is what a script hands to WriteFile: either a Buffer or a text
// string. Build it with Bytes or Text.
type Content struct {
	kind  ContentKind
	bytes buffer.Buffer
	text  string
}

// Bytes wraps a Buffer.
func Bytes(b buffer.Buffer) Content {
	return Content{kind: KindBytes, bytes: b}
}

// Text wraps a string that will be encoded as UTF-8.
func Text(s string) Content {
	return Content{kind: KindText, text: s}
}

// Kind reports which case c holds.
func (c Content) Kind() ContentKind {
	return c.kind
}

// Encode turns c into the exact bytes to write.
func (c Content) Encode(policy buffer.Policy) (buffer.Buffer, error) {
	switch c.kind {
	case KindText:
		return buffer.FromText(c.text, policy)
	default:
		return c.bytes, nil
	}
}
