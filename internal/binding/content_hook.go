package binding

import (
	"fmt"
	"reflect"

	"github.com/Cyclone1070/hostos/internal/host/buffer"
	"github.com/Cyclone1070/hostos/internal/host/file"
)

var contentType = reflect.TypeOf(file.Content{})

// contentHook turns the engine's dynamic content value into the tagged
// file.Content: byte values become Bytes, strings become Text.
func contentHook(from, to reflect.Type, data any) (any, error) {
	if to != contentType {
		return data, nil
	}

	switch v := data.(type) {
	case file.Content:
		return v, nil
	case buffer.Buffer:
		return file.Bytes(v), nil
	case *buffer.Buffer:
		if v == nil {
			return nil, fmt.Errorf("%w: nil buffer", ErrUnsupportedContent)
		}
		return file.Bytes(*v), nil
	case []byte:
		return file.Bytes(buffer.New(v)), nil
	case string:
		return file.Text(v), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedContent, from)
}
