package binding

import "errors"

// -- Sentinels --

var (
	ErrUnknownFunction    = errors.New("unknown function")
	ErrInvalidArguments   = errors.New("invalid arguments")
	ErrUnsupportedContent = errors.New("content must be a buffer, bytes or a string")
	ErrContentRequired    = errors.New("content is required")
	ErrTooManyArguments   = errors.New("too many arguments")
)
