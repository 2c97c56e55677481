package binding

import (
	"context"

	"github.com/Cyclone1070/hostos/internal/host/buffer"
	"github.com/Cyclone1070/hostos/internal/host/file"
)

// Function is a host capability callable by name from the engine.
// Implementations are stateless and safe for concurrent use.
type Function interface {
	// Name returns the identifier the engine calls
	Name() string

	// Description returns a human-readable description
	Description() string

	// Params lists argument names in positional order
	Params() []string

	// Call runs the function with named arguments and returns the
	// CBOR-encoded result
	Call(ctx context.Context, args map[string]any) ([]byte, error)
}

// -- env --

type EnvRequest struct{}

// -- readFile --

type ReadFileRequest struct {
	Filename string `mapstructure:"filename"`
}

// -- writeFile --

type WriteFileRequest struct {
	Filename string        `mapstructure:"filename"`
	Content  *file.Content `mapstructure:"content"`
}

func (r *WriteFileRequest) Validate() error {
	if r.Content == nil {
		return ErrContentRequired
	}
	return nil
}

// Functions returns the env, readFile and writeFile functions bound to o.
// Note: ctx is accepted for API consistency but not used; host calls are
// synchronous and not cancellable.
func Functions(o *OS) []Function {
	return []Function{
		NewBaseFunction(
			"env",
			"Returns the host environment variables as a name to value map",
			nil,
			func(_ context.Context, _ EnvRequest) (map[string]string, error) {
				return o.Env().Map(), nil
			},
		),
		NewBaseFunction(
			"readFile",
			"Reads the entire content of a file into a buffer",
			[]string{"filename"},
			func(_ context.Context, req ReadFileRequest) (buffer.Buffer, error) {
				return o.ReadFile(req.Filename)
			},
		),
		NewBaseFunction(
			"writeFile",
			"Writes a buffer or a string as the entire content of a file",
			[]string{"filename", "content"},
			func(_ context.Context, req WriteFileRequest) (any, error) {
				return nil, o.WriteFile(req.Filename, *req.Content)
			},
		),
	}
}
