package binding

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/Cyclone1070/hostos/internal/codec"
)

// Validator is an interface for request types that support validation
type Validator interface {
	Validate() error
}

// Executor runs a function with a typed request.
type Executor[Req, Resp any] func(context.Context, Req) (Resp, error)

// BaseFunction provides common Function behaviour using generics:
// argument decoding (mapstructure), validation, execution and CBOR
// encoding of the result.
//
// Type Parameters:
//   - Req: the request type, decoded from the engine's argument map
//   - Resp: the response type, encoded to CBOR
type BaseFunction[Req, Resp any] struct {
	name        string
	description string
	params      []string
	executor    Executor[Req, Resp]
}

// NewBaseFunction creates a BaseFunction. params lists argument names in
// positional order.
func NewBaseFunction[Req, Resp any](
	name string,
	description string,
	params []string,
	executor Executor[Req, Resp],
) *BaseFunction[Req, Resp] {
	return &BaseFunction[Req, Resp]{
		name:        name,
		description: description,
		params:      params,
		executor:    executor,
	}
}

// Name implements Function
func (b *BaseFunction[Req, Resp]) Name() string {
	return b.name
}

// Description implements Function
func (b *BaseFunction[Req, Resp]) Description() string {
	return b.description
}

// Params implements Function
func (b *BaseFunction[Req, Resp]) Params() []string {
	return b.params
}

// Call implements Function
//
// This method:
// 1. Decodes the args map into a typed request using mapstructure
// 2. Validates the request if it implements Validator
// 3. Calls the executor with the typed request
// 4. Encodes the response as CBOR
//
// Host errors from the executor are returned unchanged so their kind and
// path stay visible to the engine.
func (b *BaseFunction[Req, Resp]) Call(ctx context.Context, args map[string]any) ([]byte, error) {
	var req Req

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  contentHook,
		ErrorUnused: true,
		Result:      &req,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(args); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", b.name, ErrInvalidArguments, err)
	}

	if v, ok := any(&req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w: %w", b.name, ErrInvalidArguments, err)
		}
	}

	resp, err := b.executor(ctx, req)
	if err != nil {
		return nil, err
	}

	encoded, err := codec.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to encode result: %w", b.name, err)
	}
	return encoded, nil
}
