package router

import (
	"context"
)

type paramsKey struct{}

// Params holds URL parameter values extracted from the route pattern.
type Params map[string]string

// Get returns the value of the parameter with the given key.
// Returns an empty string if the parameter doesn't exist.
func (p Params) Get(key string) string {
	return p[key]
}

// WithParams returns a new context with the given parameters.
func WithParams(ctx context.Context, params Params) context.Context {
	return context.WithValue(ctx, paramsKey{}, params)
}

// ParamsFromContext extracts URL parameters from the context.
func ParamsFromContext(ctx context.Context) (Params, bool) {
	params, ok := ctx.Value(paramsKey{}).(Params)
	return params, ok
}
