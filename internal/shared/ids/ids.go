package ids

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type requestIDKey struct{}

// NewRequestID generates a lexicographically sortable request identifier.
var NewRequestID = func() string {
	return ulid.Make().String()
}

// WithRequestID binds a request ID to ctx so work handed off to background
// workers can log under the same ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the bound request ID, or "" when none is set.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
