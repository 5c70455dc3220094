package dispatch

import "context"

type transportKey struct{}

// WithTransport tags ctx with the name of the transport serving a request.
func WithTransport(ctx context.Context, transport string) context.Context {
	return context.WithValue(ctx, transportKey{}, transport)
}

// TransportFrom returns the transport tag of ctx, or "unknown".
func TransportFrom(ctx context.Context) string {
	if ctx == nil {
		return "unknown"
	}
	if t, ok := ctx.Value(transportKey{}).(string); ok && t != "" {
		return t
	}
	return "unknown"
}
