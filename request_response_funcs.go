package fetch

import (
	"context"
	"net/http"
)

// RequestFunc may modify the outgoing HTTP request, or derive a new
// context from it. RequestFuncs are executed after the endpoint's
// descriptor is materialized but prior to invoking the transport.
type RequestFunc func(context.Context, *http.Request) context.Context

// ClientResponseFunc may take information from an HTTP response and make
// it available for consumption by finalizers via the context.
// ClientResponseFuncs are only executed on live calls, after the
// transport returns but prior to decoding.
type ClientResponseFunc func(context.Context, *http.Response) context.Context

// ClientFinalizerFunc can be used to perform work at the end of a
// request, after the result has been classified but before it is handed
// to the callback. The principal intended use is for request logging and
// accounting. err is the classified failure, or nil.
type ClientFinalizerFunc func(ctx context.Context, err error)

// SetRequestHeader returns a RequestFunc that sets the specified header.
func SetRequestHeader(key, val string) RequestFunc {
	return func(ctx context.Context, r *http.Request) context.Context {
		r.Header.Set(key, val)
		return ctx
	}
}

type contextKey int

const (
	// ContextKeyResponseHeaders is populated in the context whenever a
	// live call yields a response. Its value is of type http.Header.
	ContextKeyResponseHeaders contextKey = iota

	// ContextKeyResponseSize is populated in the context whenever a
	// live call yields a response. Its value is of type int64.
	ContextKeyResponseSize
)
