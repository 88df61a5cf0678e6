package fetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/go-kit/fetch/activity"
	"github.com/go-kit/fetch/decode"
	"github.com/go-kit/fetch/endpoint"
)

// HTTPClient is an interface that models *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client drives the request pipeline: it materializes an endpoint's
// descriptor, executes it on the transport or substitutes the endpoint's
// mock payload, classifies the outcome, decodes the body, and delivers
// exactly one Result per request through the scheduler.
//
// A Client constructed without options works against http.DefaultClient
// out of the box. Collaborators are injected through options, so tests
// can substitute a fake transport, an inline scheduler, or a shared
// activity tracker without touching global state. Clients are safe for
// concurrent use and are not retained references to endpoints beyond the
// single call.
type Client struct {
	httpClient HTTPClient
	scheduler  Scheduler
	tracker    *activity.Tracker
	logger     log.Logger
	before     []RequestFunc
	after      []ClientResponseFunc
	finalizer  []ClientFinalizerFunc

	requestCount   metrics.Counter
	requestLatency metrics.Histogram
}

// NewClient constructs a usable Client. With no options it uses
// http.DefaultClient, runs every callback on its own goroutine, owns a
// fresh activity tracker, and discards logs and metrics.
func NewClient(options ...ClientOption) *Client {
	c := &Client{
		httpClient:     http.DefaultClient,
		scheduler:      NewAsyncScheduler(),
		tracker:        activity.NewTracker(),
		logger:         log.NewNopLogger(),
		requestCount:   discard.NewCounter(),
		requestLatency: discard.NewHistogram(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// ClientOption sets an optional parameter for clients.
type ClientOption func(*Client)

// SetClient sets the underlying HTTP client used for requests. By
// default, http.DefaultClient is used.
func SetClient(client HTTPClient) ClientOption {
	return func(c *Client) { c.httpClient = client }
}

// SetScheduler sets the delivery context that callbacks are marshaled
// onto. By default every callback runs on its own goroutine.
func SetScheduler(s Scheduler) ClientOption {
	return func(c *Client) { c.scheduler = s }
}

// SetTracker sets the activity tracker driven by this client. Injecting
// one tracker into several clients yields a single busy/idle indicator
// for all of them.
func SetTracker(t *activity.Tracker) ClientOption {
	return func(c *Client) { c.tracker = t }
}

// SetLogger sets a logger for dispatch and failure events. By default no
// events are logged.
func SetLogger(logger log.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// SetRequestCount counts delivered results. The counter is labeled with
// "kind": a failure's Kind name, or "ok".
func SetRequestCount(counter metrics.Counter) ClientOption {
	return func(c *Client) { c.requestCount = counter }
}

// SetRequestLatency observes the duration, in seconds, of each live
// request from dispatch to settlement. Mock and invalid-request calls
// never reach the transport and are not observed.
func SetRequestLatency(histogram metrics.Histogram) ClientOption {
	return func(c *Client) { c.requestLatency = histogram }
}

// ClientBefore adds RequestFuncs that are applied to the outgoing request
// before it's invoked.
func ClientBefore(before ...RequestFunc) ClientOption {
	return func(c *Client) { c.before = append(c.before, before...) }
}

// ClientAfter adds ClientResponseFuncs applied to each live response
// prior to it being decoded. This is useful for obtaining anything from
// the response and adding it onto the context for finalizers.
func ClientAfter(after ...ClientResponseFunc) ClientOption {
	return func(c *Client) { c.after = append(c.after, after...) }
}

// ClientFinalizer adds finalizers executed at the end of every request,
// live or mocked. By default, no finalizer is registered.
func ClientFinalizer(f ...ClientFinalizerFunc) ClientOption {
	return func(c *Client) { c.finalizer = append(c.finalizer, f...) }
}

// Tracker returns the client's activity tracker, for registering
// busy/idle observers or sharing the tracker across clients.
func (c *Client) Tracker() *activity.Tracker { return c.tracker }

// Call resolves e into a request, executes it on the transport, decodes
// the response body into a T, and delivers the Result to callback on the
// client's scheduler. Call returns as soon as the work is scheduled.
//
// An endpoint that cannot produce a descriptor fails with
// KindInvalidRequest without touching the network or the activity
// tracker: a request that was never in flight must not perturb the
// busy/idle signal. Otherwise the tracker is incremented before the
// transport is invoked and decremented when the transport settles, ahead
// of any classification, so the indicator reflects the true in-flight
// count on every path.
func Call[T any](ctx context.Context, c *Client, e endpoint.Endpoint, callback Callback[T]) {
	desc, err := e.Descriptor()
	if err != nil {
		fail(ctx, c, callback, &Error{Kind: KindInvalidRequest, Cause: err})
		return
	}
	req, err := desc.Request(ctx)
	if err != nil {
		fail(ctx, c, callback, &Error{Kind: KindInvalidRequest, Cause: err})
		return
	}
	for _, f := range c.before {
		ctx = f(ctx, req)
	}

	level.Debug(c.logger).Log("method", req.Method, "url", req.URL)
	c.tracker.Incr()
	begin := time.Now()

	go func() {
		ctx, body, err := c.send(ctx, req)
		c.tracker.Decr()
		c.requestLatency.Observe(time.Since(begin).Seconds())
		switch {
		case err != nil:
			fail(ctx, c, callback, &Error{Kind: KindTransport, Cause: err})
		case len(body) == 0:
			fail(ctx, c, callback, &Error{Kind: KindDataMissing})
		default:
			deliverDecoded(ctx, c, callback, body)
		}
	}()
}

// Mock resolves e's mock payload and feeds it through the same decode and
// delivery path as a live response, so mock and live calls are
// indistinguishable to the callback from the decode step on. An endpoint
// without a payload fails with KindMockUnavailable. Mock calls never
// represent network work and never touch the activity tracker.
func Mock[T any](c *Client, e endpoint.Endpoint, callback Callback[T]) {
	m, ok := e.(endpoint.Mocker)
	if !ok {
		fail(context.Background(), c, callback, &Error{Kind: KindMockUnavailable})
		return
	}
	payload, ok := m.MockPayload()
	if !ok {
		fail(context.Background(), c, callback, &Error{Kind: KindMockUnavailable})
		return
	}
	deliverDecoded(context.Background(), c, callback, payload)
}

// send executes req and drains its response body. The returned context
// carries whatever the ClientAfter funcs added, plus the response headers
// and size.
func (c *Client) send(ctx context.Context, req *http.Request) (context.Context, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ctx, nil, err
	}
	defer resp.Body.Close()

	for _, f := range c.after {
		ctx = f(ctx, resp)
	}
	ctx = context.WithValue(ctx, ContextKeyResponseHeaders, resp.Header)
	ctx = context.WithValue(ctx, ContextKeyResponseSize, resp.ContentLength)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ctx, nil, err
	}
	return ctx, body, nil
}

// deliverDecoded schedules the decode of body and the delivery of its
// Result. Decoding runs on the scheduler, so delivery contexts that
// serialize callbacks also serialize the decode work feeding them.
func deliverDecoded[T any](ctx context.Context, c *Client, callback Callback[T], body []byte) {
	c.scheduler.Schedule(func() {
		v, err := decode.JSON[T](body)
		if err != nil {
			finish(ctx, c, callback, Fail[T](&Error{Kind: KindDecode, Cause: err}))
			return
		}
		finish(ctx, c, callback, OK(v))
	})
}

// fail schedules the delivery of a classified failure.
func fail[T any](ctx context.Context, c *Client, callback Callback[T], err *Error) {
	c.scheduler.Schedule(func() {
		finish(ctx, c, callback, Fail[T](err))
	})
}

// finish runs on the scheduler and is the single point that invokes the
// callback: every path through the pipeline funnels into exactly one
// finish per request.
func finish[T any](ctx context.Context, c *Client, callback Callback[T], r Result[T]) {
	kind := "ok"
	if r.Err != nil {
		var e *Error
		if errors.As(r.Err, &e) {
			kind = e.Kind.String()
		}
		level.Error(c.logger).Log("kind", kind, "err", r.Err)
	}
	c.requestCount.With("kind", kind).Add(1)
	for _, f := range c.finalizer {
		f(ctx, r.Err)
	}
	callback(r)
}
