// Package endpoint defines the declarative description of a remote API
// operation consumed by package fetch.
//
// An Endpoint is a plain value, typically one small struct per operation,
// that knows how to build exactly one request descriptor. Endpoints that
// can also serve a canned payload for deterministic tests additionally
// implement Mocker. The two capabilities are independent code paths: an
// endpoint may support either or both, and absence of a capability is
// reported at call time, never at construction time.
package endpoint

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Endpoint describes a single remote API operation. It is the fundamental
// building block of package fetch clients.
type Endpoint interface {
	// Descriptor materializes the request descriptor. It must be a pure
	// function of the endpoint's fields: the same endpoint value always
	// yields the same descriptor, or the same error.
	Descriptor() (Descriptor, error)
}

// Mocker is an interface that should be implemented by endpoints that can
// serve a pre-recorded response payload in place of a live call. Clients
// test if an endpoint is a Mocker when the mock path is requested;
// endpoints that are not, or that report ok == false, have no payload and
// the mock call fails accordingly.
type Mocker interface {
	MockPayload() (payload []byte, ok bool)
}

// Descriptor is a fully resolved request: method, URL, headers, and an
// optional body. It is the materialized output of an Endpoint, consumed
// once by the transport.
type Descriptor struct {
	Method string // empty means GET
	URL    *url.URL
	Header http.Header
	Body   []byte
}

// ErrNilURL is returned by Request for descriptors without a URL.
var ErrNilURL = errors.New("descriptor has nil URL")

// Request converts the descriptor into an *http.Request bound to ctx. The
// descriptor's headers are cloned into the request, so one descriptor can
// safely materialize many requests.
func (d Descriptor) Request(ctx context.Context) (*http.Request, error) {
	if d.URL == nil {
		return nil, ErrNilURL
	}
	var body io.Reader
	if len(d.Body) > 0 {
		body = bytes.NewReader(d.Body)
	}
	req, err := http.NewRequestWithContext(ctx, d.Method, d.URL.String(), body)
	if err != nil {
		return nil, err
	}
	if d.Header != nil {
		req.Header = d.Header.Clone()
	}
	return req, nil
}

// Param is a single query parameter.
type Param struct {
	Key   string
	Value string
}

// Query encodes params as a URL query string in declaration order. Unlike
// url.Values.Encode, which sorts by key, Query preserves the caller's
// ordering, so a parameter list maps to exactly one RawQuery.
func Query(params ...Param) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}
