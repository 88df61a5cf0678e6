// Package fetch implements a minimal client-side HTTP request pipeline:
// declarative endpoints in, typed results out.
//
// A Client takes an endpoint.Endpoint, a plain value describing one API
// operation, performs or mocks the HTTP call, decodes the response body
// into a caller-chosen type, and delivers the outcome through a
// single-shot callback on an injected Scheduler, while an activity.Tracker
// counts in-flight requests for busy/idle signaling.
//
// Live and mocked calls
//
// Call materializes the endpoint's descriptor and executes it on the
// transport. Mock substitutes the endpoint's pre-recorded payload and
// feeds it through the identical decode and delivery path, so the two are
// indistinguishable to the callback from the decode step on. Mock calls
// never touch the network and never perturb the activity tracker.
//
// Failure classification
//
// Every failure is classified into exactly one Kind and delivered as a
// *Error with the original cause attached. Nothing is retried, nothing
// panics across the Client boundary, and nothing is delivered twice:
// every call terminates in exactly one callback invocation.
//
// Concurrency
//
// Call and Mock return as soon as the work is scheduled. Transport I/O
// runs on its own goroutine; decode and delivery are marshaled onto the
// client's Scheduler. No ordering holds between concurrently issued
// requests, but each request's own steps are strictly sequential, and the
// activity decrement happens before its result is delivered.
package fetch
