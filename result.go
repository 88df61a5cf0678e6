package fetch

// Result is the outcome of one request: a decoded value, or a classified
// failure, never both.
type Result[T any] struct {
	Value T
	Err   error // nil on success, otherwise a *Error
}

// OK returns a successful Result carrying v.
func OK[T any](v T) Result[T] { return Result[T]{Value: v} }

// Fail returns a failed Result carrying err.
func Fail[T any](err error) Result[T] { return Result[T]{Err: err} }

// Failed returns the classified failure, or nil for success. Callers
// should branch on Failed rather than inspecting fields.
func (r Result[T]) Failed() error { return r.Err }

// Callback receives the single Result of one request. It is invoked
// exactly once per request, on the client's scheduler.
type Callback[T any] func(Result[T])
