// Package decode converts raw response bytes into typed values.
package decode

import "encoding/json"

// Func converts raw response bytes into a value of type T. Implementations
// must be pure: the same bytes always produce the same value or the same
// error, with no side effects and no access to shared state.
type Func[T any] func(data []byte) (T, error)

// Validator is an interface that should be implemented by decoded types
// that can check their own shape. JSON runs Validate after a successful
// unmarshal and reports its error as the decode failure. encoding/json
// leaves fields absent from the data at their zero values; Validator is
// how a type states which fields the wire contract actually requires.
// Validate must be pure.
type Validator interface {
	Validate() error
}

// JSON decodes data as JSON into a value of type T. The returned error is
// always the underlying cause, never a reformulation: a *json.SyntaxError
// when the bytes are not well-formed JSON, a *json.UnmarshalTypeError when
// a field holds the wrong type, or the Validator error when the decoded
// value fails its own shape check. Unknown keys in the data are ignored.
func JSON[T any](data []byte) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		var zero T
		return zero, err
	}
	if val, ok := any(&v).(Validator); ok {
		if err := val.Validate(); err != nil {
			var zero T
			return zero, err
		}
	}
	return v, nil
}
