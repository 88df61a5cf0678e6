// Package mock supplies canned response payloads to endpoints. A Source
// answers "is there a pre-recorded body for this name?"; endpoints consult
// one from their MockPayload method. Absence is a legal answer, not an
// error.
package mock

import (
	"io/fs"
	"path"
	"sync"
)

// Source yields pre-recorded payloads by name.
type Source interface {
	Load(name string) (payload []byte, ok bool)
}

// SourceFunc is an adapter to allow use of ordinary functions as Sources.
type SourceFunc func(name string) ([]byte, bool)

// Load implements Source by calling f(name).
func (f SourceFunc) Load(name string) ([]byte, bool) { return f(name) }

// Registry is an in-memory Source, safe for concurrent use.
type Registry struct {
	mtx      sync.RWMutex
	payloads map[string][]byte
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		payloads: map[string][]byte{},
	}
}

// Register stores payload under name, replacing any previous payload.
func (r *Registry) Register(name string, payload []byte) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.payloads[name] = payload
}

// Load implements Source.
func (r *Registry) Load(name string) ([]byte, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	payload, ok := r.payloads[name]
	return payload, ok
}

// Dir returns a Source that reads <root>/<name>.json from fsys. It pairs
// naturally with embed.FS, so recorded payloads ship inside the test or
// example binary. Any read failure is reported as absence.
func Dir(fsys fs.FS, root string) Source {
	return SourceFunc(func(name string) ([]byte, bool) {
		payload, err := fs.ReadFile(fsys, path.Join(root, name+".json"))
		if err != nil {
			return nil, false
		}
		return payload, true
	})
}
