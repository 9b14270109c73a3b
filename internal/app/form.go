package app

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Tokebay/shorty/internal/view"
)

// ErrFieldAbsent means a form lacks an input a workflow expects. The
// submission is skipped, not reported.
var ErrFieldAbsent = errors.New("form field absent")

// Form exposes the inputs of one form. Value reports false when the form
// has no such input.
type Form interface {
	Value(name string) (string, bool)
	Clear(name string)
}

// Feedback is a slot that shows workflow results to the user.
type Feedback interface {
	Show(view.Result)
}

type Navigator interface {
	Navigate(path string)
}

// Fields is a Form backed by a map. Only the keys present are inputs.
type Fields struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewFields(values map[string]string) *Fields {
	f := &Fields{values: make(map[string]string, len(values))}
	for k, v := range values {
		f.values[k] = v
	}
	return f
}

func (f *Fields) Value(name string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	v, ok := f.values[name]
	return v, ok
}

func (f *Fields) Clear(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.values[name]; ok {
		f.values[name] = ""
	}
}

// values collects the named inputs, failing with ErrFieldAbsent for the
// first one the form lacks.
func values(form Form, names ...string) (map[string]string, error) {
	out := make(map[string]string, len(names))
	for _, name := range names {
		v, ok := form.Value(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrFieldAbsent, name)
		}
		out[name] = v
	}
	return out, nil
}
