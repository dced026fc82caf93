package runtime

import (
	"errors"
	"maps"
	"slices"
)

// ErrNameInUse is returned by Insert when the name is already bound.
var ErrNameInUse = errors.New("variable name already in use")

// Environment is the single flat namespace of a session. It has no parent
// scopes and is owned by one evaluator at a time.
type Environment struct {
	values map[string]Value
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Value)}
}

// Get returns the value bound to name, or Uninitialized when name is not
// bound. The two cases are indistinguishable to callers.
func (e *Environment) Get(name string) Value {
	if v, ok := e.values[name]; ok {
		return v
	}
	return Uninitialized
}

// Has reports whether name is bound, initialized or not.
func (e *Environment) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Insert binds name to value. It fails with ErrNameInUse if name is already
// bound.
func (e *Environment) Insert(name string, value Value) error {
	if _, ok := e.values[name]; ok {
		return ErrNameInUse
	}
	e.values[name] = value
	return nil
}

// Upsert binds name to value, replacing any existing binding.
func (e *Environment) Upsert(name string, value Value) {
	e.values[name] = value
}

// Clear removes every binding.
func (e *Environment) Clear() {
	clear(e.values)
}

// Len returns the number of bindings.
func (e *Environment) Len() int {
	return len(e.values)
}

// Names returns the bound names in sorted order.
func (e *Environment) Names() []string {
	return slices.Sorted(maps.Keys(e.values))
}

// Snapshot returns a copy of the current bindings.
func (e *Environment) Snapshot() map[string]Value {
	return maps.Clone(e.values)
}
