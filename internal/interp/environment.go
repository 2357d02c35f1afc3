package interp

import "fmt"

// Environment is one frame of the lexical scope chain: a mapping from name
// to value, plus a link to the enclosing frame. Frames form a DAG rather
// than a tree once closures retain references to frames their defining
// scope has otherwise finished with — Go's garbage collector reclaims them
// once nothing (no function value, no live call) still points at them, so
// the "avoid leaking cycles" concern from the spec's environment design is
// handled by the host runtime rather than by reference counting here.
type Environment struct {
	store map[string]Value
	outer *Environment
}

// NewEnvironment creates a root environment with no enclosing scope, used
// for a program's global scope.
func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Value)}
}

// push creates a new child frame seeded with bindings, without mutating the
// receiver. This is the Environment-chain half of the spec's "push" —
// function calls, blocks, method binding, and class bodies each call this
// to extend the chain.
func (e *Environment) push(bindings map[string]Value) *Environment {
	child := &Environment{store: make(map[string]Value, len(bindings)), outer: e}
	for k, v := range bindings {
		child.store[k] = v
	}
	return child
}

// Define binds name to value in the current frame, shadowing any binding
// of the same name in an enclosing frame.
func (e *Environment) Define(name string, value Value) {
	e.store[name] = value
}

// Lookup walks the scope chain innermost-to-outermost looking for name.
func (e *Environment) Lookup(name string) (Value, bool) {
	for env := e; env != nil; env = env.outer {
		if v, ok := env.store[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Assign updates name in the first frame of the chain that defines it.
// Unlike Define, it never creates a new binding.
func (e *Environment) Assign(name string, value Value) error {
	for env := e; env != nil; env = env.outer {
		if _, ok := env.store[name]; ok {
			env.store[name] = value
			return nil
		}
	}
	return fmt.Errorf("variable %s does not exist", name)
}
