package interp

import (
	"fmt"

	"github.com/loxlang/golox/internal/ast"
)

// Function is a Lox function value: a name, its parameter list, its body,
// and the environment in force at the point it was declared. That captured
// environment is never replaced after construction, only extended — Bind
// produces a new Function sharing Body/Params/Name but with Env extended by
// one frame holding `this`.
type Function struct {
	Name   string
	Params []string
	Body   *ast.Block
	Env    *Environment
	// isInitializer marks a class's init method: calling it through
	// Getattr always yields the receiver regardless of what the body
	// returns, per the language's constructor semantics.
	isInitializer bool
}

func (f *Function) Type() string { return "FUNCTION" }

func (f *Function) String() string {
	if f.Name == "" {
		return "<fn>"
	}
	return fmt.Sprintf("<fn %s>", f.Name)
}

// Arity is the number of declared parameters.
func (f *Function) Arity() int { return len(f.Params) }

// Bind returns a new Function identical to f except that its captured
// environment has one additional frame defining `this` as receiver. The
// original Function is untouched, so the same method can be bound to many
// receivers independently.
func (f *Function) Bind(receiver *Instance) *Function {
	return &Function{
		Name:          f.Name,
		Params:        f.Params,
		Body:          f.Body,
		Env:           f.Env.push(map[string]Value{"this": receiver}),
		isInitializer: f.isInitializer,
	}
}

// callFunction runs the function body in a fresh frame binding each parameter to
// the matching argument, extending the function's captured environment (not
// the caller's). A Return inside the body is caught here and becomes the
// call's result; falling off the end yields Nil, unless this is an
// initializer, in which case the bound receiver is always returned.
func (i *Interpreter) callFunction(fn *Function, args []Value) (Value, error) {
	if len(args) != len(fn.Params) {
		return nil, fmt.Errorf("'%s' expected %d arguments but got %d", displayName(fn.Name), len(fn.Params), len(args))
	}

	bindings := make(map[string]Value, len(fn.Params))
	for idx, name := range fn.Params {
		bindings[name] = args[idx]
	}
	callEnv := fn.Env.push(bindings)

	_, err := i.evalBlockIn(fn.Body, callEnv)
	if rs, ok := asReturnSignal(err); ok {
		if fn.isInitializer {
			this, _ := fn.Env.Lookup("this")
			return this, nil
		}
		return rs.Value, nil
	}
	if err != nil {
		return nil, err
	}
	if fn.isInitializer {
		this, _ := fn.Env.Lookup("this")
		return this, nil
	}
	return Nil, nil
}

func displayName(name string) string {
	if name == "" {
		return "<fn>"
	}
	return name
}

// Class is a Lox class value: its declared methods and an optional
// superclass reference used for method resolution.
type Class struct {
	Name    string
	Methods map[string]*Function
	Base    *Class
}

func (c *Class) Type() string   { return "CLASS" }
func (c *Class) String() string { return c.Name }

// GetMethod walks the class's own methods then its base chain, the
// resolution order the language specifies for both ordinary method lookup
// and `super.name`.
func (c *Class) GetMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Base != nil {
		return c.Base.GetMethod(name)
	}
	return nil, false
}

// Arity is the arity of the class's init method, or 0 if it has none —
// calling a class with no initializer takes no arguments.
func (c *Class) Arity() int {
	if init, ok := c.GetMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Instance is a Lox object: a reference to its class plus its own mutable
// field storage. Field access checks the instance's own fields first, and
// only falls back to a bound method from the class (and its base chain) on
// a miss.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func (in *Instance) Type() string   { return "INSTANCE" }
func (in *Instance) String() string { return in.Class.Name + " instance" }

// newInstance allocates an Instance with no fields set.
func newInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]Value)}
}

// Get resolves a field or bound method named name on the instance. `init`
// always resolves to a bound copy whose isInitializer flag makes calling it
// again directly (e.g. p.init(2)) still yield the instance rather than the
// init body's own return value.
func (in *Instance) Get(name string) (Value, bool) {
	if v, ok := in.Fields[name]; ok {
		return v, true
	}
	if m, ok := in.Class.GetMethod(name); ok {
		return m.Bind(in), true
	}
	return nil, false
}

// Set assigns a field directly on the instance; instances are the only
// value kind whose fields may be written.
func (in *Instance) Set(name string, value Value) {
	in.Fields[name] = value
}
