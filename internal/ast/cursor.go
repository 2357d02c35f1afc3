package ast

// Cursor records the syntactic contexts (enclosing Function and Class
// declarations) the validator has descended through on the way to the node
// currently being checked. It is pushed on descent and popped on ascent, so
// it always reflects exactly the lexical nesting of the node under
// inspection — never a previously-visited sibling.
type Cursor struct {
	functions []*Function
	classes   []*Class
}

// NewCursor returns an empty cursor, the state at the root of a traversal.
func NewCursor() *Cursor {
	return &Cursor{}
}

// PushFunction records that the traversal has entered fn's body.
func (c *Cursor) PushFunction(fn *Function) {
	c.functions = append(c.functions, fn)
}

// PopFunction discards the innermost enclosing function, restoring the
// cursor to its state before the matching PushFunction.
func (c *Cursor) PopFunction() {
	c.functions = c.functions[:len(c.functions)-1]
}

// PushClass records that the traversal has entered cls's method bodies.
func (c *Cursor) PushClass(cls *Class) {
	c.classes = append(c.classes, cls)
}

// PopClass discards the innermost enclosing class.
func (c *Cursor) PopClass() {
	c.classes = c.classes[:len(c.classes)-1]
}

// InFunction reports whether the node is nested inside any function body.
func (c *Cursor) InFunction() bool {
	return len(c.functions) > 0
}

// InClass reports whether the node is nested inside any class's method
// bodies, regardless of intervening function nesting — a closure defined
// inside a method is still "in class scope" for `this`/`super` purposes
// because it resolves those names dynamically through its captured
// environment.
func (c *Cursor) InClass() bool {
	return len(c.classes) > 0
}

// CurrentClass returns the innermost enclosing class, or nil outside any
// class body.
func (c *Cursor) CurrentClass() *Class {
	if len(c.classes) == 0 {
		return nil
	}
	return c.classes[len(c.classes)-1]
}
