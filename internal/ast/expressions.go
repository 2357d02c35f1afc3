package ast

import (
	"bytes"

	"github.com/loxlang/golox/internal/errors"
	"github.com/loxlang/golox/internal/lexer"
)

// Literal is a literal value baked into the source: a number, string,
// boolean, or nil. The parser is responsible for converting the raw token
// text into the right Go representation (float64, string, bool, or nil).
type Literal struct {
	Token lexer.Token
	Value interface{}
}

func (l *Literal) expressionNode()      {}
func (l *Literal) TokenLiteral() string { return l.Token.Literal }
func (l *Literal) Pos() lexer.Position  { return l.Token.Pos }
func (l *Literal) String() string       { return l.Token.Literal }

// Var references a variable by name.
type Var struct {
	Token lexer.Token
	Name  string
}

func (v *Var) expressionNode()      {}
func (v *Var) TokenLiteral() string { return v.Token.Literal }
func (v *Var) Pos() lexer.Position  { return v.Token.Pos }
func (v *Var) String() string       { return v.Name }

// Assign assigns the value of Value to the variable Name, resolved through
// the environment chain at evaluation time.
type Assign struct {
	Token lexer.Token // the '=' token
	Name  string
	Value Expression
}

func (a *Assign) expressionNode()      {}
func (a *Assign) TokenLiteral() string { return a.Token.Literal }
func (a *Assign) Pos() lexer.Position  { return a.Token.Pos }
func (a *Assign) String() string {
	return "(" + a.Name + " = " + a.Value.String() + ")"
}

// BinOp is a binary operation over two operands. Op is one of
// + - * / == != < <= > >=.
type BinOp struct {
	Token lexer.Token // the operator token
	Left  Expression
	Op    string
	Right Expression
}

func (b *BinOp) expressionNode()      {}
func (b *BinOp) TokenLiteral() string { return b.Token.Literal }
func (b *BinOp) Pos() lexer.Position  { return b.Token.Pos }
func (b *BinOp) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(b.Left.String())
	out.WriteString(" " + b.Op + " ")
	out.WriteString(b.Right.String())
	out.WriteString(")")
	return out.String()
}

// UnaryOp is a prefix operation. Op is one of - !.
type UnaryOp struct {
	Token   lexer.Token
	Op      string
	Operand Expression
}

func (u *UnaryOp) expressionNode()      {}
func (u *UnaryOp) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryOp) Pos() lexer.Position  { return u.Token.Pos }
func (u *UnaryOp) String() string {
	return "(" + u.Op + u.Operand.String() + ")"
}

// And is the short-circuiting logical 'and'.
type And struct {
	Token lexer.Token
	Left  Expression
	Right Expression
}

func (a *And) expressionNode()      {}
func (a *And) TokenLiteral() string { return a.Token.Literal }
func (a *And) Pos() lexer.Position  { return a.Token.Pos }
func (a *And) String() string       { return "(" + a.Left.String() + " and " + a.Right.String() + ")" }

// Or is the short-circuiting logical 'or'.
type Or struct {
	Token lexer.Token
	Left  Expression
	Right Expression
}

func (o *Or) expressionNode()      {}
func (o *Or) TokenLiteral() string { return o.Token.Literal }
func (o *Or) Pos() lexer.Position  { return o.Token.Pos }
func (o *Or) String() string       { return "(" + o.Left.String() + " or " + o.Right.String() + ")" }

// Call invokes Callee with Args, evaluated left to right after Callee.
type Call struct {
	Token  lexer.Token // the '(' token
	Callee Expression
	Args   []Expression
}

func (c *Call) expressionNode()      {}
func (c *Call) TokenLiteral() string { return c.Token.Literal }
func (c *Call) Pos() lexer.Position  { return c.Token.Pos }
func (c *Call) String() string {
	var out bytes.Buffer
	out.WriteString(c.Callee.String())
	out.WriteString("(")
	for i, a := range c.Args {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(a.String())
	}
	out.WriteString(")")
	return out.String()
}

// Getattr reads a field or bound method named Name off Obj.
type Getattr struct {
	Token lexer.Token // the '.' token
	Obj   Expression
	Name  string
}

func (g *Getattr) expressionNode()      {}
func (g *Getattr) TokenLiteral() string { return g.Token.Literal }
func (g *Getattr) Pos() lexer.Position  { return g.Token.Pos }
func (g *Getattr) String() string       { return g.Obj.String() + "." + g.Name }

// Setattr writes Value into the field Name on Obj.
type Setattr struct {
	Token lexer.Token // the '=' token
	Obj   Expression
	Name  string
	Value Expression
}

func (s *Setattr) expressionNode()      {}
func (s *Setattr) TokenLiteral() string { return s.Token.Literal }
func (s *Setattr) Pos() lexer.Position  { return s.Token.Pos }
func (s *Setattr) String() string {
	return s.Obj.String() + "." + s.Name + " = " + s.Value.String()
}

// This refers to the receiver of the enclosing method.
type This struct {
	Token lexer.Token
}

func (t *This) expressionNode()      {}
func (t *This) TokenLiteral() string { return t.Token.Literal }
func (t *This) Pos() lexer.Position  { return t.Token.Pos }
func (t *This) String() string       { return "this" }

// ValidateSelf requires This to be lexically nested inside a class's method
// bodies.
func (t *This) ValidateSelf(cursor *Cursor) error {
	if !cursor.InClass() {
		return errors.NewSemanticError("Can't use 'this' outside of a class.", t.Token)
	}
	return nil
}

// Super refers to a method named Name on the enclosing class's superclass.
type Super struct {
	Token lexer.Token
	Name  string
}

func (s *Super) expressionNode()      {}
func (s *Super) TokenLiteral() string { return s.Token.Literal }
func (s *Super) Pos() lexer.Position  { return s.Token.Pos }
func (s *Super) String() string       { return "super." + s.Name }

// ValidateSelf requires Super to be lexically nested inside a class's
// method bodies, and that class to declare a superclass.
func (s *Super) ValidateSelf(cursor *Cursor) error {
	if !cursor.InClass() {
		return errors.NewSemanticError("Can't use 'super' outside of a class.", s.Token)
	}
	if cls := cursor.CurrentClass(); cls.Base == nil {
		return errors.NewSemanticError("Can't use 'super' in a class with no superclass.", s.Token)
	}
	return nil
}
