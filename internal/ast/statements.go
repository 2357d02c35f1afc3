package ast

import (
	"bytes"

	"github.com/loxlang/golox/internal/errors"
	"github.com/loxlang/golox/internal/lexer"
)

// ReservedWords lists the identifiers the language reserves for its own
// syntax; they cannot be used as variable, parameter, or (transitively)
// shadowing names.
var ReservedWords = map[string]bool{
	"and": true, "class": true, "else": true, "false": true, "for": true,
	"fun": true, "if": true, "nil": true, "or": true, "print": true,
	"return": true, "super": true, "this": true, "true": true, "var": true,
	"while": true,
}

// ExprStmt is an expression evaluated for its side effects; its value is
// discarded.
type ExprStmt struct {
	Token lexer.Token
	Expr  Expression
}

func (e *ExprStmt) statementNode()      {}
func (e *ExprStmt) TokenLiteral() string { return e.Token.Literal }
func (e *ExprStmt) Pos() lexer.Position { return e.Token.Pos }
func (e *ExprStmt) String() string      { return e.Expr.String() + ";" }

// Print evaluates Expr and writes its display form to standard output.
type Print struct {
	Token lexer.Token
	Expr  Expression
}

func (p *Print) statementNode()      {}
func (p *Print) TokenLiteral() string { return p.Token.Literal }
func (p *Print) Pos() lexer.Position  { return p.Token.Pos }
func (p *Print) String() string       { return "print " + p.Expr.String() + ";" }

// VarDef declares a new variable in the current scope, bound to the result
// of evaluating Initializer.
type VarDef struct {
	Token       lexer.Token // the 'var' token
	NameTok     lexer.Token // the identifier token, for diagnostics
	Name        string
	Initializer Expression
}

func (v *VarDef) statementNode()      {}
func (v *VarDef) TokenLiteral() string { return v.Token.Literal }
func (v *VarDef) Pos() lexer.Position  { return v.Token.Pos }
func (v *VarDef) String() string {
	return "var " + v.Name + " = " + v.Initializer.String() + ";"
}

// ValidateSelf forbids declaring a variable under a reserved word.
func (v *VarDef) ValidateSelf(cursor *Cursor) error {
	if ReservedWords[v.Name] {
		return errors.NewSemanticError("Cannot use reserved word '"+v.Name+"' as a variable name.", v.NameTok)
	}
	return nil
}

// If dispatches to Then or Else depending on Cond's truthiness. Else may be
// nil, meaning "do nothing".
type If struct {
	Token lexer.Token
	Cond  Expression
	Then  Statement
	Else  Statement
}

func (i *If) statementNode()      {}
func (i *If) TokenLiteral() string { return i.Token.Literal }
func (i *If) Pos() lexer.Position  { return i.Token.Pos }
func (i *If) String() string {
	var out bytes.Buffer
	out.WriteString("if (" + i.Cond.String() + ") " + i.Then.String())
	if i.Else != nil {
		out.WriteString(" else " + i.Else.String())
	}
	return out.String()
}

// While repeatedly evaluates Body while Cond is truthy.
type While struct {
	Token lexer.Token
	Cond  Expression
	Body  Statement
}

func (w *While) statementNode()      {}
func (w *While) TokenLiteral() string { return w.Token.Literal }
func (w *While) Pos() lexer.Position  { return w.Token.Pos }
func (w *While) String() string       { return "while (" + w.Cond.String() + ") " + w.Body.String() }

// Block is a sequence of statements evaluated in a fresh child scope.
type Block struct {
	Token lexer.Token // the '{' token
	Stmts []Statement
}

func (b *Block) statementNode()      {}
func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) Pos() lexer.Position  { return b.Token.Pos }
func (b *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, s := range b.Stmts {
		out.WriteString("  " + s.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}

// ValidateSelf forbids two direct-child VarDefs in the same block from
// sharing a name.
func (b *Block) ValidateSelf(cursor *Cursor) error {
	seen := map[string]bool{}
	for _, s := range b.Stmts {
		vd, ok := s.(*VarDef)
		if !ok {
			continue
		}
		if seen[vd.Name] {
			return errors.NewSemanticError("Variable '"+vd.Name+"' has already been declared in this block.", vd.NameTok)
		}
		seen[vd.Name] = true
	}
	return nil
}

// Return performs a non-local exit to the nearest enclosing function call,
// yielding Value (or nil, meaning Lox's nil literal, when omitted).
type Return struct {
	Token lexer.Token
	Value Expression
}

func (r *Return) statementNode()      {}
func (r *Return) TokenLiteral() string { return r.Token.Literal }
func (r *Return) Pos() lexer.Position  { return r.Token.Pos }
func (r *Return) String() string {
	if r.Value != nil {
		return "return " + r.Value.String() + ";"
	}
	return "return;"
}

// ValidateSelf requires Return to be lexically nested inside a function
// body.
func (r *Return) ValidateSelf(cursor *Cursor) error {
	if !cursor.InFunction() {
		return errors.NewSemanticError("Can't return from top-level code.", r.Token)
	}
	return nil
}

// Param is a single declared function parameter.
type Param struct {
	Token lexer.Token
	Name  string
}

// Function declares a named function (or, inside a Class, a method). It
// captures the defining environment when evaluated.
type Function struct {
	Token  lexer.Token // the 'fun' token, or the method name token for methods
	Name   string
	Params []Param
	Body   *Block
}

func (f *Function) statementNode()      {}
func (f *Function) TokenLiteral() string { return f.Token.Literal }
func (f *Function) Pos() lexer.Position  { return f.Token.Pos }
func (f *Function) String() string {
	var out bytes.Buffer
	out.WriteString("fun " + f.Name + "(")
	for i, p := range f.Params {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(p.Name)
	}
	out.WriteString(") " + f.Body.String())
	return out.String()
}

// ValidateSelf checks parameter names are not reserved words, are pairwise
// distinct, and are not re-declared by a direct-child VarDef of the body.
func (f *Function) ValidateSelf(cursor *Cursor) error {
	seen := map[string]bool{}
	for _, p := range f.Params {
		if ReservedWords[p.Name] {
			return errors.NewSemanticError("Cannot use reserved word '"+p.Name+"' as a parameter name.", p.Token)
		}
		if seen[p.Name] {
			return errors.NewSemanticError("Duplicate parameter name '"+p.Name+"' in function declaration.", p.Token)
		}
		seen[p.Name] = true
	}
	for _, s := range f.Body.Stmts {
		vd, ok := s.(*VarDef)
		if !ok {
			continue
		}
		if seen[vd.Name] {
			return errors.NewSemanticError("Variable '"+vd.Name+"' shadows a function parameter.", vd.NameTok)
		}
	}
	return nil
}

// Class declares a class with the given methods and optional superclass
// reference.
type Class struct {
	Token   lexer.Token
	Name    string
	Methods []*Function
	Base    *Var // nil when the class has no superclass
}

func (c *Class) statementNode()      {}
func (c *Class) TokenLiteral() string { return c.Token.Literal }
func (c *Class) Pos() lexer.Position  { return c.Token.Pos }
func (c *Class) String() string {
	var out bytes.Buffer
	out.WriteString("class " + c.Name)
	if c.Base != nil {
		out.WriteString(" < " + c.Base.Name)
	}
	out.WriteString(" {\n")
	for _, m := range c.Methods {
		out.WriteString("  " + m.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}
