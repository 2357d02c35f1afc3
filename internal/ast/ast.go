// Package ast defines the Abstract Syntax Tree node types produced by the
// parser and consumed by the semantic validator and the evaluator.
package ast

import (
	"bytes"

	"github.com/loxlang/golox/internal/lexer"
)

// Node is the base interface every AST node implements.
type Node interface {
	// TokenLiteral returns the literal text of the token the node is
	// anchored to, mostly useful in tests and debugging.
	TokenLiteral() string
	// String returns a debug representation of the node.
	String() string
	// Pos returns the node's position in the source, used for diagnostics.
	Pos() lexer.Position
}

// Expression is any node that produces a value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs a side effect but produces no value.
type Statement interface {
	Node
	statementNode()
}

// SelfValidator is implemented by nodes that carry a scope-sensitive rule
// the semantic pass must check (e.g. "this" only inside a class). The
// validator calls ValidateSelf once per matching node during its traversal.
type SelfValidator interface {
	ValidateSelf(cursor *Cursor) error
}

// Program is the root of every AST; it is simply an ordered list of
// top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Pos() lexer.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, stmt := range p.Statements {
		out.WriteString(stmt.String())
		out.WriteString("\n")
	}
	return out.String()
}
