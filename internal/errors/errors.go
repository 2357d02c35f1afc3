// Package errors formats diagnostics produced while processing Lox source:
// parse errors and semantic errors, both of which are tied to a source
// position. Semantic errors also carry the offending token's text, per the
// language's error taxonomy; parse errors do not.
package errors

import (
	"fmt"
	"strings"

	"github.com/loxlang/golox/internal/lexer"
)

// SemanticError is raised by the validator. It always carries the token
// text that triggered the failure, per the core's error taxonomy.
type SemanticError struct {
	Message string
	Token   string
	Pos     lexer.Position
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("semantic error at %d:%d near '%s': %s", e.Pos.Line, e.Pos.Column, e.Token, e.Message)
}

// NewSemanticError builds a SemanticError anchored to tok's position and
// literal text.
func NewSemanticError(message string, tok lexer.Token) *SemanticError {
	return &SemanticError{Message: message, Token: tok.Literal, Pos: tok.Pos}
}

// ParseError is raised by the parser when it cannot make sense of the
// token stream.
type ParseError struct {
	Message string
	Pos     lexer.Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// FormatWithSource renders err with the offending source line and a caret
// pointing at the column, the way a REPL or CLI would present it to a user.
func FormatWithSource(err error, source string) string {
	var pos lexer.Position
	var msg string

	switch e := err.(type) {
	case *SemanticError:
		pos, msg = e.Pos, e.Error()
	case *ParseError:
		pos, msg = e.Pos, e.Error()
	default:
		return err.Error()
	}

	lines := strings.Split(source, "\n")
	if pos.Line < 1 || pos.Line > len(lines) {
		return msg
	}

	var sb strings.Builder
	lineNumStr := fmt.Sprintf("%4d | ", pos.Line)
	sb.WriteString(lineNumStr)
	sb.WriteString(lines[pos.Line-1])
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", len(lineNumStr)+pos.Column-1))
	sb.WriteString("^\n")
	sb.WriteString(msg)
	return sb.String()
}
