// Package parser turns a token stream into an *ast.Program using a
// Pratt (top-down operator precedence) parser for expressions and ordinary
// recursive descent for statements.
package parser

import (
	"strconv"

	"github.com/loxlang/golox/internal/ast"
	"github.com/loxlang/golox/internal/errors"
	"github.com/loxlang/golox/internal/lexer"
)

type precedence int

const (
	LOWEST precedence = iota
	ASSIGNMENT
	OR_PREC
	AND_PREC
	EQUALITY
	COMPARISON
	TERM
	FACTOR
	UNARY
	CALL
)

var precedences = map[lexer.TokenType]precedence{
	lexer.EQUAL:         ASSIGNMENT,
	lexer.OR:            OR_PREC,
	lexer.AND:           AND_PREC,
	lexer.EQUAL_EQUAL:   EQUALITY,
	lexer.BANG_EQUAL:    EQUALITY,
	lexer.LESS:          COMPARISON,
	lexer.LESS_EQUAL:    COMPARISON,
	lexer.GREATER:       COMPARISON,
	lexer.GREATER_EQUAL: COMPARISON,
	lexer.PLUS:          TERM,
	lexer.MINUS:         TERM,
	lexer.STAR:          FACTOR,
	lexer.SLASH:         FACTOR,
	lexer.LPAREN:        CALL,
	lexer.DOT:           CALL,
}

type (
	prefixParseFn func() (ast.Expression, error)
	infixParseFn  func(ast.Expression) (ast.Expression, error)
)

// Parser consumes a token stream from a *lexer.Lexer and produces AST nodes.
type Parser struct {
	l *lexer.Lexer

	curToken  lexer.Token
	peekToken lexer.Token

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

// New creates a Parser reading from l, primed with its first two tokens.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[lexer.TokenType]prefixParseFn{
		lexer.TRUE:   p.parseBoolLiteral,
		lexer.FALSE:  p.parseBoolLiteral,
		lexer.NIL:    p.parseNilLiteral,
		lexer.NUMBER: p.parseNumberLiteral,
		lexer.STRING: p.parseStringLiteral,
		lexer.IDENT:  p.parseIdentifier,
		lexer.LPAREN: p.parseGroupedExpr,
		lexer.BANG:   p.parseUnary,
		lexer.MINUS:  p.parseUnary,
		lexer.THIS:   p.parseThis,
		lexer.SUPER:  p.parseSuper,
	}

	p.infixParseFns = map[lexer.TokenType]infixParseFn{
		lexer.PLUS:          p.parseBinOp,
		lexer.MINUS:         p.parseBinOp,
		lexer.STAR:          p.parseBinOp,
		lexer.SLASH:         p.parseBinOp,
		lexer.EQUAL_EQUAL:   p.parseBinOp,
		lexer.BANG_EQUAL:    p.parseBinOp,
		lexer.LESS:          p.parseBinOp,
		lexer.LESS_EQUAL:    p.parseBinOp,
		lexer.GREATER:       p.parseBinOp,
		lexer.GREATER_EQUAL: p.parseBinOp,
		lexer.AND:           p.parseAnd,
		lexer.OR:            p.parseOr,
		lexer.LPAREN:        p.parseCallExpr,
		lexer.DOT:           p.parseDotExpr,
		lexer.EQUAL:         p.parseAssign,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Parse lexes and parses source in one step, the entry point most callers
// (the engine facade, the CLI, tests) use.
func Parse(source string) (*ast.Program, error) {
	p := New(lexer.New(source))
	return p.ParseProgram()
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t lexer.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	return false
}

func (p *Parser) peekError(t lexer.TokenType) error {
	return &errors.ParseError{
		Message: "expected next token to be " + t.String() + ", got " + p.peekToken.Type.String() + " instead",
		Pos:     p.peekToken.Pos,
	}
}

func (p *Parser) curPrecedence() precedence {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) peekPrecedence() precedence {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// ParseProgram parses every top-level declaration until EOF.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{}
	for !p.curTokenIs(lexer.EOF) {
		stmt, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
		p.nextToken()
	}
	return program, nil
}

func (p *Parser) parseDeclaration() (ast.Statement, error) {
	switch p.curToken.Type {
	case lexer.CLASS:
		return p.parseClassDecl()
	case lexer.FUN:
		return p.parseFunDecl()
	case lexer.VAR:
		return p.parseVarDecl()
	default:
		return p.parseStatement()
	}
}

func (p *Parser) parseClassDecl() (*ast.Class, error) {
	tok := p.curToken
	if !p.expectPeek(lexer.IDENT) {
		return nil, p.peekError(lexer.IDENT)
	}
	name := p.curToken.Literal

	var base *ast.Var
	if p.peekTokenIs(lexer.LESS) {
		p.nextToken()
		if !p.expectPeek(lexer.IDENT) {
			return nil, p.peekError(lexer.IDENT)
		}
		base = &ast.Var{Token: p.curToken, Name: p.curToken.Literal}
	}

	if !p.expectPeek(lexer.LBRACE) {
		return nil, p.peekError(lexer.LBRACE)
	}

	var methods []*ast.Function
	for !p.peekTokenIs(lexer.RBRACE) && !p.peekTokenIs(lexer.EOF) {
		p.nextToken()
		method, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}

	if !p.expectPeek(lexer.RBRACE) {
		return nil, p.peekError(lexer.RBRACE)
	}

	return &ast.Class{Token: tok, Name: name, Methods: methods, Base: base}, nil
}

func (p *Parser) parseFunDecl() (*ast.Function, error) {
	tok := p.curToken
	if !p.expectPeek(lexer.IDENT) {
		return nil, p.peekError(lexer.IDENT)
	}
	fn, err := p.parseFunction()
	if err != nil {
		return nil, err
	}
	fn.Token = tok
	return fn, nil
}

// parseFunction parses a parameter list and body, assuming curToken is the
// function's name identifier. Used for both top-level functions (whose
// caller overrides the resulting node's Token to the 'fun' keyword) and
// methods (which keep the name token).
func (p *Parser) parseFunction() (*ast.Function, error) {
	nameTok := p.curToken
	name := nameTok.Literal

	if !p.expectPeek(lexer.LPAREN) {
		return nil, p.peekError(lexer.LPAREN)
	}

	var params []ast.Param
	if !p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		params = append(params, ast.Param{Token: p.curToken, Name: p.curToken.Literal})
		for p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			p.nextToken()
			params = append(params, ast.Param{Token: p.curToken, Name: p.curToken.Literal})
		}
	}

	if !p.expectPeek(lexer.RPAREN) {
		return nil, p.peekError(lexer.RPAREN)
	}
	if !p.expectPeek(lexer.LBRACE) {
		return nil, p.peekError(lexer.LBRACE)
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.Function{Token: nameTok, Name: name, Params: params, Body: body}, nil
}

// parseBlock assumes curToken is the opening '{' and leaves curToken on the
// matching '}'.
func (p *Parser) parseBlock() (*ast.Block, error) {
	tok := p.curToken
	var stmts []ast.Statement

	p.nextToken()
	for !p.curTokenIs(lexer.RBRACE) && !p.curTokenIs(lexer.EOF) {
		stmt, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		p.nextToken()
	}
	if !p.curTokenIs(lexer.RBRACE) {
		return nil, &errors.ParseError{Message: "unterminated block, expected '}'", Pos: tok.Pos}
	}
	return &ast.Block{Token: tok, Stmts: stmts}, nil
}

func (p *Parser) parseVarDecl() (*ast.VarDef, error) {
	tok := p.curToken
	if !p.expectPeek(lexer.IDENT) {
		return nil, p.peekError(lexer.IDENT)
	}
	nameTok := p.curToken
	name := nameTok.Literal

	var init ast.Expression
	if p.peekTokenIs(lexer.EQUAL) {
		p.nextToken()
		p.nextToken()
		var err error
		init, err = p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
	}

	if !p.expectPeek(lexer.SEMICOLON) {
		return nil, p.peekError(lexer.SEMICOLON)
	}
	return &ast.VarDef{Token: tok, NameTok: nameTok, Name: name, Initializer: init}, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.curToken.Type {
	case lexer.PRINT:
		return p.parsePrintStmt()
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parsePrintStmt() (*ast.Print, error) {
	tok := p.curToken
	p.nextToken()
	expr, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if !p.expectPeek(lexer.SEMICOLON) {
		return nil, p.peekError(lexer.SEMICOLON)
	}
	return &ast.Print{Token: tok, Expr: expr}, nil
}

func (p *Parser) parseExprStmt() (*ast.ExprStmt, error) {
	tok := p.curToken
	expr, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if !p.expectPeek(lexer.SEMICOLON) {
		return nil, p.peekError(lexer.SEMICOLON)
	}
	return &ast.ExprStmt{Token: tok, Expr: expr}, nil
}

func (p *Parser) parseReturnStmt() (*ast.Return, error) {
	tok := p.curToken
	var val ast.Expression
	if !p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		var err error
		val, err = p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
	}
	if !p.expectPeek(lexer.SEMICOLON) {
		return nil, p.peekError(lexer.SEMICOLON)
	}
	return &ast.Return{Token: tok, Value: val}, nil
}

func (p *Parser) parseIfStmt() (*ast.If, error) {
	tok := p.curToken
	if !p.expectPeek(lexer.LPAREN) {
		return nil, p.peekError(lexer.LPAREN)
	}
	p.nextToken()
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil, p.peekError(lexer.RPAREN)
	}
	p.nextToken()
	thenStmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	var elseStmt ast.Statement
	if p.peekTokenIs(lexer.ELSE) {
		p.nextToken()
		p.nextToken()
		elseStmt, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}

	return &ast.If{Token: tok, Cond: cond, Then: thenStmt, Else: elseStmt}, nil
}

func (p *Parser) parseWhileStmt() (*ast.While, error) {
	tok := p.curToken
	if !p.expectPeek(lexer.LPAREN) {
		return nil, p.peekError(lexer.LPAREN)
	}
	p.nextToken()
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil, p.peekError(lexer.RPAREN)
	}
	p.nextToken()
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.While{Token: tok, Cond: cond, Body: body}, nil
}

func (p *Parser) parseExpression(prec precedence) (ast.Expression, error) {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		return nil, &errors.ParseError{
			Message: "no prefix parse function for " + p.curToken.Type.String() + " found",
			Pos:     p.curToken.Pos,
		}
	}
	left, err := prefix()
	if err != nil {
		return nil, err
	}

	for !p.peekTokenIs(lexer.SEMICOLON) && prec < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left, nil
		}
		p.nextToken()
		left, err = infix(left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) parseBoolLiteral() (ast.Expression, error) {
	return &ast.Literal{Token: p.curToken, Value: p.curTokenIs(lexer.TRUE)}, nil
}

func (p *Parser) parseNilLiteral() (ast.Expression, error) {
	return &ast.Literal{Token: p.curToken, Value: nil}, nil
}

func (p *Parser) parseNumberLiteral() (ast.Expression, error) {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		return nil, &errors.ParseError{Message: "could not parse '" + p.curToken.Literal + "' as a number", Pos: p.curToken.Pos}
	}
	return &ast.Literal{Token: p.curToken, Value: value}, nil
}

func (p *Parser) parseStringLiteral() (ast.Expression, error) {
	return &ast.Literal{Token: p.curToken, Value: p.curToken.Literal}, nil
}

func (p *Parser) parseIdentifier() (ast.Expression, error) {
	return &ast.Var{Token: p.curToken, Name: p.curToken.Literal}, nil
}

func (p *Parser) parseGroupedExpr() (ast.Expression, error) {
	p.nextToken()
	expr, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil, p.peekError(lexer.RPAREN)
	}
	return expr, nil
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	tok := p.curToken
	op := p.curToken.Literal
	p.nextToken()
	operand, err := p.parseExpression(UNARY)
	if err != nil {
		return nil, err
	}
	return &ast.UnaryOp{Token: tok, Op: op, Operand: operand}, nil
}

func (p *Parser) parseThis() (ast.Expression, error) {
	return &ast.This{Token: p.curToken}, nil
}

func (p *Parser) parseSuper() (ast.Expression, error) {
	tok := p.curToken
	if !p.expectPeek(lexer.DOT) {
		return nil, p.peekError(lexer.DOT)
	}
	if !p.expectPeek(lexer.IDENT) {
		return nil, p.peekError(lexer.IDENT)
	}
	return &ast.Super{Token: tok, Name: p.curToken.Literal}, nil
}

func (p *Parser) parseBinOp(left ast.Expression) (ast.Expression, error) {
	tok := p.curToken
	op := p.curToken.Literal
	prec := p.curPrecedence()
	p.nextToken()
	right, err := p.parseExpression(prec)
	if err != nil {
		return nil, err
	}
	return &ast.BinOp{Token: tok, Left: left, Op: op, Right: right}, nil
}

func (p *Parser) parseAnd(left ast.Expression) (ast.Expression, error) {
	tok := p.curToken
	p.nextToken()
	right, err := p.parseExpression(AND_PREC)
	if err != nil {
		return nil, err
	}
	return &ast.And{Token: tok, Left: left, Right: right}, nil
}

func (p *Parser) parseOr(left ast.Expression) (ast.Expression, error) {
	tok := p.curToken
	p.nextToken()
	right, err := p.parseExpression(OR_PREC)
	if err != nil {
		return nil, err
	}
	return &ast.Or{Token: tok, Left: left, Right: right}, nil
}

func (p *Parser) parseCallExpr(callee ast.Expression) (ast.Expression, error) {
	tok := p.curToken
	var args []ast.Expression
	if !p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		arg, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		for p.peekTokenIs(lexer.COMMA) {
			p.nextToken()
			p.nextToken()
			arg, err = p.parseExpression(LOWEST)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil, p.peekError(lexer.RPAREN)
	}
	return &ast.Call{Token: tok, Callee: callee, Args: args}, nil
}

func (p *Parser) parseDotExpr(obj ast.Expression) (ast.Expression, error) {
	tok := p.curToken
	if !p.expectPeek(lexer.IDENT) {
		return nil, p.peekError(lexer.IDENT)
	}
	return &ast.Getattr{Token: tok, Obj: obj, Name: p.curToken.Literal}, nil
}

func (p *Parser) parseAssign(left ast.Expression) (ast.Expression, error) {
	tok := p.curToken
	p.nextToken()
	value, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}

	switch target := left.(type) {
	case *ast.Var:
		return &ast.Assign{Token: tok, Name: target.Name, Value: value}, nil
	case *ast.Getattr:
		return &ast.Setattr{Token: tok, Obj: target.Obj, Name: target.Name, Value: value}, nil
	default:
		return nil, &errors.ParseError{Message: "Invalid assignment target.", Pos: tok.Pos}
	}
}
