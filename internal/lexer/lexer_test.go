package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `var x = 1 + 2.5;
// a comment
if (x != nil) { print "hi"; } else { return; }
class A < B {}
this.super`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{VAR, "var"}, {IDENT, "x"}, {EQUAL, "="}, {NUMBER, "1"}, {PLUS, "+"},
		{NUMBER, "2.5"}, {SEMICOLON, ";"},
		{IF, "if"}, {LPAREN, "("}, {IDENT, "x"}, {BANG_EQUAL, "!="}, {NIL, "nil"},
		{RPAREN, ")"}, {LBRACE, "{"}, {PRINT, "print"}, {STRING, "hi"}, {SEMICOLON, ";"},
		{RBRACE, "}"}, {ELSE, "else"}, {LBRACE, "{"}, {RETURN, "return"}, {SEMICOLON, ";"}, {RBRACE, "}"},
		{CLASS, "class"}, {IDENT, "A"}, {LESS, "<"}, {IDENT, "B"}, {LBRACE, "{"}, {RBRACE, "}"},
		{THIS, "this"}, {DOT, "."}, {SUPER, "super"},
		{EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - wrong type. expected=%s, got=%s (literal %q)", i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - wrong literal. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := New("@")
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %s", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 lexer error, got %d", len(l.Errors()))
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	l := New("a\nbb")
	first := l.NextToken()
	if first.Pos.Line != 1 || first.Pos.Column != 1 {
		t.Fatalf("expected 1:1, got %d:%d", first.Pos.Line, first.Pos.Column)
	}
	second := l.NextToken()
	if second.Pos.Line != 2 || second.Pos.Column != 1 {
		t.Fatalf("expected 2:1, got %d:%d", second.Pos.Line, second.Pos.Column)
	}
}
