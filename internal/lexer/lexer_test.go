package lexer

import (
	"testing"

	"github.com/funvibe/rva/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `std::vector<rva::self_t const*>&& [12]
volatile (x)`

	tests := []struct {
		expectedType   token.TokenType
		expectedLexeme string
	}{
		{token.IDENT, "std"},
		{token.SCOPE, "::"},
		{token.IDENT, "vector"},
		{token.LT, "<"},
		{token.IDENT, "rva"},
		{token.SCOPE, "::"},
		{token.IDENT, "self_t"},
		{token.CONST, "const"},
		{token.ASTERISK, "*"},
		{token.GT, ">"},
		{token.AMP_AMP, "&&"},
		{token.LBRACKET, "["},
		{token.INT, "12"},
		{token.RBRACKET, "]"},
		{token.VOLATILE, "volatile"},
		{token.LPAREN, "("},
		{token.IDENT, "x"},
		{token.RPAREN, ")"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q", i, tt.expectedLexeme, tok.Lexeme)
		}
	}
}

func TestClosingAnglesStaySeparate(t *testing.T) {
	toks := New("a<b<c>>").Tokens()
	if got := toks[len(toks)-3].Type; got != token.GT {
		t.Fatalf("expected GT, got %s", got)
	}
	if got := toks[len(toks)-2].Type; got != token.GT {
		t.Fatalf("expected GT, got %s", got)
	}
}

func TestPositions(t *testing.T) {
	toks := New("int\n  char").Tokens()
	if toks[1].Line != 2 || toks[1].Column != 3 {
		t.Errorf("char at %d:%d, want 2:3", toks[1].Line, toks[1].Column)
	}
	if lit, ok := New("42").NextToken().Literal.(int); !ok || lit != 42 {
		t.Errorf("INT literal = %v", lit)
	}
}
