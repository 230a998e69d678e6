package token

import "fmt"

type TokenType string

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	IDENT TokenType = "IDENT" // int, vector, self_t
	INT   TokenType = "INT"   // array bounds

	SCOPE    TokenType = "::"
	LT       TokenType = "<"
	GT       TokenType = ">"
	COMMA    TokenType = ","
	ASTERISK TokenType = "*"
	AMP      TokenType = "&"
	AMP_AMP  TokenType = "&&"
	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"

	// Keywords
	CONST    TokenType = "CONST"
	VOLATILE TokenType = "VOLATILE"
)

var keywords = map[string]TokenType{
	"const":    CONST,
	"volatile": VOLATILE,
}

// LookupIdent classifies an identifier as a keyword or a plain name.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{} // string for IDENT, int for INT
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q (%d:%d)", t.Type, t.Lexeme, t.Line, t.Column)
}
