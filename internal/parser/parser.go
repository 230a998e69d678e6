package parser

import (
	"github.com/funvibe/rva/internal/diagnostics"
	"github.com/funvibe/rva/internal/pipeline"
	"github.com/funvibe/rva/internal/token"
)

// Parser reads one type-id from a token stream.
type Parser struct {
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	ctx *pipeline.PipelineContext
}

func New(tokens []token.Token, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{tokens: tokens, ctx: ctx}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	} else {
		p.peekToken = token.Token{Type: token.EOF}
	}
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

// expectCur consumes the current token if it has type t and reports an error otherwise.
func (p *Parser) expectCur(t token.TokenType) bool {
	if p.curTokenIs(t) {
		p.nextToken()
		return true
	}
	p.addError(diagnostics.ErrP005, "expected '"+string(t)+"'", p.curToken.Lexeme)
	return false
}

func (p *Parser) addError(code diagnostics.ErrorCode, msg string, args ...interface{}) {
	err := diagnostics.NewError(code, p.curToken, msg, args...)
	err.File = p.ctx.FilePath
	p.ctx.Errors = append(p.ctx.Errors, err)
}

func (p *Parser) failed() bool {
	return len(p.ctx.Errors) > 0
}
