package parser

import (
	"strings"

	"github.com/funvibe/rva/internal/config"
	"github.com/funvibe/rva/internal/diagnostics"
	"github.com/funvibe/rva/internal/token"
	"github.com/funvibe/rva/internal/typesystem"
)

// declarator turns the type named by the specifiers into the declared type.
type declarator func(typesystem.Type) typesystem.Type

// ParseTypeID parses the whole token stream as a single type-id.
func (p *Parser) ParseTypeID() typesystem.Type {
	t := p.parseType()
	if t == nil || p.failed() {
		return nil
	}
	if !p.curTokenIs(token.EOF) {
		p.addError(diagnostics.ErrP007, "unexpected input after type", p.curToken.Lexeme)
		return nil
	}
	return t
}

// parseType parses: spec-seq abstract-declarator?
func (p *Parser) parseType() typesystem.Type {
	base := p.parseSpecifiers()
	if base == nil {
		return nil
	}
	d := p.parseDeclarator()
	if d == nil {
		return nil
	}
	return d(base)
}

// parseSpecifiers reads cv-qualifiers and exactly one type name, in any order.
func (p *Parser) parseSpecifiers() typesystem.Type {
	var base typesystem.Type
	isConst, isVolatile := false, false

loop:
	for {
		switch p.curToken.Type {
		case token.CONST:
			isConst = true
			p.nextToken()
		case token.VOLATILE:
			isVolatile = true
			p.nextToken()
		case token.IDENT:
			if base != nil {
				p.addError(diagnostics.ErrP003, "more than one type name", p.curToken.Lexeme)
				return nil
			}
			base = p.parseName()
			if base == nil {
				return nil
			}
		case token.ILLEGAL:
			p.addError(diagnostics.ErrL001, "illegal character", p.curToken.Lexeme)
			return nil
		default:
			break loop
		}
	}

	if base == nil {
		p.addError(diagnostics.ErrP002, "expected a type name", p.curToken.Lexeme)
		return nil
	}
	// Order of cv-qualifiers is not significant; const is always innermost.
	if isConst {
		base = typesystem.Const(base)
	}
	if isVolatile {
		base = typesystem.Volatile(base)
	}
	return base
}

// parseName parses: ident { '::' ident } [ template-args ]
func (p *Parser) parseName() typesystem.Type {
	parts := []string{p.curToken.Lexeme}
	p.nextToken()
	for p.curTokenIs(token.SCOPE) {
		p.nextToken()
		if !p.curTokenIs(token.IDENT) {
			p.addError(diagnostics.ErrP005, "expected identifier after '::'", p.curToken.Lexeme)
			return nil
		}
		parts = append(parts, p.curToken.Lexeme)
		p.nextToken()
	}
	con := typesystem.TCon{
		Name:  parts[len(parts)-1],
		Scope: strings.Join(parts[:len(parts)-1], "::"),
	}

	if !p.curTokenIs(token.LT) {
		return p.resolveName(con)
	}

	tok := p.curToken
	args := p.parseTemplateArgs()
	if args == nil && p.failed() {
		return nil
	}
	if typesystem.Identical(con, typesystem.VariantTemplate) {
		return p.defineVariant(tok, args)
	}
	return typesystem.TApp{Template: con, Args: args}
}

func (p *Parser) resolveName(con typesystem.TCon) typesystem.Type {
	if con.Scope != "" {
		return con
	}
	if con.Name == config.SelfTypeName {
		return typesystem.Self
	}
	if p.ctx.Resolver != nil {
		if t, ok := p.ctx.Resolver.LookupType(con.Name); ok {
			return t
		}
	}
	return con
}

// parseTemplateArgs parses: '<' [ type-id { ',' type-id } ] '>'
func (p *Parser) parseTemplateArgs() []typesystem.Type {
	p.nextToken() // consume '<'
	args := []typesystem.Type{}
	if p.curTokenIs(token.GT) {
		p.nextToken()
		return args
	}
	for {
		arg := p.parseType()
		if arg == nil {
			return nil
		}
		args = append(args, arg)
		switch {
		case p.curTokenIs(token.COMMA):
			p.nextToken()
		case p.curTokenIs(token.GT):
			p.nextToken()
			return args
		default:
			p.addError(diagnostics.ErrP004, "expected ',' or '>' in template argument list", p.curToken.Lexeme)
			return nil
		}
	}
}

// An inline rva::variant<...> is defined and closed on the spot.
func (p *Parser) defineVariant(tok token.Token, alts []typesystem.Type) typesystem.Type {
	for _, alt := range alts {
		if err := typesystem.CheckIndirection(alt, typesystem.Self); err != nil {
			e := diagnostics.NewError(diagnostics.ErrS001, tok, err.Error())
			e.File = p.ctx.FilePath
			p.ctx.Errors = append(p.ctx.Errors, e)
			return nil
		}
	}
	return typesystem.NewVariant(typesystem.Self, alts...).Close()
}

// parseDeclarator parses: { ptr-op } [ '(' abstract-declarator ')' ] { '[' [INT] ']' }
// Pointer operators apply first, then array bounds, then the parenthesized inner
// declarator, which is how C++ reads declarations inside-out.
func (p *Parser) parseDeclarator() declarator {
	var ops []declarator

	for {
		switch p.curToken.Type {
		case token.ASTERISK:
			p.nextToken()
			ops = append(ops, typesystem.Ptr)
			var isConst, isVolatile bool
			for p.curTokenIs(token.CONST) || p.curTokenIs(token.VOLATILE) {
				if p.curTokenIs(token.CONST) {
					isConst = true
				} else {
					isVolatile = true
				}
				p.nextToken()
			}
			// Same nesting as the specifier sequence: const innermost.
			if isConst {
				ops = append(ops, typesystem.Const)
			}
			if isVolatile {
				ops = append(ops, typesystem.Volatile)
			}
			continue
		case token.AMP:
			p.nextToken()
			ops = append(ops, typesystem.Ref)
			continue
		case token.AMP_AMP:
			p.nextToken()
			ops = append(ops, typesystem.RRef)
			continue
		}
		break
	}

	var inner declarator
	if p.curTokenIs(token.LPAREN) {
		p.nextToken()
		inner = p.parseDeclarator()
		if inner == nil || !p.expectCur(token.RPAREN) {
			return nil
		}
	}

	var bounds []typesystem.TArray
	for p.curTokenIs(token.LBRACKET) {
		p.nextToken()
		bound := typesystem.TArray{}
		if p.curTokenIs(token.INT) {
			n, _ := p.curToken.Literal.(int)
			bound.Len, bound.Sized = n, true
			p.nextToken()
		}
		if !p.curTokenIs(token.RBRACKET) {
			p.addError(diagnostics.ErrP006, "invalid array bound", p.curToken.Lexeme)
			return nil
		}
		p.nextToken()
		bounds = append(bounds, bound)
	}

	return func(t typesystem.Type) typesystem.Type {
		for _, op := range ops {
			t = op(t)
		}
		// T[2][3] is an array of two arrays of three T.
		for i := len(bounds) - 1; i >= 0; i-- {
			b := bounds[i]
			t = typesystem.TArray{Elem: t, Len: b.Len, Sized: b.Sized}
		}
		if inner != nil {
			t = inner(t)
		}
		return t
	}
}
