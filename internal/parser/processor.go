package parser

import (
	"github.com/funvibe/rva/internal/diagnostics"
	"github.com/funvibe/rva/internal/lexer"
	"github.com/funvibe/rva/internal/pipeline"
	"github.com/funvibe/rva/internal/token"
	"github.com/funvibe/rva/internal/typesystem"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.TokenStream == nil {
		err := diagnostics.NewError(diagnostics.ErrP001, token.Token{}, "parser: token stream is nil")
		err.File = ctx.FilePath
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.Result = New(ctx.TokenStream, ctx).ParseTypeID()
	return ctx
}

// ParseType parses source as one type-id. Unscoped names are looked up in
// resolver, which may be nil.
func ParseType(source string, resolver pipeline.Resolver) (typesystem.Type, error) {
	ctx := &pipeline.PipelineContext{SourceCode: source, Resolver: resolver}
	ctx = pipeline.New(&lexer.LexerProcessor{}, &ParserProcessor{}).Run(ctx)
	if err := ctx.FirstError(); err != nil {
		return nil, err
	}
	return ctx.Result, nil
}

// MustParseType is ParseType for literals known to be valid.
func MustParseType(source string) typesystem.Type {
	t, err := ParseType(source, nil)
	if err != nil {
		panic(err)
	}
	return t
}
