package lexer

import (
	"github.com/funvibe/rva/internal/diagnostics"
	"github.com/funvibe/rva/internal/pipeline"
	"github.com/funvibe/rva/internal/token"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	ctx.TokenStream = New(ctx.SourceCode).Tokens()
	for _, tok := range ctx.TokenStream {
		if tok.Type == token.ILLEGAL {
			err := diagnostics.NewError(diagnostics.ErrL001, tok, "illegal character", tok.Lexeme)
			err.File = ctx.FilePath
			ctx.Errors = append(ctx.Errors, err)
		}
	}
	return ctx
}
