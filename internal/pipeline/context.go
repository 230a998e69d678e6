package pipeline

import (
	"github.com/funvibe/rva/internal/diagnostics"
	"github.com/funvibe/rva/internal/token"
	"github.com/funvibe/rva/internal/typesystem"
)

// Processor is one stage of a pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Resolver maps unscoped names to previously defined types.
type Resolver interface {
	LookupType(name string) (typesystem.Type, bool)
}

// PipelineContext carries the state shared by the stages that turn source text into a type.
type PipelineContext struct {
	SourceCode  string
	FilePath    string
	TokenStream []token.Token
	Resolver    Resolver // Optional
	Result      typesystem.Type
	Errors      []*diagnostics.DiagnosticError
}

// FirstError returns the first diagnostic, or nil.
func (ctx *PipelineContext) FirstError() error {
	if len(ctx.Errors) == 0 {
		return nil
	}
	return ctx.Errors[0]
}
