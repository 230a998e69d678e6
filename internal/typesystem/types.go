package typesystem

import (
	"strconv"
	"strings"

	"github.com/funvibe/rva/internal/config"
)

// Type is a node of a type expression.
type Type interface {
	String() string
	// decl renders the type around an abstract declarator, inside-out,
	// the way a C++ declaration is spelled.
	decl(inner string) string
}

// TCon represents an atom: a primitive or named type, or a template name (e.g. int, std::string, std::vector).
type TCon struct {
	Name  string
	Scope string // Optional scope, nested scopes joined with "::" (e.g. "std")
}

func (t TCon) String() string {
	name := t.Name
	if config.IsTestMode && strings.HasPrefix(name, config.MintedSelfPrefix) && name != config.SelfTypeName {
		// Minted placeholders carry a random suffix; keep test output stable.
		name = config.MintedSelfPrefix + "?"
	}
	if t.Scope != "" {
		return t.Scope + "::" + name
	}
	return name
}

func (t TCon) decl(inner string) string { return t.String() + inner }

// TQual represents a cv-qualified type (e.g. char const).
type TQual struct {
	Qualifier string
	Elem      Type
}

func (t TQual) String() string { return t.decl("") }

func (t TQual) decl(inner string) string {
	switch e := t.Elem.(type) {
	case TPointer:
		return e.Elem.decl(wrapArray(e.Elem, "* "+t.Qualifier+inner))
	case TRef:
		return e.Elem.decl(wrapArray(e.Elem, e.op()+" "+t.Qualifier+inner))
	case TArray:
		// A qualified array is spelled through its element.
		return TArray{Elem: TQual{Qualifier: t.Qualifier, Elem: e.Elem}, Len: e.Len, Sized: e.Sized}.decl(inner)
	default:
		return t.Elem.decl("") + " " + t.Qualifier + inner
	}
}

// TPointer represents T*.
type TPointer struct {
	Elem Type
}

func (t TPointer) String() string { return t.decl("") }

func (t TPointer) decl(inner string) string {
	return t.Elem.decl(wrapArray(t.Elem, "*"+inner))
}

// TRef represents T& or, with RValue set, T&&.
type TRef struct {
	Elem   Type
	RValue bool
}

func (t TRef) op() string {
	if t.RValue {
		return "&&"
	}
	return "&"
}

func (t TRef) String() string { return t.decl("") }

func (t TRef) decl(inner string) string {
	return t.Elem.decl(wrapArray(t.Elem, t.op()+inner))
}

// TArray represents T[] or, with Sized set, T[Len].
type TArray struct {
	Elem  Type
	Len   int
	Sized bool
}

func (t TArray) String() string { return t.decl("") }

func (t TArray) decl(inner string) string {
	bound := "[]"
	if t.Sized {
		bound = "[" + strconv.Itoa(t.Len) + "]"
	}
	return t.Elem.decl(inner + bound)
}

// TApp represents a generic instantiation (e.g. std::vector<int>).
type TApp struct {
	Template TCon
	Args     []Type
}

func (t TApp) String() string {
	args := make([]string, len(t.Args))
	for i, arg := range t.Args {
		args[i] = arg.String()
	}
	return t.Template.String() + "<" + strings.Join(args, ", ") + ">"
}

func (t TApp) decl(inner string) string { return t.String() + inner }

// Pointer and reference declarators bind tighter than array bounds,
// so they need parentheses when the pointee is an array.
func wrapArray(elem Type, d string) string {
	if _, ok := elem.(TArray); ok {
		return "(" + d + ")"
	}
	return d
}

// StripQualifiers removes top-level qualifiers.
func StripQualifiers(t Type) Type {
	for {
		q, ok := t.(TQual)
		if !ok {
			return t
		}
		t = q.Elem
	}
}

// Con makes an unscoped atom.
func Con(name string) TCon { return TCon{Name: name} }

// Std makes an atom in the std scope.
func Std(name string) TCon { return TCon{Name: name, Scope: config.StdScope} }

func Const(t Type) Type    { return TQual{Qualifier: config.ConstQualifier, Elem: t} }
func Volatile(t Type) Type { return TQual{Qualifier: config.VolatileQualifier, Elem: t} }
func Ptr(t Type) Type      { return TPointer{Elem: t} }
func Ref(t Type) Type      { return TRef{Elem: t} }
func RRef(t Type) Type     { return TRef{Elem: t, RValue: true} }
func Array(t Type, n int) Type {
	return TArray{Elem: t, Len: n, Sized: true}
}
func Unbounded(t Type) Type { return TArray{Elem: t} }

// App instantiates a template.
func App(template TCon, args ...Type) Type {
	return TApp{Template: template, Args: args}
}
