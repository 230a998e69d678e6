package symbols

import (
	"errors"
	"testing"

	"github.com/funvibe/rva/internal/typesystem"
)

func TestDefineAndFind(t *testing.T) {
	st := NewEmptySymbolTable()
	v := typesystem.NewVariant(typesystem.Self, typesystem.Con("int"), typesystem.Ptr(typesystem.Self)).Close()

	if err := st.Define("Tree", v, "rva.yaml"); err != nil {
		t.Fatalf("Define failed: %v", err)
	}
	if err := st.Define("Text", typesystem.Std("string"), ""); err != nil {
		t.Fatalf("Define failed: %v", err)
	}

	sym, ok := st.Find("Tree")
	if !ok {
		t.Fatal("Tree not found")
	}
	if sym.Kind != VariantSymbol || sym.DefinitionFile != "rva.yaml" {
		t.Errorf("unexpected symbol %+v", sym)
	}
	if v.Name != "Tree" {
		t.Errorf("variant name = %q, want Tree", v.Name)
	}
	if sym, _ := st.Find("Text"); sym.Kind != AliasSymbol {
		t.Errorf("Text kind = %v, want AliasSymbol", sym.Kind)
	}

	var redef *RedefinitionError
	if err := st.Define("Tree", v, ""); !errors.As(err, &redef) {
		t.Errorf("redefinition error = %v", err)
	}

	if got := st.Names(); len(got) != 2 || got[0] != "Tree" || got[1] != "Text" {
		t.Errorf("Names() = %v", got)
	}
	if got := st.Variants(); len(got) != 1 || got[0].Name != "Tree" {
		t.Errorf("Variants() = %v", got)
	}
}

func TestEnclosedScopes(t *testing.T) {
	global := NewEmptySymbolTable()
	_ = global.Define("A", typesystem.Con("int"), "")
	local := NewEnclosedSymbolTable(global, ScopeLocal)

	if local.IsGlobalScope() || !global.IsGlobalScope() {
		t.Error("scope types mixed up")
	}
	if local.Outer() != global {
		t.Error("Outer() mismatch")
	}
	if _, ok := local.LookupType("A"); !ok {
		t.Error("outer symbol not visible")
	}
	if err := local.Define("A", typesystem.Con("char"), ""); err != nil {
		t.Errorf("shadowing should be allowed: %v", err)
	}
	if typ, _ := local.LookupType("A"); typ.String() != "char" {
		t.Errorf("shadowed A = %s", typ)
	}

	var notFound *SymbolNotFoundError
	if _, err := local.MustFind("B"); !errors.As(err, &notFound) || notFound.Name != "B" {
		t.Errorf("MustFind error = %v", err)
	}
}
