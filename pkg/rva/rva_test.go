package rva_test

import (
	"errors"
	"testing"

	"github.com/funvibe/rva/pkg/rva"
)

func TestParseAndVisit(t *testing.T) {
	spec, err := rva.Parse("rva::variant<int, std::string, std::vector<rva::self_t>>", nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	leaf, err := spec.New(rva.ToObject(7))
	if err != nil {
		t.Fatalf("New(int): %v", err)
	}
	name, err := spec.New(rva.ToObject("seven"))
	if err != nil {
		t.Fatalf("New(string): %v", err)
	}
	list, err := rva.NewList(spec.Type(), leaf, name)
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}
	tree, err := spec.New(list)
	if err != nil {
		t.Fatalf("New(list): %v", err)
	}

	describe := func(v rva.Variant) string {
		s, err := rva.Visit(v,
			func(rva.Object) string { return "int" },
			func(rva.Object) string { return "string" },
			func(rva.Object) string { return "list" },
		)
		if err != nil {
			t.Fatalf("Visit: %v", err)
		}
		return s
	}
	if got := describe(tree); got != "list" {
		t.Errorf("tree is %s", got)
	}
	if got := describe(name); got != "string" {
		t.Errorf("name is %s", got)
	}

	n, err := rva.As[*rva.Integer](leaf, 0)
	if err != nil || n.Value != 7 {
		t.Errorf("As = %v, %v", n, err)
	}
	if _, err := leaf.Get(1); !errors.Is(err, rva.ErrInvalidAccess) {
		t.Errorf("Get(1) on an int = %v", err)
	}
	if _, err := spec.New(rva.ToObject(true)); !errors.Is(err, rva.ErrNoAlternative) {
		t.Errorf("New(bool) = %v", err)
	}
}

func TestReplaceThroughPublicAPI(t *testing.T) {
	typ, err := rva.ParseType("std::map<std::string, rva::self_t*>")
	if err != nil {
		t.Fatal(err)
	}
	long, err := rva.ParseType("long")
	if err != nil {
		t.Fatal(err)
	}
	got := rva.Replace(typ, rva.Self, long)
	if got.String() != "std::map<std::string, long*>" {
		t.Errorf("Replace = %s", got)
	}
	if rva.Identical(got, typ) {
		t.Error("replaced type should differ")
	}
}

func TestNamedSpecializations(t *testing.T) {
	names := rva.NewNames()
	inner, err := rva.Parse("rva::variant<int, std::vector<rva::self_t>>", names)
	if err != nil {
		t.Fatal(err)
	}
	if err := names.Define("V1", inner.Type(), ""); err != nil {
		t.Fatal(err)
	}
	outer, err := rva.Parse("rva::variant<V1, std::vector<rva::self_t>>", names)
	if err != nil {
		t.Fatal(err)
	}
	if got := outer.Alternatives()[0].String(); got != "V1" {
		t.Errorf("alternative 0 = %s, want V1", got)
	}
	if got := inner.Alternatives()[1].String(); got != "std::vector<V1>" {
		t.Errorf("inner alternative 1 = %s, want std::vector<V1>", got)
	}
}

func TestToObject(t *testing.T) {
	if rva.ToObject(nil) != rva.NULL {
		t.Error("nil should become nullptr")
	}
	if f, ok := rva.ToObject(1.5).(*rva.Float); !ok || f.Value != 1.5 {
		t.Error("float64 should become double")
	}
	if rva.ToObject(struct{}{}) != nil {
		t.Error("unsupported values should yield nil")
	}
}
