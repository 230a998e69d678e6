package ext

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/rva/internal/object"
	"github.com/funvibe/rva/internal/symbols"
	"github.com/funvibe/rva/internal/typesystem"
)

const jsonConfig = `
variants:
  - name: json_value
    alternatives:
      - std::nullptr_t
      - std::string
      - double
      - bool
      - std::map<std::string, rva::self_t>
      - std::vector<rva::self_t>
`

func TestParseConfig_ValidMinimal(t *testing.T) {
	cfg, err := ParseConfig([]byte(jsonConfig), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Variants) != 1 {
		t.Fatalf("expected 1 variant, got %d", len(cfg.Variants))
	}
	decl := cfg.Variants[0]
	if decl.Name != "json_value" {
		t.Errorf("name = %q, want json_value", decl.Name)
	}
	if len(decl.Alternatives) != 6 {
		t.Errorf("expected 6 alternatives, got %d", len(decl.Alternatives))
	}
	if cfg.Package != DefaultPackage {
		t.Errorf("package = %q, want %q", cfg.Package, DefaultPackage)
	}
	if decl.GoName != "JsonValue" {
		t.Errorf("go_name = %q, want JsonValue", decl.GoName)
	}
	if cfg.Path() != "test.yaml" {
		t.Errorf("path = %q, want test.yaml", cfg.Path())
	}
}

func TestParseConfig_GoTypes(t *testing.T) {
	yaml := `
variants:
  - name: id
    alternatives: [uuid, int]
go_types:
  - type: uuid
    go: github.com/google/uuid.UUID
  - type: small
    go: int8
package: ids
`
	cfg, err := ParseConfig([]byte(yaml), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Package != "ids" {
		t.Errorf("package = %q, want ids", cfg.Package)
	}
	gt := cfg.GoTypes[0]
	if gt.PkgPath() != "github.com/google/uuid" || gt.TypeName() != "UUID" {
		t.Errorf("split %q = (%q, %q)", gt.Go, gt.PkgPath(), gt.TypeName())
	}
	gt = cfg.GoTypes[1]
	if gt.PkgPath() != "" || gt.TypeName() != "int8" {
		t.Errorf("split %q = (%q, %q)", gt.Go, gt.PkgPath(), gt.TypeName())
	}
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"no variants", "package: x\n", "no variants defined"},
		{"no name", "variants:\n  - alternatives: [int]\n", "variants[0]: name is required"},
		{"bad name", "variants:\n  - name: json-value\n    alternatives: [int]\n", "is not an identifier"},
		{
			"duplicate name",
			"variants:\n  - name: a\n    alternatives: [int]\n  - name: a\n    alternatives: [long]\n",
			"already declared by variants[0]",
		},
		{"no alternatives", "variants:\n  - name: a\n", "alternatives are required"},
		{"blank alternative", "variants:\n  - name: a\n    alternatives: [int, ' ']\n", "variants[0].alternatives[1] (a): empty type"},
		{"lower go name", "variants:\n  - name: a\n    go_name: thing\n    alternatives: [int]\n", "not an exported identifier"},
		{
			"go name conflict",
			"variants:\n  - name: json_value\n    alternatives: [int]\n  - name: JsonValue\n    alternatives: [long]\n",
			"conflicts with variants[0]",
		},
		{"go type without go", "variants:\n  - name: a\n    alternatives: [int]\ngo_types:\n  - type: uuid\n", "go is required"},
		{"go type shadows variant", "variants:\n  - name: a\n    alternatives: [int]\ngo_types:\n  - type: a\n    go: int\n", "is a declared variant"},
		{"unexported go type", "variants:\n  - name: a\n    alternatives: [int]\ngo_types:\n  - type: t\n    go: example.com/p.thing\n", "is not exported"},
		{"bad package", "variants:\n  - name: a\n    alternatives: [int]\npackage: map\n", "not a valid Go package name"},
		{"bad yaml", "variants: [\n", "parsing test.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml), "test.yaml")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestDefine_ResolvesEarlierDeclarations(t *testing.T) {
	yaml := jsonConfig + `
  - name: document
    alternatives:
      - json_value
      - std::vector<json_value>
      - std::vector<rva::self_t>
`
	cfg, err := ParseConfig([]byte(yaml), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	table := symbols.NewEmptySymbolTable()
	specs, err := cfg.Define(table)
	if err != nil {
		t.Fatalf("Define: %v", err)
	}
	if len(specs) != 2 {
		t.Fatalf("expected 2 specs, got %d", len(specs))
	}

	jsonSpec, doc := specs[0], specs[1]
	if jsonSpec.String() != "json_value" || doc.String() != "document" {
		t.Errorf("names = %s, %s", jsonSpec, doc)
	}

	// The inner variant keeps its own self marker: a json array holds json values.
	alts := doc.Alternatives()
	if alts[0] != typesystem.Type(jsonSpec.Type()) {
		t.Errorf("alternative 0 = %s, want json_value itself", alts[0])
	}
	want := []string{"json_value", "std::vector<json_value>", "std::vector<document>"}
	for i, w := range want {
		if got := alts[i].String(); got != w {
			t.Errorf("alternative %d = %s, want %s", i, got, w)
		}
	}
	inner := jsonSpec.Alternatives()[5].String()
	if inner != "std::vector<json_value>" {
		t.Errorf("json_value alternative 5 = %s", inner)
	}

	if _, ok := table.LookupType("document"); !ok {
		t.Error("document was not defined in the table")
	}

	v, err := doc.New(object.NULL)
	if err == nil {
		t.Errorf("document accepted a bare null: %s", v.Inspect())
	}
}

func TestDefine_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"parse error", "variants:\n  - name: a\n    alternatives: ['std::vector<int']\n", "variants[0] (a)"},
		{"self without indirection", "variants:\n  - name: a\n    alternatives: [int, 'std::optional<rva::self_t>']\n", "variants[0] (a)"},
		{"unsupported alternative", "variants:\n  - name: a\n    alternatives: [int, 'int&']\n", "variants[0] (a)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig([]byte(tt.yaml), "test.yaml")
			if err != nil {
				t.Fatalf("unexpected parse error: %v", err)
			}
			_, err = cfg.Define(nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestDefine_Redefinition(t *testing.T) {
	cfg, err := ParseConfig([]byte(jsonConfig), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	table := symbols.NewEmptySymbolTable()
	if _, err := cfg.Define(table); err != nil {
		t.Fatalf("Define: %v", err)
	}
	_, err = cfg.Define(table)
	var redef *symbols.RedefinitionError
	if !errors.As(err, &redef) {
		t.Fatalf("expected RedefinitionError, got %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rva.yaml")
	if err := os.WriteFile(path, []byte(jsonConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Path() != path {
		t.Errorf("path = %q, want %q", cfg.Path(), path)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFindConfig(t *testing.T) {
	// Create a temp directory structure
	tmpDir := t.TempDir()
	subDir := filepath.Join(tmpDir, "a", "b", "c")
	if err := os.MkdirAll(subDir, 0o755); err != nil {
		t.Fatal(err)
	}

	// Write rva.yml at the top level
	cfgPath := filepath.Join(tmpDir, "rva.yml")
	if err := os.WriteFile(cfgPath, []byte(jsonConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	// FindConfig from deep subdirectory should find it
	found, err := FindConfig(subDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != cfgPath {
		t.Errorf("found = %q, want %q", found, cfgPath)
	}

	// FindConfig from a totally different directory should not find it
	otherDir := t.TempDir()
	found, err = FindConfig(otherDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != "" {
		t.Errorf("expected empty, got %q", found)
	}
}

func TestCamelCase(t *testing.T) {
	tests := map[string]string{
		"json_value":  "JsonValue",
		"boost::uuid": "BoostUuid",
		"nullptr_t":   "NullptrT",
		"x":           "X",
	}
	for in, want := range tests {
		if got := camelCase(in); got != want {
			t.Errorf("camelCase(%q) = %q, want %q", in, got, want)
		}
	}
}
