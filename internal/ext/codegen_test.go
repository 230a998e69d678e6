package ext

import (
	"errors"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"strings"
	"testing"
)

func TestImportAlias(t *testing.T) {
	tests := []struct {
		pkgPath  string
		expected string
	}{
		{"net/http", "http"},
		{"github.com/google/uuid", "uuid"},
		{"github.com/redis/go-redis/v9", "goredis"},
		{"github.com/redis/go-redis", "goredis"},
		{"github.com/foo/go", "pkgGo"},       // Reserved word
		{"github.com/foo/map", "pkgMap"},     // Reserved word
		{"github.com/foo/bar-baz", "barbaz"}, // Hyphen
		{"github.com/foo/bar.baz", "barbaz"}, // Dot
		{"github.com/foo/v9", "foo"},         // Version stripping
		{"v9", "v9"},                         // Edge case: just version
		{"", "pkg"},                          // Empty
	}

	for _, tt := range tests {
		t.Run(tt.pkgPath, func(t *testing.T) {
			t.Parallel()
			got := ImportAlias(tt.pkgPath)
			if got != tt.expected {
				t.Errorf("ImportAlias(%q) = %q; want %q", tt.pkgPath, got, tt.expected)
			}
		})
	}
}

func generate(t *testing.T, yaml string) (GeneratedFile, error) {
	t.Helper()
	cfg, err := ParseConfig([]byte(yaml), "test.yaml")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	specs, err := cfg.Define(nil)
	if err != nil {
		t.Fatalf("Define: %v", err)
	}
	return Generate(cfg, specs)
}

// declarations parses generated source and returns its type declarations by name.
func declarations(t *testing.T, src string) (*ast.File, map[string]ast.Expr) {
	t.Helper()
	file, err := goparser.ParseFile(token.NewFileSet(), "gen.go", src, 0)
	if err != nil {
		t.Fatalf("generated source does not parse: %v\n%s", err, src)
	}
	types := make(map[string]ast.Expr)
	for _, d := range file.Decls {
		gd, ok := d.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, s := range gd.Specs {
			ts := s.(*ast.TypeSpec)
			types[ts.Name.Name] = ts.Type
		}
	}
	return file, types
}

func TestGenerate_JSONValue(t *testing.T) {
	gen, err := generate(t, jsonConfig+"package: jsonmodel\n")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if gen.Filename != "jsonmodel_rva.go" {
		t.Errorf("filename = %q", gen.Filename)
	}
	if !strings.HasPrefix(gen.Content, "// Code generated by rva gen. DO NOT EDIT.") {
		t.Errorf("missing generated header:\n%s", gen.Content)
	}

	file, types := declarations(t, gen.Content)
	if file.Name.Name != "jsonmodel" {
		t.Errorf("package = %s", file.Name.Name)
	}
	if len(file.Imports) != 0 {
		t.Errorf("unexpected imports: %d", len(file.Imports))
	}
	if _, ok := types["JsonValue"].(*ast.InterfaceType); !ok {
		t.Fatalf("JsonValue is not an interface:\n%s", gen.Content)
	}

	wantFields := map[string]string{
		"JsonValueNull":   "",
		"JsonValueString": "string",
		"JsonValueDouble": "float64",
		"JsonValueBool":   "bool",
		"JsonValueMap":    "map[string]JsonValue",
		"JsonValueVector": "[]JsonValue",
	}
	for name, want := range wantFields {
		st, ok := types[name].(*ast.StructType)
		if !ok {
			t.Errorf("%s is missing or not a struct", name)
			continue
		}
		if want == "" {
			if len(st.Fields.List) != 0 {
				t.Errorf("%s should have no fields", name)
			}
			continue
		}
		if len(st.Fields.List) != 1 || st.Fields.List[0].Names[0].Name != "Value" {
			t.Errorf("%s should have a single Value field", name)
			continue
		}
		if !strings.Contains(gen.Content, "Value "+want+"\n") {
			t.Errorf("%s.Value should be %s:\n%s", name, want, gen.Content)
		}
	}

	if !strings.Contains(gen.Content, "func (JsonValueVector) Index() int { return 5 }") {
		t.Errorf("missing Index method for alternative 5:\n%s", gen.Content)
	}
	if !strings.Contains(gen.Content, "std::vector<rva::self_t>") {
		t.Error("declared spelling should appear in comments")
	}
}

func TestGenerate_GoTypesAndNestedVariants(t *testing.T) {
	yaml := `
variants:
  - name: key
    alternatives: [uuid, long]
  - name: tree
    alternatives:
      - key
      - std::vector<rva::self_t>
      - "std::pair<key, rva::self_t*>"
      - int[4]
      - std::optional<rva::self_t*>
go_types:
  - type: uuid
    go: github.com/google/uuid.UUID
package: trees
`
	gen, err := generate(t, yaml)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	file, types := declarations(t, gen.Content)

	if len(file.Imports) != 1 || file.Imports[0].Path.Value != `"github.com/google/uuid"` {
		t.Fatalf("expected the uuid import:\n%s", gen.Content)
	}
	if file.Imports[0].Name != nil {
		t.Errorf("uuid import should not be renamed")
	}

	for _, name := range []string{"Key", "KeyUUID", "KeyLong", "Tree", "TreeKey", "TreeVector", "TreePair", "TreeIntArray", "TreeOptional"} {
		if _, ok := types[name]; !ok {
			t.Errorf("missing type %s:\n%s", name, gen.Content)
		}
	}
	for _, want := range []string{
		"Value uuid.UUID",
		"Value int64",
		"Value Key\n",
		"Value []Tree",
		"Second *Tree",
		"Value [4]int",
		"Value **Tree",
	} {
		if !strings.Contains(gen.Content, want) {
			t.Errorf("missing %q in:\n%s", want, gen.Content)
		}
	}
}

func TestGenerate_DuplicateBranchNames(t *testing.T) {
	gen, err := generate(t, "variants:\n  - name: nums\n    alternatives: ['std::vector<int>', 'std::vector<long>']\n")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	_, types := declarations(t, gen.Content)
	if _, ok := types["NumsVector"]; !ok {
		t.Error("missing NumsVector")
	}
	if _, ok := types["NumsVector1"]; !ok {
		t.Errorf("second vector branch should be NumsVector1:\n%s", gen.Content)
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unbound atom", "variants:\n  - name: a\n    alternatives: [int, widget]\n"},
		{"unknown template", "variants:\n  - name: a\n    alternatives: ['std::set<int>']\n"},
		{"anonymous nested variant", "variants:\n  - name: a\n    alternatives: [int, 'rva::variant<int, long>']\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := generate(t, tt.yaml)
			if !errors.Is(err, ErrNoGoType) {
				t.Fatalf("expected ErrNoGoType, got %v", err)
			}
			if !strings.Contains(err.Error(), "alternative 1") && !strings.Contains(err.Error(), "alternative 0") {
				t.Errorf("error should name the alternative: %v", err)
			}
		})
	}
}

func TestGenerate_SpecCountMismatch(t *testing.T) {
	cfg, err := ParseConfig([]byte(jsonConfig), "test.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Generate(cfg, nil); err == nil {
		t.Error("expected an error for missing specs")
	}
}
