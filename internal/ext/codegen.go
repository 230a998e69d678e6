package ext

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	goparser "go/parser"
	"go/token"
	"path"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/funvibe/rva/internal/config"
	"github.com/funvibe/rva/internal/typesystem"
	"github.com/funvibe/rva/internal/variant"
)

// ErrNoGoType is returned when an alternative has no Go rendering.
var ErrNoGoType = errors.New("no Go type")

// CodeGenerator produces Go source mirroring the variants of a Config.
type CodeGenerator struct {
	cfg *Config

	// names maps each closed specialization to its interface name.
	names map[*typesystem.TVariant]string

	// bindings maps atom spellings to go_types entries.
	bindings map[string]GoType

	// imports maps import path → local alias.
	imports map[string]string
}

// NewCodeGenerator creates a new code generator.
func NewCodeGenerator(cfg *Config) *CodeGenerator {
	cg := &CodeGenerator{
		cfg:      cfg,
		names:    make(map[*typesystem.TVariant]string),
		bindings: make(map[string]GoType),
		imports:  make(map[string]string),
	}
	for _, gt := range cfg.GoTypes {
		cg.bindings[gt.Type] = gt
	}
	return cg
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the suggested file name (e.g. "variants_rva.go").
	Filename string

	// Content is the full, gofmt-ed Go source code.
	Content string
}

// Generate renders the Go source for cfg. specs must be the result of
// cfg.Define, one per declaration.
func Generate(cfg *Config, specs []*variant.Spec) (GeneratedFile, error) {
	return NewCodeGenerator(cfg).Generate(specs)
}

type variantData struct {
	Name     string
	Decl     string
	Spelling string
	Branches []branchData
}

type branchData struct {
	Name   string
	Index  int
	CType  string
	GoType string // empty for an alternative without payload
}

// Generate renders one file holding every variant of the configuration.
func (cg *CodeGenerator) Generate(specs []*variant.Spec) (GeneratedFile, error) {
	if len(specs) != len(cg.cfg.Variants) {
		return GeneratedFile{}, fmt.Errorf("generating %s: %d specs for %d declarations",
			cg.cfg.Package, len(specs), len(cg.cfg.Variants))
	}

	for i, spec := range specs {
		cg.names[spec.Type()] = cg.cfg.Variants[i].InterfaceName()
	}

	variants := make([]variantData, 0, len(specs))
	for i, spec := range specs {
		vd, err := cg.variantData(&cg.cfg.Variants[i], spec)
		if err != nil {
			return GeneratedFile{}, fmt.Errorf("generating %s: %w", cg.cfg.Variants[i].Name, err)
		}
		variants = append(variants, vd)
	}

	tmpl, err := template.New("variants").Parse(variantsFileTemplate)
	if err != nil {
		return GeneratedFile{}, fmt.Errorf("parsing variants template: %w", err)
	}

	data := struct {
		Package  string
		Variants []variantData
	}{
		Package:  cg.cfg.Package,
		Variants: variants,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return GeneratedFile{}, fmt.Errorf("executing variants template: %w", err)
	}

	content, err := cg.finish(buf.Bytes())
	if err != nil {
		return GeneratedFile{}, err
	}

	return GeneratedFile{
		Filename: cg.cfg.Package + "_rva.go",
		Content:  content,
	}, nil
}

func (cg *CodeGenerator) variantData(decl *VariantDecl, spec *variant.Spec) (variantData, error) {
	vd := variantData{
		Name:     cg.names[spec.Type()],
		Decl:     decl.Name,
		Spelling: spec.Type().Spelling(),
	}

	declared := spec.Declared()
	used := make(map[string]int)
	for i, alt := range spec.Alternatives() {
		goType, err := cg.goType(alt)
		if err != nil {
			return variantData{}, fmt.Errorf("alternative %d (%s): %w", i, declared[i], err)
		}
		if goType == "struct{}" {
			goType = ""
		}
		name := vd.Name + cg.branchSuffix(alt)
		used[name]++
		if used[name] > 1 {
			name += strconv.Itoa(i)
		}
		vd.Branches = append(vd.Branches, branchData{
			Name:   name,
			Index:  i,
			CType:  declared[i].String(),
			GoType: goType,
		})
	}
	return vd, nil
}

// goType renders a storage type in Go. Qualifiers have no Go counterpart
// and are dropped.
func (cg *CodeGenerator) goType(t typesystem.Type) (string, error) {
	switch t := t.(type) {
	case typesystem.TQual:
		return cg.goType(t.Elem)
	case typesystem.TCon:
		if gt, ok := cg.bindings[t.String()]; ok {
			return cg.qualified(gt), nil
		}
		if g, ok := atomGoTypes[t.String()]; ok {
			return g, nil
		}
		return "", fmt.Errorf("%w for %s (add a go_types entry)", ErrNoGoType, t)
	case typesystem.TPointer:
		elem, err := cg.goType(t.Elem)
		if err != nil {
			return "", err
		}
		return "*" + elem, nil
	case typesystem.TArray:
		if !t.Sized {
			return "", fmt.Errorf("%w for array of unknown bound %s", ErrNoGoType, t)
		}
		elem, err := cg.goType(t.Elem)
		if err != nil {
			return "", err
		}
		return "[" + strconv.Itoa(t.Len) + "]" + elem, nil
	case typesystem.TApp:
		return cg.goTemplate(t)
	case *typesystem.TVariant:
		if name, ok := cg.names[t]; ok {
			return name, nil
		}
		return "", fmt.Errorf("%w for %s: nested variants must be declared by name", ErrNoGoType, t)
	default:
		return "", fmt.Errorf("%w for %s", ErrNoGoType, t)
	}
}

func (cg *CodeGenerator) goTemplate(t typesystem.TApp) (string, error) {
	args := make([]string, len(t.Args))
	for i, arg := range t.Args {
		g, err := cg.goType(arg)
		if err != nil {
			return "", err
		}
		args[i] = g
	}

	if t.Template.Scope == config.StdScope {
		switch {
		case t.Template.Name == config.VectorTypeName && len(args) == 1:
			return "[]" + args[0], nil
		case t.Template.Name == config.MapTypeName && len(args) == 2:
			return "map[" + args[0] + "]" + args[1], nil
		case t.Template.Name == config.OptionalTypeName && len(args) == 1:
			return "*" + args[0], nil
		case t.Template.Name == config.PairTypeName && len(args) == 2:
			return "struct{ First " + args[0] + "; Second " + args[1] + " }", nil
		case t.Template.Name == config.TupleTypeName:
			fields := make([]string, len(args))
			for i, a := range args {
				fields[i] = "F" + strconv.Itoa(i) + " " + a
			}
			return "struct{ " + strings.Join(fields, "; ") + " }", nil
		}
	}
	return "", fmt.Errorf("%w for %s", ErrNoGoType, t)
}

// qualified renders a bound Go type, registering its import.
func (cg *CodeGenerator) qualified(gt GoType) string {
	pkgPath := gt.PkgPath()
	if pkgPath == "" {
		return gt.TypeName()
	}
	alias, ok := cg.imports[pkgPath]
	if !ok {
		alias = ImportAlias(pkgPath)
		taken := make(map[string]bool, len(cg.imports))
		for _, a := range cg.imports {
			taken[a] = true
		}
		for n := 2; taken[alias]; n++ {
			alias = ImportAlias(pkgPath) + strconv.Itoa(n)
		}
		cg.imports[pkgPath] = alias
	}
	return alias + "." + gt.TypeName()
}

// branchSuffix names a branch after the head of its alternative.
func (cg *CodeGenerator) branchSuffix(t typesystem.Type) string {
	switch t := t.(type) {
	case typesystem.TQual:
		return cg.branchSuffix(t.Elem)
	case typesystem.TCon:
		if gt, ok := cg.bindings[t.String()]; ok {
			return ucFirst(gt.TypeName())
		}
		if t.Scope == config.StdScope && t.Name == config.NullTypeName {
			return "Null"
		}
		return camelCase(t.Name)
	case typesystem.TPointer:
		return cg.branchSuffix(t.Elem) + "Ptr"
	case typesystem.TArray:
		return cg.branchSuffix(t.Elem) + "Array"
	case typesystem.TApp:
		return camelCase(t.Template.Name)
	case *typesystem.TVariant:
		return cg.names[t]
	default:
		return "Alt"
	}
}

// finish adds the collected imports and formats the file.
func (cg *CodeGenerator) finish(src []byte) (string, error) {
	fset := token.NewFileSet()
	file, err := goparser.ParseFile(fset, cg.cfg.Package+"_rva.go", src, goparser.ParseComments)
	if err != nil {
		return "", fmt.Errorf("parsing generated source: %w", err)
	}

	paths := make([]string, 0, len(cg.imports))
	for p := range cg.imports {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		name := cg.imports[p]
		if name == path.Base(p) {
			name = ""
		}
		astutil.AddNamedImport(fset, file, name, p)
	}

	var out bytes.Buffer
	if err := format.Node(&out, fset, file); err != nil {
		return "", fmt.Errorf("formatting generated source: %w", err)
	}
	return out.String(), nil
}

// atomGoTypes maps built-in atoms to Go types.
var atomGoTypes = map[string]string{
	"std::" + config.NullTypeName:       "struct{}",
	"std::" + config.StringTypeName:     "string",
	"std::" + config.StringViewTypeName: "string",
	config.BoolTypeName:                 "bool",
	config.IntTypeName:                  "int",
	config.LongTypeName:                 "int64",
	config.DoubleTypeName:               "float64",
	config.FloatTypeName:                "float32",
	config.CharTypeName:                 "byte",
}

// goReservedWords are Go keywords that cannot be used as import aliases.
var goReservedWords = map[string]bool{
	"break": true, "default": true, "func": true, "interface": true, "select": true,
	"case": true, "defer": true, "go": true, "map": true, "struct": true,
	"chan": true, "else": true, "goto": true, "package": true, "switch": true,
	"const": true, "fallthrough": true, "if": true, "range": true, "type": true,
	"continue": true, "for": true, "import": true, "return": true, "var": true,
}

// ImportAlias returns a valid Go identifier for an import path.
// Handles hyphens (go-redis → goredis), versioned paths (v9 → parent),
// and reserved words (go → pkgGo).
func ImportAlias(pkgPath string) string {
	parts := strings.Split(pkgPath, "/")
	last := parts[len(parts)-1]
	// Handle versioned imports like "v9" → use parent
	if len(last) > 1 && last[0] == 'v' && len(parts) > 1 {
		allDigits := true
		for _, c := range last[1:] {
			if c < '0' || c > '9' {
				allDigits = false
				break
			}
		}
		if allDigits {
			last = parts[len(parts)-2]
		}
	}

	alias := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return -1
	}, last)

	if alias == "" {
		return "pkg"
	}
	if goReservedWords[alias] {
		alias = "pkg" + strings.ToUpper(alias[:1]) + alias[1:]
	}
	return alias
}

const variantsFileTemplate = `// Code generated by rva gen. DO NOT EDIT.

package {{.Package}}
{{- range $v := .Variants}}

// {{$v.Name}} mirrors {{$v.Decl}}, spelled {{$v.Spelling}}.
// Each value is exactly one of the {{$v.Name}}* branch types.
type {{$v.Name}} interface {
	is{{$v.Name}}()
	// Index reports the position of the alternative.
	Index() int
}
{{- range $b := $v.Branches}}

// {{$b.Name}} holds alternative {{$b.Index}} of {{$v.Name}} ({{$b.CType}}).
type {{$b.Name}} struct {
{{- if $b.GoType}}
	Value {{$b.GoType}}
{{- end}}
}

func ({{$b.Name}}) is{{$v.Name}}() {}

// Index implements {{$v.Name}}.
func ({{$b.Name}}) Index() int { return {{$b.Index}} }
{{- end}}
{{- end}}
`
