// Package ext implements the project file support of rva.
//
// It provides the infrastructure for declaring named variant specializations
// in rva.yaml, resolving them against each other, and generating Go sum
// types that mirror them.
//
// The ext package handles:
//   - Parsing and validating rva.yaml configuration
//   - Defining the declared specializations in declaration order
//   - Checking go_types bindings against real Go packages via go/packages
//   - Generating Go source (one sealed interface per variant)
package ext

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/rva/internal/config"
	"github.com/funvibe/rva/internal/symbols"
	"github.com/funvibe/rva/internal/typesystem"
	"github.com/funvibe/rva/internal/variant"
)

// DefaultPackage is the Go package name used when rva.yaml omits one.
const DefaultPackage = "variants"

// Config represents the top-level rva.yaml configuration.
type Config struct {
	// Variants lists the named specializations, in declaration order.
	// A declaration may refer to any variant declared before it.
	Variants []VariantDecl `yaml:"variants"`

	// GoTypes binds atom names to Go types for code generation.
	GoTypes []GoType `yaml:"go_types,omitempty"`

	// Package is the Go package name of generated code.
	Package string `yaml:"package,omitempty"`

	path string
}

// VariantDecl is a single named specialization.
type VariantDecl struct {
	// Name is the name other declarations use to refer to this variant (e.g. "json_value").
	Name string `yaml:"name"`

	// Alternatives are the alternative type-ids as written, self marker included
	// (e.g. "std::vector<rva::self_t>").
	Alternatives []string `yaml:"alternatives"`

	// GoName overrides the generated interface name.
	// Defaults to the CamelCase form of Name.
	GoName string `yaml:"go_name,omitempty"`
}

// GoType binds an atom to a Go type.
//
// Example:
//
//   - type: uuid
//     go: github.com/google/uuid.UUID
type GoType struct {
	// Type is the atom as spelled in alternatives (e.g. "uuid", "boost::uuid").
	Type string `yaml:"type"`

	// Go is the Go type: a predeclared name ("int32") or an import path
	// followed by a dot and an exported type name.
	Go string `yaml:"go"`
}

// LoadConfig reads and parses an rva.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses rva.yaml content from bytes.
// The path argument is used for error messages and symbol definitions.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	cfg.path = path
	return &cfg, nil
}

// FindConfig searches for rva.yaml starting from dir and walking up
// to parent directories.
// Returns the path to the config file and nil error if found,
// or empty string and nil error if not found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range config.ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

// Path returns the file the configuration was read from.
func (c *Config) Path() string { return c.path }

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	if len(c.Variants) == 0 {
		return fmt.Errorf("%s: no variants defined", path)
	}

	seenNames := make(map[string]int)   // name → index
	seenGoNames := make(map[string]int) // go name → index

	for i, decl := range c.Variants {
		if decl.Name == "" {
			return fmt.Errorf("%s: variants[%d]: name is required", path, i)
		}
		if !isIdentifier(decl.Name) {
			return fmt.Errorf("%s: variants[%d]: name %q is not an identifier", path, i, decl.Name)
		}
		if prev, ok := seenNames[decl.Name]; ok {
			return fmt.Errorf("%s: variants[%d]: name %q already declared by variants[%d]",
				path, i, decl.Name, prev)
		}
		seenNames[decl.Name] = i

		if len(decl.Alternatives) == 0 {
			return fmt.Errorf("%s: variants[%d] (%s): alternatives are required", path, i, decl.Name)
		}
		for j, alt := range decl.Alternatives {
			if strings.TrimSpace(alt) == "" {
				return fmt.Errorf("%s: variants[%d].alternatives[%d] (%s): empty type",
					path, i, j, decl.Name)
			}
		}

		goName := decl.InterfaceName()
		if !isIdentifier(goName) || !unicode.IsUpper([]rune(goName)[0]) {
			return fmt.Errorf("%s: variants[%d] (%s): go_name %q is not an exported identifier",
				path, i, decl.Name, goName)
		}
		if prev, ok := seenGoNames[goName]; ok {
			return fmt.Errorf("%s: variants[%d] (%s): go_name %q conflicts with variants[%d]",
				path, i, decl.Name, goName, prev)
		}
		seenGoNames[goName] = i
	}

	seenTypes := make(map[string]bool)
	for i, gt := range c.GoTypes {
		if gt.Type == "" {
			return fmt.Errorf("%s: go_types[%d]: type is required", path, i)
		}
		if gt.Go == "" {
			return fmt.Errorf("%s: go_types[%d] (%s): go is required", path, i, gt.Type)
		}
		if _, ok := seenNames[gt.Type]; ok {
			return fmt.Errorf("%s: go_types[%d]: %q is a declared variant", path, i, gt.Type)
		}
		if seenTypes[gt.Type] {
			return fmt.Errorf("%s: go_types[%d]: %q is bound twice", path, i, gt.Type)
		}
		seenTypes[gt.Type] = true
		if name := gt.TypeName(); !isIdentifier(name) {
			return fmt.Errorf("%s: go_types[%d] (%s): %q does not name a Go type", path, i, gt.Type, gt.Go)
		}
		if gt.PkgPath() != "" && !unicode.IsUpper([]rune(gt.TypeName())[0]) {
			return fmt.Errorf("%s: go_types[%d] (%s): %s is not exported", path, i, gt.Type, gt.Go)
		}
	}

	if c.Package != "" && (!isIdentifier(c.Package) || goReservedWords[c.Package]) {
		return fmt.Errorf("%s: package %q is not a valid Go package name", path, c.Package)
	}

	return nil
}

// setDefaults fills in default values for omitted fields.
func (c *Config) setDefaults() {
	if c.Package == "" {
		c.Package = DefaultPackage
	}
	for i := range c.Variants {
		if c.Variants[i].GoName == "" {
			c.Variants[i].GoName = c.Variants[i].InterfaceName()
		}
	}
}

// Spelling returns the declaration as a single type-id.
func (d *VariantDecl) Spelling() string {
	return typesystem.VariantTemplate.String() + "<" + strings.Join(d.Alternatives, ", ") + ">"
}

// InterfaceName returns the Go name of the generated interface.
func (d *VariantDecl) InterfaceName() string {
	if d.GoName != "" {
		return d.GoName
	}
	return camelCase(d.Name)
}

// PkgPath returns the import path part of Go, or "" for a predeclared type.
func (g *GoType) PkgPath() string {
	slash := strings.LastIndex(g.Go, "/")
	dot := strings.LastIndex(g.Go, ".")
	if dot <= slash {
		return ""
	}
	return g.Go[:dot]
}

// TypeName returns the type name part of Go.
func (g *GoType) TypeName() string {
	if p := g.PkgPath(); p != "" {
		return g.Go[len(p)+1:]
	}
	return g.Go
}

// Define parses every declaration in order and defines it in table under
// its name, so later declarations can refer to earlier ones. A nil table
// gets a fresh global scope. The returned specs follow declaration order.
func (c *Config) Define(table *symbols.SymbolTable) ([]*variant.Spec, error) {
	if table == nil {
		table = symbols.NewEmptySymbolTable()
	}

	specs := make([]*variant.Spec, 0, len(c.Variants))
	for i := range c.Variants {
		decl := &c.Variants[i]
		spec, err := variant.Parse(decl.Spelling(), table)
		if err != nil {
			return nil, fmt.Errorf("%s: variants[%d] (%s): %w", c.path, i, decl.Name, err)
		}
		if err := table.Define(decl.Name, spec.Type(), c.path); err != nil {
			return nil, fmt.Errorf("%s: variants[%d]: %w", c.path, i, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

// camelCase turns json_value or boost::uuid into JsonValue or BoostUuid.
func camelCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == ':' || !(unicode.IsLetter(r) || unicode.IsDigit(r))
	})
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(ucFirst(p))
	}
	return sb.String()
}

// ucFirst uppercases the first rune of a string.
func ucFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
