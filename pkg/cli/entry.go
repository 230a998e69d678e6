package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/funvibe/rva/internal/config"
	"github.com/funvibe/rva/internal/ext"
	"github.com/funvibe/rva/internal/jsonvalue"
	"github.com/funvibe/rva/internal/parser"
	"github.com/funvibe/rva/internal/prettyprinter"
	"github.com/funvibe/rva/internal/symbols"
	"github.com/funvibe/rva/internal/typesystem"
)

// usageError reports a malformed command line with the expected form.
type usageError string

func (e usageError) Error() string { return "usage: " + string(e) }

// command is the state shared by every subcommand.
type command struct {
	args   []string
	stdin  io.Reader
	stdout io.Writer
	color  bool
}

// Run executes the rva command line and exits the process.
func Run() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r) // Re-panic to get stack trace
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	if os.Getenv("RVA_TEST_MODE") == "1" {
		config.IsTestMode = true
	}

	os.Exit(Main(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// Main runs one subcommand and returns the process exit code.
// Errors are reported on stderr as "Error: ..." lines.
func Main(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, helpText)
		return 1
	}

	cmd := &command{
		args:   args[1:],
		stdin:  stdin,
		stdout: stdout,
		color:  colorEnabled(stdout),
	}

	var err error
	switch args[0] {
	case "help", "-help", "--help", "-h":
		fmt.Fprint(stdout, helpText)
	case "parse":
		err = cmd.parse()
	case "replace":
		err = cmd.replace()
	case "define":
		err = cmd.define()
	case "gen":
		err = cmd.gen()
	case "eval":
		err = cmd.eval()
	default:
		err = fmt.Errorf("unknown command %q (see 'rva help')", args[0])
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// parse prints the canonical spelling of a type-id, and for a variant
// its storage alternatives.
func (c *command) parse() error {
	if len(c.args) != 1 {
		return usageError("rva parse <type>")
	}
	t, err := parser.ParseType(c.args[0], nil)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, t)
	if v, ok := t.(*typesystem.TVariant); ok {
		c.printAlternatives(v.Concrete)
	}
	return nil
}

// replace prints T with every occurrence of Find rewritten to Replace.
func (c *command) replace() error {
	if len(c.args) != 3 {
		return usageError("rva replace <type> <find> <replace>")
	}
	types := make([]typesystem.Type, len(c.args))
	for i, src := range c.args {
		t, err := parser.ParseType(src, nil)
		if err != nil {
			return fmt.Errorf("argument %d: %w", i+1, err)
		}
		types[i] = t
	}
	fmt.Fprintln(c.stdout, typesystem.Replace(types[0], types[1], types[2]))
	return nil
}

// define resolves every declaration of the project file and prints the
// storage alternatives of each.
func (c *command) define() error {
	opts, err := c.flags(map[string]bool{"-c": true, "--config": true})
	if err != nil {
		return err
	}
	cfg, err := loadProjectConfig(opts.value("-c", "--config"))
	if err != nil {
		return err
	}
	specs, err := cfg.Define(symbols.NewEmptySymbolTable())
	if err != nil {
		return err
	}
	for i, spec := range specs {
		if i > 0 {
			fmt.Fprintln(c.stdout)
		}
		fmt.Fprintf(c.stdout, "%s = %s\n", c.bold(spec.String()), spec.Type().Spelling())
		c.printAlternatives(spec.Alternatives())
	}
	return nil
}

// gen writes the Go source generated from the project file.
func (c *command) gen() error {
	opts, err := c.flags(map[string]bool{"-c": true, "--config": true, "-o": true, "--check": false})
	if err != nil {
		return err
	}
	cfg, err := loadProjectConfig(opts.value("-c", "--config"))
	if err != nil {
		return err
	}
	specs, err := cfg.Define(symbols.NewEmptySymbolTable())
	if err != nil {
		return err
	}

	output := opts.value("-o")
	if opts.has("--check") {
		dir := filepath.Dir(cfg.Path())
		if output != "" {
			dir = filepath.Dir(output)
		}
		if err := ext.NewInspector(dir).Check(cfg); err != nil {
			return err
		}
	}

	file, err := ext.Generate(cfg, specs)
	if err != nil {
		return err
	}
	if output == "" {
		_, err := io.WriteString(c.stdout, file.Content)
		return err
	}
	if err := os.WriteFile(output, []byte(file.Content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Fprintf(c.stdout, "Generated %s\n", output)
	return nil
}

// eval loads a YAML or JSON document into the JSON value variant and
// describes it, or re-encodes it with --json / --yaml.
func (c *command) eval() error {
	opts, err := c.flags(map[string]bool{"--json": false, "--yaml": false, "--pretty": false, "-w": true})
	if err != nil {
		return err
	}
	if len(opts.positional) > 1 {
		return usageError("rva eval [--json|--yaml|--pretty [-w width]] [file]")
	}

	var (
		data []byte
		path string
	)
	if len(opts.positional) == 0 || opts.positional[0] == "-" {
		data, err = io.ReadAll(c.stdin)
	} else {
		path = opts.positional[0]
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	var v jsonvalue.Value
	if strings.EqualFold(filepath.Ext(path), ".json") {
		v, err = jsonvalue.FromJSON(data)
	} else {
		v, err = jsonvalue.FromYAML(data)
	}
	if err != nil {
		return err
	}

	switch {
	case opts.has("--json"):
		out, err := jsonvalue.ToJSON(v)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.stdout, strings.TrimSpace(string(out)))
	case opts.has("--yaml"):
		out, err := jsonvalue.ToYAML(v)
		if err != nil {
			return err
		}
		_, err = c.stdout.Write(out)
		return err
	case opts.has("--pretty"):
		p := prettyprinter.NewValuePrinter()
		if w := opts.value("-w"); w != "" {
			width, err := strconv.Atoi(w)
			if err != nil || width < 0 {
				return fmt.Errorf("invalid width %q", w)
			}
			p.SetLineWidth(width)
		}
		fmt.Fprintln(c.stdout, p.Print(v))
	default:
		alts := v.Spec().Alternatives()
		fmt.Fprintf(c.stdout, "%s %s\n", c.bold("kind: "), jsonvalue.Kind(v))
		fmt.Fprintf(c.stdout, "%s %d (%s)\n", c.bold("index:"), v.Index(), alts[v.Index()])
		fmt.Fprintf(c.stdout, "%s %s\n", c.bold("value:"), v.Inspect())
		fmt.Fprintf(c.stdout, "%s 0x%08x\n", c.bold("hash: "), v.Hash())
	}
	return nil
}

func (c *command) printAlternatives(alts []typesystem.Type) {
	for i, alt := range alts {
		fmt.Fprintf(c.stdout, "  [%d] %s\n", i, alt)
	}
}

// loadProjectConfig loads path, or finds the project file from the
// working directory when path is empty.
func loadProjectConfig(path string) (*ext.Config, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("cannot determine working directory: %w", err)
		}
		found, err := ext.FindConfig(cwd)
		if err != nil {
			return nil, err
		}
		if found == "" {
			return nil, fmt.Errorf("%s not found (or use --config)", config.ConfigFileName)
		}
		path = found
	}
	return ext.LoadConfig(path)
}

// options holds the parsed flags of a subcommand.
type options struct {
	values     map[string]string
	positional []string
}

func (o options) value(names ...string) string {
	for _, n := range names {
		if v, ok := o.values[n]; ok {
			return v
		}
	}
	return ""
}

func (o options) has(name string) bool {
	_, ok := o.values[name]
	return ok
}

// flags splits c.args using known, which maps each accepted flag to
// whether it takes a value.
func (c *command) flags(known map[string]bool) (options, error) {
	opts := options{values: make(map[string]string)}
	for i := 0; i < len(c.args); i++ {
		arg := c.args[i]
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			opts.positional = append(opts.positional, arg)
			continue
		}
		takesValue, ok := known[arg]
		if !ok {
			return opts, fmt.Errorf("unknown flag %s", arg)
		}
		if !takesValue {
			opts.values[arg] = ""
			continue
		}
		if i+1 >= len(c.args) {
			return opts, fmt.Errorf("flag %s needs a value", arg)
		}
		opts.values[arg] = c.args[i+1]
		i++
	}
	return opts, nil
}

const helpText = `rva - recursive variant types

Usage:
  rva parse <type>                        Print the canonical spelling of a type-id
  rva replace <type> <find> <replace>     Substitute every occurrence of find in type
  rva define [-c rva.yaml]                Resolve declared variants and list their storage types
  rva gen [-c rva.yaml] [-o file] [--check]
                                          Generate Go sum types; --check verifies go_types
  rva eval [--json|--yaml] [file]         Load a YAML/JSON document as a json value
  rva eval --pretty [-w width] [file]     Print the document broken to fit width
  rva help                                Show this help

The project file is searched for upward from the working directory
when -c/--config is not given.
`
