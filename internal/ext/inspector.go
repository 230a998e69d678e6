package ext

import (
	"fmt"
	"go/types"
	"os"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

// Inspector checks go_types bindings against real Go packages, so that
// generated code refers only to types that exist.
type Inspector struct {
	// dir is the directory packages are resolved from (the module of the generated code).
	dir string

	loadedPkgs map[string]*packages.Package
}

// NewInspector creates an inspector resolving packages from dir.
func NewInspector(dir string) *Inspector {
	return &Inspector{
		dir:        dir,
		loadedPkgs: make(map[string]*packages.Package),
	}
}

// Check resolves every go_types entry of cfg. It reports the first
// binding that does not name an exported Go type.
func (ins *Inspector) Check(cfg *Config) error {
	if err := ins.loadPackages(collectPackagePaths(cfg)); err != nil {
		return err
	}
	for i, gt := range cfg.GoTypes {
		if err := ins.resolve(gt); err != nil {
			return fmt.Errorf("go_types[%d] (%s): %w", i, gt.Type, err)
		}
	}
	return nil
}

func (ins *Inspector) resolve(gt GoType) error {
	pkgPath := gt.PkgPath()
	if pkgPath == "" {
		if _, ok := types.Universe.Lookup(gt.TypeName()).(*types.TypeName); !ok {
			return fmt.Errorf("%s is not a predeclared Go type", gt.Go)
		}
		return nil
	}

	pkg, ok := ins.loadedPkgs[pkgPath]
	if !ok || pkg.Types == nil {
		return fmt.Errorf("package %s not loaded", pkgPath)
	}
	obj := pkg.Types.Scope().Lookup(gt.TypeName())
	if obj == nil {
		return fmt.Errorf("%s not found in %s", gt.TypeName(), pkgPath)
	}
	if _, ok := obj.(*types.TypeName); !ok {
		return fmt.Errorf("%s.%s is not a type", pkgPath, gt.TypeName())
	}
	if !obj.Exported() {
		return fmt.Errorf("%s.%s is not exported", pkgPath, gt.TypeName())
	}
	return nil
}

// loadPackages loads the specified Go packages using go/packages.
func (ins *Inspector) loadPackages(pkgPaths []string) error {
	var missing []string
	for _, p := range pkgPaths {
		if _, ok := ins.loadedPkgs[p]; !ok {
			missing = append(missing, p)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes,
		Dir:  ins.dir,
		Env:  append(os.Environ(), "GOWORK=off"),
	}

	pkgs, err := packages.Load(cfg, missing...)
	if err != nil {
		return fmt.Errorf("loading packages: %w", err)
	}

	// Check for package errors
	var errs []string
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, fmt.Sprintf("%s: %s", pkg.PkgPath, e.Msg))
		}
		ins.loadedPkgs[pkg.PkgPath] = pkg
	}

	if len(errs) > 0 {
		return fmt.Errorf("package errors:\n  %s", strings.Join(errs, "\n  "))
	}

	return nil
}

// collectPackagePaths returns the sorted, unique import paths of cfg's go_types.
func collectPackagePaths(cfg *Config) []string {
	seen := make(map[string]bool)
	var paths []string
	for _, gt := range cfg.GoTypes {
		if p := gt.PkgPath(); p != "" && !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}
