package kmod

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ErrNotFound reports a module name absent from the dependency index.
var ErrNotFound = errors.New("module not found")

// DepGraph is the module dependency index read from modules.dep. depmod
// precomputes the transitive closure, so each entry already lists every
// module its key needs.
type DepGraph struct {
	dir   string
	deps  map[string][]string
	paths map[string]string
}

// LoadDeps parses modules.dep under dir.
func LoadDeps(dir string) (*DepGraph, error) {
	f, err := os.Open(filepath.Join(dir, "modules.dep"))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseDeps(dir, f)
}

func parseDeps(dir string, r io.Reader) (*DepGraph, error) {
	g := &DepGraph{
		dir:   dir,
		deps:  map[string][]string{},
		paths: map[string]string{},
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		modPath, depList, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		name := PathToName(modPath)
		g.paths[name] = modPath
		if deps := strings.Fields(depList); len(deps) > 0 {
			g.deps[name] = deps
		}
	}
	return g, scanner.Err()
}

// Path returns the on-disk path of the named module.
func (g *DepGraph) Path(name string) (string, bool) {
	p, ok := g.paths[Normalize(name)]
	if !ok {
		return "", false
	}
	return g.absPath(p), true
}

// Resolve returns the named module's path preceded by its dependency
// closure in load order. modules.dep lists dependencies nearest-first, so
// the load order is the reverse of the listed order.
func (g *DepGraph) Resolve(name string) ([]string, error) {
	name = Normalize(name)
	modPath, ok := g.paths[name]
	if !ok {
		return nil, ErrNotFound
	}
	deps := g.deps[name]
	order := make([]string, 0, len(deps)+1)
	for i := len(deps) - 1; i >= 0; i-- {
		order = append(order, g.absPath(deps[i]))
	}
	return append(order, g.absPath(modPath)), nil
}

func (g *DepGraph) absPath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(g.dir, p)
}

// Builtin reports whether the named module is compiled into the kernel,
// per modules.builtin.
func Builtin(dir, name string) (bool, error) {
	f, err := os.Open(filepath.Join(dir, "modules.builtin"))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	name = Normalize(name)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if PathToName(strings.TrimSpace(scanner.Text())) == name {
			return true, nil
		}
	}
	return false, scanner.Err()
}
