package kmod

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/gobox/gobox/internal/fsutil"
	"github.com/pkg/errors"
)

// Prober inserts and removes modules with alias resolution, dependency
// ordering, and modprobe.d configuration applied, the way modprobe does.
// Reports go to Out; diagnostics go to Diag prefixed with the tool name.
type Prober struct {
	Tool          string
	Dir           string
	Conf          *Conf
	Graph         *DepGraph
	Loader        *Loader
	DryRun        bool
	ShowDepends   bool
	IgnoreInstall bool
	UseBlacklist  bool
	Force         bool
	Verbose       bool
	Quiet         bool
	Out           io.Writer
	Diag          io.Writer
}

func (p *Prober) init() {
	if p.Out == nil {
		p.Out = os.Stdout
	}
	if p.Diag == nil {
		p.Diag = os.Stderr
	}
}

// Insert loads every module the name resolves to, dependencies first,
// and returns the exit status.
func (p *Prober) Insert(name, params string) int {
	p.init()
	status := 0
	for _, target := range p.Conf.ResolveAlias(name) {
		status |= p.insertOne(target, params)
	}
	return status
}

func (p *Prober) insertOne(name, params string) int {
	if p.UseBlacklist && p.Conf.Blacklist[name] {
		return 0
	}
	if install, ok := p.Conf.Installs[name]; ok && !p.IgnoreInstall {
		if p.ShowDepends {
			fmt.Fprintf(p.Out, "install %s\n", install)
			return 0
		}
		p.diagf("module '%s' has an install rule; refusing to run it (use --ignore-install to load the module directly)", name)
		return 1
	}
	if builtin, err := Builtin(p.Dir, name); err == nil && builtin {
		if p.ShowDepends {
			fmt.Fprintf(p.Out, "builtin %s\n", name)
		}
		return 0
	}
	order, err := p.Graph.Resolve(name)
	if err != nil {
		if !p.Quiet {
			p.diagf("Module %s not found in directory %s", name, p.Dir)
		}
		return 1
	}
	var flags int
	if p.Force {
		flags = IgnoreModversions | IgnoreVermagic
	}
	for i, path := range order {
		modName := PathToName(path)
		opts := strings.Join(p.Conf.Options[modName], " ")
		if i == len(order)-1 && params != "" {
			if opts == "" {
				opts = params
			} else {
				opts += " " + params
			}
		}
		if loaded, err := IsLoaded(modName); err == nil && loaded {
			continue
		}
		line := "insmod " + path
		if opts != "" {
			line += " " + opts
		}
		if p.ShowDepends {
			fmt.Fprintln(p.Out, line)
			continue
		}
		if p.Verbose {
			fmt.Fprintln(p.Out, line)
		}
		if p.DryRun {
			continue
		}
		if err := p.Loader.Load(path, opts, flags); err != nil {
			if errors.Is(err, unix.EEXIST) {
				// lost a race against a concurrent load; that is fine
				continue
			}
			p.diagf("could not insert '%s': %s", modName, fsutil.SyscallMessage(err))
			return 1
		}
	}
	return 0
}

// Remove unloads the named module and then tries each of its now-unused
// dependencies, ignoring failures on the dependencies.
func (p *Prober) Remove(name string) int {
	p.init()
	name = Normalize(name)
	if builtin, err := Builtin(p.Dir, name); err == nil && builtin {
		p.diagf("FATAL: Module %s is builtin.", name)
		return 1
	}
	if loaded, err := IsLoaded(name); err == nil && !loaded {
		if !p.Quiet {
			p.diagf("module '%s' is not currently loaded", name)
		}
		return 1
	}
	if p.Verbose {
		fmt.Fprintf(p.Out, "rmmod %s\n", name)
	}
	if !p.DryRun {
		if err := p.Loader.Unload(name, false, false); err != nil {
			if errors.Is(err, unix.EBUSY) {
				p.diagf("module '%s' is in use", name)
			} else {
				p.diagf("could not remove module '%s': %s", name, fsutil.SyscallMessage(err))
			}
			return 1
		}
	}
	order, err := p.Graph.Resolve(name)
	if err != nil {
		return 0
	}
	// modules.dep lists dependencies nearest-first; Resolve reversed them,
	// so walk backwards to peel the closure from the top down.
	for i := len(order) - 2; i >= 0; i-- {
		dep := PathToName(order[i])
		if !removable(dep) {
			continue
		}
		if p.Verbose {
			fmt.Fprintf(p.Out, "rmmod %s\n", dep)
		}
		if !p.DryRun {
			_ = p.Loader.Unload(dep, false, false)
		}
	}
	return 0
}

// removable reports whether the module is loaded with a zero reference
// count, re-reading the module list because earlier removals change it.
func removable(name string) bool {
	mods, err := Loaded()
	if err != nil {
		return false
	}
	name = Normalize(name)
	for _, m := range mods {
		if Normalize(m.Name) == name {
			return m.Refcount == 0 && len(m.UsedBy) == 0
		}
	}
	return false
}

func (p *Prober) diagf(format string, args ...any) {
	fmt.Fprintf(p.Diag, "%s: %s\n", p.Tool, fmt.Sprintf(format, args...))
}
