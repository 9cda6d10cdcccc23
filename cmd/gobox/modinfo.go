package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gobox/gobox/cmd"
	"github.com/gobox/gobox/cmd/gobox/cli"
	"github.com/gobox/gobox/internal/fsutil"
	"github.com/gobox/gobox/kmod"
)

type modinfoCmd struct {
	field    string
	filename bool
	null     bool
	baseDir  string

	names []string
	graph *kmod.DepGraph
}

func (m *modinfoCmd) DefineFlags() {
	cli.FlagBaseDir(&m.baseDir)
	cli.FlagField(&m.field)
	cli.FlagFilename(&m.filename)
	cli.FlagNull(&m.null)
}

func (m *modinfoCmd) Args(nargs int, args []string) error {
	if nargs == 0 {
		return failf("modinfo", "missing module or file name")
	}
	m.names = args
	return nil
}

func (m *modinfoCmd) Privileges() error {
	return nil
}

func (m *modinfoCmd) Exec() error {
	needGraph := false
	for _, name := range m.names {
		if !isModulePath(name) {
			needGraph = true
		}
	}
	if needGraph {
		dir, err := kmod.Dir(m.baseDir)
		if err != nil {
			return cmd.FailErr(err, "determine module directory")
		}
		graph, err := kmod.LoadDeps(dir)
		if err != nil {
			return cmd.FailErr(err, "read module dependency index")
		}
		m.graph = graph
	}

	status := 0
	for _, name := range m.names {
		if !m.printOne(name) {
			status = 1
		}
	}
	if status != 0 {
		return cmd.FailStatus(status)
	}
	return nil
}

// printOne reports one module. A name with a path separator or a module
// extension names a file directly; anything else is resolved through the
// dependency index.
func (m *modinfoCmd) printOne(name string) bool {
	path := name
	if !isModulePath(name) {
		p, ok := m.graph.Path(kmod.Normalize(name))
		if !ok {
			fmt.Fprintf(os.Stderr, "modinfo: ERROR: Module %s not found.\n", name)
			return false
		}
		path = p
	}
	if m.filename {
		fmt.Fprintln(os.Stdout, path)
		return true
	}
	entries, err := kmod.Info(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "modinfo: ERROR: could not get modinfo from '%s': %s\n", kmod.PathToName(path), fsutil.SyscallMessage(err))
		return false
	}
	// the file name is reported as a field even though the image does not
	// carry one
	entries = append([]kmod.InfoEntry{{Key: "filename", Value: path}}, entries...)

	terminator := "\n"
	if m.null {
		terminator = "\x00"
	}
	if m.field != "" {
		for _, value := range kmod.Field(entries, m.field) {
			fmt.Fprintf(os.Stdout, "%s%s", value, terminator)
		}
		return true
	}
	for _, entry := range entries {
		fmt.Fprintf(os.Stdout, "%-16s%s%s", entry.Key+":", entry.Value, terminator)
	}
	return true
}

func isModulePath(name string) bool {
	return strings.ContainsRune(name, '/') || strings.Contains(name, ".ko")
}
