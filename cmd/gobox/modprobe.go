package main

import (
	"os"
	"strings"

	"github.com/gobox/gobox/cmd"
	"github.com/gobox/gobox/cmd/gobox/cli"
	"github.com/gobox/gobox/kmod"
	"github.com/gobox/gobox/priv"
)

type modprobeCmd struct {
	all           bool
	remove        bool
	dryRun        bool
	verbose       bool
	quiet         bool
	force         bool
	ignoreInstall bool
	showDepends   bool
	useBlacklist  bool
	moduleDir     string

	names  []string
	params string
}

func (m *modprobeCmd) DefineFlags() {
	cli.FlagAllModules(&m.all)
	cli.FlagForce(&m.force)
	cli.FlagIgnoreInstall(&m.ignoreInstall)
	cli.FlagModuleDir(&m.moduleDir)
	cli.FlagModuleDryRun(&m.dryRun)
	cli.FlagQuiet(&m.quiet)
	cli.FlagRemove(&m.remove)
	cli.FlagShowDepends(&m.showDepends)
	cli.FlagUseBlacklist(&m.useBlacklist)
	cli.FlagVerbose(&m.verbose)
}

func (m *modprobeCmd) Args(nargs int, args []string) error {
	if nargs == 0 {
		return failf("modprobe", "missing module name")
	}
	if m.remove || m.all {
		m.names = args
	} else {
		// everything after the first name is a module parameter
		m.names = args[:1]
		m.params = strings.Join(args[1:], " ")
	}
	return nil
}

func (m *modprobeCmd) Privileges() error {
	if m.dryRun || m.showDepends {
		return nil
	}
	if !priv.IsPrivileged() {
		return failf("modprobe", "must be run as root (or with CAP_SYS_MODULE)")
	}
	return nil
}

func (m *modprobeCmd) Exec() error {
	dir, err := kmod.Dir(m.moduleDir)
	if err != nil {
		return cmd.FailErr(err, "determine module directory")
	}
	graph, err := kmod.LoadDeps(dir)
	if err != nil {
		return cmd.FailErr(err, "read module dependency index")
	}
	prober := &kmod.Prober{
		Tool:          "modprobe",
		Dir:           dir,
		Conf:          kmod.LoadConf(dir),
		Graph:         graph,
		Loader:        kmod.NewLoader(),
		DryRun:        m.dryRun,
		ShowDepends:   m.showDepends,
		IgnoreInstall: m.ignoreInstall,
		UseBlacklist:  m.useBlacklist,
		Force:         m.force,
		Verbose:       m.verbose,
		Quiet:         m.quiet,
		Out:           os.Stdout,
		Diag:          os.Stderr,
	}
	status := 0
	for _, name := range m.names {
		if m.remove {
			status |= prober.Remove(name)
		} else {
			status |= prober.Insert(name, m.params)
		}
	}
	if status != 0 {
		return cmd.FailStatus(status)
	}
	return nil
}
