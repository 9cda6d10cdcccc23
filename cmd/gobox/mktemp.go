package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobox/gobox/cmd"
	"github.com/gobox/gobox/cmd/gobox/cli"
	"github.com/gobox/gobox/internal/fsutil"
)

type mktempCmd struct {
	directory bool
	dryRun    bool
	quiet     bool
	suffix    string
	tmpdir    string
	single    bool // -t: template is one component under the temp directory

	template *fsutil.TempTemplate
	dir      string
	display  string
}

func (m *mktempCmd) DefineFlags() {
	cli.FlagDryRun(&m.dryRun)
	cli.FlagMakeDirectory(&m.directory)
	cli.FlagQuiet(&m.quiet)
	cli.FlagSuffix(&m.suffix)
	cli.FlagTmpdir(&m.tmpdir)
	cli.FlagTreatAsTemplate(&m.single)
}

func (m *mktempCmd) Args(nargs int, args []string) error {
	template := "tmp.XXXXXXXXXX"
	switch nargs {
	case 0:
	case 1:
		template = args[0]
	default:
		return failf("mktemp", "too many templates")
	}
	tmpdirPresent := cli.FlagPresent("p") || cli.FlagPresent("tmpdir")
	switch {
	case m.single:
		if strings.ContainsRune(template, '/') {
			return failf("mktemp", "invalid template, %s, contains directory separator", quote(template))
		}
		dir := os.Getenv("TMPDIR")
		if dir == "" && tmpdirPresent {
			dir = m.tmpdir
		}
		if dir == "" {
			dir = "/tmp"
		}
		m.dir = dir
	case tmpdirPresent || nargs == 0:
		if filepath.IsAbs(template) {
			return failf("mktemp", "invalid template, %s; with --tmpdir, it may not be absolute", quote(template))
		}
		// -p defaults to $TMPDIR, so an unset flag already carries the
		// environment's answer
		dir := m.tmpdir
		if dir == "" {
			dir = "/tmp"
		}
		m.dir = dir
	default:
		// the template names its own location, relative to the current
		// directory
		m.dir = ""
	}
	parsed, err := fsutil.ParseTempTemplate(template, m.suffix, cli.FlagPresent("suffix"))
	if err != nil {
		return failf("mktemp", "%s", err)
	}
	m.template = parsed
	m.display = template
	if m.dir != "" {
		m.display = filepath.Join(m.dir, template)
	}
	return nil
}

func (m *mktempCmd) Privileges() error {
	return nil
}

func (m *mktempCmd) Exec() error {
	path, err := m.template.Make(m.dir, m.directory, m.dryRun)
	if err != nil {
		if m.quiet {
			return cmd.FailStatus(1)
		}
		kind := "file"
		if m.directory {
			kind = "directory"
		}
		return failf("mktemp", "failed to create %s via template %s: %s", kind, quote(m.display), fsutil.SyscallMessage(err))
	}
	fmt.Fprintln(os.Stdout, path)
	return nil
}
