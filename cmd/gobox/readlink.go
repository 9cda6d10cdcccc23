package main

import (
	"fmt"
	"os"

	"github.com/gobox/gobox/cmd"
	"github.com/gobox/gobox/cmd/gobox/cli"
	"github.com/gobox/gobox/internal/fsutil"
)

type readlinkCmd struct {
	canonicalize bool
	existing     bool
	missing      bool
	noNewline    bool
	quiet        bool
	silent       bool
	verbose      bool
	zero         bool

	names []string
}

func (r *readlinkCmd) DefineFlags() {
	cli.FlagCanonicalize(&r.canonicalize)
	cli.FlagCanonicalizeExisting(&r.existing)
	cli.FlagCanonicalizeMissing(&r.missing)
	cli.FlagNoNewline(&r.noNewline)
	cli.FlagQuiet(&r.quiet)
	cli.FlagSilenceErrors(&r.silent)
	cli.FlagVerbose(&r.verbose)
	cli.FlagZero(&r.zero)
}

func (r *readlinkCmd) Args(nargs int, args []string) error {
	if nargs == 0 {
		return failf("readlink", "missing operand")
	}
	if r.noNewline && nargs > 1 {
		fmt.Fprintln(os.Stderr, "readlink: ignoring --no-newline with multiple arguments")
		r.noNewline = false
	}
	r.names = args
	return nil
}

func (r *readlinkCmd) Privileges() error {
	return nil
}

func (r *readlinkCmd) Exec() error {
	mode := fsutil.CanonicalizeNone
	switch {
	case r.missing:
		mode = fsutil.CanonicalizeMissing
	case r.existing:
		mode = fsutil.CanonicalizeExisting
	case r.canonicalize:
		mode = fsutil.CanonicalizeNormal
	}
	sep := "\n"
	if r.zero {
		sep = "\x00"
	}
	if r.noNewline {
		sep = ""
	}
	report := r.verbose && !r.quiet && !r.silent

	status := 0
	for _, name := range r.names {
		var target string
		var err error
		if mode == fsutil.CanonicalizeNone {
			target, err = os.Readlink(name)
		} else {
			target, err = fsutil.Canonicalize(name, mode)
		}
		if err != nil {
			if report {
				fmt.Fprintf(os.Stderr, "readlink: %s: %s\n", name, fsutil.SyscallMessage(err))
			}
			status = 1
			continue
		}
		fmt.Fprintf(os.Stdout, "%s%s", target, sep)
	}
	if status != 0 {
		return cmd.FailStatus(status)
	}
	return nil
}
