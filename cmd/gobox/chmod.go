package main

import (
	"os"
	"strings"

	"github.com/gobox/gobox/cmd"
	"github.com/gobox/gobox/cmd/gobox/cli"
	"github.com/gobox/gobox/internal/fsutil"
	"github.com/gobox/gobox/perms"
)

type chmodCmd struct {
	// argvMode is a leading-dash mode such as -w rescued from the argument
	// list before flag parsing.
	argvMode string

	changes        bool
	quiet          bool
	verbose        bool
	preserveRoot   bool
	noPreserveRoot bool
	recursive      bool
	reference      string

	mode    string
	refMode int
	files   []string
}

func (c *chmodCmd) DefineFlags() {
	cli.FlagChanges(&c.changes)
	cli.FlagNoPreserveRoot(&c.noPreserveRoot)
	cli.FlagPreserveRoot(&c.preserveRoot)
	cli.FlagRecursive(&c.recursive)
	cli.FlagReference(&c.reference)
	cli.FlagSilent(&c.quiet)
	cli.FlagVerbose(&c.verbose)
}

func (c *chmodCmd) Args(nargs int, args []string) error {
	c.refMode = -1
	switch {
	case c.reference != "":
		info, err := os.Stat(c.reference)
		if err != nil {
			return failf("chmod", "failed to get attributes of %s: %s", quote(c.reference), fsutil.SyscallMessage(err))
		}
		c.refMode = int(perms.ModeBits(info))
		c.files = args
		if len(c.files) == 0 {
			return failf("chmod", "missing operand")
		}
	case c.argvMode != "":
		c.mode = c.argvMode
		c.files = args
		if len(c.files) == 0 {
			return failf("chmod", "missing operand after %s", quote(c.mode))
		}
	default:
		if nargs == 0 {
			return failf("chmod", "missing operand")
		}
		if nargs == 1 {
			return failf("chmod", "missing operand after %s", quote(args[0]))
		}
		c.mode = args[0]
		c.files = args[1:]
	}
	if c.refMode < 0 {
		// Reject a bad mode up front rather than once per file.
		for _, clause := range strings.Split(c.mode, ",") {
			var err error
			if strings.ContainsAny(clause, "0123456789") {
				_, err = perms.ParseNumeric(0, clause, false)
			} else {
				_, err = perms.ParseSymbolic(0, clause, 0, false)
			}
			if err != nil {
				return failf("chmod", "%s", err)
			}
		}
	}
	return nil
}

func (c *chmodCmd) Privileges() error {
	return nil
}

func (c *chmodCmd) Exec() error {
	x := &perms.ChmodExecutor{
		Tool:         "chmod",
		Changes:      c.changes,
		Quiet:        c.quiet,
		Verbose:      c.verbose,
		PreserveRoot: c.preserveRoot && !c.noPreserveRoot,
		Recursive:    c.recursive,
		RefMode:      c.refMode,
		Mode:         c.mode,
	}
	if status := x.Exec(c.files); status != 0 {
		return cmd.FailStatus(status)
	}
	return nil
}
