package main

import (
	"strconv"

	"github.com/gobox/gobox/cmd"
	"github.com/gobox/gobox/cmd/gobox/cli"
	"github.com/gobox/gobox/ident"
	"github.com/gobox/gobox/internal/fsutil"
	"github.com/gobox/gobox/perms"
)

type chgrpCmd struct {
	changes        bool
	quiet          bool
	verbose        bool
	dereference    bool
	noDereference  bool
	preserveRoot   bool
	noPreserveRoot bool
	recursive      bool
	traverseFirst  bool
	traverseAll    bool
	traverseNone   bool
	reference      string

	executor perms.ChownExecutor
}

func (c *chgrpCmd) DefineFlags() {
	cli.FlagChanges(&c.changes)
	cli.FlagDereference(&c.dereference)
	cli.FlagNoDereference(&c.noDereference)
	cli.FlagNoPreserveRoot(&c.noPreserveRoot)
	cli.FlagPreserveRoot(&c.preserveRoot)
	cli.FlagRecursive(&c.recursive)
	cli.FlagReference(&c.reference)
	cli.FlagSilent(&c.quiet)
	cli.FlagTraverseAll(&c.traverseAll)
	cli.FlagTraverseFirst(&c.traverseFirst)
	cli.FlagTraverseNone(&c.traverseNone)
	cli.FlagVerbose(&c.verbose)
}

func (c *chgrpCmd) Args(nargs int, args []string) error {
	if nargs == 0 {
		return failf("chgrp", "missing operand")
	}
	gid := -1
	var rawGroup string
	files := args
	if c.reference != "" {
		var err error
		_, gid, err = fsutil.Ownership(c.reference)
		if err != nil {
			return failf("chgrp", "failed to get attributes of %s: %s", quote(c.reference), fsutil.SyscallMessage(err))
		}
		rawGroup = strconv.Itoa(gid)
		if name, err := ident.GroupName(gid); err == nil {
			rawGroup = name
		}
	} else {
		if nargs == 1 {
			return failf("chgrp", "missing operand after %s", quote(args[0]))
		}
		rawGroup = args[0]
		files = args[1:]
		var err error
		gid, err = ident.ResolveGroup(rawGroup)
		if err != nil {
			return failf("chgrp", "%s", err)
		}
	}

	traverse, deref, err := perms.ResolveTraversal(c.recursive, resolveTraverseFlags(c.traverseFirst, c.traverseAll, c.traverseNone), c.dereference, c.noDereference)
	if err != nil {
		return failf("chgrp", "%s", err)
	}

	c.executor = perms.ChownExecutor{
		Tool:     "chgrp",
		DestUID:  -1,
		DestGID:  gid,
		RawOwner: rawGroup,
		Traverse: traverse,
		Verbosity: perms.Verbosity{
			GroupsOnly: true,
			Level:      perms.ResolveVerbosity(c.changes, c.quiet, c.verbose),
		},
		Filter:       perms.MatchAny(),
		Files:        files,
		Recursive:    c.recursive,
		PreserveRoot: c.preserveRoot && !c.noPreserveRoot,
		Dereference:  deref,
	}
	return nil
}

func (c *chgrpCmd) Privileges() error {
	return nil
}

func (c *chgrpCmd) Exec() error {
	if status := c.executor.Exec(); status != 0 {
		return cmd.FailStatus(status)
	}
	return nil
}
