package main

import (
	"fmt"

	"github.com/gobox/gobox/cmd"
	"github.com/gobox/gobox/cmd/gobox/cli"
	"github.com/gobox/gobox/ident"
	"github.com/gobox/gobox/internal/fsutil"
	"github.com/gobox/gobox/perms"
)

type chownCmd struct {
	changes        bool
	quiet          bool
	verbose        bool
	dereference    bool
	noDereference  bool
	from           string
	preserveRoot   bool
	noPreserveRoot bool
	recursive      bool
	traverseFirst  bool
	traverseAll    bool
	traverseNone   bool
	reference      string

	executor perms.ChownExecutor
}

func (c *chownCmd) DefineFlags() {
	cli.FlagChanges(&c.changes)
	cli.FlagDereference(&c.dereference)
	cli.FlagFrom(&c.from)
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

func (c *chownCmd) Args(nargs int, args []string) error {
	if nargs == 0 {
		return failf("chown", "missing operand")
	}
	uid, gid := -1, -1
	var rawOwner string
	files := args
	if c.reference != "" {
		var err error
		uid, gid, err = fsutil.Ownership(c.reference)
		if err != nil {
			return failf("chown", "failed to get attributes of %s: %s", quote(c.reference), fsutil.SyscallMessage(err))
		}
		rawOwner = fmt.Sprintf("%d:%d", uid, gid)
	} else {
		if nargs == 1 {
			return failf("chown", "missing operand after %s", quote(args[0]))
		}
		rawOwner = args[0]
		files = args[1:]
		var err error
		uid, gid, err = ident.ParseOwnerSpec(rawOwner)
		if err != nil {
			return failf("chown", "%s", err)
		}
	}

	filter := perms.MatchAny()
	if c.from != "" {
		fuid, fgid, err := ident.ParseOwnerSpec(c.from)
		if err != nil {
			return failf("chown", "%s", err)
		}
		filter = perms.IfFrom{UID: fuid, GID: fgid}
	}

	traverse, deref, err := perms.ResolveTraversal(c.recursive, resolveTraverseFlags(c.traverseFirst, c.traverseAll, c.traverseNone), c.dereference, c.noDereference)
	if err != nil {
		return failf("chown", "%s", err)
	}

	c.executor = perms.ChownExecutor{
		Tool:     "chown",
		DestUID:  uid,
		DestGID:  gid,
		RawOwner: rawOwner,
		Traverse: traverse,
		Verbosity: perms.Verbosity{
			Level: perms.ResolveVerbosity(c.changes, c.quiet, c.verbose),
		},
		Filter:       filter,
		Files:        files,
		Recursive:    c.recursive,
		PreserveRoot: c.preserveRoot && !c.noPreserveRoot,
		Dereference:  deref,
	}
	return nil
}

func (c *chownCmd) Privileges() error {
	return nil
}

func (c *chownCmd) Exec() error {
	if status := c.executor.Exec(); status != 0 {
		return cmd.FailStatus(status)
	}
	return nil
}

// resolveTraverseFlags picks among -H, -L, and -P, preferring the most
// conservative when several are given.
func resolveTraverseFlags(first, all, none bool) perms.TraverseSymlinks {
	switch {
	case none:
		return perms.TraverseNone
	case all:
		return perms.TraverseAll
	case first:
		return perms.TraverseFirst
	}
	return perms.TraverseNone
}
