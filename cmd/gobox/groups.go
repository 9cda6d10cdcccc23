package main

import (
	"github.com/gobox/gobox/cmd"
	"github.com/gobox/gobox/ident"
)

type groupsCmd struct {
	users []string
}

func (g *groupsCmd) DefineFlags() {}

func (g *groupsCmd) Args(nargs int, args []string) error {
	g.users = args
	return nil
}

func (g *groupsCmd) Privileges() error {
	return nil
}

func (g *groupsCmd) Exec() error {
	x := &ident.GroupsExecutor{Tool: "groups", Users: g.users}
	if status := x.Exec(); status != 0 {
		return cmd.FailStatus(status)
	}
	return nil
}
