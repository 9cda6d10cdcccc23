package main

import (
	"github.com/gobox/gobox/cmd"
	"github.com/gobox/gobox/cmd/gobox/cli"
	"github.com/gobox/gobox/ident"
)

type idCmd struct {
	onlyUser  bool
	onlyGroup bool
	allGroups bool
	namesOnly bool
	real      bool
	zero      bool
	context   bool
	compat    bool
	users     []string
}

func (i *idCmd) DefineFlags() {
	cli.FlagAllGroups(&i.allGroups)
	cli.FlagEffectiveGroup(&i.onlyGroup)
	cli.FlagEffectiveUser(&i.onlyUser)
	cli.FlagIgnoredCompat(&i.compat)
	cli.FlagName(&i.namesOnly)
	cli.FlagReal(&i.real)
	cli.FlagSecurityContext(&i.context)
	cli.FlagZero(&i.zero)
}

func (i *idCmd) Args(nargs int, args []string) error {
	selected := 0
	for _, only := range []bool{i.onlyUser, i.onlyGroup, i.allGroups, i.context} {
		if only {
			selected++
		}
	}
	if selected > 1 {
		return failf("id", `cannot print "only" of more than one choice`)
	}
	if selected == 0 {
		if i.namesOnly || i.real {
			return failf("id", "cannot print only names or real IDs in default format")
		}
		if i.zero {
			return failf("id", "option --zero not permitted in default format")
		}
	}
	if i.context && nargs > 0 {
		return failf("id", "cannot print security context when user specified")
	}
	i.users = args
	return nil
}

func (i *idCmd) Privileges() error {
	return nil
}

func (i *idCmd) Exec() error {
	if i.context {
		return failf("id", "--context (-Z) works only on an SELinux-enabled kernel")
	}
	x := &ident.IDExecutor{
		Tool:      "id",
		OnlyUser:  i.onlyUser,
		OnlyGroup: i.onlyGroup,
		AllGroups: i.allGroups,
		NamesOnly: i.namesOnly,
		Real:      i.real,
		Zero:      i.zero,
		Users:     i.users,
	}
	if status := x.Exec(); status != 0 {
		return cmd.FailStatus(status)
	}
	return nil
}
