package main

import (
	"fmt"
	"os"

	"github.com/gobox/gobox/ident"
)

type whoamiCmd struct{}

func (w *whoamiCmd) DefineFlags() {}

func (w *whoamiCmd) Args(nargs int, args []string) error {
	if nargs > 0 {
		return failf("whoami", "extra operand %s", quote(args[0]))
	}
	return nil
}

func (w *whoamiCmd) Privileges() error {
	return nil
}

func (w *whoamiCmd) Exec() error {
	euid := ident.Geteuid()
	name, err := ident.UserName(euid)
	if err != nil {
		return failf("whoami", "cannot find name for user ID %d", euid)
	}
	fmt.Fprintln(os.Stdout, name)
	return nil
}
