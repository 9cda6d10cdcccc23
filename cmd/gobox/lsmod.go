package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gobox/gobox/internal/fsutil"
	"github.com/gobox/gobox/kmod"
)

type lsmodCmd struct{}

func (l *lsmodCmd) DefineFlags() {}

func (l *lsmodCmd) Args(nargs int, args []string) error {
	return nil
}

func (l *lsmodCmd) Privileges() error {
	return nil
}

func (l *lsmodCmd) Exec() error {
	modules, err := kmod.Loaded()
	if err != nil {
		return failf("lsmod", "could not get list of modules: %s", fsutil.SyscallMessage(err))
	}
	fmt.Fprintf(os.Stdout, "%-19s %8s  %s\n", "Module", "Size", "Used by")
	for _, m := range modules {
		fmt.Fprintf(os.Stdout, "%-19s %8d  %d", m.Name, m.Size, m.Refcount)
		if len(m.UsedBy) > 0 {
			fmt.Fprintf(os.Stdout, " %s", strings.Join(m.UsedBy, ","))
		}
		fmt.Fprintln(os.Stdout)
	}
	return nil
}
