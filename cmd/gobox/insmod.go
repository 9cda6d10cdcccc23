package main

import (
	"os"
	"strings"

	"github.com/gobox/gobox/internal/fsutil"
	"github.com/gobox/gobox/kmod"
	"github.com/gobox/gobox/priv"
)

type insmodCmd struct {
	path   string
	params string
}

func (i *insmodCmd) DefineFlags() {}

func (i *insmodCmd) Args(nargs int, args []string) error {
	if nargs == 0 {
		return failf("insmod", "missing filename")
	}
	i.path = args[0]
	i.params = strings.Join(args[1:], " ")
	return nil
}

func (i *insmodCmd) Privileges() error {
	if !priv.IsPrivileged() {
		return failf("insmod", "must be run as root (or with CAP_SYS_MODULE)")
	}
	return nil
}

func (i *insmodCmd) Exec() error {
	if _, err := os.Stat(i.path); err != nil {
		return failf("insmod", "can't read %s: %s", quote(i.path), fsutil.SyscallMessage(err))
	}
	if err := kmod.NewLoader().Load(i.path, i.params, 0); err != nil {
		return failf("insmod", "could not load module %s: %s", quote(i.path), fsutil.SyscallMessage(err))
	}
	return nil
}
