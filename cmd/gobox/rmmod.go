package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/gobox/gobox/cmd"
	"github.com/gobox/gobox/cmd/gobox/cli"
	"github.com/gobox/gobox/internal/fsutil"
	"github.com/gobox/gobox/kmod"
	"github.com/gobox/gobox/priv"
)

type rmmodCmd struct {
	force bool
	wait  bool

	names []string
}

func (r *rmmodCmd) DefineFlags() {
	cli.FlagForce(&r.force)
	cli.FlagWait(&r.wait)
}

func (r *rmmodCmd) Args(nargs int, args []string) error {
	if nargs == 0 {
		return failf("rmmod", "missing module name")
	}
	r.names = args
	return nil
}

func (r *rmmodCmd) Privileges() error {
	if !priv.IsPrivileged() {
		return failf("rmmod", "must be run as root (or with CAP_SYS_MODULE)")
	}
	return nil
}

func (r *rmmodCmd) Exec() error {
	loader := kmod.NewLoader()
	status := 0
	for _, raw := range r.names {
		name := kmod.PathToName(raw)
		if loaded, err := kmod.IsLoaded(name); err == nil && !loaded {
			fmt.Fprintf(os.Stderr, "rmmod: module %s is not currently loaded\n", quote(name))
			status = 1
			continue
		}
		if err := loader.Unload(name, r.wait, r.force); err != nil {
			if errors.Is(err, unix.EBUSY) {
				fmt.Fprintf(os.Stderr, "rmmod: module %s is in use\n", quote(name))
			} else {
				fmt.Fprintf(os.Stderr, "rmmod: could not remove module %s: %s\n", quote(name), fsutil.SyscallMessage(err))
			}
			status = 1
		}
	}
	if status != 0 {
		return cmd.FailStatus(status)
	}
	return nil
}
