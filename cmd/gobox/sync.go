package main

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/gobox/gobox/cmd"
	"github.com/gobox/gobox/cmd/gobox/cli"
	"github.com/gobox/gobox/internal/fsutil"
)

type syncCmd struct {
	data       bool
	fileSystem bool

	files []string
}

func (s *syncCmd) DefineFlags() {
	cli.FlagSyncData(&s.data)
	cli.FlagFileSystem(&s.fileSystem)
}

func (s *syncCmd) Args(nargs int, args []string) error {
	if s.data && s.fileSystem {
		return failf("sync", "cannot specify both --data and --file-system")
	}
	if s.data && nargs == 0 {
		return failf("sync", "--data needs at least one argument")
	}
	s.files = args
	return nil
}

func (s *syncCmd) Privileges() error {
	return nil
}

func (s *syncCmd) Exec() error {
	if len(s.files) == 0 {
		unix.Sync()
		return nil
	}
	status := 0
	for _, name := range s.files {
		if !s.syncFile(name) {
			status = 1
		}
	}
	if status != 0 {
		return cmd.FailStatus(status)
	}
	return nil
}

func (s *syncCmd) syncFile(name string) bool {
	f, err := os.Open(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sync: error opening %s: %s\n", quote(name), fsutil.SyscallMessage(err))
		return false
	}
	defer f.Close()
	switch {
	case s.fileSystem:
		err = unix.Syncfs(int(f.Fd()))
	case s.data:
		err = unix.Fdatasync(int(f.Fd()))
	default:
		err = f.Sync()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "sync: couldn't flush %s: %s\n", quote(name), fsutil.SyscallMessage(err))
		return false
	}
	return true
}
