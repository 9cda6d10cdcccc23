package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/gobox/gobox/cmd/gobox/cli"
)

type uuidgenCmd struct {
	random bool
	time   bool
}

func (u *uuidgenCmd) DefineFlags() {
	cli.FlagRandomUUID(&u.random)
	cli.FlagTimeUUID(&u.time)
}

func (u *uuidgenCmd) Args(nargs int, args []string) error {
	if u.random && u.time {
		return failf("uuidgen", "cannot specify both --time and --random")
	}
	if nargs > 0 {
		return failf("uuidgen", "extra operand %s", quote(args[0]))
	}
	return nil
}

func (u *uuidgenCmd) Privileges() error {
	return nil
}

func (u *uuidgenCmd) Exec() error {
	var (
		id  uuid.UUID
		err error
	)
	if u.time {
		id, err = uuid.NewUUID()
	} else {
		id, err = uuid.NewRandom()
	}
	if err != nil {
		return failf("uuidgen", "failed to generate UUID: %s", err)
	}
	fmt.Fprintln(os.Stdout, id.String())
	return nil
}
