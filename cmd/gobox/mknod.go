package main

import (
	"strconv"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/gobox/gobox/cmd/gobox/cli"
	"github.com/gobox/gobox/internal/fsutil"
	"github.com/gobox/gobox/perms"
)

type mknodCmd struct {
	modeStr string

	name         string
	devType      byte
	major, minor uint32
}

func (m *mknodCmd) DefineFlags() {
	cli.FlagMode(&m.modeStr)
}

func (m *mknodCmd) Args(nargs int, args []string) error {
	switch nargs {
	case 0:
		return failf("mknod", "missing operand")
	case 1:
		return failf("mknod", "missing operand after %s", quote(args[0]))
	}
	if nargs > 4 {
		return failf("mknod", "extra operand %s", quote(args[4]))
	}
	m.name = args[0]
	t := args[1]
	if len(t) != 1 || !strings.ContainsAny(t, "bcup") {
		return failf("mknod", "invalid device type %s", quote(t))
	}
	m.devType = t[0]
	if m.devType == 'p' {
		if nargs > 2 {
			return failf("mknod", "Fifos do not have major and minor device numbers.")
		}
		return nil
	}
	if nargs != 4 {
		return failf("mknod", "Special files require major and minor device numbers.")
	}
	major, err := parseDeviceNumber(args[2])
	if err != nil {
		return failf("mknod", "invalid major device number %s", quote(args[2]))
	}
	minor, err := parseDeviceNumber(args[3])
	if err != nil {
		return failf("mknod", "invalid minor device number %s", quote(args[3]))
	}
	m.major, m.minor = major, minor
	return nil
}

func (m *mknodCmd) Privileges() error {
	// Device nodes need CAP_MKNOD; the kernel reports the failure.
	return nil
}

func (m *mknodCmd) Exec() error {
	mode := uint32(0666)
	if m.modeStr != "" {
		parsed, err := perms.ParseModeSpec(m.modeStr, 0666)
		if err != nil {
			return failf("mknod", "%s", err)
		}
		if parsed&^0777 != 0 {
			return failf("mknod", "mode must specify only file permission bits")
		}
		mode = parsed
		// An explicit mode is exact; keep the umask out of it.
		old := unix.Umask(0)
		defer unix.Umask(old)
	}
	var err error
	switch m.devType {
	case 'p':
		err = unix.Mkfifo(m.name, mode)
	case 'b':
		err = unix.Mknod(m.name, mode|unix.S_IFBLK, int(unix.Mkdev(m.major, m.minor)))
	default: // 'c' and its synonym 'u'
		err = unix.Mknod(m.name, mode|unix.S_IFCHR, int(unix.Mkdev(m.major, m.minor)))
	}
	if err != nil {
		return failf("mknod", "%s: %s", quote(m.name), fsutil.SyscallMessage(err))
	}
	return nil
}

func parseDeviceNumber(s string) (uint32, error) {
	if s == "" || strings.ContainsRune(s, '_') {
		return 0, strconv.ErrSyntax
	}
	n, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}
