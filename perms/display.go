package perms

import (
	"strings"

	"golang.org/x/sys/unix"
)

// DisplayPermissions renders mode the way ls does, optionally prefixed with
// the file type character.
func DisplayPermissions(mode uint32, includeType bool) string {
	var b strings.Builder
	if includeType {
		switch mode & unix.S_IFMT {
		case unix.S_IFDIR:
			b.WriteByte('d')
		case unix.S_IFCHR:
			b.WriteByte('c')
		case unix.S_IFBLK:
			b.WriteByte('b')
		case unix.S_IFREG:
			b.WriteByte('-')
		case unix.S_IFIFO:
			b.WriteByte('p')
		case unix.S_IFLNK:
			b.WriteByte('l')
		case unix.S_IFSOCK:
			b.WriteByte('s')
		default:
			b.WriteByte('?')
		}
	}
	writeTriad(&b, mode, 0400, 0200, 0100, 04000, 's', 'S')
	writeTriad(&b, mode, 0040, 0020, 0010, 02000, 's', 'S')
	writeTriad(&b, mode, 0004, 0002, 0001, 01000, 't', 'T')
	return b.String()
}

func writeTriad(b *strings.Builder, mode, rbit, wbit, xbit, sbit uint32, special, specialNoExec byte) {
	if mode&rbit != 0 {
		b.WriteByte('r')
	} else {
		b.WriteByte('-')
	}
	if mode&wbit != 0 {
		b.WriteByte('w')
	} else {
		b.WriteByte('-')
	}
	switch {
	case mode&sbit != 0 && mode&xbit != 0:
		b.WriteByte(special)
	case mode&sbit != 0:
		b.WriteByte(specialNoExec)
	case mode&xbit != 0:
		b.WriteByte('x')
	default:
		b.WriteByte('-')
	}
}
