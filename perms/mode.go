package perms

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// ParseNumeric interprets clause as an octal mode, optionally prefixed with
// +, -, or =, and applies it to fperm. Directories keep their setuid and
// setgid bits unless the clause spells the mode with five or more digits or
// assigns with "=".
func ParseNumeric(fperm uint32, clause string, consideringDir bool) (uint32, error) {
	op, rest := parseOptionalOp(clause)
	digits := strings.TrimSpace(rest)
	var change uint32
	if digits != "" {
		parsed, err := strconv.ParseUint(digits, 8, 32)
		if err != nil {
			return 0, errors.Errorf("invalid mode: '%s'", clause)
		}
		change = uint32(parsed)
	}
	if change > 07777 {
		return 0, errors.Errorf("mode is too large (%o > 7777)", change)
	}
	switch {
	case op == '+':
		return fperm | change, nil
	case op == '-':
		return fperm &^ change, nil
	case op == 0 && consideringDir && len(digits) < 5:
		return change | (fperm & 06000), nil
	default:
		return change, nil
	}
}

// ParseSymbolic applies a symbolic clause such as "u+rwx" or "go-w" to
// fperm. When the clause names no class the umask restricts which bits
// change, and directories hold on to setuid and setgid through "=" unless
// those bits are assigned explicitly.
func ParseSymbolic(fperm uint32, clause string, umask uint32, consideringDir bool) (uint32, error) {
	mask, pos := parseLevels(clause)
	if pos == len(clause) {
		return 0, errors.Errorf("invalid mode: '%s'", clause)
	}
	respectUmask := pos == 0

	rest := clause[pos:]
	for rest != "" {
		op := rest[0]
		if op != '+' && op != '-' && op != '=' {
			return 0, errors.Errorf("invalid mode: '%s'", clause)
		}
		srwx, n := parseChange(rest[1:], fperm, consideringDir)
		if respectUmask {
			srwx &^= umask
		}
		rest = rest[1+n:]
		switch op {
		case '+':
			fperm |= srwx & mask
		case '-':
			fperm &^= srwx & mask
		case '=':
			if consideringDir && srwx&(07000&mask) == 0 {
				// keep the setuid and setgid bits for dirs
				fperm = (fperm &^ mask) | (srwx & mask) | (fperm & 06000)
			} else {
				fperm = (fperm &^ mask) | (srwx & mask)
			}
		}
	}
	return fperm, nil
}

// ParseModeSpec applies a full comma-separated mode argument to base without
// consulting the umask, the way install -m and mknod -m read their modes.
func ParseModeSpec(spec string, base uint32) (uint32, error) {
	mode := base
	for _, clause := range strings.Split(spec, ",") {
		var err error
		if strings.ContainsAny(clause, "0123456789") {
			mode, err = ParseNumeric(mode, clause, false)
		} else {
			mode, err = ParseSymbolic(mode, clause, 0, false)
		}
		if err != nil {
			return 0, err
		}
	}
	return mode, nil
}

// GetUmask reports the process umask, which umask(2) only exposes by
// setting it.
func GetUmask() uint32 {
	mask := unix.Umask(0)
	unix.Umask(mask)
	return uint32(mask)
}

func parseOptionalOp(clause string) (byte, string) {
	if clause != "" {
		switch clause[0] {
		case '+', '-', '=':
			return clause[0], clause[1:]
		}
	}
	return 0, clause
}

// parseLevels consumes the leading [ugoa]* classes and returns the bit mask
// they select, defaulting to all bits when no class is named.
func parseLevels(clause string) (uint32, int) {
	var mask uint32
	pos := 0
levels:
	for _, ch := range clause {
		switch ch {
		case 'u':
			mask |= 04700
		case 'g':
			mask |= 02070
		case 'o':
			mask |= 01007
		case 'a':
			mask |= 07777
		default:
			break levels
		}
		pos++
	}
	if pos == 0 {
		mask = 07777
	}
	return mask, pos
}

// parseChange consumes the permission letters after an operator: either a
// run of rwxXst or exactly one of the ugo class copies.
func parseChange(s string, fperm uint32, consideringDir bool) (uint32, int) {
	var srwx uint32
	pos := 0
letters:
	for _, ch := range s {
		switch ch {
		case 'r':
			srwx |= 0444
		case 'w':
			srwx |= 0222
		case 'x':
			srwx |= 0111
		case 'X':
			if consideringDir || fperm&0111 != 0 {
				srwx |= 0111
			}
		case 's':
			srwx |= 06000
		case 't':
			srwx |= 01000
		case 'u':
			srwx = (fperm & 0700) | ((fperm >> 3) & 0070) | ((fperm >> 6) & 0007)
		case 'g':
			srwx = ((fperm << 3) & 0700) | (fperm & 0070) | ((fperm >> 3) & 0007)
		case 'o':
			srwx = ((fperm << 6) & 0700) | ((fperm << 3) & 0070) | (fperm & 0007)
		default:
			break letters
		}
		pos++
		if ch == 'u' || ch == 'g' || ch == 'o' {
			break
		}
	}
	return srwx, pos
}
