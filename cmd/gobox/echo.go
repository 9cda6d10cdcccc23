package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

type echoCmd struct {
	noNewline bool
	escapes   bool

	operands []string
	out      io.Writer
}

func (e *echoCmd) DefineFlags() {}

func (e *echoCmd) Args(nargs int, args []string) error {
	i := 0
	for ; i < len(args); i++ {
		if !e.applyFlags(args[i]) {
			break
		}
	}
	e.operands = args[i:]
	return nil
}

func (e *echoCmd) Privileges() error {
	return nil
}

func (e *echoCmd) Exec() error {
	if e.out == nil {
		e.out = os.Stdout
	}
	var b strings.Builder
	stopped := false
	for i, op := range e.operands {
		if i > 0 {
			b.WriteString(" ")
		}
		if e.escapes {
			expanded, stop := expandEscapes(op)
			b.WriteString(expanded)
			if stop {
				stopped = true
				break
			}
			continue
		}
		b.WriteString(op)
	}
	if !e.noNewline && !stopped {
		b.WriteString("\n")
	}
	fmt.Fprint(e.out, b.String())
	return nil
}

// applyFlags consumes arg if it consists entirely of short echo options,
// updating the executor state, and reports whether it did. An argument with
// any other character is an operand, dashes and all.
func (e *echoCmd) applyFlags(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	for _, c := range arg[1:] {
		switch c {
		case 'n', 'e', 'E':
		default:
			return false
		}
	}
	for _, c := range arg[1:] {
		switch c {
		case 'n':
			e.noNewline = true
		case 'e':
			e.escapes = true
		case 'E':
			e.escapes = false
		}
	}
	return true
}

// expandEscapes interprets backslash escapes in s. The returned bool reports
// a \c, which ends all output.
func expandEscapes(s string) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'c':
			return b.String(), true
		case 'e':
			b.WriteByte(0x1b)
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case '\\':
			b.WriteByte('\\')
		case '0':
			val, width := parseRadix(s[i+1:], 8, 3)
			b.WriteByte(byte(val))
			i += width
		case 'x':
			val, width := parseRadix(s[i+1:], 16, 2)
			if width == 0 {
				b.WriteString(`\x`)
			} else {
				b.WriteByte(byte(val))
				i += width
			}
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String(), false
}

// parseRadix reads up to max digits of the given base from the front of s,
// returning the value and how many bytes it consumed.
func parseRadix(s string, base, max int) (int, int) {
	val := 0
	width := 0
	for width < max && width < len(s) {
		d := digitVal(s[width], base)
		if d < 0 {
			break
		}
		val = val*base + d
		width++
	}
	return val, width
}

func digitVal(c byte, base int) int {
	var d int
	switch {
	case c >= '0' && c <= '9':
		d = int(c - '0')
	case c >= 'a' && c <= 'f':
		d = int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		d = int(c-'A') + 10
	default:
		return -1
	}
	if d >= base {
		return -1
	}
	return d
}
