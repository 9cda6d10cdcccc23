package checksum

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gobox/gobox/internal/fsutil"
)

// lineFormat identifies which of the three accepted checksum line
// layouts an entry uses. Once a list matches one of the untagged
// layouts, later lines are held to the same layout.
type lineFormat int

const (
	formatTagged lineFormat = iota
	formatUntagged
	formatSingleSpace
)

// checkLine is one parsed entry of a checksum list.
type checkLine struct {
	algo   string // tag name from a BSD-style line, empty otherwise
	bits   int    // digest bits from a BLAKE2b-N tag, zero otherwise
	digest string // lowercase hex
	name   string // file name exactly as written in the list
	format lineFormat
}

type lineOutcome int

const (
	outcomeOK lineOutcome = iota
	outcomeMismatch
	outcomeUnreadable
	outcomeSkipped // missing target under --ignore-missing
)

// Checker verifies digests read from checksum lists: "<digest>  <name>",
// "<digest> *<name>", or the BSD-style "ALGO (name) = digest" per line.
// Verification results go to Out; diagnostics and totals, prefixed with
// the tool name, go to Diag.
type Checker struct {
	Tool          string // applet name prefixed to diagnostics
	Algo          Algorithm
	IgnoreMissing bool
	Quiet         bool
	Status        bool
	Strict        bool
	Warn          bool
	Out           io.Writer
	Diag          io.Writer
}

// Exec verifies every named checksum list ("-" reads standard input)
// and returns the exit status: zero when every list parsed and every
// digest matched.
func (c *Checker) Exec(lists []string) int {
	if c.Out == nil {
		c.Out = os.Stdout
	}
	if c.Diag == nil {
		c.Diag = os.Stderr
	}
	status := 0
	for _, list := range lists {
		status |= c.checkList(list)
	}
	return status
}

func (c *Checker) checkList(list string) int {
	display := list
	var r io.Reader
	if list == "-" {
		display = "standard input"
		r = os.Stdin
	} else {
		f, err := os.Open(list)
		if err != nil {
			c.diagf("%s: %s", list, fsutil.SyscallMessage(err))
			return 1
		}
		defer f.Close()
		if info, err := f.Stat(); err == nil && info.IsDir() {
			c.diagf("%s: is a directory", list)
			return 1
		}
		r = f
	}

	var correct, mismatched, unreadable, badFormat, total int
	var cached *lineFormat

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		total++

		ln := parseTagged(line)
		if ln == nil {
			// A leading backslash marks a line whose file name is escaped.
			stripped := strings.TrimPrefix(line, "\\")
			switch {
			case cached == nil:
				if ln = parseUntagged(stripped); ln != nil {
					f := formatUntagged
					cached = &f
				} else if ln = parseSingleSpace(stripped); ln != nil {
					f := formatSingleSpace
					cached = &f
				}
			case *cached == formatUntagged:
				ln = parseUntagged(stripped)
			default:
				ln = parseSingleSpace(stripped)
			}
		}

		var algo Algorithm
		ok := ln != nil
		if ok {
			algo, ok = c.lineAlgorithm(ln)
		}
		if !ok {
			badFormat++
			if c.Warn && !c.Status {
				c.diagf("%s: %d: improperly formatted %s checksum line", display, lineno, c.Algo.Name)
			}
			continue
		}

		if ln.format == formatSingleSpace && lineno == 1 && strings.HasPrefix(ln.name, "*") {
			// A binary marker leaking into a single-space name is dropped,
			// but only on the first line of a list.
			ln.name = ln.name[1:]
		}

		switch c.verifyTarget(ln, algo) {
		case outcomeOK:
			correct++
		case outcomeMismatch:
			mismatched++
		case outcomeUnreadable:
			unreadable++
		case outcomeSkipped:
		}
	}
	if err := scanner.Err(); err != nil {
		c.diagf("%s: %s", display, fsutil.SyscallMessage(err))
		return 1
	}

	if total-badFormat == 0 {
		if !c.Status {
			c.diagf("%s: no properly formatted checksum lines found", display)
		}
		return 1
	}

	if !c.Status {
		c.warnCount(badFormat, "line is improperly formatted", "lines are improperly formatted")
		c.warnCount(unreadable, "listed file could not be read", "listed files could not be read")
		c.warnCount(mismatched, "computed checksum did NOT match", "computed checksums did NOT match")
		if c.IgnoreMissing && correct == 0 {
			c.diagf("%s: no file was verified", display)
		}
	}

	if mismatched > 0 ||
		(unreadable > 0 && !c.IgnoreMissing) ||
		(c.Strict && badFormat > 0) ||
		(c.IgnoreMissing && correct == 0) {
		return 1
	}
	return 0
}

// verifyTarget digests the file a checksum line names and compares the
// result against the expectation, reporting the outcome on Out.
func (c *Checker) verifyTarget(ln *checkLine, algo Algorithm) lineOutcome {
	raw := ln.name
	unescaped := UnescapeName(raw)
	prefix := ""
	if unescaped != raw {
		prefix = "\\"
	}

	var r io.Reader
	if unescaped == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(unescaped)
		if err != nil {
			if c.IgnoreMissing && os.IsNotExist(err) {
				return outcomeSkipped
			}
			c.diagf("%s: %s", unescaped, fsutil.SyscallMessage(err))
			if !c.Status {
				fmt.Fprintf(c.Out, "%s%s: FAILED open or read\n", prefix, raw)
			}
			return outcomeUnreadable
		}
		defer f.Close()
		r = f
	}

	sum, err := algo.Digest(r)
	if err != nil {
		c.diagf("%s: %s", unescaped, fsutil.SyscallMessage(err))
		if !c.Status {
			fmt.Fprintf(c.Out, "%s%s: FAILED open or read\n", prefix, raw)
		}
		return outcomeUnreadable
	}
	if sum != ln.digest {
		if !c.Status {
			fmt.Fprintf(c.Out, "%s%s: FAILED\n", prefix, raw)
		}
		return outcomeMismatch
	}
	if !c.Status && !c.Quiet {
		fmt.Fprintf(c.Out, "%s%s: OK\n", prefix, raw)
	}
	return outcomeOK
}

// lineAlgorithm decides which digest to run for one parsed line and
// rejects lines whose digest length cannot belong to the applet's
// algorithm. BLAKE2b digests are sized by the line itself: by the tag
// when one is present, by the digest length otherwise.
func (c *Checker) lineAlgorithm(ln *checkLine) (Algorithm, bool) {
	hexLen := len(ln.digest)
	if ln.format == formatTagged && ln.algo != c.Algo.Name {
		return Algorithm{}, false
	}
	if ln.bits != 0 && c.Algo.Name != "BLAKE2b" {
		// only BLAKE2b tags carry a digest size
		return Algorithm{}, false
	}
	if c.Algo.Name != "BLAKE2b" {
		if hexLen != c.Algo.Bits/4 {
			return Algorithm{}, false
		}
		return c.Algo, true
	}
	bits := ln.bits
	if bits == 0 {
		if ln.format == formatTagged {
			bits = 512
		} else {
			bits = hexLen * 4
		}
	}
	if bits%8 != 0 || bits > 512 || hexLen != bits/4 {
		return Algorithm{}, false
	}
	return Blake2b(bits), true
}

// parseTagged parses the BSD-style "ALGO (name) = digest" form, with
// tolerance for the OpenSSL variant that omits the spaces around the
// parentheses. The digest separator is matched from the right so that
// parentheses inside the file name survive.
func parseTagged(line string) *checkLine {
	rest := strings.TrimLeft(line, " \t")
	rest = strings.TrimPrefix(rest, "\\")

	par := strings.IndexByte(rest, '(')
	if par <= 0 {
		return nil
	}
	algoPart := rest[:par]
	sep := ")= "
	if rest[par-1] == ' ' {
		algoPart = rest[:par-1]
		sep = ") = "
	}

	algo, bitsStr, hasBits := strings.Cut(algoPart, "-")
	if !validTagAlgo(algo) {
		return nil
	}
	bits := 0
	if hasBits {
		if n, err := strconv.Atoi(bitsStr); err == nil && n > 0 {
			bits = n
		}
	}

	after := rest[par+1:]
	idx := strings.LastIndex(after, sep)
	if idx < 0 {
		return nil
	}
	digest := after[idx+len(sep):]
	if !validHex(digest) {
		return nil
	}
	return &checkLine{
		algo:   algo,
		bits:   bits,
		digest: strings.ToLower(digest),
		name:   after[:idx],
		format: formatTagged,
	}
}

// parseUntagged parses "<digest>  <name>" and "<digest> *<name>".
func parseUntagged(line string) *checkLine {
	sp := strings.IndexByte(line, ' ')
	if sp < 0 {
		return nil
	}
	digest := line[:sp]
	if !validHex(digest) {
		return nil
	}
	rest := line[sp:]
	if !strings.HasPrefix(rest, "  ") && !strings.HasPrefix(rest, " *") {
		return nil
	}
	return &checkLine{digest: strings.ToLower(digest), name: rest[2:], format: formatUntagged}
}

// parseSingleSpace parses "<digest> <name>", where everything after the
// single separating space, further spaces included, is the name.
func parseSingleSpace(line string) *checkLine {
	sp := strings.IndexByte(line, ' ')
	if sp < 0 {
		return nil
	}
	digest := line[:sp]
	if !validHex(digest) {
		return nil
	}
	return &checkLine{digest: strings.ToLower(digest), name: line[sp+1:], format: formatSingleSpace}
}

func validTagAlgo(algo string) bool {
	if algo == "BLAKE2b" {
		return true
	}
	if algo == "" {
		return false
	}
	for i := 0; i < len(algo); i++ {
		c := algo[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

func validHex(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}

func (c *Checker) warnCount(n int, singular, plural string) {
	switch {
	case n == 0:
	case n == 1:
		c.diagf("WARNING: 1 %s", singular)
	default:
		c.diagf("WARNING: %d %s", n, plural)
	}
}

func (c *Checker) diagf(format string, args ...any) {
	fmt.Fprintf(c.Diag, "%s: %s\n", c.Tool, fmt.Sprintf(format, args...))
}
