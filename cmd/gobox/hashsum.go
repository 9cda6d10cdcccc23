package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gobox/gobox/checksum"
	"github.com/gobox/gobox/cmd"
	"github.com/gobox/gobox/cmd/gobox/cli"
	"github.com/gobox/gobox/internal/fsutil"
)

// hashsumCmd backs every digest applet; the applet name selects the
// algorithm.
type hashsumCmd struct {
	applet string

	binary        bool
	check         bool
	ignoreMissing bool
	lengthStr     string
	quiet         bool
	status        bool
	strict        bool
	tag           bool
	text          bool
	warn          bool
	zero          bool

	algo  checksum.Algorithm
	files []string
}

func (h *hashsumCmd) DefineFlags() {
	cli.FlagBinary(&h.binary)
	cli.FlagCheck(&h.check)
	cli.FlagCheckQuiet(&h.quiet)
	cli.FlagCheckStatus(&h.status)
	cli.FlagCheckStrict(&h.strict)
	cli.FlagCheckWarn(&h.warn)
	cli.FlagIgnoreMissing(&h.ignoreMissing)
	if h.applet == "b2sum" {
		cli.FlagLength(&h.lengthStr)
	}
	cli.FlagTag(&h.tag)
	cli.FlagText(&h.text)
	cli.FlagZero(&h.zero)
}

func (h *hashsumCmd) Args(nargs int, args []string) error {
	algo, ok := checksum.ByApplet(h.applet)
	if !ok {
		return failf(h.applet, "unknown digest applet")
	}
	if h.lengthStr != "" {
		bits, err := checksum.ParseLength(h.lengthStr)
		if err != nil {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(os.Stderr, "%s: %s\n", h.applet, line)
			}
			return cmd.FailStatus(1)
		}
		algo = checksum.Blake2b(bits)
	}
	h.algo = algo

	if !h.check {
		for _, opt := range []struct {
			set  bool
			name string
		}{
			{h.ignoreMissing, "ignore-missing"},
			{h.status, "status"},
			{h.warn, "warn"},
			{h.quiet, "quiet"},
			{h.strict, "strict"},
		} {
			if opt.set {
				return failf(h.applet, "the --%s option is meaningful only when verifying checksums", opt.name)
			}
		}
	} else {
		if h.tag {
			return failf(h.applet, "the --tag option is meaningless when verifying checksums")
		}
		if cli.FlagPresent("b") || cli.FlagPresent("binary") || cli.FlagPresent("t") || cli.FlagPresent("text") {
			return failf(h.applet, "the --binary and --text options are meaningless when verifying checksums")
		}
	}

	h.files = args
	if len(h.files) == 0 {
		h.files = []string{"-"}
	}
	return nil
}

func (h *hashsumCmd) Privileges() error {
	return nil
}

func (h *hashsumCmd) Exec() error {
	if h.check {
		checker := &checksum.Checker{
			Tool:          h.applet,
			Algo:          h.algo,
			IgnoreMissing: h.ignoreMissing,
			Quiet:         h.quiet,
			Status:        h.status,
			Strict:        h.strict,
			Warn:          h.warn,
			Out:           os.Stdout,
			Diag:          os.Stderr,
		}
		if status := checker.Exec(h.files); status != 0 {
			return cmd.FailStatus(status)
		}
		return nil
	}

	binary := h.binary && !h.text
	// per-file failures are reported from the result slots
	results, _ := checksum.DigestFiles(h.algo, h.files)
	status := 0
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s: %s\n", h.applet, res.Name, fsutil.SyscallMessage(res.Err))
			status = 1
			continue
		}
		h.printDigest(res.Name, res.Digest, binary)
	}
	if status != 0 {
		return cmd.FailStatus(status)
	}
	return nil
}

// printDigest writes one result line. --zero switches the terminator to
// NUL and disables file name escaping.
func (h *hashsumCmd) printDigest(name, digest string, binary bool) {
	terminator := "\n"
	prefix := ""
	escaped := name
	if h.zero {
		terminator = "\x00"
	} else {
		escaped, prefix = checksum.EscapeName(name)
	}
	if h.tag {
		fmt.Fprintf(os.Stdout, "%s%s (%s) = %s%s", prefix, h.algo.Tag(), escaped, digest, terminator)
		return
	}
	marker := "  "
	if binary {
		marker = " *"
	}
	fmt.Fprintf(os.Stdout, "%s%s%s%s%s", prefix, digest, marker, escaped, terminator)
}
