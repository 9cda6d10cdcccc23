package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobox/gobox/cmd"
	"github.com/gobox/gobox/cmd/gobox/cli"
	"github.com/gobox/gobox/perms"
)

// applets lists every name the binary answers to, for the usage message.
var applets = []string{
	"b2sum", "chgrp", "chmod", "chown", "echo", "groups", "id", "insmod",
	"install", "lsmod", "md5sum", "mknod", "mktemp", "modinfo", "modprobe",
	"readlink", "rmmod", "sha1sum", "sha224sum", "sha256sum", "sha384sum",
	"sha512sum", "sync", "uuidgen", "version", "whoami",
}

func main() {
	applet := strings.TrimSuffix(filepath.Base(os.Args[0]), filepath.Ext(os.Args[0]))
	if dispatch(applet, false) {
		return
	}
	if len(os.Args) < 2 {
		cmd.Exit(cmd.FailCode(cmd.CodeForInvalidArgs, "parse arguments"))
	}
	if os.Args[1] == "-version" || os.Args[1] == "--version" {
		cmd.ExitWithVersion()
	}
	if dispatch(filepath.Base(os.Args[1]), true) {
		return
	}
	cmd.Exit(cmd.FailCode(cmd.CodeForInvalidArgs, "recognize applet:", os.Args[1], "\nValid applets: "+strings.Join(applets, ", ")))
}

// dispatch runs the named applet and reports whether the name was known.
// cli.Run exits rather than returning.
func dispatch(applet string, asSubcommand bool) bool {
	switch applet {
	case "id":
		cli.Run(&idCmd{}, applet, asSubcommand)
	case "whoami":
		cli.Run(&whoamiCmd{}, applet, asSubcommand)
	case "groups":
		cli.Run(&groupsCmd{}, applet, asSubcommand)
	case "chown":
		cli.Run(&chownCmd{}, applet, asSubcommand)
	case "chgrp":
		cli.Run(&chgrpCmd{}, applet, asSubcommand)
	case "chmod":
		cli.Run(&chmodCmd{argvMode: extractModeArg(asSubcommand)}, applet, asSubcommand)
	case "install":
		normalizeOptionalValue("backup")
		cli.Run(&installCmd{}, applet, asSubcommand)
	case "mknod":
		cli.Run(&mknodCmd{}, applet, asSubcommand)
	case "mktemp":
		normalizeOptionalValue("tmpdir")
		cli.Run(&mktempCmd{}, applet, asSubcommand)
	case "readlink":
		cli.Run(&readlinkCmd{}, applet, asSubcommand)
	case "sync":
		cli.Run(&syncCmd{}, applet, asSubcommand)
	case "echo":
		cli.RunRaw(&echoCmd{}, applet, asSubcommand)
	case "uuidgen":
		cli.Run(&uuidgenCmd{}, applet, asSubcommand)
	case "md5sum", "sha1sum", "sha224sum", "sha256sum", "sha384sum", "sha512sum", "b2sum":
		cli.Run(&hashsumCmd{applet: applet}, applet, asSubcommand)
	case "lsmod":
		cli.Run(&lsmodCmd{}, applet, asSubcommand)
	case "insmod":
		cli.Run(&insmodCmd{}, applet, asSubcommand)
	case "rmmod":
		cli.Run(&rmmodCmd{}, applet, asSubcommand)
	case "modinfo":
		cli.Run(&modinfoCmd{}, applet, asSubcommand)
	case "modprobe":
		cli.Run(&modprobeCmd{}, applet, asSubcommand)
	case "version":
		cmd.ExitWithVersion()
	default:
		return false
	}
	return true
}

// extractModeArg pulls a leading-dash mode such as -w or -644 out of the
// argument list before flag parsing can reject it as an unknown option.
func extractModeArg(asSubcommand bool) string {
	head := 1
	if asSubcommand {
		head = 2
	}
	if len(os.Args) <= head {
		return ""
	}
	rest, mode := perms.SanitizeModeArgs(os.Args[head:])
	if mode != "" {
		os.Args = append(os.Args[:head:head], rest...)
	}
	return mode
}

// normalizeOptionalValue rewrites a bare --name flag to --name= so the flag
// package does not swallow the following argument as its value.
func normalizeOptionalValue(name string) {
	for i, arg := range os.Args[1:] {
		if arg == "--" {
			break
		}
		if arg == "--"+name || arg == "-"+name {
			os.Args[i+1] = "--" + name + "="
		}
	}
}

func quote(s string) string {
	return "'" + s + "'"
}

// failf prints a diagnostic in the applet's own voice and returns a bare
// status error, so the exit path adds nothing further.
func failf(tool, format string, args ...any) error {
	fmt.Fprintf(os.Stderr, "%s: %s\n", tool, fmt.Sprintf(format, args...))
	return cmd.FailStatus(1)
}
