package perms

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/gobox/gobox/internal/fsutil"
)

// ChmodExecutor applies a mode change to a set of paths the way chmod does:
// per-file report lines on Out, diagnostics prefixed with the tool name on
// Diag.
type ChmodExecutor struct {
	Tool         string
	Changes      bool
	Quiet        bool
	Verbose      bool
	PreserveRoot bool
	Recursive    bool
	RefMode      int    // mode taken from --reference, -1 when unset
	Mode         string // comma-separated numeric or symbolic clauses
	Out          io.Writer
	Diag         io.Writer
}

// Exec processes every path and returns the exit status: zero when all
// changes succeeded, one otherwise.
func (x *ChmodExecutor) Exec(files []string) int {
	if x.Out == nil {
		x.Out = os.Stdout
	}
	if x.Diag == nil {
		x.Diag = os.Stderr
	}
	status := 0
	for _, file := range files {
		if x.Recursive && x.PreserveRoot && file == "/" {
			x.diagf("it is dangerous to operate recursively on '/'\nuse --no-preserve-root to override this failsafe")
			return 1
		}
		if x.Recursive {
			status |= x.walk(file)
		} else {
			status |= x.chmodFile(file)
		}
	}
	return status
}

// walk recurses below path without following symlinks. A symlink given on
// the command line still has its referent changed, but is not descended
// into.
func (x *ChmodExecutor) walk(path string) int {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&os.ModeSymlink != 0 {
		return x.chmodFile(path)
	}

	status := x.chmodFile(path)
	if !info.IsDir() {
		return status
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		if !x.Quiet {
			x.diagf("cannot access %s: %s", quote(path), fsutil.SyscallMessage(err))
		}
		return status | 1
	}
	for _, entry := range entries {
		child := filepath.Join(path, entry.Name())
		if entry.Type()&os.ModeSymlink != 0 {
			if x.Verbose {
				fmt.Fprintf(x.Out, "neither symbolic link %s nor referent has been changed\n", quote(child))
			}
			continue
		}
		status |= x.walk(child)
	}
	return status
}

func (x *ChmodExecutor) chmodFile(file string) int {
	info, err := os.Stat(file)
	if err != nil {
		if linfo, lerr := os.Lstat(file); lerr == nil && linfo.Mode()&os.ModeSymlink != 0 {
			if x.Verbose {
				fmt.Fprintf(x.Out, "failed to change mode of %s from 0000 (---------) to 1500 (r-x-----T)\n", quote(file))
			}
			if !x.Quiet {
				x.diagf("cannot operate on dangling symlink %s", quote(file))
			}
		} else if !x.Quiet {
			x.diagf("cannot access %s: %s", quote(file), fsutil.SyscallMessage(err))
		}
		return 1
	}

	fperm := ModeBits(info)
	if x.RefMode >= 0 {
		return x.changeFile(file, fperm, uint32(x.RefMode)&07777)
	}

	umask := GetUmask()
	isDir := info.IsDir()
	newMode := fperm
	// naiveMode tracks what the clauses would produce were the umask empty;
	// a difference means the umask blocked part of the request.
	naiveMode := fperm
	for _, clause := range strings.Split(x.Mode, ",") {
		if strings.ContainsAny(clause, "0123456789") {
			parsed, err := ParseNumeric(newMode, clause, isDir)
			if err != nil {
				return x.parseFailed(err)
			}
			newMode, naiveMode = parsed, parsed
		} else {
			parsed, err := ParseSymbolic(newMode, clause, umask, isDir)
			if err != nil {
				return x.parseFailed(err)
			}
			naive, _ := ParseSymbolic(naiveMode, clause, 0, isDir)
			newMode, naiveMode = parsed, naive
		}
	}

	status := x.changeFile(file, fperm, newMode)
	if status == 0 && newMode != naiveMode {
		x.diagf("%s: new permissions are %s, not %s",
			maybeQuote(file), DisplayPermissions(newMode, false), DisplayPermissions(naiveMode, false))
		return 1
	}
	return status
}

func (x *ChmodExecutor) parseFailed(err error) int {
	if !x.Quiet {
		x.diagf("%s", err)
	}
	return 1
}

func (x *ChmodExecutor) changeFile(file string, fperm, mode uint32) int {
	if fperm == mode {
		if x.Verbose && !x.Changes {
			fmt.Fprintf(x.Out, "mode of %s retained as %04o (%s)\n",
				quote(file), fperm, DisplayPermissions(fperm, false))
		}
		return 0
	}
	if err := unix.Chmod(file, mode); err != nil {
		if !x.Quiet {
			x.diagf("changing permissions of %s: %s", quote(file), fsutil.SyscallMessage(err))
		}
		if x.Verbose {
			fmt.Fprintf(x.Out, "failed to change mode of file %s from %04o (%s) to %04o (%s)\n",
				quote(file), fperm, DisplayPermissions(fperm, false), mode, DisplayPermissions(mode, false))
		}
		return 1
	}
	if x.Verbose || x.Changes {
		fmt.Fprintf(x.Out, "mode of %s changed from %04o (%s) to %04o (%s)\n",
			quote(file), fperm, DisplayPermissions(fperm, false), mode, DisplayPermissions(mode, false))
	}
	return 0
}

func (x *ChmodExecutor) diagf(format string, args ...any) {
	fmt.Fprintf(x.Diag, "%s: %s\n", x.Tool, fmt.Sprintf(format, args...))
}

// ModeBits returns the full permission bits of info, including setuid,
// setgid, and sticky, which os.FileMode folds into type flags.
func ModeBits(info os.FileInfo) uint32 {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return uint32(st.Mode) & 07777
	}
	return uint32(info.Mode().Perm())
}

// maybeQuote quotes a name only when it would read ambiguously in a
// message.
func maybeQuote(name string) string {
	if name == "" || strings.ContainsAny(name, " \t\n'\"\\$`") {
		return quote(name)
	}
	return name
}

// SanitizeModeArgs pulls a leading-dash mode such as -rwx or -755 out of
// args so it is not mistaken for an option, returning the remaining
// arguments and the extracted mode.
func SanitizeModeArgs(args []string) ([]string, string) {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if len(arg) < 2 || arg[0] != '-' {
			continue
		}
		switch c := arg[1]; {
		case c == 'r' || c == 'w' || c == 'x' || c == 'X' || c == 's' || c == 't' ||
			c == 'u' || c == 'g' || c == 'o' || (c >= '0' && c <= '7'):
			return append(args[:i:i], args[i+1:]...), arg
		}
	}
	return args, ""
}
