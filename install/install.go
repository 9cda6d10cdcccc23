// Package install copies files into place the way install(1) does, applying
// mode, ownership, timestamps, and backups along the way.
package install

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/gobox/gobox/internal/backup"
	"github.com/gobox/gobox/internal/fsutil"
)

// Executor installs files or directories. Mode is always applied; UID and
// GID only when not -1. Reports go to Out, diagnostics to Diag prefixed
// with the tool name.
type Executor struct {
	Tool               string
	Mode               uint32
	UID                int
	GID                int
	Backup             backup.Mode
	Suffix             string
	Compare            bool
	CreateLeading      bool
	PreserveTimestamps bool
	Strip              bool
	StripProgram       string
	Verbose            bool
	Out                io.Writer
	Diag               io.Writer
}

func (x *Executor) init() {
	if x.Out == nil {
		x.Out = os.Stdout
	}
	if x.Diag == nil {
		x.Diag = os.Stderr
	}
	if x.StripProgram == "" {
		x.StripProgram = "strip"
	}
}

// InstallInto copies every source into the directory under its base name.
func (x *Executor) InstallInto(sources []string, dir string) int {
	x.init()
	status := 0
	for _, src := range sources {
		status |= x.installFile(src, filepath.Join(dir, filepath.Base(src)))
	}
	return status
}

// InstallFile copies a single source to an explicit destination.
func (x *Executor) InstallFile(src, dst string) int {
	x.init()
	return x.installFile(src, dst)
}

func (x *Executor) installFile(src, dst string) int {
	info, err := os.Stat(src)
	if err != nil {
		x.diagf("cannot stat %s: %s", quote(src), fsutil.SyscallMessage(err))
		return 1
	}
	if info.IsDir() {
		x.diagf("omitting directory %s", quote(src))
		return 1
	}
	if dstInfo, err := os.Stat(dst); err == nil {
		if dstInfo.IsDir() {
			x.diagf("cannot overwrite directory %s with non-directory", quote(dst))
			return 1
		}
		if os.SameFile(info, dstInfo) {
			x.diagf("%s and %s are the same file", quote(src), quote(dst))
			return 1
		}
		if x.Compare && x.upToDate(src, dst, dstInfo) {
			return 0
		}
	}
	if x.CreateLeading {
		if status := x.makeAncestors(filepath.Dir(dst), false); status != 0 {
			return status
		}
	}
	backupPath := ""
	if x.Backup != backup.ModeNone {
		if _, err := os.Lstat(dst); err == nil {
			backupPath = backup.Path(x.Backup, dst, x.Suffix)
			if err := os.Rename(dst, backupPath); err != nil {
				x.diagf("cannot backup %s: %s", quote(dst), fsutil.SyscallMessage(err))
				return 1
			}
		}
	}
	if err := fsutil.Copy(src, dst); err != nil {
		x.diagf("cannot create regular file %s: %s", quote(dst), fsutil.SyscallMessage(err))
		return 1
	}
	if x.Verbose {
		if backupPath != "" {
			fmt.Fprintf(x.Out, "%s -> %s (backup: %s)\n", quote(src), quote(dst), quote(backupPath))
		} else {
			fmt.Fprintf(x.Out, "%s -> %s\n", quote(src), quote(dst))
		}
	}
	if x.Strip {
		out, err := exec.Command(x.StripProgram, dst).CombinedOutput()
		if err != nil {
			msg := strings.TrimSpace(string(out))
			if msg == "" {
				msg = err.Error()
			}
			x.diagf("strip program failed: %s", msg)
			return 1
		}
	}
	if status := x.applyAttrs(dst); status != 0 {
		return status
	}
	if x.PreserveTimestamps {
		if st, ok := info.Sys().(*syscall.Stat_t); ok {
			atime := time.Unix(st.Atim.Sec, st.Atim.Nsec)
			mtime := time.Unix(st.Mtim.Sec, st.Mtim.Nsec)
			if err := os.Chtimes(dst, atime, mtime); err != nil {
				x.diagf("cannot set timestamps for %s: %s", quote(dst), fsutil.SyscallMessage(err))
				return 1
			}
		}
	}
	return 0
}

// InstallDirs creates each directory with the requested attributes; missing
// parents are created along the way, and directories that already exist
// still get their attributes refreshed.
func (x *Executor) InstallDirs(dirs []string) int {
	x.init()
	status := 0
	for _, dir := range dirs {
		status |= x.makeAncestors(filepath.Clean(dir), true)
	}
	return status
}

// makeAncestors creates dir and any missing parents. With applyAttrs each
// created or pre-existing component named on the command line gets the
// executor's mode and ownership; otherwise components use the default mode.
func (x *Executor) makeAncestors(dir string, applyAttrs bool) int {
	if dir == "" || dir == "." || dir == "/" {
		return 0
	}
	var toCreate []string
	d := dir
	for {
		if _, err := os.Stat(d); err == nil {
			break
		}
		toCreate = append(toCreate, d)
		parent := filepath.Dir(d)
		if parent == d {
			break
		}
		d = parent
	}
	if len(toCreate) == 0 && applyAttrs {
		return x.applyAttrs(dir)
	}
	for i := len(toCreate) - 1; i >= 0; i-- {
		d := toCreate[i]
		if err := os.Mkdir(d, 0755); err != nil && !os.IsExist(err) {
			x.diagf("cannot create directory %s: %s", quote(d), fsutil.SyscallMessage(err))
			return 1
		}
		if x.Verbose {
			fmt.Fprintf(x.Out, "%s: creating directory %s\n", x.Tool, quote(d))
		}
		if applyAttrs {
			if status := x.applyAttrs(d); status != 0 {
				return status
			}
		}
	}
	return 0
}

func (x *Executor) applyAttrs(path string) int {
	if x.UID != -1 || x.GID != -1 {
		if err := os.Chown(path, x.UID, x.GID); err != nil {
			x.diagf("cannot change ownership of %s: %s", quote(path), fsutil.SyscallMessage(err))
			return 1
		}
	}
	if err := unix.Chmod(path, x.Mode); err != nil {
		x.diagf("cannot change permissions of %s: %s", quote(path), fsutil.SyscallMessage(err))
		return 1
	}
	return 0
}

// upToDate reports whether dst already matches what the copy would produce,
// so --compare can leave it untouched.
func (x *Executor) upToDate(src, dst string, dstInfo os.FileInfo) bool {
	if dstInfo.Mode()&os.ModeType != 0 {
		return false
	}
	st, ok := dstInfo.Sys().(*syscall.Stat_t)
	if !ok {
		return false
	}
	if uint32(st.Mode)&07777 != x.Mode {
		return false
	}
	if x.UID != -1 && int(st.Uid) != x.UID {
		return false
	}
	if x.GID != -1 && int(st.Gid) != x.GID {
		return false
	}
	same, err := fsutil.ContentMatches(src, dst)
	return err == nil && same
}

func (x *Executor) diagf(format string, args ...any) {
	fmt.Fprintf(x.Diag, "%s: %s\n", x.Tool, fmt.Sprintf(format, args...))
}

func quote(s string) string {
	return "'" + s + "'"
}
