// Package perms changes and reports file ownership and permission bits on
// behalf of the chown, chgrp, and chmod applets.
package perms

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/pkg/errors"

	"github.com/gobox/gobox/ident"
	"github.com/gobox/gobox/internal/fsutil"
)

// VerbosityLevel controls how much of its work an executor reports.
type VerbosityLevel int

const (
	// VerbosityNormal reports failures only.
	VerbosityNormal VerbosityLevel = iota
	VerbosityChanges
	VerbositySilent
	VerbosityVerbose
)

// Verbosity pairs a reporting level with the message flavor: chgrp speaks of
// groups where chown speaks of ownership.
type Verbosity struct {
	GroupsOnly bool
	Level      VerbosityLevel
}

// TraverseSymlinks selects which symbolic links a recursive change follows.
type TraverseSymlinks int

const (
	// TraverseNone follows no symlinks (-P).
	TraverseNone TraverseSymlinks = iota
	// TraverseFirst follows only symlinks listed on the command line (-H).
	TraverseFirst
	// TraverseAll follows every symlink met during traversal (-L).
	TraverseAll
)

// IfFrom restricts changes to files currently owned by a particular user
// and/or group, as requested with --from. A UID or GID of -1 matches any.
type IfFrom struct {
	UID int
	GID int
}

// MatchAny places no restriction on current ownership.
func MatchAny() IfFrom {
	return IfFrom{UID: -1, GID: -1}
}

func (f IfFrom) matches(uid, gid int) bool {
	return (f.UID == -1 || f.UID == uid) && (f.GID == -1 || f.GID == gid)
}

// ChownExecutor applies an ownership change to a set of paths, optionally
// recursing, and reports per-file outcomes the way chown and chgrp do:
// informational lines on Out, diagnostics prefixed with the tool name on
// Diag.
type ChownExecutor struct {
	Tool         string // applet name prefixed to diagnostics
	DestUID      int    // -1 retains the current owner
	DestGID      int    // -1 retains the current group
	RawOwner     string // owner exactly as given on the command line
	Traverse     TraverseSymlinks
	Verbosity    Verbosity
	Filter       IfFrom
	Files        []string
	Recursive    bool
	PreserveRoot bool
	Dereference  bool
	Out          io.Writer
	Diag         io.Writer
}

// Exec processes every path and returns the exit status: zero when all
// changes succeeded, one otherwise.
func (x *ChownExecutor) Exec() int {
	if x.Out == nil {
		x.Out = os.Stdout
	}
	if x.Diag == nil {
		x.Diag = os.Stderr
	}
	status := 0
	for _, f := range x.Files {
		status |= x.traverse(f)
	}
	return status
}

func (x *ChownExecutor) traverse(root string) int {
	meta, ok := x.obtainMeta(root, x.Dereference)
	if !ok {
		if x.Verbosity.Level == VerbosityVerbose {
			subject := "ownership"
			if x.Verbosity.GroupsOnly {
				subject = "group"
			}
			fmt.Fprintf(x.Out, "failed to change %s of %s to %s\n", subject, quote(root), x.RawOwner)
		}
		return 1
	}

	if x.Recursive && x.PreserveRoot && x.isRoot(root, x.Traverse != TraverseNone) {
		// Fail fast, do not attempt to recurse.
		return 1
	}

	status := 0
	if x.Filter.matches(meta.uid, meta.gid) {
		status = x.applyChange(root, meta)
	} else {
		x.reportRetained(root, meta)
	}

	if x.Recursive {
		status |= x.diveInto(root)
	}
	return status
}

// diveInto starts the recursive walk below root. The root itself has already
// been handled; a root symlink is only followed when the command line says
// so.
func (x *ChownExecutor) diveInto(root string) int {
	info, err := os.Lstat(root)
	if err != nil {
		return 0
	}
	if info.Mode()&os.ModeSymlink != 0 {
		if x.Traverse == TraverseNone {
			return 0
		}
		info, err = os.Stat(root)
		if err != nil {
			return 0
		}
	}
	if !info.IsDir() {
		return 0
	}

	var ancestors []fileID
	if x.Traverse == TraverseAll {
		if id, ok := fileIDFromInfo(info); ok {
			ancestors = append(ancestors, id)
		}
	}
	return x.walk(root, ancestors)
}

// walk visits everything below dir, which must be a directory. ancestors
// carries the identity of each directory on the way down so that symlink
// loops are caught when -L is in effect.
func (x *ChownExecutor) walk(dir string, ancestors []fileID) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		x.diagf("cannot access %s: %s", quote(dir), fsutil.SyscallMessage(err))
		return 1
	}

	status := 0
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		isSymlink := entry.Type()&os.ModeSymlink != 0

		meta, ok := x.obtainMeta(path, x.Dereference)
		if !ok {
			status = 1
			continue
		}

		if x.PreserveRoot && x.isRoot(path, x.Traverse == TraverseAll) {
			// Fail fast, do not recurse further.
			return 1
		}

		if x.Filter.matches(meta.uid, meta.gid) {
			status |= x.applyChange(path, meta)
		} else {
			x.reportRetained(path, meta)
		}

		descend := entry.IsDir()
		childAncestors := ancestors
		if descend && x.Traverse == TraverseAll {
			if info, err := os.Stat(path); err == nil {
				if id, ok := fileIDFromInfo(info); ok {
					childAncestors = append(ancestors, id)
				}
			}
		} else if !descend && isSymlink && x.Traverse == TraverseAll {
			info, err := os.Stat(path)
			if err != nil || !info.IsDir() {
				continue
			}
			id, ok := fileIDFromInfo(info)
			if ok && idIn(ancestors, id) {
				x.diagf("cannot access %s: Too many levels of symbolic links", quote(path))
				status = 1
				continue
			}
			descend = true
			if ok {
				childAncestors = append(ancestors, id)
			}
		}
		if descend {
			status |= x.walk(path, childAncestors)
		}
	}
	return status
}

// applyChange performs one ownership change and routes its report lines:
// the errno diagnostic to Diag first, then any per-file line to Out.
func (x *ChownExecutor) applyChange(path string, meta fileMeta) int {
	out, err := x.wrapChown(path, meta, x.Dereference)
	if err != nil {
		if x.Verbosity.Level != VerbositySilent {
			x.diagf("%s", err)
		}
		if out != "" {
			fmt.Fprintln(x.Out, out)
		}
		return 1
	}
	if out != "" {
		fmt.Fprintln(x.Out, out)
	}
	return 0
}

// wrapChown changes the ownership of path and formats the report. The
// returned string is the per-file line for Out when non-empty; the error
// carries the diagnostic for failures.
func (x *ChownExecutor) wrapChown(path string, meta fileMeta, follow bool) (string, error) {
	destUID, destGID := x.DestUID, x.DestGID
	if destUID == -1 {
		destUID = meta.uid
	}
	if destGID == -1 {
		destGID = meta.gid
	}

	var chownErr error
	if follow {
		chownErr = os.Chown(path, destUID, destGID)
	} else {
		chownErr = os.Lchown(path, destUID, destGID)
	}
	if chownErr != nil {
		subject := "ownership"
		if x.Verbosity.GroupsOnly {
			subject = "group"
		}
		var out string
		if x.Verbosity.Level == VerbosityVerbose {
			if x.Verbosity.GroupsOnly {
				out = fmt.Sprintf("failed to change group of %s from %s to %s",
					quote(path), groupOrID(meta.gid), groupOrID(destGID))
			} else {
				out = fmt.Sprintf("failed to change ownership of %s from %s:%s to %s:%s",
					quote(path), userOrID(meta.uid), groupOrID(meta.gid), userOrID(destUID), groupOrID(destGID))
			}
		}
		return out, errors.Errorf("changing %s of %s: %s", subject, quote(path), fsutil.SyscallMessage(chownErr))
	}

	changed := destUID != meta.uid || destGID != meta.gid
	switch {
	case changed && (x.Verbosity.Level == VerbosityChanges || x.Verbosity.Level == VerbosityVerbose):
		if x.Verbosity.GroupsOnly {
			return fmt.Sprintf("changed group of %s from %s to %s",
				quote(path), groupOrID(meta.gid), groupOrID(destGID)), nil
		}
		return fmt.Sprintf("changed ownership of %s from %s:%s to %s:%s",
			quote(path), userOrID(meta.uid), groupOrID(meta.gid), userOrID(destUID), groupOrID(destGID)), nil
	case !changed && x.Verbosity.Level == VerbosityVerbose:
		if x.Verbosity.GroupsOnly {
			return fmt.Sprintf("group of %s retained as %s", quote(path), groupOrID(destGID)), nil
		}
		return fmt.Sprintf("ownership of %s retained as %s:%s",
			quote(path), userOrID(destUID), groupOrID(destGID)), nil
	}
	return "", nil
}

// reportRetained explains, under --verbose, why a file excluded by --from
// was left alone.
func (x *ChownExecutor) reportRetained(path string, meta fileMeta) {
	if x.Verbosity.Level != VerbosityVerbose {
		return
	}
	switch {
	case x.DestUID != -1 && x.DestGID != -1:
		fmt.Fprintf(x.Out, "ownership of %s retained as %s:%s\n", quote(path), userOrID(meta.uid), groupOrID(meta.gid))
	case x.DestGID != -1:
		fmt.Fprintf(x.Out, "ownership of %s retained as %s\n", quote(path), groupOrID(meta.gid))
	default:
		fmt.Fprintf(x.Out, "ownership of %s retained as %s\n", quote(path), userOrID(meta.uid))
	}
}

type fileMeta struct {
	uid int
	gid int
}

func (x *ChownExecutor) obtainMeta(path string, follow bool) (fileMeta, bool) {
	var (
		info os.FileInfo
		err  error
	)
	if follow {
		info, err = os.Stat(path)
	} else {
		info, err = os.Lstat(path)
	}
	if err != nil {
		if x.Verbosity.Level != VerbositySilent {
			verb := "access"
			if follow {
				// A dangling symlink fails the stat, not the file itself.
				if linfo, lerr := os.Lstat(path); lerr == nil && linfo.Mode()&os.ModeSymlink != 0 {
					verb = "dereference"
				}
			}
			x.diagf("cannot %s %s: %s", verb, quote(path), fsutil.SyscallMessage(err))
		}
		return fileMeta{}, false
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileMeta{}, false
	}
	return fileMeta{uid: int(st.Uid), gid: int(st.Gid)}, true
}

// isRoot reports whether path resolves to the filesystem root, in which case
// --preserve-root forbids recursing and a warning has been issued. Only
// paths that could lead the walk to "/" are worth the canonicalization:
// unless symlinks are being followed, that means directory-looking ones.
func (x *ChownExecutor) isRoot(path string, wouldTraverseSymlink bool) bool {
	if !wouldTraverseSymlink {
		sep := string(os.PathSeparator)
		looksLikeDir := path == "." || path == ".." ||
			strings.HasSuffix(path, sep) ||
			strings.HasSuffix(path, sep+".") ||
			strings.HasSuffix(path, sep+"..")
		if !looksLikeDir {
			return false
		}
	}

	resolved, err := fsutil.Canonicalize(path, fsutil.CanonicalizeExisting)
	if err != nil || resolved != "/" {
		return false
	}
	if path == "/" {
		x.diagf("it is dangerous to operate recursively on '/'")
	} else {
		x.diagf("it is dangerous to operate recursively on %s (same as '/')", quote(path))
	}
	x.diagf("use --no-preserve-root to override this failsafe")
	return true
}

func (x *ChownExecutor) diagf(format string, args ...any) {
	fmt.Fprintf(x.Diag, "%s: %s\n", x.Tool, fmt.Sprintf(format, args...))
}

// ResolveTraversal reconciles recursion, symlink traversal, and dereference
// options the way chown and chgrp do: without -R no symlinks are traversed,
// and -R alone operates on symlinks themselves unless -H or -L says
// otherwise. The returned bool is the effective dereference setting.
func ResolveTraversal(recursive bool, traverse TraverseSymlinks, dereference, noDereference bool) (TraverseSymlinks, bool, error) {
	deref := -1
	if dereference {
		deref = 1
	} else if noDereference {
		deref = 0
	}
	if recursive {
		if traverse == TraverseNone {
			if deref == 1 {
				return traverse, false, errors.New("-R --dereference requires -H or -L")
			}
			deref = 0
		}
	} else {
		traverse = TraverseNone
	}
	return traverse, deref != 0, nil
}

// ResolveVerbosity maps the --changes, --silent/--quiet, and --verbose flags
// to a level, with the earlier options winning.
func ResolveVerbosity(changes, quiet, verbose bool) VerbosityLevel {
	switch {
	case changes:
		return VerbosityChanges
	case quiet:
		return VerbositySilent
	case verbose:
		return VerbosityVerbose
	}
	return VerbosityNormal
}

type fileID struct {
	dev uint64
	ino uint64
}

func fileIDFromInfo(info os.FileInfo) (fileID, bool) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileID{}, false
	}
	return fileID{dev: uint64(st.Dev), ino: st.Ino}, true
}

func idIn(ids []fileID, id fileID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func userOrID(uid int) string {
	if name, err := ident.UserName(uid); err == nil {
		return name
	}
	return strconv.Itoa(uid)
}

func groupOrID(gid int) string {
	if name, err := ident.GroupName(gid); err == nil {
		return name
	}
	return strconv.Itoa(gid)
}

// quote wraps a path in single quotes for diagnostics.
func quote(path string) string {
	return "'" + path + "'"
}
