package ident

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"strconv"
	"strings"
)

// IDExecutor prints process or user identities the way id(1) does. Reports
// go to Out; diagnostics go to Diag prefixed with the tool name.
type IDExecutor struct {
	Tool      string
	OnlyUser  bool
	OnlyGroup bool
	AllGroups bool
	NamesOnly bool
	Real      bool
	Zero      bool
	Users     []string
	Out       io.Writer
	Diag      io.Writer
}

// Exec prints one report per requested user, or one for the calling process
// when no users are named, and returns the exit status.
func (x *IDExecutor) Exec() int {
	if x.Out == nil {
		x.Out = os.Stdout
	}
	if x.Diag == nil {
		x.Diag = os.Stderr
	}
	if len(x.Users) == 0 {
		return x.printProcess()
	}
	status := 0
	for _, spec := range x.Users {
		u, err := LookupUserSpec(spec)
		if err != nil {
			x.diagf("'%s': no such user", spec)
			status = 1
			continue
		}
		status |= x.printUser(u)
	}
	return status
}

func (x *IDExecutor) printProcess() int {
	uid, gid := Getuid(), Getgid()
	euid, egid := Geteuid(), Getegid()
	switch {
	case x.OnlyUser:
		id := euid
		if x.Real {
			id = uid
		}
		return x.printOne(id, "user")
	case x.OnlyGroup:
		id := egid
		if x.Real {
			id = gid
		}
		return x.printOne(id, "group")
	case x.AllGroups:
		groups, err := ProcessGroups()
		if err != nil {
			x.diagf("cannot get groups: %s", err)
			return 1
		}
		return x.printGroupList(groups)
	default:
		groups, err := ProcessGroups()
		if err != nil {
			x.diagf("cannot get groups: %s", err)
			return 1
		}
		fmt.Fprintf(x.Out, "%s%s", formatFull(uid, gid, euid, egid, groups), x.terminator())
		return 0
	}
}

func (x *IDExecutor) printUser(u *user.User) int {
	uid, _ := strconv.Atoi(u.Uid)
	gid, _ := strconv.Atoi(u.Gid)
	switch {
	case x.OnlyUser:
		return x.printOne(uid, "user")
	case x.OnlyGroup:
		return x.printOne(gid, "group")
	case x.AllGroups:
		groups, err := UserGroups(u)
		if err != nil {
			x.diagf("cannot get groups: %s", err)
			return 1
		}
		return x.printGroupList(groups)
	default:
		groups, err := UserGroups(u)
		if err != nil {
			x.diagf("cannot get groups: %s", err)
			return 1
		}
		// A named user has no separate effective IDs.
		fmt.Fprintf(x.Out, "%s%s", formatFull(uid, gid, uid, gid, groups), x.terminator())
		return 0
	}
}

func (x *IDExecutor) printOne(id int, kind string) int {
	if !x.NamesOnly {
		fmt.Fprintf(x.Out, "%d%s", id, x.terminator())
		return 0
	}
	name, err := nameFor(id, kind)
	if err != nil {
		x.diagf("cannot find name for %s ID %d", kind, id)
		fmt.Fprintf(x.Out, "%d%s", id, x.terminator())
		return 1
	}
	fmt.Fprintf(x.Out, "%s%s", name, x.terminator())
	return 0
}

func (x *IDExecutor) printGroupList(groups []int) int {
	status := 0
	sep := " "
	if x.Zero {
		sep = "\x00"
	}
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		if !x.NamesOnly {
			parts = append(parts, strconv.Itoa(g))
			continue
		}
		name, err := GroupName(g)
		if err != nil {
			x.diagf("cannot find name for group ID %d", g)
			parts = append(parts, strconv.Itoa(g))
			status = 1
			continue
		}
		parts = append(parts, name)
	}
	fmt.Fprintf(x.Out, "%s%s", strings.Join(parts, sep), x.terminator())
	return status
}

func (x *IDExecutor) terminator() string {
	if x.Zero {
		return "\x00"
	}
	return "\n"
}

func (x *IDExecutor) diagf(format string, args ...any) {
	fmt.Fprintf(x.Diag, "%s: %s\n", x.Tool, fmt.Sprintf(format, args...))
}

// formatFull renders the default id(1) line: real uid and gid first, the
// effective pair only where it differs, then every group.
func formatFull(uid, gid, euid, egid int, groups []int) string {
	var b strings.Builder
	b.WriteString("uid=" + userEntry(uid))
	b.WriteString(" gid=" + groupEntry(gid))
	if euid != uid {
		b.WriteString(" euid=" + userEntry(euid))
	}
	if egid != gid {
		b.WriteString(" egid=" + groupEntry(egid))
	}
	if len(groups) > 0 {
		b.WriteString(" groups=")
		for i, g := range groups {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(groupEntry(g))
		}
	}
	return b.String()
}

func userEntry(uid int) string {
	if name, err := UserName(uid); err == nil {
		return fmt.Sprintf("%d(%s)", uid, name)
	}
	return strconv.Itoa(uid)
}

func groupEntry(gid int) string {
	if name, err := GroupName(gid); err == nil {
		return fmt.Sprintf("%d(%s)", gid, name)
	}
	return strconv.Itoa(gid)
}

func nameFor(id int, kind string) (string, error) {
	if kind == "user" {
		return UserName(id)
	}
	return GroupName(id)
}

// GroupsExecutor prints group memberships the way groups(1) does: a bare
// name list for the process, or "user : groups" lines for named users.
type GroupsExecutor struct {
	Tool  string
	Users []string
	Out   io.Writer
	Diag  io.Writer
}

func (x *GroupsExecutor) Exec() int {
	if x.Out == nil {
		x.Out = os.Stdout
	}
	if x.Diag == nil {
		x.Diag = os.Stderr
	}
	if len(x.Users) == 0 {
		groups, err := ProcessGroups()
		if err != nil {
			x.diagf("cannot get groups: %s", err)
			return 1
		}
		fmt.Fprintln(x.Out, joinGroupNames(groups))
		return 0
	}
	status := 0
	for _, spec := range x.Users {
		u, err := LookupUserSpec(spec)
		if err != nil {
			x.diagf("'%s': no such user", spec)
			status = 1
			continue
		}
		groups, err := UserGroups(u)
		if err != nil {
			x.diagf("cannot get groups: %s", err)
			status = 1
			continue
		}
		fmt.Fprintf(x.Out, "%s : %s\n", u.Username, joinGroupNames(groups))
	}
	return status
}

func (x *GroupsExecutor) diagf(format string, args ...any) {
	fmt.Fprintf(x.Diag, "%s: %s\n", x.Tool, fmt.Sprintf(format, args...))
}

func joinGroupNames(groups []int) string {
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		if name, err := GroupName(g); err == nil {
			parts = append(parts, name)
		} else {
			parts = append(parts, strconv.Itoa(g))
		}
	}
	return strings.Join(parts, " ")
}
