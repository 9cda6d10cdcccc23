// Package ident resolves users, groups, and the identity of the calling
// process. Process IDs are read through package-level function variables so
// tests can impersonate arbitrary users without privileges.
package ident

import (
	"os"
	"os/user"
	"strconv"

	"github.com/pkg/errors"
)

// Process identity reads. Tests may swap these out.
var (
	Getuid    = os.Getuid
	Geteuid   = os.Geteuid
	Getgid    = os.Getgid
	Getegid   = os.Getegid
	Getgroups = os.Getgroups
)

// User and group database reads. Tests may swap these out.
var (
	lookupUser    = user.Lookup
	lookupUserID  = user.LookupId
	lookupGroup   = user.LookupGroup
	lookupGroupID = user.LookupGroupId
)

// UserName returns the name for uid.
func UserName(uid int) (string, error) {
	u, err := lookupUserID(strconv.Itoa(uid))
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

// GroupName returns the name for gid.
func GroupName(gid int) (string, error) {
	g, err := lookupGroupID(strconv.Itoa(gid))
	if err != nil {
		return "", err
	}
	return g.Name, nil
}

// UserID returns the uid for a user name.
func UserID(name string) (int, error) {
	u, err := lookupUser(name)
	if err != nil {
		return -1, err
	}
	return strconv.Atoi(u.Uid)
}

// GroupID returns the gid for a group name.
func GroupID(name string) (int, error) {
	g, err := lookupGroup(name)
	if err != nil {
		return -1, err
	}
	return strconv.Atoi(g.Gid)
}

// ResolveUser resolves spec to a uid. All-digit specs resolve as raw IDs,
// mapped or not; anything else must name a known user.
func ResolveUser(spec string) (int, error) {
	if uid, err := strconv.Atoi(spec); err == nil && uid >= 0 {
		return uid, nil
	}
	uid, err := UserID(spec)
	if err != nil {
		return -1, errors.Errorf("invalid user: '%s'", spec)
	}
	return uid, nil
}

// ResolveGroup resolves spec to a gid with the same numeric-first rule as
// ResolveUser.
func ResolveGroup(spec string) (int, error) {
	if gid, err := strconv.Atoi(spec); err == nil && gid >= 0 {
		return gid, nil
	}
	gid, err := GroupID(spec)
	if err != nil {
		return -1, errors.Errorf("invalid group: '%s'", spec)
	}
	return gid, nil
}

// LookupUserSpec resolves spec to a known user, by ID when all digits,
// otherwise by name. Unlike ResolveUser an unmapped numeric ID is an error.
func LookupUserSpec(spec string) (*user.User, error) {
	if _, err := strconv.Atoi(spec); err == nil {
		return lookupUserID(spec)
	}
	return lookupUser(spec)
}

// ProcessGroups returns the supplementary groups of the calling process with
// the effective gid first.
func ProcessGroups() ([]int, error) {
	groups, err := Getgroups()
	if err != nil {
		return nil, err
	}
	return GroupsGNU(groups, Getegid()), nil
}

// UserGroups returns the groups a named user belongs to, primary group
// first.
func UserGroups(u *user.User) ([]int, error) {
	ids, err := u.GroupIds()
	if err != nil {
		return nil, err
	}
	groups := make([]int, 0, len(ids))
	for _, id := range ids {
		gid, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		groups = append(groups, gid)
	}
	primary, err := strconv.Atoi(u.Gid)
	if err != nil {
		return groups, nil
	}
	return GroupsGNU(groups, primary), nil
}

// GroupsGNU moves egid to the front of groups, preserving the order of the
// rest, inserting it when absent.
func GroupsGNU(groups []int, egid int) []int {
	for i, g := range groups {
		if g != egid {
			continue
		}
		out := make([]int, 0, len(groups))
		out = append(out, egid)
		out = append(out, groups[:i]...)
		return append(out, groups[i+1:]...)
	}
	return append([]int{egid}, groups...)
}
