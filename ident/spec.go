package ident

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseOwnerSpec parses an ownership spec of the form "USER", "USER:GROUP",
// ":GROUP", or "USER:". Either side may be empty, leaving that ID as -1
// (unchanged), except that a user name with a trailing separator selects the
// user's login group. The legacy "USER.GROUP" form is retried when the spec
// does not resolve as written and contains a '.' but no ':'.
func ParseOwnerSpec(spec string) (uid, gid int, err error) {
	return parseOwnerSpec(spec, ":")
}

func parseOwnerSpec(spec, sep string) (int, int, error) {
	usr, grp, cut := strings.Cut(spec, sep)

	uid := -1
	if usr != "" {
		var err error
		uid, err = ResolveUser(usr)
		if err != nil {
			if strings.Contains(spec, ".") && !strings.Contains(spec, ":") && sep == ":" {
				// may be the old-style "username.groupname" form
				return parseOwnerSpec(spec, ".")
			}
			return -1, -1, errors.Errorf("invalid user: '%s'", spec)
		}
	}

	gid := -1
	switch {
	case grp != "":
		var err error
		gid, err = ResolveGroup(grp)
		if err != nil {
			return -1, -1, errors.Errorf("invalid group: '%s'", spec)
		}
	case cut && usr != "":
		// "user:" selects the user's login group
		u, err := LookupUserSpec(usr)
		if err != nil {
			return -1, -1, errors.Errorf("invalid spec: '%s'", spec)
		}
		if gid, err = strconv.Atoi(u.Gid); err != nil {
			return -1, -1, errors.Errorf("invalid spec: '%s'", spec)
		}
	}
	return uid, gid, nil
}
