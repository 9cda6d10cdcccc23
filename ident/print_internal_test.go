package ident

import (
	"bytes"
	"os"
	"os/user"
	"testing"

	"github.com/pkg/errors"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	h "github.com/gobox/gobox/testhelpers"
)

func TestPrint(t *testing.T) {
	spec.Run(t, "Print", testPrintInternal, spec.Sequential(), spec.Report(report.Terminal{}))
}

func testPrintInternal(t *testing.T, when spec.G, it spec.S) {
	var stdout, stderr *bytes.Buffer

	users := map[string]*user.User{
		"0":     {Uid: "0", Gid: "0", Username: "root"},
		"54321": {Uid: "54321", Gid: "54320", Username: "gbxuser"},
	}
	groups := map[string]*user.Group{
		"0":     {Gid: "0", Name: "root"},
		"54320": {Gid: "54320", Name: "gbxgroup"},
		"54322": {Gid: "54322", Name: "gbxextra"},
	}

	it.Before(func() {
		stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}

		Getuid = func() int { return 54321 }
		Geteuid = func() int { return 54321 }
		Getgid = func() int { return 54320 }
		Getegid = func() int { return 54320 }
		Getgroups = func() ([]int, error) { return []int{54322, 54320}, nil }

		lookupUserID = func(id string) (*user.User, error) {
			if u, ok := users[id]; ok {
				return u, nil
			}
			return nil, errors.Errorf("unknown user ID %s", id)
		}
		lookupUser = func(name string) (*user.User, error) {
			for _, u := range users {
				if u.Username == name {
					return u, nil
				}
			}
			return nil, errors.Errorf("unknown user %s", name)
		}
		lookupGroupID = func(id string) (*user.Group, error) {
			if g, ok := groups[id]; ok {
				return g, nil
			}
			return nil, errors.Errorf("unknown group ID %s", id)
		}
		lookupGroup = func(name string) (*user.Group, error) {
			for _, g := range groups {
				if g.Name == name {
					return g, nil
				}
			}
			return nil, errors.Errorf("unknown group %s", name)
		}
	})

	it.After(func() {
		Getuid, Geteuid = os.Getuid, os.Geteuid
		Getgid, Getegid = os.Getgid, os.Getegid
		Getgroups = os.Getgroups
		lookupUser, lookupUserID = user.Lookup, user.LookupId
		lookupGroup, lookupGroupID = user.LookupGroup, user.LookupGroupId
	})

	newID := func() *IDExecutor {
		return &IDExecutor{Tool: "id", Out: stdout, Diag: stderr}
	}

	when("IDExecutor", func() {
		when("reporting the calling process", func() {
			it("prints the full identity with the primary group first", func() {
				x := newID()
				h.AssertEq(t, x.Exec(), 0)
				h.AssertEq(t, stdout.String(), "uid=54321(gbxuser) gid=54320(gbxgroup) groups=54320(gbxgroup),54322(gbxextra)\n")
				h.AssertEq(t, stderr.String(), "")
			})

			it("adds the effective IDs when they differ", func() {
				Geteuid = func() int { return 0 }
				Getegid = func() int { return 0 }

				x := newID()
				h.AssertEq(t, x.Exec(), 0)
				h.AssertEq(t, stdout.String(), "uid=54321(gbxuser) gid=54320(gbxgroup) euid=0(root) egid=0(root) groups=0(root),54322(gbxextra),54320(gbxgroup)\n")
			})

			it("prints bare numbers for unmapped IDs", func() {
				Getuid = func() int { return 91234 }
				Geteuid = func() int { return 91234 }
				Getgid = func() int { return 91235 }
				Getegid = func() int { return 91235 }
				Getgroups = func() ([]int, error) { return []int{91235}, nil }

				x := newID()
				h.AssertEq(t, x.Exec(), 0)
				h.AssertEq(t, stdout.String(), "uid=91234 gid=91235 groups=91235\n")
			})

			it("prints the effective uid alone", func() {
				Geteuid = func() int { return 0 }

				x := newID()
				x.OnlyUser = true
				h.AssertEq(t, x.Exec(), 0)
				h.AssertEq(t, stdout.String(), "0\n")
			})

			it("prints the real uid alone when asked", func() {
				Geteuid = func() int { return 0 }

				x := newID()
				x.OnlyUser = true
				x.Real = true
				h.AssertEq(t, x.Exec(), 0)
				h.AssertEq(t, stdout.String(), "54321\n")
			})

			it("prints the user name alone", func() {
				x := newID()
				x.OnlyUser = true
				x.NamesOnly = true
				h.AssertEq(t, x.Exec(), 0)
				h.AssertEq(t, stdout.String(), "gbxuser\n")
			})

			it("falls back to the number for a nameless uid", func() {
				Geteuid = func() int { return 91234 }

				x := newID()
				x.OnlyUser = true
				x.NamesOnly = true
				h.AssertEq(t, x.Exec(), 1)
				h.AssertEq(t, stdout.String(), "91234\n")
				h.AssertEq(t, stderr.String(), "id: cannot find name for user ID 91234\n")
			})

			it("prints the group name alone", func() {
				x := newID()
				x.OnlyGroup = true
				x.NamesOnly = true
				h.AssertEq(t, x.Exec(), 0)
				h.AssertEq(t, stdout.String(), "gbxgroup\n")
			})

			it("prints all group IDs", func() {
				x := newID()
				x.AllGroups = true
				h.AssertEq(t, x.Exec(), 0)
				h.AssertEq(t, stdout.String(), "54320 54322\n")
			})

			it("prints all group names", func() {
				x := newID()
				x.AllGroups = true
				x.NamesOnly = true
				h.AssertEq(t, x.Exec(), 0)
				h.AssertEq(t, stdout.String(), "gbxgroup gbxextra\n")
			})

			it("delimits groups with NUL when asked", func() {
				x := newID()
				x.AllGroups = true
				x.Zero = true
				h.AssertEq(t, x.Exec(), 0)
				h.AssertEq(t, stdout.String(), "54320\x0054322\x00")
			})
		})

		when("reporting named users", func() {
			it("prints the user's identity without effective IDs", func() {
				x := newID()
				x.Users = []string{"gbxuser"}
				h.AssertEq(t, x.Exec(), 0)
				h.AssertEq(t, stdout.String(), "uid=54321(gbxuser) gid=54320(gbxgroup) groups=54320(gbxgroup)\n")
			})

			it("reports unknown users and keeps going", func() {
				x := newID()
				x.Users = []string{"gbx-missing", "gbxuser"}
				h.AssertEq(t, x.Exec(), 1)
				h.AssertEq(t, stderr.String(), "id: 'gbx-missing': no such user\n")
				h.AssertEq(t, stdout.String(), "uid=54321(gbxuser) gid=54320(gbxgroup) groups=54320(gbxgroup)\n")
			})
		})
	})

	when("GroupsExecutor", func() {
		it("prints the process group names", func() {
			x := &GroupsExecutor{Tool: "groups", Out: stdout, Diag: stderr}
			h.AssertEq(t, x.Exec(), 0)
			h.AssertEq(t, stdout.String(), "gbxgroup gbxextra\n")
		})

		it("falls back to numbers for nameless groups", func() {
			Getegid = func() int { return 91236 }
			Getgroups = func() ([]int, error) { return []int{91236}, nil }

			x := &GroupsExecutor{Tool: "groups", Out: stdout, Diag: stderr}
			h.AssertEq(t, x.Exec(), 0)
			h.AssertEq(t, stdout.String(), "91236\n")
		})

		it("labels the report for a named user", func() {
			x := &GroupsExecutor{Tool: "groups", Users: []string{"gbxuser"}, Out: stdout, Diag: stderr}
			h.AssertEq(t, x.Exec(), 0)
			h.AssertEq(t, stdout.String(), "gbxuser : gbxgroup\n")
		})

		it("reports unknown users", func() {
			x := &GroupsExecutor{Tool: "groups", Users: []string{"gbx-missing"}, Out: stdout, Diag: stderr}
			h.AssertEq(t, x.Exec(), 1)
			h.AssertEq(t, stderr.String(), "groups: 'gbx-missing': no such user\n")
		})
	})
}
