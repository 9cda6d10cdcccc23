package perms_test

import (
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"golang.org/x/sys/unix"

	"github.com/gobox/gobox/perms"
	h "github.com/gobox/gobox/testhelpers"
)

func TestMode(t *testing.T) {
	spec.Run(t, "Mode", testMode, spec.Report(report.Terminal{}))
}

func testMode(t *testing.T, when spec.G, it spec.S) {
	when("ParseNumeric", func() {
		it("replaces the mode", func() {
			mode, err := perms.ParseNumeric(0o644, "755", false)
			h.AssertNil(t, err)
			h.AssertEq(t, mode, uint32(0o755))
		})

		it("adds bits with a leading plus", func() {
			mode, err := perms.ParseNumeric(0o644, "+111", false)
			h.AssertNil(t, err)
			h.AssertEq(t, mode, uint32(0o755))
		})

		it("clears bits with a leading minus", func() {
			mode, err := perms.ParseNumeric(0o666, "-022", false)
			h.AssertNil(t, err)
			h.AssertEq(t, mode, uint32(0o644))
		})

		it("keeps setuid and setgid on directories", func() {
			mode, err := perms.ParseNumeric(0o2755, "644", true)
			h.AssertNil(t, err)
			h.AssertEq(t, mode, uint32(0o2644))
		})

		it("clears setgid on directories for a five digit mode", func() {
			mode, err := perms.ParseNumeric(0o2755, "00644", true)
			h.AssertNil(t, err)
			h.AssertEq(t, mode, uint32(0o644))
		})

		it("clears setgid on directories for an assignment", func() {
			mode, err := perms.ParseNumeric(0o2755, "=644", true)
			h.AssertNil(t, err)
			h.AssertEq(t, mode, uint32(0o644))
		})

		it("rejects an oversized mode", func() {
			_, err := perms.ParseNumeric(0, "17777", false)
			h.AssertError(t, err, "mode is too large (17777 > 7777)")
		})

		it("rejects non-octal digits", func() {
			_, err := perms.ParseNumeric(0, "79", false)
			h.AssertError(t, err, "invalid mode: '79'")
		})
	})

	when("ParseSymbolic", func() {
		it("adds bits for one class", func() {
			mode, err := perms.ParseSymbolic(0, "u+rwx", 0, false)
			h.AssertNil(t, err)
			h.AssertEq(t, mode, uint32(0o700))
		})

		it("removes bits from several classes", func() {
			mode, err := perms.ParseSymbolic(0o777, "go-w", 0, false)
			h.AssertNil(t, err)
			h.AssertEq(t, mode, uint32(0o755))
		})

		it("assigns bits to all classes", func() {
			mode, err := perms.ParseSymbolic(0o754, "a=r", 0o22, false)
			h.AssertNil(t, err)
			h.AssertEq(t, mode, uint32(0o444))
		})

		it("respects the umask when no class is named", func() {
			mode, err := perms.ParseSymbolic(0, "+w", 0o22, false)
			h.AssertNil(t, err)
			h.AssertEq(t, mode, uint32(0o200))
		})

		it("applies X to directories", func() {
			mode, err := perms.ParseSymbolic(0o644, "a+X", 0, true)
			h.AssertNil(t, err)
			h.AssertEq(t, mode, uint32(0o755))
		})

		it("skips X on files with no execute bit", func() {
			mode, err := perms.ParseSymbolic(0o644, "a+X", 0, false)
			h.AssertNil(t, err)
			h.AssertEq(t, mode, uint32(0o644))
		})

		it("applies X to files already executable somewhere", func() {
			mode, err := perms.ParseSymbolic(0o744, "a+X", 0, false)
			h.AssertNil(t, err)
			h.AssertEq(t, mode, uint32(0o755))
		})

		it("sets setuid through s", func() {
			mode, err := perms.ParseSymbolic(0o755, "u+s", 0, false)
			h.AssertNil(t, err)
			h.AssertEq(t, mode, uint32(0o4755))
		})

		it("sets the sticky bit through t", func() {
			mode, err := perms.ParseSymbolic(0o755, "+t", 0, false)
			h.AssertNil(t, err)
			h.AssertEq(t, mode, uint32(0o1755))
		})

		it("copies one class to another", func() {
			mode, err := perms.ParseSymbolic(0o750, "o=g", 0, false)
			h.AssertNil(t, err)
			h.AssertEq(t, mode, uint32(0o755))
		})

		it("keeps setgid on directories through an assignment", func() {
			mode, err := perms.ParseSymbolic(0o2775, "a=rx", 0, true)
			h.AssertNil(t, err)
			h.AssertEq(t, mode, uint32(0o2555))
		})

		it("assigns s directly when spelled out", func() {
			mode, err := perms.ParseSymbolic(0o2775, "a=rxs", 0, true)
			h.AssertNil(t, err)
			h.AssertEq(t, mode, uint32(0o6555))
		})

		it("rejects a clause with no operator", func() {
			_, err := perms.ParseSymbolic(0, "u", 0, false)
			h.AssertError(t, err, "invalid mode: 'u'")
		})

		it("rejects an unknown operator", func() {
			_, err := perms.ParseSymbolic(0, "u*w", 0, false)
			h.AssertError(t, err, "invalid mode: 'u*w'")
		})
	})

	when("ParseModeSpec", func() {
		it("parses an octal spec", func() {
			mode, err := perms.ParseModeSpec("0755", 0)
			h.AssertNil(t, err)
			h.AssertEq(t, mode, uint32(0o755))
		})

		it("applies comma separated clauses in order", func() {
			mode, err := perms.ParseModeSpec("u=rwx,go=rx", 0)
			h.AssertNil(t, err)
			h.AssertEq(t, mode, uint32(0o755))
		})

		it("ignores the process umask", func() {
			mode, err := perms.ParseModeSpec("+w", 0o644)
			h.AssertNil(t, err)
			h.AssertEq(t, mode, uint32(0o666))
		})

		it("propagates clause errors", func() {
			_, err := perms.ParseModeSpec("u=rwx,u", 0)
			h.AssertError(t, err, "invalid mode: 'u'")
		})
	})

	when("DisplayPermissions", func() {
		it("renders plain permission bits", func() {
			h.AssertEq(t, perms.DisplayPermissions(0o755, false), "rwxr-xr-x")
			h.AssertEq(t, perms.DisplayPermissions(0o644, false), "rw-r--r--")
			h.AssertEq(t, perms.DisplayPermissions(0, false), "---------")
		})

		it("renders setuid and setgid", func() {
			h.AssertEq(t, perms.DisplayPermissions(0o4755, false), "rwsr-xr-x")
			h.AssertEq(t, perms.DisplayPermissions(0o4644, false), "rwSr--r--")
			h.AssertEq(t, perms.DisplayPermissions(0o2755, false), "rwxr-sr-x")
		})

		it("renders the sticky bit", func() {
			h.AssertEq(t, perms.DisplayPermissions(0o1777, false), "rwxrwxrwt")
			h.AssertEq(t, perms.DisplayPermissions(0o1666, false), "rw-rw-rwT")
		})

		it("prefixes the file type when asked", func() {
			h.AssertEq(t, perms.DisplayPermissions(unix.S_IFDIR|0o755, true), "drwxr-xr-x")
			h.AssertEq(t, perms.DisplayPermissions(unix.S_IFREG|0o644, true), "-rw-r--r--")
			h.AssertEq(t, perms.DisplayPermissions(unix.S_IFLNK|0o777, true), "lrwxrwxrwx")
			h.AssertEq(t, perms.DisplayPermissions(unix.S_IFCHR|0o600, true), "crw-------")
		})
	})

	when("SanitizeModeArgs", func() {
		it("extracts a leading-dash symbolic mode", func() {
			args, mode := perms.SanitizeModeArgs([]string{"-rwx", "file"})
			h.AssertEq(t, args, []string{"file"})
			h.AssertEq(t, mode, "-rwx")
		})

		it("extracts a leading-dash octal mode", func() {
			args, mode := perms.SanitizeModeArgs([]string{"-755", "file"})
			h.AssertEq(t, args, []string{"file"})
			h.AssertEq(t, mode, "-755")
		})

		it("skips options that are not modes", func() {
			args, mode := perms.SanitizeModeArgs([]string{"-R", "-w", "file"})
			h.AssertEq(t, args, []string{"-R", "file"})
			h.AssertEq(t, mode, "-w")
		})

		it("stops at the option terminator", func() {
			args, mode := perms.SanitizeModeArgs([]string{"--", "-w", "file"})
			h.AssertEq(t, args, []string{"--", "-w", "file"})
			h.AssertEq(t, mode, "")
		})
	})

	when("GetUmask", func() {
		it("matches the process umask", func() {
			h.AssertEq(t, perms.GetUmask(), uint32(h.GetUmask(t)))
		})
	})
}
