package fsutil_test

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/gobox/gobox/internal/fsutil"
	h "github.com/gobox/gobox/testhelpers"
)

func TestMktemp(t *testing.T) {
	spec.Run(t, "Mktemp", testMktemp, spec.Report(report.Terminal{}))
}

func testMktemp(t *testing.T, when spec.G, it spec.S) {
	var tmpDir string

	it.Before(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "gobox-mktemp")
		h.AssertNil(t, err)
	})

	it.After(func() {
		_ = os.RemoveAll(tmpDir)
	})

	when("ParseTempTemplate", func() {
		it("splits around the last run of X's", func() {
			tpl, err := fsutil.ParseTempTemplate("aXXXXb", "", false)
			h.AssertNil(t, err)

			path, err := tpl.Make(tmpDir, false, true)
			h.AssertNil(t, err)
			h.AssertMatch(t, path, "^"+regexp.QuoteMeta(tmpDir)+"/a[A-Za-z0-9]{4}b$")
		})

		it("appends the extra suffix", func() {
			tpl, err := fsutil.ParseTempTemplate("tmp.XXXX", ".txt", true)
			h.AssertNil(t, err)

			path, err := tpl.Make("", false, true)
			h.AssertNil(t, err)
			h.AssertMatch(t, path, `^tmp\.[A-Za-z0-9]{4}\.txt$`)
		})

		it("rejects templates with too few X's", func() {
			_, err := fsutil.ParseTempTemplate("fooXX", "", false)
			h.AssertError(t, err, "too few X's in template 'fooXX'")
		})

		it("rejects a suffix after a non-X tail", func() {
			_, err := fsutil.ParseTempTemplate("fileXXXX.txt", ".bak", true)
			h.AssertError(t, err, "with --suffix, template 'fileXXXX.txt' must end in X")
		})

		it("rejects a suffix containing a separator", func() {
			_, err := fsutil.ParseTempTemplate("XXXX", "a/b", true)
			h.AssertError(t, err, "invalid suffix 'a/b', contains directory separator")
		})
	})

	when("Make", func() {
		it("creates a file", func() {
			tpl, err := fsutil.ParseTempTemplate("tmp.XXXXXXXXXX", "", false)
			h.AssertNil(t, err)

			path, err := tpl.Make(tmpDir, false, false)
			h.AssertNil(t, err)
			info, err := os.Stat(path)
			h.AssertNil(t, err)
			h.AssertEq(t, info.Mode().IsRegular(), true)
			h.AssertEq(t, filepath.Dir(path), tmpDir)
		})

		it("creates a directory", func() {
			tpl, err := fsutil.ParseTempTemplate("tmp.XXXXXXXXXX", "", false)
			h.AssertNil(t, err)

			path, err := tpl.Make(tmpDir, true, false)
			h.AssertNil(t, err)
			info, err := os.Stat(path)
			h.AssertNil(t, err)
			h.AssertEq(t, info.IsDir(), true)
		})

		it("names each creation differently", func() {
			tpl, err := fsutil.ParseTempTemplate("tmp.XXXXXXXXXX", "", false)
			h.AssertNil(t, err)

			first, err := tpl.Make(tmpDir, false, false)
			h.AssertNil(t, err)
			second, err := tpl.Make(tmpDir, false, false)
			h.AssertNil(t, err)
			if first == second {
				t.Fatalf("expected distinct names, got %s twice", first)
			}
		})

		it("creates nothing on a dry run", func() {
			tpl, err := fsutil.ParseTempTemplate("tmp.XXXXXXXXXX", "", false)
			h.AssertNil(t, err)

			path, err := tpl.Make(tmpDir, false, true)
			h.AssertNil(t, err)
			h.AssertPathDoesNotExist(t, path)
		})

		it("fails on an unwritable directory", func() {
			tpl, err := fsutil.ParseTempTemplate("tmp.XXXXXXXXXX", "", false)
			h.AssertNil(t, err)

			_, err = tpl.Make(filepath.Join(tmpDir, "nope"), false, false)
			h.AssertNotNil(t, err)
		})
	})
}
