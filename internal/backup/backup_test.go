package backup_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/gobox/gobox/internal/backup"
	h "github.com/gobox/gobox/testhelpers"
)

func TestBackup(t *testing.T) {
	spec.Run(t, "Backup", testBackup, spec.Sequential(), spec.Report(report.Terminal{}))
}

func testBackup(t *testing.T, when spec.G, it spec.S) {
	it.Before(func() {
		os.Unsetenv("VERSION_CONTROL")
		os.Unsetenv("SIMPLE_BACKUP_SUFFIX")
	})

	it.After(func() {
		os.Unsetenv("VERSION_CONTROL")
		os.Unsetenv("SIMPLE_BACKUP_SUFFIX")
	})

	when("DetermineMode", func() {
		it("selects no backups by default", func() {
			mode, err := backup.DetermineMode(false, "", false)
			h.AssertNil(t, err)
			h.AssertEq(t, mode, backup.ModeNone)
		})

		it("selects existing for the short option", func() {
			mode, err := backup.DetermineMode(false, "", true)
			h.AssertNil(t, err)
			h.AssertEq(t, mode, backup.ModeExisting)
		})

		it("maps each documented method", func() {
			for method, want := range map[string]backup.Mode{
				"simple":   backup.ModeSimple,
				"never":    backup.ModeSimple,
				"numbered": backup.ModeNumbered,
				"t":        backup.ModeNumbered,
				"existing": backup.ModeExisting,
				"nil":      backup.ModeExisting,
				"none":     backup.ModeNone,
				"off":      backup.ModeNone,
			} {
				mode, err := backup.DetermineMode(true, method, false)
				h.AssertNil(t, err)
				h.AssertEq(t, mode, want)
			}
		})

		it("accepts unambiguous prefixes", func() {
			mode, err := backup.DetermineMode(true, "num", false)
			h.AssertNil(t, err)
			h.AssertEq(t, mode, backup.ModeNumbered)
		})

		it("rejects ambiguous prefixes", func() {
			_, err := backup.DetermineMode(true, "n", false)
			h.AssertError(t, err, "ambiguous argument 'n' for 'backup type'")
			h.AssertError(t, err, "Valid arguments are:")
		})

		it("rejects unknown methods", func() {
			_, err := backup.DetermineMode(true, "bogus", false)
			h.AssertError(t, err, "invalid argument 'bogus' for 'backup type'")
		})

		it("defaults to existing without a method", func() {
			mode, err := backup.DetermineMode(true, "", false)
			h.AssertNil(t, err)
			h.AssertEq(t, mode, backup.ModeExisting)
		})

		it("falls back to VERSION_CONTROL", func() {
			os.Setenv("VERSION_CONTROL", "numbered")

			mode, err := backup.DetermineMode(true, "", false)
			h.AssertNil(t, err)
			h.AssertEq(t, mode, backup.ModeNumbered)
		})

		it("blames VERSION_CONTROL for bad values", func() {
			os.Setenv("VERSION_CONTROL", "junk")

			_, err := backup.DetermineMode(true, "", false)
			h.AssertError(t, err, "invalid argument 'junk' for '$VERSION_CONTROL'")
		})

		it("lets an explicit method override VERSION_CONTROL", func() {
			os.Setenv("VERSION_CONTROL", "numbered")

			mode, err := backup.DetermineMode(true, "simple", false)
			h.AssertNil(t, err)
			h.AssertEq(t, mode, backup.ModeSimple)
		})
	})

	when("DetermineSuffix", func() {
		it("prefers the supplied suffix", func() {
			h.AssertEq(t, backup.DetermineSuffix(".orig", true), ".orig")
		})

		it("falls back to SIMPLE_BACKUP_SUFFIX", func() {
			os.Setenv("SIMPLE_BACKUP_SUFFIX", ".bak")
			h.AssertEq(t, backup.DetermineSuffix("", false), ".bak")
		})

		it("defaults to a tilde", func() {
			h.AssertEq(t, backup.DetermineSuffix("", false), "~")
		})
	})

	when("Path", func() {
		var tmpDir string

		it.Before(func() {
			var err error
			tmpDir, err = os.MkdirTemp("", "gobox-backup")
			h.AssertNil(t, err)
		})

		it.After(func() {
			_ = os.RemoveAll(tmpDir)
		})

		it("returns nothing for ModeNone", func() {
			h.AssertEq(t, backup.Path(backup.ModeNone, filepath.Join(tmpDir, "f"), "~"), "")
		})

		it("appends the suffix for simple backups", func() {
			path := filepath.Join(tmpDir, "f")
			h.AssertEq(t, backup.Path(backup.ModeSimple, path, ".bak"), path+".bak")
		})

		it("starts numbering at one", func() {
			path := filepath.Join(tmpDir, "f")
			h.Mkfile(t, "data", path)

			h.AssertEq(t, backup.Path(backup.ModeNumbered, path, "~"), path+".~1~")
		})

		it("numbers past the highest existing backup", func() {
			path := filepath.Join(tmpDir, "f")
			h.Mkfile(t, "data", path, path+".~1~", path+".~3~")

			h.AssertEq(t, backup.Path(backup.ModeNumbered, path, "~"), path+".~4~")
		})

		it("makes simple backups under existing when none are numbered", func() {
			path := filepath.Join(tmpDir, "f")
			h.Mkfile(t, "data", path)

			h.AssertEq(t, backup.Path(backup.ModeExisting, path, "~"), path+"~")
		})

		it("keeps numbering under existing once started", func() {
			path := filepath.Join(tmpDir, "f")
			h.Mkfile(t, "data", path, path+".~2~")

			h.AssertEq(t, backup.Path(backup.ModeExisting, path, "~"), path+".~3~")
		})

		it("ignores siblings that are not numbered backups", func() {
			path := filepath.Join(tmpDir, "f")
			h.Mkfile(t, "data", path, path+".~x~", path+".~~")

			h.AssertEq(t, backup.Path(backup.ModeExisting, path, "~"), path+"~")
		})
	})
}
