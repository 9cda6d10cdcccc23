package kmod

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	h "github.com/gobox/gobox/testhelpers"
)

func TestKmodInternal(t *testing.T) {
	spec.Run(t, "KmodInternal", testKmodInternal, spec.Sequential(), spec.Report(report.Terminal{}))
}

func testKmodInternal(t *testing.T, when spec.G, it spec.S) {
	when("parseLoaded", func() {
		it("parses the module table row format", func() {
			modules, err := parseLoaded(strings.NewReader(strings.Join([]string{
				"gbxext 1234567 3 gbxa,gbxb, Live 0xffffffffc0a00000",
				"gbxloop 40960 0 - Live 0xffffffffc09e0000",
				"truncated 1",
			}, "\n") + "\n"))
			h.AssertNil(t, err)
			h.AssertEq(t, modules, []Module{
				{Name: "gbxext", Size: 1234567, Refcount: 3, UsedBy: []string{"gbxa", "gbxb"}, State: "Live", Offset: "0xffffffffc0a00000"},
				{Name: "gbxloop", Size: 40960, State: "Live", Offset: "0xffffffffc09e0000"},
			})
		})
	})

	when("Loaded", func() {
		var tmpDir string
		var prevProc string

		it.Before(func() {
			var err error
			tmpDir, err = os.MkdirTemp("", "gobox-proc")
			h.AssertNil(t, err)
			prevProc = procModules
			procModules = filepath.Join(tmpDir, "modules")
			h.Mkfile(t, "gbx_first 1024 0 - Live 0x0\ngbx_second 2048 1 gbx_first, Live 0x0\n", procModules)
		})

		it.After(func() {
			procModules = prevProc
			_ = os.RemoveAll(tmpDir)
		})

		it("reads the module table", func() {
			modules, err := Loaded()
			h.AssertNil(t, err)
			h.AssertEq(t, len(modules), 2)
			h.AssertEq(t, modules[0].Name, "gbx_first")
			h.AssertEq(t, modules[1].UsedBy, []string{"gbx_first"})
		})

		it("matches either dash spelling", func() {
			loaded, err := IsLoaded("gbx-first")
			h.AssertNil(t, err)
			h.AssertEq(t, loaded, true)

			loaded, err = IsLoaded("gbx_absent")
			h.AssertNil(t, err)
			h.AssertEq(t, loaded, false)
		})

		it("propagates a missing table", func() {
			procModules = filepath.Join(tmpDir, "nope")
			_, err := Loaded()
			h.AssertNotNil(t, err)
		})
	})

	when("Conf", func() {
		it("parses modprobe directives", func() {
			c := newConf()
			c.parse(strings.NewReader(strings.Join([]string{
				"# comment",
				"",
				`options gbx-mod index=1 \`,
				"        id=Gobox",
				"options gbx_mod power_save=1",
				"alias net-pf-99 gbx_mod",
				"blacklist gbx-noisy",
				"install gbx-wrapped /sbin/gbx-helper --load",
				"remove gbx-wrapped /sbin/gbx-helper --unload",
				"bogus directive ignored",
			}, "\n")))

			h.AssertEq(t, c.Options["gbx_mod"], []string{"index=1", "id=Gobox", "power_save=1"})
			h.AssertEq(t, c.Aliases, []Alias{{Pattern: "net-pf-99", Name: "gbx_mod"}})
			h.AssertEq(t, c.Blacklist["gbx_noisy"], true)
			h.AssertEq(t, c.Installs["gbx_wrapped"], "/sbin/gbx-helper --load")
			h.AssertEq(t, c.Removes["gbx_wrapped"], "/sbin/gbx-helper --unload")
		})
	})

	when("LoadConf", func() {
		var tmpDir string
		var prevDirs []string

		it.Before(func() {
			var err error
			tmpDir, err = os.MkdirTemp("", "gobox-conf")
			h.AssertNil(t, err)
			h.Mkdir(t, filepath.Join(tmpDir, "modprobe.d"), filepath.Join(tmpDir, "modules"))
			h.Mkfile(t, "blacklist gbx-noisy\n", filepath.Join(tmpDir, "modprobe.d", "local.conf"))
			h.Mkfile(t, "alias gbx-old gbx-new\n", filepath.Join(tmpDir, "modprobe.d", "notes.txt"))
			h.Mkfile(t, "alias pci:v000010ECd* gbx-nic\n", filepath.Join(tmpDir, "modules", "modules.alias"))
			prevDirs = confDirs
			confDirs = []string{filepath.Join(tmpDir, "modprobe.d"), filepath.Join(tmpDir, "absent.d")}
		})

		it.After(func() {
			confDirs = prevDirs
			_ = os.RemoveAll(tmpDir)
		})

		it("merges conf files with the alias index", func() {
			c := LoadConf(filepath.Join(tmpDir, "modules"))
			h.AssertEq(t, c.Blacklist["gbx_noisy"], true)
			h.AssertEq(t, c.Aliases, []Alias{{Pattern: "pci:v000010ECd*", Name: "gbx-nic"}})
		})
	})
}
