package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/gobox/gobox/cmd"
	h "github.com/gobox/gobox/testhelpers"
)

func TestInstallArgs(t *testing.T) {
	spec.Run(t, "InstallArgs", testInstallArgs, spec.Report(report.Terminal{}), spec.Sequential())
}

func testInstallArgs(t *testing.T, when spec.G, it spec.S) {
	var (
		tmpDir     string
		origStderr *os.File
		pipeR      *os.File
		pipeW      *os.File
	)

	it.Before(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "gobox-install-args-")
		h.AssertNil(t, err)
		origStderr = os.Stderr
		pipeR, pipeW, err = os.Pipe()
		h.AssertNil(t, err)
		os.Stderr = pipeW
	})

	it.After(func() {
		os.Stderr = origStderr
		pipeW.Close()
		pipeR.Close()
		os.RemoveAll(tmpDir)
	})

	stderrText := func() string {
		os.Stderr = origStderr
		pipeW.Close()
		data, err := io.ReadAll(pipeR)
		h.AssertNil(t, err)
		return string(data)
	}

	// fails asserts err carries exit status 1 and returns the diagnostic.
	fails := func(err error) string {
		h.AssertNotNil(t, err)
		fail, ok := err.(*cmd.ErrorFail)
		if !ok {
			t.Fatalf("expected *cmd.ErrorFail, got %T", err)
		}
		h.AssertEq(t, fail.Code, 1)
		return stderrText()
	}

	when("unimplemented SELinux flags", func() {
		it("refuses --preserve-context", func() {
			c := &installCmd{preserveCtx: true}
			h.AssertStringContains(t, fails(c.Args(0, nil)), "install: Unimplemented feature: --preserve-context, -P")
		})

		it("refuses --context", func() {
			c := &installCmd{setContext: true}
			h.AssertStringContains(t, fails(c.Args(0, nil)), "install: Unimplemented feature: --context, -Z")
		})
	})

	when("incompatible options", func() {
		it("rejects --compare with --preserve-timestamps", func() {
			c := &installCmd{compare: true, preserveTimes: true}
			h.AssertStringContains(t, fails(c.Args(0, nil)), "install: Options --compare and --preserve-timestamps are mutually exclusive")
		})

		it("rejects --compare with --strip", func() {
			c := &installCmd{compare: true, strip: true}
			h.AssertStringContains(t, fails(c.Args(0, nil)), "install: Options --compare and --strip are mutually exclusive")
		})

		it("rejects -t with -T", func() {
			c := &installCmd{targetDir: tmpDir, noTargetDir: true}
			h.AssertStringContains(t, fails(c.Args(1, []string{"src"})), "install: cannot combine --target-directory (-t) and --no-target-directory (-T)")
		})
	})

	when("operands", func() {
		it("requires a file operand", func() {
			c := &installCmd{}
			h.AssertStringContains(t, fails(c.Args(0, nil)), "install: missing file operand")
		})

		it("requires a destination", func() {
			c := &installCmd{}
			h.AssertStringContains(t, fails(c.Args(1, []string{"src"})), "install: missing destination file operand after 'src'")
		})

		it("rejects a third operand under -T", func() {
			c := &installCmd{noTargetDir: true}
			h.AssertStringContains(t, fails(c.Args(3, []string{"a", "b", "c"})), "install: extra operand 'c'")
		})

		it("rejects an unknown owner", func() {
			c := &installCmd{ownerSpec: "gobox-no-such-user"}
			h.AssertStringContains(t, fails(c.Args(2, []string{"src", "dst"})), "install: invalid user: 'gobox-no-such-user'")
		})
	})

	when("destination classification", func() {
		it("requires -t to name an existing directory", func() {
			c := &installCmd{targetDir: filepath.Join(tmpDir, "nope")}
			out := fails(c.Args(2, []string{"a", "b"}))
			h.AssertStringContains(t, out, "install: failed to access")
			h.AssertStringContains(t, out, "no such file or directory")
		})

		it("requires -t to name a directory, not a file", func() {
			file := filepath.Join(tmpDir, "plain")
			h.Mkfile(t, "", file)
			c := &installCmd{targetDir: file}
			h.AssertStringContains(t, fails(c.Args(2, []string{"a", "b"})), "Not a directory")
		})

		it("installs into an existing directory", func() {
			c := &installCmd{}
			h.AssertNil(t, c.Args(2, []string{"src", tmpDir}))
			h.AssertEq(t, c.destDir, tmpDir)
			h.AssertEq(t, c.sources, []string{"src"})
		})

		it("treats a trailing slash as a directory request", func() {
			dest := filepath.Join(tmpDir, "newdir") + "/"
			c := &installCmd{}
			h.AssertNil(t, c.Args(2, []string{"src", dest}))
			h.AssertEq(t, c.destDir, dest)
		})

		it("rejects several sources aimed at a non-directory", func() {
			dest := filepath.Join(tmpDir, "missing")
			c := &installCmd{}
			h.AssertStringContains(t, fails(c.Args(3, []string{"a", "b", dest})), "is not a directory")
		})

		it("installs a single source onto a new path", func() {
			dest := filepath.Join(tmpDir, "fresh")
			c := &installCmd{}
			h.AssertNil(t, c.Args(2, []string{"src", dest}))
			h.AssertEq(t, c.destFile, dest)
			h.AssertEq(t, c.destDir, "")
		})

		it("keeps both operands under -T", func() {
			dest := filepath.Join(tmpDir, "exact")
			c := &installCmd{noTargetDir: true}
			h.AssertNil(t, c.Args(2, []string{"src", dest}))
			h.AssertEq(t, c.destFile, dest)
			h.AssertEq(t, c.sources, []string{"src"})
		})
	})
}
