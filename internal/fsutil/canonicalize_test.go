package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/gobox/gobox/internal/fsutil"
	h "github.com/gobox/gobox/testhelpers"
)

func TestCanonicalize(t *testing.T) {
	spec.Run(t, "Canonicalize", testCanonicalize, spec.Report(report.Terminal{}))
}

func testCanonicalize(t *testing.T, when spec.G, it spec.S) {
	var base string

	it.Before(func() {
		tmpDir, err := os.MkdirTemp("", "gobox-canon")
		h.AssertNil(t, err)
		// The temp root may itself sit behind a symlink.
		base, err = filepath.EvalSymlinks(tmpDir)
		h.AssertNil(t, err)
	})

	it.After(func() {
		_ = os.RemoveAll(base)
	})

	when("CanonicalizeNone", func() {
		it("cleans the path without resolving links", func() {
			link := filepath.Join(base, "link")
			h.Mkfile(t, "data", filepath.Join(base, "file"))
			h.Symlink(t, filepath.Join(base, "file"), link)

			got, err := fsutil.Canonicalize(filepath.Join(base, "x", "..", "link"), fsutil.CanonicalizeNone)
			h.AssertNil(t, err)
			h.AssertEq(t, got, link)
		})
	})

	when("CanonicalizeNormal", func() {
		it("resolves links on the way to a missing leaf", func() {
			dir := filepath.Join(base, "dir")
			h.Mkdir(t, dir)
			dirlink := filepath.Join(base, "dirlink")
			h.Symlink(t, dir, dirlink)

			got, err := fsutil.Canonicalize(filepath.Join(dirlink, "missing"), fsutil.CanonicalizeNormal)
			h.AssertNil(t, err)
			h.AssertEq(t, got, filepath.Join(dir, "missing"))
		})

		it("resolves an existing leaf link", func() {
			file := filepath.Join(base, "file")
			link := filepath.Join(base, "link")
			h.Mkfile(t, "data", file)
			h.Symlink(t, file, link)

			got, err := fsutil.Canonicalize(link, fsutil.CanonicalizeNormal)
			h.AssertNil(t, err)
			h.AssertEq(t, got, file)
		})

		it("fails when an intermediate component is missing", func() {
			_, err := fsutil.Canonicalize(filepath.Join(base, "missing", "leaf"), fsutil.CanonicalizeNormal)
			h.AssertNotNil(t, err)
		})
	})

	when("CanonicalizeExisting", func() {
		it("resolves a chain of links", func() {
			file := filepath.Join(base, "file")
			h.Mkfile(t, "data", file)
			h.Symlink(t, file, filepath.Join(base, "one"))
			h.Symlink(t, filepath.Join(base, "one"), filepath.Join(base, "two"))

			got, err := fsutil.Canonicalize(filepath.Join(base, "two"), fsutil.CanonicalizeExisting)
			h.AssertNil(t, err)
			h.AssertEq(t, got, file)
		})

		it("fails when the leaf is missing", func() {
			_, err := fsutil.Canonicalize(filepath.Join(base, "missing"), fsutil.CanonicalizeExisting)
			h.AssertNotNil(t, err)
		})
	})

	when("CanonicalizeMissing", func() {
		it("keeps going past missing components", func() {
			got, err := fsutil.Canonicalize(filepath.Join(base, "a", "b", "c"), fsutil.CanonicalizeMissing)
			h.AssertNil(t, err)
			h.AssertEq(t, got, filepath.Join(base, "a", "b", "c"))
		})

		it("still resolves the links it can", func() {
			dir := filepath.Join(base, "dir")
			h.Mkdir(t, dir)
			dirlink := filepath.Join(base, "dirlink")
			h.Symlink(t, dir, dirlink)

			got, err := fsutil.Canonicalize(filepath.Join(dirlink, "missing"), fsutil.CanonicalizeMissing)
			h.AssertNil(t, err)
			h.AssertEq(t, got, filepath.Join(dir, "missing"))
		})
	})
}
