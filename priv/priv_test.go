package priv_test

import (
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/gobox/gobox/ident"
	"github.com/gobox/gobox/priv"
	h "github.com/gobox/gobox/testhelpers"
)

func TestPriv(t *testing.T) {
	spec.Run(t, "Priv", testPriv, spec.Sequential(), spec.Report(report.Terminal{}))
}

func testPriv(t *testing.T, when spec.G, it spec.S) {
	var prevGeteuid func() int

	it.Before(func() {
		prevGeteuid = ident.Geteuid
	})

	it.After(func() {
		ident.Geteuid = prevGeteuid
	})

	when("IsPrivileged", func() {
		it("is true for an effective uid of 0", func() {
			ident.Geteuid = func() int { return 0 }
			h.AssertEq(t, priv.IsPrivileged(), true)
		})

		it("is false for any other effective uid", func() {
			ident.Geteuid = func() int { return 54321 }
			h.AssertEq(t, priv.IsPrivileged(), false)
		})
	})
}
