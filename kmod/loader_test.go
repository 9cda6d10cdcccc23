package kmod_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/klauspost/compress/gzip"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"golang.org/x/sys/unix"

	"github.com/gobox/gobox/kmod"
	h "github.com/gobox/gobox/testhelpers"
	"github.com/gobox/gobox/testmock"
)

func TestLoader(t *testing.T) {
	spec.Run(t, "Loader", testLoader, spec.Report(report.Terminal{}))
}

func testLoader(t *testing.T, when spec.G, it spec.S) {
	var (
		mockCtrl    *gomock.Controller
		mockSyscall *testmock.MockSyscaller
		loader      *kmod.Loader
		tmpDir      string
	)

	it.Before(func() {
		mockCtrl = gomock.NewController(t)
		mockSyscall = testmock.NewMockSyscaller(mockCtrl)
		loader = &kmod.Loader{Syscall: mockSyscall}
		var err error
		tmpDir, err = os.MkdirTemp("", "gobox-loader")
		h.AssertNil(t, err)
	})

	it.After(func() {
		mockCtrl.Finish()
		_ = os.RemoveAll(tmpDir)
	})

	gzipped := func(data string) string {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, err := zw.Write([]byte(data))
		h.AssertNil(t, err)
		h.AssertNil(t, zw.Close())
		return buf.String()
	}

	when("Load", func() {
		it("hands plain module files to the kernel directly", func() {
			path := filepath.Join(tmpDir, "gbxmod.ko")
			h.Mkfile(t, "raw module bytes", path)
			mockSyscall.EXPECT().InitFile(gomock.Any(), "p=1", 0).Return(nil)

			h.AssertNil(t, loader.Load(path, "p=1", 0))
		})

		it("falls back to loading the bytes on old kernels", func() {
			path := filepath.Join(tmpDir, "gbxmod.ko")
			h.Mkfile(t, "raw module bytes", path)
			mockSyscall.EXPECT().InitFile(gomock.Any(), "p=1", 0).Return(unix.ENOSYS)
			mockSyscall.EXPECT().Init([]byte("raw module bytes"), "p=1").Return(nil)

			h.AssertNil(t, loader.Load(path, "p=1", 0))
		})

		it("decompresses compressed modules before loading", func() {
			path := filepath.Join(tmpDir, "gbxmod.ko.gz")
			h.Mkfile(t, gzipped("module payload"), path)
			mockSyscall.EXPECT().Init([]byte("module payload"), "").Return(nil)

			h.AssertNil(t, loader.Load(path, "", 0))
		})

		it("stages forced compressed loads through a scratch file", func() {
			path := filepath.Join(tmpDir, "gbxmod.ko.gz")
			h.Mkfile(t, gzipped("module payload"), path)
			mockSyscall.EXPECT().InitFile(gomock.Any(), "", kmod.IgnoreVermagic).DoAndReturn(
				func(f *os.File, _ string, _ int) error {
					data, err := io.ReadAll(f)
					h.AssertNil(t, err)
					h.AssertEq(t, string(data), "module payload")
					return nil
				})

			h.AssertNil(t, loader.Load(path, "", kmod.IgnoreVermagic))
		})

		it("propagates kernel refusals", func() {
			path := filepath.Join(tmpDir, "gbxmod.ko")
			h.Mkfile(t, "raw module bytes", path)
			mockSyscall.EXPECT().InitFile(gomock.Any(), "", 0).Return(unix.EPERM)

			err := loader.Load(path, "", 0)
			h.AssertError(t, err, "operation not permitted")
		})

		it("fails on a missing module file", func() {
			err := loader.Load(filepath.Join(tmpDir, "absent.ko"), "", 0)
			h.AssertError(t, err, "no such file or directory")
		})
	})

	when("Unload", func() {
		it("removes without blocking by default", func() {
			mockSyscall.EXPECT().Delete("gbx_mod", unix.O_NONBLOCK).Return(nil)
			h.AssertNil(t, loader.Unload("gbx-mod", false, false))
		})

		it("blocks until the module is free when asked to wait", func() {
			mockSyscall.EXPECT().Delete("gbx_mod", 0).Return(nil)
			h.AssertNil(t, loader.Unload("gbx_mod", true, false))
		})

		it("forces removal of a busy module", func() {
			mockSyscall.EXPECT().Delete("gbx_mod", unix.O_NONBLOCK|unix.O_TRUNC).Return(nil)
			h.AssertNil(t, loader.Unload("gbx_mod", false, true))
		})

		it("propagates busy modules", func() {
			mockSyscall.EXPECT().Delete("gbx_mod", unix.O_NONBLOCK).Return(unix.EBUSY)
			err := loader.Unload("gbx_mod", false, false)
			h.AssertError(t, err, "device or resource busy")
		})
	})
}
