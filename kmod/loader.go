package kmod

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Force flags for Load.
const (
	// IgnoreModversions skips symbol version hash checks.
	IgnoreModversions = unix.MODULE_INIT_IGNORE_MODVERSIONS
	// IgnoreVermagic skips the kernel version magic check.
	IgnoreVermagic = unix.MODULE_INIT_IGNORE_VERMAGIC
)

// Loader loads and unloads kernel modules, decompressing module images when
// the file name calls for it.
type Loader struct {
	Syscall Syscaller
}

// NewLoader returns a Loader backed by the real module syscalls.
func NewLoader() *Loader {
	return &Loader{Syscall: NewSyscaller()}
}

// Load inserts the module at path with the given parameters. Plain .ko
// files go through finit_module so the kernel can verify the file itself;
// compressed images, and kernels without finit_module, fall back to
// init_module on the decompressed bytes.
func (l *Loader) Load(path, params string, flags int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if CompressionSuffix(path) == "" {
		err := l.Syscall.InitFile(f, params, flags)
		if err == nil || !errors.Is(err, unix.ENOSYS) {
			return err
		}
	}

	image, err := readImage(f, path)
	if err != nil {
		return err
	}
	if flags != 0 {
		// init_module has no flags argument, so force loads of compressed
		// modules go through a scratch file and finit_module.
		return l.initScratch(image, params, flags)
	}
	return l.Syscall.Init(image, params)
}

func (l *Loader) initScratch(image []byte, params string, flags int) error {
	tmp, err := os.CreateTemp("", "gobox-module-*.ko")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()
	if _, err := tmp.Write(image); err != nil {
		return err
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return err
	}
	return l.Syscall.InitFile(tmp, params, flags)
}

// Unload removes the named module. By default the call is non-blocking and
// fails when the module is busy; wait blocks until the refcount drops, and
// force removes even a busy module when the kernel allows it.
func (l *Loader) Unload(name string, wait, force bool) error {
	flags := unix.O_NONBLOCK
	if wait {
		flags = 0
	}
	if force {
		flags |= unix.O_TRUNC
	}
	return l.Syscall.Delete(Normalize(name), flags)
}
