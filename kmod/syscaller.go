package kmod

import (
	"os"

	"golang.org/x/sys/unix"
)

//go:generate mockgen -package testmock -destination ../testmock/syscaller.go github.com/gobox/gobox/kmod Syscaller

// Syscaller performs the raw kernel module syscalls. Loading logic is
// written against this interface so it can be exercised without
// CAP_SYS_MODULE.
type Syscaller interface {
	// Init loads a module image with init_module(2).
	Init(image []byte, params string) error
	// InitFile loads a module from an open file with finit_module(2),
	// letting the kernel name the file in its own diagnostics. Flags may
	// carry MODULE_INIT_IGNORE_MODVERSIONS and MODULE_INIT_IGNORE_VERMAGIC.
	InitFile(f *os.File, params string, flags int) error
	// Delete unloads the named module with delete_module(2).
	Delete(name string, flags int) error
}

// NewSyscaller returns the Syscaller backed by the real syscalls.
func NewSyscaller() Syscaller {
	return &unixSyscaller{}
}

type unixSyscaller struct{}

func (s *unixSyscaller) Init(image []byte, params string) error {
	return unix.InitModule(image, params)
}

func (s *unixSyscaller) InitFile(f *os.File, params string, flags int) error {
	return unix.FinitModule(int(f.Fd()), params, flags)
}

func (s *unixSyscaller) Delete(name string, flags int) error {
	return unix.DeleteModule(name, flags)
}
