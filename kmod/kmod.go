// Package kmod manages Linux kernel modules: listing the loaded set,
// reading module metadata, resolving names through the module dependency
// index, and driving the module syscalls for the insmod, rmmod, lsmod,
// modinfo, and modprobe applets.
package kmod

import (
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// Normalize maps a module name to its canonical form. The kernel treats
// dashes and underscores in module names interchangeably.
func Normalize(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// PathToName derives the module name from a file path by stripping the
// directory, the compression suffix, and the .ko extension.
func PathToName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, CompressionSuffix(base))
	base = strings.TrimSuffix(base, ".ko")
	return Normalize(base)
}

// Dir returns the module directory for the running kernel,
// /lib/modules/$(uname -r), unless an override is given.
func Dir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", err
	}
	return filepath.Join("/lib/modules", unix.ByteSliceToString(uts.Release[:])), nil
}
