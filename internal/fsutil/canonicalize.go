// Package fsutil resolves and inspects paths on behalf of the applets.
package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// CanonicalizeMode controls how symbolic links are handled when
// canonicalizing a path.
type CanonicalizeMode int

const (
	// CanonicalizeNone does not resolve any symbolic links.
	CanonicalizeNone CanonicalizeMode = iota
	// CanonicalizeNormal resolves symbolic links; all components but the
	// last must exist.
	CanonicalizeNormal
	// CanonicalizeExisting resolves symbolic links; every component must
	// exist.
	CanonicalizeExisting
	// CanonicalizeMissing resolves symbolic links, ignoring errors on any
	// component.
	CanonicalizeMissing
)

const maxLinksFollowed = 255

// resolve follows symlinks at path until it reaches a non-link, erroring
// out after maxLinksFollowed hops.
func resolve(path string) (string, error) {
	followed := 0
	result := path
	for {
		if followed == maxLinksFollowed {
			return "", errors.New("maximum links followed")
		}
		fi, err := os.Lstat(result)
		if err != nil {
			return "", err
		}
		if fi.Mode()&fs.ModeSymlink == 0 {
			return result, nil
		}
		followed++
		target, err := os.Readlink(result)
		if err != nil {
			return "", err
		}
		if filepath.IsAbs(target) {
			result = target
		} else {
			result = filepath.Join(filepath.Dir(result), target)
		}
	}
}

// Canonicalize returns the canonical, absolute form of a path. It
// generalizes filepath.EvalSymlinks: the mode controls whether components
// must exist and whether links are resolved at all.
func Canonicalize(original string, mode CanonicalizeMode) (string, error) {
	abs := original
	if filepath.IsAbs(abs) {
		abs = filepath.Clean(abs)
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		abs = filepath.Join(cwd, abs)
	}
	if mode == CanonicalizeNone {
		return abs, nil
	}

	sep := string(os.PathSeparator)
	result := sep
	trimmed := strings.TrimPrefix(abs, sep)
	if trimmed == "" {
		return result, nil
	}
	parts := strings.Split(trimmed, sep)

	switch mode {
	case CanonicalizeMissing:
		for _, part := range parts {
			result = filepath.Join(result, part)
			if p, err := resolve(result); err == nil {
				result = p
			}
		}
	case CanonicalizeExisting:
		for _, part := range parts {
			var err error
			result = filepath.Join(result, part)
			if result, err = resolve(result); err != nil {
				return "", err
			}
		}
	default: // CanonicalizeNormal
		for _, part := range parts[:len(parts)-1] {
			var err error
			result = filepath.Join(result, part)
			if result, err = resolve(result); err != nil {
				return "", err
			}
		}
		result = filepath.Join(result, parts[len(parts)-1])
		if p, err := resolve(result); err == nil {
			result = p
		}
	}
	return result, nil
}
