// Package checksum computes and verifies message digests for the
// md5sum family of applets.
package checksum

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"
)

// Algorithm describes a digest algorithm: its tag name as printed in
// BSD-style output, its digest size in bits, and a constructor for the
// underlying hash.
type Algorithm struct {
	Name string
	Bits int
	New  func() hash.Hash
}

// ByApplet returns the algorithm selected by a hashing applet name
// such as "md5sum" or "b2sum".
func ByApplet(applet string) (Algorithm, bool) {
	switch applet {
	case "md5sum":
		return Algorithm{Name: "MD5", Bits: 128, New: md5.New}, true
	case "sha1sum":
		return Algorithm{Name: "SHA1", Bits: 160, New: sha1.New}, true
	case "sha224sum":
		return Algorithm{Name: "SHA224", Bits: 224, New: sha256.New224}, true
	case "sha256sum":
		return Algorithm{Name: "SHA256", Bits: 256, New: sha256.New}, true
	case "sha384sum":
		return Algorithm{Name: "SHA384", Bits: 384, New: sha512.New384}, true
	case "sha512sum":
		return Algorithm{Name: "SHA512", Bits: 512, New: sha512.New}, true
	case "b2sum":
		return Blake2b(0), true
	}
	return Algorithm{}, false
}

// Blake2b returns a BLAKE2b algorithm sized to the given digest length
// in bits. Zero selects the default 512-bit digest. The length must be
// a multiple of 8 no larger than 512; ParseLength validates arguments
// before they reach here.
func Blake2b(bits int) Algorithm {
	if bits == 0 {
		bits = 512
	}
	size := bits / 8
	return Algorithm{
		Name: "BLAKE2b",
		Bits: bits,
		New: func() hash.Hash {
			h, _ := blake2b.New(size, nil)
			return h
		},
	}
}

// Tag returns the algorithm tag for BSD-style output. Non-default
// BLAKE2b digest sizes carry the size in the tag, as in "BLAKE2b-256".
func (a Algorithm) Tag() string {
	if a.Name == "BLAKE2b" && a.Bits != 512 {
		return fmt.Sprintf("%s-%d", a.Name, a.Bits)
	}
	return a.Name
}

// ParseLength validates a b2sum --length argument, a digest size in
// bits. Zero and 512 both select the default size and return zero.
// The error may span two lines; callers print each line as its own
// diagnostic.
func ParseLength(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return 0, errors.Errorf("invalid length: '%s'", arg)
	}
	switch {
	case n > 512:
		return 0, errors.Errorf("invalid length: '%s'\nmaximum digest length for 'BLAKE2b' is 512 bits", arg)
	case n%8 != 0:
		return 0, errors.Errorf("invalid length: '%s'\nlength is not a multiple of 8", arg)
	case n == 512:
		return 0, nil
	default:
		return n, nil
	}
}

// Digest computes the lowercase hex digest of everything readable
// from r.
func (a Algorithm) Digest(r io.Reader) (string, error) {
	h := a.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// File digests the named file, or standard input when path is "-".
func (a Algorithm) File(path string) (string, error) {
	if path == "-" {
		return a.Digest(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return a.Digest(f)
}

// Result is the outcome of digesting one file in print mode.
type Result struct {
	Name   string
	Digest string
	Err    error
}

// DigestFiles digests the named files concurrently and returns the
// results in input order. Standard input entries are digested inline
// so that two "-" entries never read it at the same time. Per-file
// failures are recorded in their result slot; the returned error is
// the first of them.
func DigestFiles(algo Algorithm, files []string) ([]Result, error) {
	results := make([]Result, len(files))
	var g errgroup.Group
	for i, name := range files {
		if name == "-" {
			sum, err := algo.Digest(os.Stdin)
			results[i] = Result{Name: name, Digest: sum, Err: err}
			continue
		}
		i, name := i, name
		g.Go(func() error {
			sum, err := algo.File(name)
			results[i] = Result{Name: name, Digest: sum, Err: err}
			return err
		})
	}
	err := g.Wait()
	return results, err
}

var nameEscaper = strings.NewReplacer("\\", "\\\\", "\n", "\\n", "\r", "\\r")

// EscapeName escapes backslashes, newlines, and carriage returns in a
// file name for checksum output. The returned prefix is a single
// backslash when any escaping happened; printed before the line, it
// marks the name as escaped.
func EscapeName(name string) (escaped, prefix string) {
	escaped = nameEscaper.Replace(name)
	if escaped != name {
		prefix = "\\"
	}
	return escaped, prefix
}

// UnescapeName reverses EscapeName for a name read from a checksum
// line. Unknown escapes are kept verbatim and a trailing lone
// backslash is dropped.
func UnescapeName(name string) string {
	if !strings.Contains(name, "\\") {
		return name
	}
	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i == len(name) {
			break
		}
		switch name[i] {
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte('\\')
			b.WriteByte(name[i])
		}
	}
	return b.String()
}
