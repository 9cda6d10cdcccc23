package kmod

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// CompressionSuffix returns the recognized compression extension of a
// module path, or "" for a plain .ko file.
func CompressionSuffix(path string) string {
	switch {
	case strings.HasSuffix(path, ".gz"):
		return ".gz"
	case strings.HasSuffix(path, ".xz"):
		return ".xz"
	case strings.HasSuffix(path, ".zst"):
		return ".zst"
	}
	return ""
}

// ReadImage returns the raw ELF image of the module at path, decompressing
// it when the file name carries a compression suffix.
func ReadImage(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readImage(f, path)
}

func readImage(f *os.File, path string) ([]byte, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	var r io.Reader
	switch CompressionSuffix(path) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	case ".xz":
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, err
		}
		r = xr
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		r = zr
	default:
		r = f
	}
	return io.ReadAll(r)
}
