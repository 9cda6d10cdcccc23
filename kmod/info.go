package kmod

import (
	"bytes"
	"debug/elf"
	"strings"

	"github.com/pkg/errors"
)

// InfoEntry is one key=value pair from a module's .modinfo ELF section.
// Keys such as alias and depends repeat, so order is preserved instead of
// collapsing into a map.
type InfoEntry struct {
	Key   string
	Value string
}

// Info reads the .modinfo section of the module at path, decompressing the
// image first when necessary.
func Info(path string) ([]InfoEntry, error) {
	image, err := ReadImage(path)
	if err != nil {
		return nil, err
	}
	return parseInfo(image)
}

func parseInfo(image []byte) ([]InfoEntry, error) {
	f, err := elf.NewFile(bytes.NewReader(image))
	if err != nil {
		return nil, errors.Wrap(err, "not a kernel module image")
	}
	section := f.Section(".modinfo")
	if section == nil {
		return nil, errors.New("missing .modinfo section")
	}
	data, err := section.Data()
	if err != nil {
		return nil, err
	}

	var entries []InfoEntry
	for _, raw := range bytes.Split(data, []byte{0}) {
		if len(raw) == 0 {
			continue
		}
		key, value, found := strings.Cut(string(raw), "=")
		if !found {
			continue
		}
		entries = append(entries, InfoEntry{Key: key, Value: value})
	}
	return entries, nil
}

// Field collects every value of the named .modinfo key, in section order.
func Field(entries []InfoEntry, key string) []string {
	var values []string
	for _, entry := range entries {
		if entry.Key == key {
			values = append(values, entry.Value)
		}
	}
	return values
}
