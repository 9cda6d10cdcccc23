package kmod

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
)

// procModules is a variable so tests can point the parser at a fixture.
var procModules = "/proc/modules"

// Module is one row of /proc/modules.
type Module struct {
	Name     string
	Size     int64
	Refcount int
	UsedBy   []string
	State    string
	Offset   string
}

// Loaded returns the modules currently loaded into the kernel.
func Loaded() ([]Module, error) {
	f, err := os.Open(procModules)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseLoaded(f)
}

// IsLoaded reports whether the named module is in the kernel, under either
// dash or underscore spelling.
func IsLoaded(name string) (bool, error) {
	modules, err := Loaded()
	if err != nil {
		return false, err
	}
	name = Normalize(name)
	for _, m := range modules {
		if Normalize(m.Name) == name {
			return true, nil
		}
	}
	return false, nil
}

func parseLoaded(r io.Reader) ([]Module, error) {
	var modules []Module
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		m := Module{Name: fields[0]}
		m.Size, _ = strconv.ParseInt(fields[1], 10, 64)
		m.Refcount, _ = strconv.Atoi(fields[2])
		if len(fields) > 3 && fields[3] != "-" {
			for _, user := range strings.Split(fields[3], ",") {
				if user != "" {
					m.UsedBy = append(m.UsedBy, user)
				}
			}
		}
		if len(fields) > 4 {
			m.State = fields[4]
		}
		if len(fields) > 5 {
			m.Offset = fields[5]
		}
		modules = append(modules, m)
	}
	return modules, scanner.Err()
}
