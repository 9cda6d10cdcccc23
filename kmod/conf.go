package kmod

import (
	"bufio"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// confDirs is a variable so tests can point parsing at fixtures.
var confDirs = []string{"/etc/modprobe.d", "/run/modprobe.d", "/lib/modprobe.d"}

// Conf aggregates modprobe configuration: options, alias, blacklist,
// install, and remove directives.
type Conf struct {
	Options   map[string][]string
	Aliases   []Alias
	Blacklist map[string]bool
	Installs  map[string]string
	Removes   map[string]string
}

// Alias maps a glob pattern to a module name.
type Alias struct {
	Pattern string
	Name    string
}

func newConf() *Conf {
	return &Conf{
		Options:   map[string][]string{},
		Blacklist: map[string]bool{},
		Installs:  map[string]string{},
		Removes:   map[string]string{},
	}
}

// LoadConf reads every *.conf file in the modprobe.d directories plus the
// modules.alias index under moduleDir. Unreadable files are skipped; the
// directories are optional on a minimal system.
func LoadConf(moduleDir string) *Conf {
	c := newConf()
	for _, confDir := range confDirs {
		entries, err := os.ReadDir(confDir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".conf") {
				continue
			}
			f, err := os.Open(filepath.Join(confDir, entry.Name()))
			if err != nil {
				continue
			}
			c.parse(f)
			f.Close()
		}
	}
	if f, err := os.Open(filepath.Join(moduleDir, "modules.alias")); err == nil {
		c.parse(f)
		f.Close()
	}
	return c
}

func (c *Conf) parse(r io.Reader) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		for strings.HasSuffix(line, `\`) && scanner.Scan() {
			line = strings.TrimSuffix(line, `\`) + " " + strings.TrimSpace(scanner.Text())
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "options":
			if len(fields) >= 3 {
				name := Normalize(fields[1])
				c.Options[name] = append(c.Options[name], fields[2:]...)
			}
		case "alias":
			if len(fields) >= 3 {
				c.Aliases = append(c.Aliases, Alias{Pattern: fields[1], Name: fields[2]})
			}
		case "blacklist":
			if len(fields) >= 2 {
				c.Blacklist[Normalize(fields[1])] = true
			}
		case "install":
			if len(fields) >= 3 {
				c.Installs[Normalize(fields[1])] = strings.Join(fields[2:], " ")
			}
		case "remove":
			if len(fields) >= 3 {
				c.Removes[Normalize(fields[1])] = strings.Join(fields[2:], " ")
			}
		}
	}
}

// ResolveAlias expands a requested name through the alias table, dropping
// blacklisted expansions. The name itself is returned when no alias
// matches.
func (c *Conf) ResolveAlias(name string) []string {
	var out []string
	for _, alias := range c.Aliases {
		if ok, err := path.Match(alias.Pattern, name); err == nil && ok {
			if !c.Blacklist[Normalize(alias.Name)] {
				out = append(out, Normalize(alias.Name))
			}
		}
	}
	if len(out) == 0 {
		return []string{Normalize(name)}
	}
	return out
}
