// Package backup implements the GNU backup-file conventions shared by
// applets that overwrite files, such as install.
//
// The backup method is selected through the --backup option or the
// VERSION_CONTROL environment variable, and the suffix for simple backups
// through --suffix or SIMPLE_BACKUP_SUFFIX.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Mode selects how an existing destination file is preserved.
type Mode int

const (
	// ModeNone never makes backups.
	ModeNone Mode = iota
	// ModeSimple always makes simple backups using the suffix.
	ModeSimple
	// ModeNumbered always makes numbered backups ("file.~1~").
	ModeNumbered
	// ModeExisting makes numbered backups of files that already have them,
	// simple backups of the others.
	ModeExisting
)

// controlValues lists every accepted spelling, in the order GNU documents
// them. Unambiguous prefixes of these are accepted too.
var controlValues = []string{"simple", "never", "numbered", "t", "existing", "nil", "none", "off"}

const validArgsHelp = `Valid arguments are:
  - 'none', 'off'
  - 'simple', 'never'
  - 'existing', 'nil'
  - 'numbered', 't'`

// DetermineMode resolves the backup mode from the command line.
//
// When --backup is given with a method, the method decides. When --backup is
// given without a method, VERSION_CONTROL decides, defaulting to
// ModeExisting. The short option -b takes no argument and always selects
// ModeExisting.
func DetermineMode(longPresent bool, method string, shortPresent bool) (Mode, error) {
	switch {
	case longPresent:
		if method != "" {
			return matchMethod(method, "backup type")
		}
		if env, ok := os.LookupEnv("VERSION_CONTROL"); ok {
			return matchMethod(env, "$VERSION_CONTROL")
		}
		return ModeExisting, nil
	case shortPresent:
		return ModeExisting, nil
	}
	return ModeNone, nil
}

// DetermineSuffix returns the suffix for simple backups: the supplied one if
// --suffix was given, else SIMPLE_BACKUP_SUFFIX, else "~".
func DetermineSuffix(supplied string, present bool) string {
	if present {
		return supplied
	}
	if s, ok := os.LookupEnv("SIMPLE_BACKUP_SUFFIX"); ok {
		return s
	}
	return "~"
}

func matchMethod(method, origin string) (Mode, error) {
	var matches []string
	for _, val := range controlValues {
		if strings.HasPrefix(val, method) {
			matches = append(matches, val)
		}
	}
	switch len(matches) {
	case 1:
		switch matches[0] {
		case "simple", "never":
			return ModeSimple, nil
		case "numbered", "t":
			return ModeNumbered, nil
		case "existing", "nil":
			return ModeExisting, nil
		default: // "none", "off"
			return ModeNone, nil
		}
	case 0:
		return ModeNone, errors.Errorf("invalid argument '%s' for '%s'\n%s", method, origin, validArgsHelp)
	default:
		return ModeNone, errors.Errorf("ambiguous argument '%s' for '%s'\n%s", method, origin, validArgsHelp)
	}
}

// Path returns the backup destination for path under mode, or "" when mode
// is ModeNone.
func Path(mode Mode, path, suffix string) string {
	switch mode {
	case ModeSimple:
		return simplePath(path, suffix)
	case ModeNumbered:
		return numberedPath(path)
	case ModeExisting:
		return existingPath(path, suffix)
	}
	return ""
}

func simplePath(path, suffix string) string {
	return path + suffix
}

// numberedPath picks one more than the highest numbered backup present, so
// a sparse set of old backups never gets overwritten.
func numberedPath(path string) string {
	return fmt.Sprintf("%s.~%d~", path, maxNumbered(path)+1)
}

func existingPath(path, suffix string) string {
	if maxNumbered(path) > 0 {
		return numberedPath(path)
	}
	return simplePath(path, suffix)
}

// maxNumbered scans the target's directory for "<base>.~N~" siblings and
// returns the highest N, zero when there are none.
func maxNumbered(path string) uint64 {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	prefix := base + ".~"
	var max uint64
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, "~") {
			continue
		}
		n, err := strconv.ParseUint(strings.TrimSuffix(strings.TrimPrefix(name, prefix), "~"), 10, 64)
		if err == nil && n > max {
			max = n
		}
	}
	return max
}
