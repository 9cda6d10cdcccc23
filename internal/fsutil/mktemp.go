package fsutil

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

const tempAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TempTemplate is a parsed mktemp template: a run of at least three X's
// between a fixed prefix and suffix.
type TempTemplate struct {
	prefix string
	random int
	suffix string
}

// ParseTempTemplate splits template around its last run of X's and appends
// extraSuffix. suffixGiven distinguishes an explicit empty suffix, which
// still requires the template to end in X, from no suffix at all.
func ParseTempTemplate(template, extraSuffix string, suffixGiven bool) (*TempTemplate, error) {
	if strings.ContainsRune(extraSuffix, '/') {
		return nil, errors.Errorf("invalid suffix '%s', contains directory separator", extraSuffix)
	}
	if suffixGiven && !strings.HasSuffix(template, "X") {
		return nil, errors.Errorf("with --suffix, template '%s' must end in X", template)
	}
	end := strings.LastIndexByte(template, 'X') + 1
	start := end
	for start > 0 && template[start-1] == 'X' {
		start--
	}
	if end-start < 3 {
		return nil, errors.Errorf("too few X's in template '%s'", template)
	}
	return &TempTemplate{
		prefix: template[:start],
		random: end - start,
		suffix: template[end:] + extraSuffix,
	}, nil
}

// Make renders the template with random characters and creates the file or
// directory, retrying rendered names that already exist. A non-empty dir is
// prepended to the result; dry skips creation and returns the first
// candidate.
func (t *TempTemplate) Make(dir string, makeDir, dry bool) (string, error) {
	var lastErr error
	for attempt := 0; attempt < 10000; attempt++ {
		name := t.prefix + randomRun(t.random) + t.suffix
		path := name
		if dir != "" {
			path = filepath.Join(dir, name)
		}
		if dry {
			return path, nil
		}
		var err error
		if makeDir {
			err = os.Mkdir(path, 0700)
		} else {
			var f *os.File
			f, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0600)
			if err == nil {
				err = f.Close()
			}
		}
		if err == nil {
			return path, nil
		}
		if !os.IsExist(err) {
			return "", err
		}
		lastErr = err
	}
	return "", lastErr
}

func randomRun(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = tempAlphabet[rand.Intn(len(tempAlphabet))] // #nosec: G404
	}
	return string(b)
}
