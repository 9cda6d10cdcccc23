// Package priv answers questions about the privileges of the running
// process before an applet attempts work that needs them.
package priv

import (
	"github.com/gobox/gobox/ident"
)

// IsPrivileged reports whether the process runs with an effective uid of 0.
func IsPrivileged() bool {
	return ident.Geteuid() == 0
}
