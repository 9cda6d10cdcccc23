package cli

import (
	"io"
	"log"
	"os"

	"github.com/gobox/gobox/cmd"
)

// Command defines the interface for running an applet
type Command interface {
	// DefineFlags defines the flags that are considered valid and reads their values (if provided)
	DefineFlags()

	// Args validates arguments and flags, and fills in default values
	Args(nargs int, args []string) error

	// Privileges validates the needed privileges
	Privileges() error

	// Exec executes the command
	Exec() error
}

func Run(c Command, appletName string, asSubcommand bool) {
	var (
		printVersion bool
		logLevel     string
		noColor      bool
	)

	log.SetOutput(io.Discard)
	FlagVersion(&printVersion)
	FlagLogLevel(&logLevel)
	FlagNoColor(&noColor)
	c.DefineFlags()
	if asSubcommand {
		if err := flagSet.Parse(os.Args[2:]); err != nil {
			// flagSet exits on error, we shouldn't get here
			cmd.Exit(err)
		}
	} else {
		if err := flagSet.Parse(os.Args[1:]); err != nil {
			// flagSet exits on error, we shouldn't get here
			cmd.Exit(err)
		}
	}
	cmd.DisableColor(noColor)

	if printVersion {
		cmd.ExitWithVersion()
	}
	if err := cmd.DefaultLogger.SetLevel(logLevel); err != nil {
		cmd.Exit(err)
	}
	cmd.DefaultLogger.Debugf("Starting %s...", appletName)

	cmd.DefaultLogger.Debugf("Parsing inputs...")
	if err := c.Args(flagSet.NArg(), flagSet.Args()); err != nil {
		cmd.Exit(err)
	}
	cmd.DefaultLogger.Debugf("Ensuring privileges...")
	if err := c.Privileges(); err != nil {
		cmd.Exit(err)
	}
	cmd.DefaultLogger.Debugf("Executing command...")
	cmd.Exit(c.Exec())
}

// RunRaw drives an applet that interprets its own argument list, such as
// echo, where option-looking arguments may be ordinary operands.
func RunRaw(c Command, appletName string, asSubcommand bool) {
	args := os.Args[1:]
	if asSubcommand {
		args = os.Args[2:]
	}
	log.SetOutput(io.Discard)
	cmd.DisableColor(noColor)

	cmd.DefaultLogger.Debugf("Starting %s...", appletName)
	if err := c.Args(len(args), args); err != nil {
		cmd.Exit(err)
	}
	if err := c.Privileges(); err != nil {
		cmd.Exit(err)
	}
	cmd.Exit(c.Exec())
}
