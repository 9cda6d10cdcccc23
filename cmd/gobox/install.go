package main

import (
	"os"
	"strings"

	"github.com/gobox/gobox/cmd"
	"github.com/gobox/gobox/cmd/gobox/cli"
	"github.com/gobox/gobox/ident"
	"github.com/gobox/gobox/install"
	"github.com/gobox/gobox/internal/backup"
	"github.com/gobox/gobox/internal/fsutil"
	"github.com/gobox/gobox/perms"
)

type installCmd struct {
	backupMethod  string
	backupShort   bool
	copyIgnored   bool
	compare       bool
	createLeading bool
	directoryArgs bool
	groupSpec     string
	modeStr       string
	ownerSpec     string
	preserveCtx   bool
	preserveTimes bool
	setContext    bool
	strip         bool
	stripProgram  string
	suffix        string
	targetDir     string
	noTargetDir   bool
	verbose       bool

	executor install.Executor
	sources  []string
	destDir  string
	destFile string
	dirs     []string
}

func (c *installCmd) DefineFlags() {
	cli.FlagBackup(&c.backupMethod)
	cli.FlagBackupShort(&c.backupShort)
	cli.FlagBackupSuffix(&c.suffix)
	cli.FlagCompare(&c.compare)
	cli.FlagCreateLeading(&c.createLeading)
	cli.FlagDirectoryArgs(&c.directoryArgs)
	cli.FlagGroupSpec(&c.groupSpec)
	cli.FlagIgnoredCopy(&c.copyIgnored)
	cli.FlagMode(&c.modeStr)
	cli.FlagNoTargetDirectory(&c.noTargetDir)
	cli.FlagOwnerSpec(&c.ownerSpec)
	cli.FlagPreserveContext(&c.preserveCtx)
	cli.FlagPreserveTimestamps(&c.preserveTimes)
	cli.FlagSetContext(&c.setContext)
	cli.FlagStrip(&c.strip)
	cli.FlagStripProgram(&c.stripProgram)
	cli.FlagTargetDirectory(&c.targetDir)
	cli.FlagVerbose(&c.verbose)
}

func (c *installCmd) Args(nargs int, args []string) error {
	if c.preserveCtx {
		return failf("install", "Unimplemented feature: --preserve-context, -P")
	}
	if c.setContext {
		return failf("install", "Unimplemented feature: --context, -Z")
	}
	bmode, err := backup.DetermineMode(cli.FlagPresent("backup"), c.backupMethod, c.backupShort)
	if err != nil {
		return failf("install", "%s", err)
	}
	mode := uint32(0755)
	if c.modeStr != "" {
		mode, err = perms.ParseModeSpec(c.modeStr, 0)
		if err != nil {
			return failf("install", "%s", err)
		}
	}
	uid, gid := -1, -1
	if c.ownerSpec != "" {
		uid, err = ident.ResolveUser(c.ownerSpec)
		if err != nil {
			return failf("install", "%s", err)
		}
	}
	if c.groupSpec != "" {
		gid, err = ident.ResolveGroup(c.groupSpec)
		if err != nil {
			return failf("install", "%s", err)
		}
	}
	if c.compare && c.preserveTimes {
		return failf("install", "Options --compare and --preserve-timestamps are mutually exclusive")
	}
	if c.compare && c.strip {
		return failf("install", "Options --compare and --strip are mutually exclusive")
	}
	if c.targetDir != "" && c.noTargetDir {
		return failf("install", "cannot combine --target-directory (-t) and --no-target-directory (-T)")
	}

	c.executor = install.Executor{
		Tool:               "install",
		Mode:               mode,
		UID:                uid,
		GID:                gid,
		Backup:             bmode,
		Suffix:             backup.DetermineSuffix(c.suffix, cli.FlagPresent("S") || cli.FlagPresent("suffix")),
		Compare:            c.compare,
		CreateLeading:      c.createLeading,
		PreserveTimestamps: c.preserveTimes,
		Strip:              c.strip,
		StripProgram:       c.stripProgram,
		Verbose:            c.verbose,
	}

	if c.directoryArgs {
		if nargs == 0 {
			return failf("install", "missing file operand")
		}
		c.dirs = args
		return nil
	}
	switch nargs {
	case 0:
		return failf("install", "missing file operand")
	case 1:
		if c.targetDir == "" {
			return failf("install", "missing destination file operand after %s", quote(args[0]))
		}
	}
	if c.targetDir != "" {
		info, err := os.Stat(c.targetDir)
		if err != nil {
			return failf("install", "failed to access %s: %s", quote(c.targetDir), fsutil.SyscallMessage(err))
		}
		if !info.IsDir() {
			return failf("install", "failed to access %s: Not a directory", quote(c.targetDir))
		}
		c.sources = args
		c.destDir = c.targetDir
		return nil
	}
	if c.noTargetDir {
		if nargs > 2 {
			return failf("install", "extra operand %s", quote(args[2]))
		}
		c.sources = args[:1]
		c.destFile = args[1]
		return nil
	}
	dest := args[nargs-1]
	c.sources = args[:nargs-1]
	switch info, err := os.Stat(dest); {
	case err == nil && info.IsDir():
		c.destDir = dest
	case len(c.sources) > 1:
		return failf("install", "target %s is not a directory", quote(dest))
	case strings.HasSuffix(dest, "/"):
		// a trailing slash asks for a directory even before it exists
		c.destDir = dest
	default:
		c.destFile = dest
	}
	return nil
}

func (c *installCmd) Privileges() error {
	return nil
}

func (c *installCmd) Exec() error {
	var status int
	switch {
	case c.directoryArgs:
		status = c.executor.InstallDirs(c.dirs)
	case c.destDir != "":
		status = c.executor.InstallInto(c.sources, c.destDir)
	default:
		status = c.executor.InstallFile(c.sources[0], c.destFile)
	}
	if status != 0 {
		return cmd.FailStatus(status)
	}
	return nil
}
