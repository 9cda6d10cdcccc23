package cli

import (
	"flag"
)

var flagSet = flag.NewFlagSet("gobox", flag.ExitOnError)

// FlagPresent reports whether the named flag was set on the command line.
// Only meaningful after the flag set has been parsed.
func FlagPresent(name string) bool {
	present := false
	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == name {
			present = true
		}
	})
	return present
}

// Short and long spellings of the same option share one destination; the
// flag package has no aliasing, so both names are registered explicitly.

func FlagAllGroups(provided *bool) {
	flagSet.BoolVar(provided, "G", false, "print all group IDs")
	flagSet.BoolVar(provided, "groups", false, "print all group IDs")
}

func FlagAllModules(provided *bool) {
	flagSet.BoolVar(provided, "a", false, "consider every name on the command line")
	flagSet.BoolVar(provided, "all", false, "consider every name on the command line")
}

func FlagBackup(provided *string) {
	flagSet.StringVar(provided, "backup", "", "make a backup of each existing destination file")
}

func FlagBackupShort(provided *bool) {
	flagSet.BoolVar(provided, "b", false, "like -backup but does not accept an argument")
}

func FlagBackupSuffix(provided *string) {
	flagSet.StringVar(provided, "S", "", "override the usual backup suffix")
	flagSet.StringVar(provided, "suffix", "", "override the usual backup suffix")
}

func FlagBaseDir(provided *string) {
	flagSet.StringVar(provided, "b", moduleDir, "module directory, instead of /lib/modules/<release>")
	flagSet.StringVar(provided, "basedir", moduleDir, "module directory, instead of /lib/modules/<release>")
}

func FlagBinary(provided *bool) {
	flagSet.BoolVar(provided, "b", false, "read in binary mode")
	flagSet.BoolVar(provided, "binary", false, "read in binary mode")
}

func FlagCanonicalize(provided *bool) {
	flagSet.BoolVar(provided, "f", false, "canonicalize; all but the last path component must exist")
	flagSet.BoolVar(provided, "canonicalize", false, "canonicalize; all but the last path component must exist")
}

func FlagCanonicalizeExisting(provided *bool) {
	flagSet.BoolVar(provided, "e", false, "canonicalize; every path component must exist")
	flagSet.BoolVar(provided, "canonicalize-existing", false, "canonicalize; every path component must exist")
}

func FlagCanonicalizeMissing(provided *bool) {
	flagSet.BoolVar(provided, "m", false, "canonicalize; no path component need exist")
	flagSet.BoolVar(provided, "canonicalize-missing", false, "canonicalize; no path component need exist")
}

func FlagChanges(provided *bool) {
	flagSet.BoolVar(provided, "c", false, "like verbose but report only when a change is made")
	flagSet.BoolVar(provided, "changes", false, "like verbose but report only when a change is made")
}

func FlagCheck(provided *bool) {
	flagSet.BoolVar(provided, "c", false, "read checksums from the FILEs and check them")
	flagSet.BoolVar(provided, "check", false, "read checksums from the FILEs and check them")
}

func FlagCheckQuiet(provided *bool) {
	flagSet.BoolVar(provided, "quiet", false, "don't print OK for each successfully verified file")
}

func FlagCheckStatus(provided *bool) {
	flagSet.BoolVar(provided, "status", false, "don't output anything, status code shows success")
}

func FlagCheckStrict(provided *bool) {
	flagSet.BoolVar(provided, "strict", false, "exit non-zero for improperly formatted checksum lines")
}

func FlagCheckWarn(provided *bool) {
	flagSet.BoolVar(provided, "w", false, "warn about improperly formatted checksum lines")
	flagSet.BoolVar(provided, "warn", false, "warn about improperly formatted checksum lines")
}

func FlagCompare(provided *bool) {
	flagSet.BoolVar(provided, "C", false, "compare content of source and destination; skip copies that would change nothing")
	flagSet.BoolVar(provided, "compare", false, "compare content of source and destination; skip copies that would change nothing")
}

func FlagCreateLeading(provided *bool) {
	flagSet.BoolVar(provided, "D", false, "create all leading components of DEST except the last")
}

func FlagDereference(provided *bool) {
	flagSet.BoolVar(provided, "dereference", false, "affect the referent of each symbolic link")
}

func FlagDirectoryArgs(provided *bool) {
	flagSet.BoolVar(provided, "d", false, "treat all arguments as directory names; create all components")
	flagSet.BoolVar(provided, "directory", false, "treat all arguments as directory names; create all components")
}

func FlagDryRun(provided *bool) {
	flagSet.BoolVar(provided, "u", false, "do not create anything; merely print a name")
	flagSet.BoolVar(provided, "dry-run", false, "do not create anything; merely print a name")
}

func FlagEffectiveGroup(provided *bool) {
	flagSet.BoolVar(provided, "g", false, "print only the effective group ID")
	flagSet.BoolVar(provided, "group", false, "print only the effective group ID")
}

func FlagEffectiveUser(provided *bool) {
	flagSet.BoolVar(provided, "u", false, "print only the effective user ID")
	flagSet.BoolVar(provided, "user", false, "print only the effective user ID")
}

func FlagField(provided *string) {
	flagSet.StringVar(provided, "F", "", "print only the given field value, one per line")
	flagSet.StringVar(provided, "field", "", "print only the given field value, one per line")
}

func FlagFilename(provided *bool) {
	flagSet.BoolVar(provided, "n", false, "print only the module file name")
	flagSet.BoolVar(provided, "filename", false, "print only the module file name")
}

func FlagFileSystem(provided *bool) {
	flagSet.BoolVar(provided, "f", false, "sync the file systems that contain the files")
	flagSet.BoolVar(provided, "file-system", false, "sync the file systems that contain the files")
}

func FlagForce(provided *bool) {
	flagSet.BoolVar(provided, "f", false, "force the operation even when it is considered unsafe")
	flagSet.BoolVar(provided, "force", false, "force the operation even when it is considered unsafe")
}

func FlagFrom(provided *string) {
	flagSet.StringVar(provided, "from", "", "change the ownership only when current owner and group match")
}

func FlagGroupSpec(provided *string) {
	flagSet.StringVar(provided, "g", "", "set group ownership, instead of process' current group")
	flagSet.StringVar(provided, "group", "", "set group ownership, instead of process' current group")
}

func FlagIgnoredCompat(provided *bool) {
	flagSet.BoolVar(provided, "a", false, "ignored, for compatibility with other versions")
}

func FlagIgnoredCopy(provided *bool) {
	flagSet.BoolVar(provided, "c", false, "ignored")
}

func FlagIgnoreInstall(provided *bool) {
	flagSet.BoolVar(provided, "ignore-install", false, "ignore install directives from configuration")
}

func FlagIgnoreMissing(provided *bool) {
	flagSet.BoolVar(provided, "ignore-missing", false, "don't fail or report status for missing files")
}

func FlagLength(provided *string) {
	flagSet.StringVar(provided, "l", "", "digest length in bits; must be a multiple of 8")
	flagSet.StringVar(provided, "length", "", "digest length in bits; must be a multiple of 8")
}

func FlagLogLevel(provided *string) {
	flagSet.StringVar(provided, "log-level", logLevel, "logging level")
}

func FlagMakeDirectory(provided *bool) {
	flagSet.BoolVar(provided, "d", false, "create a directory, not a file")
	flagSet.BoolVar(provided, "directory", false, "create a directory, not a file")
}

func FlagMode(provided *string) {
	flagSet.StringVar(provided, "m", "", "set file mode instead of the default")
	flagSet.StringVar(provided, "mode", "", "set file mode instead of the default")
}

func FlagModuleDir(provided *string) {
	flagSet.StringVar(provided, "d", moduleDir, "module directory, instead of /lib/modules/<release>")
	flagSet.StringVar(provided, "dirname", moduleDir, "module directory, instead of /lib/modules/<release>")
}

func FlagModuleDryRun(provided *bool) {
	flagSet.BoolVar(provided, "n", false, "do everything but actually insert or remove the module")
	flagSet.BoolVar(provided, "dry-run", false, "do everything but actually insert or remove the module")
	flagSet.BoolVar(provided, "show", false, "do everything but actually insert or remove the module")
}

func FlagName(provided *bool) {
	flagSet.BoolVar(provided, "n", false, "print a name instead of a number")
	flagSet.BoolVar(provided, "name", false, "print a name instead of a number")
}

func FlagNoColor(provided *bool) {
	flagSet.BoolVar(provided, "no-color", noColor, "disable color output")
}

func FlagNoDereference(provided *bool) {
	flagSet.BoolVar(provided, "h", false, "affect symbolic links instead of any referenced file")
	flagSet.BoolVar(provided, "no-dereference", false, "affect symbolic links instead of any referenced file")
}

func FlagNoNewline(provided *bool) {
	flagSet.BoolVar(provided, "n", false, "do not output the trailing delimiter")
	flagSet.BoolVar(provided, "no-newline", false, "do not output the trailing delimiter")
}

func FlagNoPreserveRoot(provided *bool) {
	flagSet.BoolVar(provided, "no-preserve-root", false, "do not treat '/' specially")
}

func FlagNoTargetDirectory(provided *bool) {
	flagSet.BoolVar(provided, "T", false, "treat DEST as a normal file")
	flagSet.BoolVar(provided, "no-target-directory", false, "treat DEST as a normal file")
}

func FlagNull(provided *bool) {
	flagSet.BoolVar(provided, "0", false, "use ASCII NUL characters instead of newlines")
	flagSet.BoolVar(provided, "null", false, "use ASCII NUL characters instead of newlines")
}

func FlagOwnerSpec(provided *string) {
	flagSet.StringVar(provided, "o", "", "set ownership (super-user only)")
	flagSet.StringVar(provided, "owner", "", "set ownership (super-user only)")
}

func FlagPreserveContext(provided *bool) {
	flagSet.BoolVar(provided, "P", false, "(unimplemented) preserve security context")
	flagSet.BoolVar(provided, "preserve-context", false, "(unimplemented) preserve security context")
}

func FlagPreserveRoot(provided *bool) {
	flagSet.BoolVar(provided, "preserve-root", false, "fail to operate recursively on '/'")
}

func FlagPreserveTimestamps(provided *bool) {
	flagSet.BoolVar(provided, "p", false, "apply source access and modification times to destination")
	flagSet.BoolVar(provided, "preserve-timestamps", false, "apply source access and modification times to destination")
}

func FlagQuiet(provided *bool) {
	flagSet.BoolVar(provided, "q", false, "suppress diagnostics about failures")
	flagSet.BoolVar(provided, "quiet", false, "suppress diagnostics about failures")
}

func FlagRandomUUID(provided *bool) {
	flagSet.BoolVar(provided, "r", false, "generate a random-based UUID")
	flagSet.BoolVar(provided, "random", false, "generate a random-based UUID")
}

func FlagReal(provided *bool) {
	flagSet.BoolVar(provided, "r", false, "print the real ID instead of the effective ID")
	flagSet.BoolVar(provided, "real", false, "print the real ID instead of the effective ID")
}

func FlagRecursive(provided *bool) {
	flagSet.BoolVar(provided, "R", false, "operate on files and directories recursively")
	flagSet.BoolVar(provided, "recursive", false, "operate on files and directories recursively")
}

func FlagReference(provided *string) {
	flagSet.StringVar(provided, "reference", "", "use RFILE's values rather than explicit ones")
}

func FlagRemove(provided *bool) {
	flagSet.BoolVar(provided, "r", false, "remove modules instead of inserting them")
	flagSet.BoolVar(provided, "remove", false, "remove modules instead of inserting them")
}

func FlagSecurityContext(provided *bool) {
	flagSet.BoolVar(provided, "Z", false, "print only the security context of the process")
	flagSet.BoolVar(provided, "context", false, "print only the security context of the process")
}

func FlagSetContext(provided *bool) {
	flagSet.BoolVar(provided, "Z", false, "(unimplemented) set security context of files and directories")
	flagSet.BoolVar(provided, "context", false, "(unimplemented) set security context of files and directories")
}

func FlagShowDepends(provided *bool) {
	flagSet.BoolVar(provided, "show-depends", false, "print the dependencies of a module and exit")
}

func FlagSilenceErrors(provided *bool) {
	flagSet.BoolVar(provided, "s", false, "suppress most error messages")
	flagSet.BoolVar(provided, "silent", false, "suppress most error messages")
}

func FlagSilent(provided *bool) {
	flagSet.BoolVar(provided, "f", false, "suppress most error messages")
	flagSet.BoolVar(provided, "silent", false, "suppress most error messages")
	flagSet.BoolVar(provided, "quiet", false, "suppress most error messages")
}

func FlagStrip(provided *bool) {
	flagSet.BoolVar(provided, "s", false, "strip symbol tables")
	flagSet.BoolVar(provided, "strip", false, "strip symbol tables")
}

func FlagStripProgram(provided *string) {
	flagSet.StringVar(provided, "strip-program", "", "program used to strip binaries")
}

func FlagSuffix(provided *string) {
	flagSet.StringVar(provided, "suffix", "", "append SUFF to TEMPLATE; SUFF must not contain a slash")
}

func FlagSyncData(provided *bool) {
	flagSet.BoolVar(provided, "d", false, "sync only file data, no unneeded metadata")
	flagSet.BoolVar(provided, "data", false, "sync only file data, no unneeded metadata")
}

func FlagTag(provided *bool) {
	flagSet.BoolVar(provided, "tag", false, "create a BSD-style checksum")
}

func FlagTargetDirectory(provided *string) {
	flagSet.StringVar(provided, "t", "", "copy all SOURCE arguments into DIRECTORY")
	flagSet.StringVar(provided, "target-directory", "", "copy all SOURCE arguments into DIRECTORY")
}

func FlagText(provided *bool) {
	flagSet.BoolVar(provided, "t", false, "read in text mode")
	flagSet.BoolVar(provided, "text", false, "read in text mode")
}

func FlagTimeUUID(provided *bool) {
	flagSet.BoolVar(provided, "t", false, "generate a time-based UUID")
	flagSet.BoolVar(provided, "time", false, "generate a time-based UUID")
}

func FlagTmpdir(provided *string) {
	flagSet.StringVar(provided, "p", tmpDir, "interpret TEMPLATE relative to DIR")
	flagSet.StringVar(provided, "tmpdir", tmpDir, "interpret TEMPLATE relative to DIR")
}

func FlagTraverseAll(provided *bool) {
	flagSet.BoolVar(provided, "L", false, "traverse every symbolic link to a directory encountered")
}

func FlagTraverseFirst(provided *bool) {
	flagSet.BoolVar(provided, "H", false, "if a command line argument is a symbolic link to a directory, traverse it")
}

func FlagTraverseNone(provided *bool) {
	flagSet.BoolVar(provided, "P", false, "do not traverse any symbolic links")
}

func FlagTreatAsTemplate(provided *bool) {
	flagSet.BoolVar(provided, "t", false, "interpret TEMPLATE as a single file name component relative to a directory")
}

func FlagUseBlacklist(provided *bool) {
	flagSet.BoolVar(provided, "b", false, "apply blacklist directives to resolved aliases")
	flagSet.BoolVar(provided, "use-blacklist", false, "apply blacklist directives to resolved aliases")
}

func FlagVerbose(provided *bool) {
	flagSet.BoolVar(provided, "v", false, "output a diagnostic for every file processed")
	flagSet.BoolVar(provided, "verbose", false, "output a diagnostic for every file processed")
}

func FlagVersion(provided *bool) {
	flagSet.BoolVar(provided, "version", false, "show version")
}

func FlagWait(provided *bool) {
	flagSet.BoolVar(provided, "w", false, "wait until the module is no longer used")
	flagSet.BoolVar(provided, "wait", false, "wait until the module is no longer used")
}

func FlagZero(provided *bool) {
	flagSet.BoolVar(provided, "z", false, "end each output line with NUL, not newline")
	flagSet.BoolVar(provided, "zero", false, "end each output line with NUL, not newline")
}
