package cli

import (
	"os"

	"github.com/gobox/gobox/cmd"
	"github.com/gobox/gobox/internal/config"
)

var (
	DefaultLogLevel = "info"

	cfg = config.Load(cmd.EnvOrDefault(cmd.EnvConfigPath, config.DefaultPath))

	logLevel  = cmd.EnvOrDefault(cmd.EnvLogLevel, firstNonEmpty(cfg.LogLevel, DefaultLogLevel))
	moduleDir = cmd.EnvOrDefault(cmd.EnvModuleDir, cfg.ModuleDir)
	noColor   = cmd.BoolEnv(cmd.EnvNoColor) || cfg.NoColor
	tmpDir    = os.Getenv("TMPDIR")
)

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
