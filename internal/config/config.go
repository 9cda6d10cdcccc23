// Package config reads the optional toolkit-wide configuration file.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultPath is where the toolkit configuration lives unless GOBOX_CONFIG
// points somewhere else.
const DefaultPath = "/etc/gobox/config.toml"

type Config struct {
	LogLevel  string `toml:"log-level"`
	NoColor   bool   `toml:"no-color"`
	ModuleDir string `toml:"module-dir"`
}

// Load reads the configuration at path. A missing or malformed file is not
// an error; callers see zero values and apply their own defaults.
func Load(path string) Config {
	var cfg Config
	if _, err := os.Stat(path); err != nil {
		return cfg
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}
	}
	return cfg
}
