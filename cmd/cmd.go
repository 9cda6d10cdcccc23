package cmd

import (
	"os"
	"strconv"
)

const (
	EnvConfigPath = "GOBOX_CONFIG"
	EnvLogLevel   = "GOBOX_LOG_LEVEL"
	EnvModuleDir  = "GOBOX_MODULE_DIR"
	EnvNoColor    = "GOBOX_NO_COLOR"
)

func EnvOrDefault(key string, defaultVal string) string {
	if envVal := os.Getenv(key); envVal != "" {
		return envVal
	}
	return defaultVal
}

func BoolEnv(k string) bool {
	v := os.Getenv(k)
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	return b
}
