package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigFile points at an explicit configuration file
	EnvConfigFile = "MERGERFS_CONSOLIDATE_CONFIG"

	// EnvConfigDir overrides the XDG config directory
	EnvConfigDir = "MERGERFS_TOOLS_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory
	EnvStateDir = "MERGERFS_TOOLS_STATE_DIR"
)

const (
	// AppDirName is the directory name used below the XDG base directories
	AppDirName = "mergerfs-tools"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "consolidate.toml"

	// LogFileName is the name of the log file
	LogFileName = "consolidate.log"

	// StylesFileName is the name of the optional terminal styles override
	StylesFileName = "styles.yaml"
)

// ConfigDir returns the directory holding user configuration.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns the directory holding the log file.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// ConfigFilePath returns the user configuration file to load, honouring
// MERGERFS_CONSOLIDATE_CONFIG before the XDG default. The file may not exist.
func ConfigFilePath() string {
	if file := os.Getenv(EnvConfigFile); file != "" {
		return ExpandHome(file)
	}
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// LogFilePath returns the path of the append-only log file.
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// StylesFilePath returns the optional user styles file. The file may not exist.
func StylesFilePath() string {
	return filepath.Join(ConfigDir(), StylesFileName)
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
