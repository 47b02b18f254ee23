package config

import (
	"os"
	"path/filepath"
)

const (
	appName      = "tabgroups"
	databaseName = "tabgroups.sqlite"
	configName   = "config.toml"

	dirPerm  = 0o750
	filePerm = 0o600
)

// XDGDirs holds the XDG Base Directory paths for the application.
type XDGDirs struct {
	ConfigHome string
	DataHome   string
	StateHome  string
}

// GetXDGDirs returns the tabgroups directories under $XDG_CONFIG_HOME,
// $XDG_DATA_HOME and $XDG_STATE_HOME. With ENV=dev everything lives in
// ./.dev/tabgroups.
func GetXDGDirs() (*XDGDirs, error) {
	if os.Getenv("ENV") == "dev" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		devDir := filepath.Join(cwd, ".dev", appName)
		return &XDGDirs{ConfigHome: devDir, DataHome: devDir, StateHome: devDir}, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	base := func(env string, fallback ...string) string {
		if dir := os.Getenv(env); dir != "" {
			return filepath.Join(dir, appName)
		}
		return filepath.Join(append(append([]string{homeDir}, fallback...), appName)...)
	}

	return &XDGDirs{
		ConfigHome: base("XDG_CONFIG_HOME", ".config"),
		DataHome:   base("XDG_DATA_HOME", ".local", "share"),
		StateHome:  base("XDG_STATE_HOME", ".local", "state"),
	}, nil
}

// GetConfigDir returns the config directory.
func GetConfigDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.ConfigHome, nil
}

// GetConfigFile returns the path to the main configuration file.
func GetConfigFile() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configName), nil
}

// GetDatabaseFile returns the default strip database path.
func GetDatabaseFile() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return filepath.Join(dirs.DataHome, databaseName), nil
}

// GetLogDir returns the log directory. Logs are state, not data.
func GetLogDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return filepath.Join(dirs.StateHome, "logs"), nil
}

// EnsureDirectories creates the XDG directories if they don't exist.
func EnsureDirectories() error {
	dirs, err := GetXDGDirs()
	if err != nil {
		return err
	}
	for _, dir := range []string{dirs.ConfigHome, dirs.DataHome, dirs.StateHome} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return err
		}
	}
	return nil
}
