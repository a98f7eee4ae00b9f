package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dosetup/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for dosetup
	EnvConfigDir = "DOSETUP_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name for dosetup-specific files
	AppDirName = "dosetup"

	// SettingsFileName is the name of the user settings file
	SettingsFileName = "config.toml"

	// HomePrefix is the only prefix that triggers home-directory expansion
	HomePrefix = "~/"
)

// GetHomeDirectory returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME environment variable.
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}

	if err == nil {
		return "", errors.New(errors.ErrArgumentResolve, "unable to determine home directory")
	}
	return "", errors.Wrapf(err, errors.ErrArgumentResolve, "failed to get home directory")
}

// ConfigDir returns the directory holding the settings file
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppDirName)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// SettingsFilePath returns the default location of the settings file
func SettingsFilePath() string {
	return filepath.Join(ConfigDir(), SettingsFileName)
}
