package config

import (
	"os"
	"runtime"
	"strings"

	"github.com/arthur-debert/dosetup/pkg/errors"
	"github.com/arthur-debert/dosetup/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every settings environment variable
const EnvPrefix = "DOSETUP_"

// Settings holds dosetup's own configuration
type Settings struct {
	// Platform is the platform id recipes are resolved for
	Platform    string            `koanf:"platform"`
	Elevation   ElevationSettings `koanf:"elevation"`
	Windows     WindowsSettings   `koanf:"windows"`
	FailOnError bool              `koanf:"fail_on_error"`
	LogFile     bool              `koanf:"log_file"`
}

// ElevationSettings configures privilege elevation on Unix
type ElevationSettings struct {
	Command string `koanf:"command"`
}

// WindowsSettings configures the Windows strategy
type WindowsSettings struct {
	Shell string `koanf:"shell"`
}

// settingKeys lists every known key, used to map environment variables whose
// names are ambiguous (DOSETUP_FAIL_ON_ERROR is fail_on_error, not fail.on.error)
var settingKeys = []string{
	"platform",
	"elevation.command",
	"windows.shell",
	"fail_on_error",
	"log_file",
}

// LoadOptions controls where settings come from
type LoadOptions struct {
	// Path is an explicit settings file. It must exist when set.
	Path string

	// Overrides are applied last, keyed by dotted setting name
	Overrides map[string]interface{}
}

// DefaultPlatform maps a GOOS value to a platform id
func DefaultPlatform(goos string) string {
	switch goos {
	case "darwin":
		return "macos"
	default:
		return goos
	}
}

// LoadSettings layers defaults, the settings file, the environment and
// overrides
func LoadSettings(opts LoadOptions) (*Settings, error) {
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load default settings")
	}
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"platform": DefaultPlatform(runtime.GOOS),
	}, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load runtime defaults")
	}

	// 2. Settings file
	path, err := settingsFile(opts.Path)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load settings from %s", path).
				WithDetail("path", path)
		}
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load settings from environment")
	}

	// 4. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode settings")
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that required settings are present
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.Platform) == "" {
		return errors.New(errors.ErrConfigValid, "platform must not be empty")
	}
	if strings.TrimSpace(s.Elevation.Command) == "" {
		return errors.New(errors.ErrConfigValid, "elevation.command must not be empty")
	}
	if strings.TrimSpace(s.Windows.Shell) == "" {
		return errors.New(errors.ErrConfigValid, "windows.shell must not be empty")
	}
	return nil
}

// settingsFile returns the file to load, or "" when there is none
func settingsFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "settings file %s", explicit).
				WithDetail("path", explicit)
		}
		return explicit, nil
	}

	path := paths.SettingsFilePath()
	if _, err := os.Stat(path); err != nil {
		return "", nil
	}
	return path, nil
}

// envKey maps DOSETUP_ELEVATION_COMMAND to elevation.command
func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	for _, known := range settingKeys {
		if strings.ReplaceAll(known, ".", "_") == key {
			return known
		}
	}
	return strings.ReplaceAll(key, "_", ".")
}
