package paths

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dosetup/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHomeDirectory(t *testing.T) {
	home, err := GetHomeDirectory()
	require.NoError(t, err)
	assert.NotEmpty(t, home)
}

func TestConfigDir(t *testing.T) {
	t.Run("explicit override", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "/custom/dosetup")
		assert.Equal(t, "/custom/dosetup", ConfigDir())
		assert.Equal(t, filepath.Join("/custom/dosetup", "config.toml"), SettingsFilePath())
	})

	t.Run("XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv(EnvConfigDir, "")
		t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
		assert.Equal(t, filepath.Join("/xdg/config", "dosetup"), ConfigDir())
	})
}

func TestGetHomeDirectory_Unavailable(t *testing.T) {
	r := NewResolverWithHome(func() (string, error) {
		return "", errors.New(errors.ErrArgumentResolve, "unable to determine home directory")
	})

	_, err := r.ResolvePath("~/x")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrArgumentResolve))
}
