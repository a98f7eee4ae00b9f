package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS_Symlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation needs elevation on windows")
	}

	fs := NewOS()
	tmpDir := t.TempDir()
	original := filepath.Join(tmpDir, "gitconfig")
	link := filepath.Join(tmpDir, ".gitconfig")
	require.NoError(t, os.WriteFile(original, []byte("[user]\n"), 0644))

	_, err := fs.Stat(original)
	require.NoError(t, err)

	require.NoError(t, fs.Symlink(original, link))

	info, err := fs.Lstat(link)
	require.NoError(t, err)
	assert.True(t, info.Mode()&os.ModeSymlink != 0)

	target, err := fs.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, original, target)

	// Creating the same link again fails because the destination exists
	err = fs.Symlink(original, link)
	require.Error(t, err)
	assert.True(t, os.IsExist(err))
}

func TestNewOS_StatMissing(t *testing.T) {
	fs := NewOS()
	_, err := fs.Stat(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, os.IsNotExist(err))
}

func TestAferoFS_MemMapHasNoSymlinks(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/src/file", []byte("x"), 0644))

	fs := NewAferoFS(mem)

	info, err := fs.Lstat("/src/file")
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	err = fs.Symlink("/src/file", "/dst/file")
	require.Error(t, err)
	assert.True(t, errors.Is(err, afero.ErrNoSymlink))

	_, err = fs.Readlink("/src/file")
	assert.True(t, errors.Is(err, afero.ErrNoReadlink))
}
