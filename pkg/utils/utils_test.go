package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	exists, err := FileExists("/no/such/file")
	assert.NoError(t, err)
	assert.False(t, exists)

	dir := t.TempDir()
	name := filepath.Join(dir, "exavatar.yaml")
	require.NoError(t, os.WriteFile(name, []byte("port: 8080\n"), 0o600))
	exists, err = FileExists(name)
	assert.NoError(t, err)
	assert.True(t, exists)

	_, err = FileExists(dir)
	assert.Error(t, err)
}

func TestAbsPath(t *testing.T) {
	t.Setenv("HOME", "/home/alice")
	t.Setenv("XDG_CONFIG_HOME", "/home/alice/.config")

	home := UserHomeDir()
	assert.Equal(t, "/home/alice", home)
	assert.Equal(t, home, AbsPath("~"))
	foo := AbsPath("foo")
	wd, _ := os.Getwd()
	assert.Equal(t, wd+"/foo", foo)
	assert.Equal(t, home+"/bar", AbsPath("~/bar"))
	assert.Equal(t, home+"/baz", AbsPath("$HOME/baz"))
	assert.Equal(t, "/home/alice/.config/exavatar", AbsPath("$XDG_CONFIG_HOME/exavatar"))
	assert.Equal(t, "/qux", AbsPath("/qux"))
	assert.Equal(t, "/qux/quux", AbsPath("////qux//quux/../quux"))
}
