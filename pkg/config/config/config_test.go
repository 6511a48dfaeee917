package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	applyDefaults(v)
	return v
}

func TestUseViper(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		v := newViper()
		require.NoError(t, UseViper(v))

		cfg := GetConfig()
		assert.Equal(t, "localhost:8080", ServerAddr())
		assert.Equal(t, "localhost:6060", AdminServerAddr())
		assert.False(t, cfg.IsProduction())
		assert.Equal(t, DevelopmentAssetsURL, cfg.Assets.URL.String())
		assert.Equal(t, 10*time.Second, cfg.Assets.Timeout)
		assert.True(t, cfg.Assets.S3.UseSSL)
		assert.Nil(t, cfg.Cache.Redis)
		assert.Equal(t, 2, cfg.AvatarOptions().TextLength)
		assert.False(t, cfg.AvatarOptions().Lenient)
		assert.Nil(t, cfg.AvatarOptions().DefaultColor)
	})

	t.Run("Production", func(t *testing.T) {
		v := newViper()
		v.Set("environment", "production")
		require.NoError(t, UseViper(v))

		cfg := GetConfig()
		assert.True(t, cfg.IsProduction())
		assert.Equal(t, ProductionAssetsURL, cfg.Assets.URL.String())
	})

	t.Run("Overrides", func(t *testing.T) {
		v := newViper()
		v.Set("assets.url", "s3://avatars/v1")
		v.Set("assets.s3.endpoint", "minio.local:9000")
		v.Set("assets.s3.access_key", "key")
		v.Set("assets.s3.secret_key", "secret")
		v.Set("assets.s3.use_ssl", "false")
		v.Set("avatar.text_length", 3)
		v.Set("avatar.lenient", true)
		v.Set("avatar.default_color", "#3b82f6")
		v.Set("cache.redis", "redis://localhost:6379/2")
		require.NoError(t, UseViper(v))

		cfg := GetConfig()
		opts := cfg.StoreOptions()
		assert.Equal(t, "s3", opts.URL.Scheme)
		assert.Equal(t, "minio.local:9000", opts.S3.Endpoint)
		assert.Equal(t, "key", opts.S3.AccessKey)
		assert.False(t, opts.S3.UseSSL)
		assert.NotNil(t, cfg.Cache.Redis)

		avatarOpts := cfg.AvatarOptions()
		assert.Equal(t, 3, avatarOpts.TextLength)
		assert.True(t, avatarOpts.Lenient)
		require.NotNil(t, avatarOpts.DefaultColor)
		assert.Equal(t, "#3b82f6", avatarOpts.DefaultColor.String())
	})

	t.Run("Invalid", func(t *testing.T) {
		v := newViper()
		v.Set("environment", "staging")
		v.Set("assets.url", "ftp://example.org/")
		v.Set("avatar.default_color", "not-a-color")
		v.Set("log.level", "verbose")
		err := UseViper(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "staging")
		assert.Contains(t, err.Error(), "ftp")
		assert.Contains(t, err.Error(), "not-a-color")
		assert.Contains(t, err.Error(), "verbose")
	})
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "exavatar.yaml"), []byte("port: 9090\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "exavatar.yaml.local"), []byte("port: 9091\n"), 0o600))

	oldPaths := Paths
	Paths = []string{dir}
	defer func() { Paths = oldPaths }()

	files, err := findConfigFiles(Filename)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "exavatar.yaml"),
		filepath.Join(dir, "exavatar.yaml.local"),
	}, files)

	_, err = FindConfigFile("missing.yaml")
	assert.Error(t, err)
}

func TestUseTestFile(t *testing.T) {
	UseTestFile(t)
	assert.Equal(t, "mem", GetConfig().Assets.URL.Scheme)
}
