package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launcher/internal/index"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	cfg, path, err := Load(LoadOptions{ConfigDirPath: t.TempDir()})
	require.NoError(t, err)

	assert.Empty(t, path)
	assert.Equal(t, index.DefaultBatchSize, cfg.BatchSize)
	assert.Equal(t, "search", cfg.KeyBy)
	assert.Equal(t, index.KeyBySearch, cfg.KeyMode())
	assert.Equal(t, "latte", cfg.Theme)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Empty(t, cfg.ExtraDirs)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	content := `batch_size: 25
key_by: path
extra_dirs:
  - /opt/apps
exclude:
  - "*.bak"
workers: 2
theme: mocha
log:
  level: debug
  file: /tmp/launcher.log
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, path, err := Load(LoadOptions{ConfigDirPath: dir})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "config.yaml"), path)
	assert.Equal(t, 25, cfg.BatchSize)
	assert.Equal(t, index.KeyByPath, cfg.KeyMode())
	assert.Equal(t, []string{"/opt/apps"}, cfg.ExtraDirs)
	assert.Equal(t, []string{"*.bak"}, cfg.Exclude)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "mocha", cfg.Theme)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/launcher.log", cfg.Log.File)
}

func TestLoad_TOMLFileExplicit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("batch_size = 7\n\n[log]\nlevel = \"info\"\n"), 0o644))

	cfg, resolved, err := Load(LoadOptions{ConfigFilePath: path})
	require.NoError(t, err)
	assert.Equal(t, path, resolved)
	assert.Equal(t, 7, cfg.BatchSize)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LAUNCHER_BATCH_SIZE", "5")
	t.Setenv("LAUNCHER_LOG_LEVEL", "error")

	cfg, _, err := Load(LoadOptions{ConfigDirPath: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.BatchSize)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, _, err := Load(LoadOptions{ConfigFilePath: filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("key_by: inode\n"), 0o644))

	_, _, err := Load(LoadOptions{ConfigDirPath: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key_by")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"defaults ok", func(*Config) {}, ""},
		{"zero batch", func(c *Config) { c.BatchSize = 0 }, "batch_size"},
		{"negative workers", func(c *Config) { c.Workers = -1 }, "workers"},
		{"bad theme", func(c *Config) { c.Theme = "neon" }, "theme"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", AppName), dir)
}
