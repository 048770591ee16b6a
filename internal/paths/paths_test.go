package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkdir(t *testing.T, parts ...string) string {
	t.Helper()
	dir := filepath.Join(parts...)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	return dir
}

func TestDirs_Order(t *testing.T) {
	base := t.TempDir()
	sys1 := mkdir(t, base, "sys1", Subdir)
	sys2 := mkdir(t, base, "sys2", Subdir)
	home := mkdir(t, base, "home", Subdir)
	fallback := mkdir(t, base, "fallback")
	extra := mkdir(t, base, "extra")

	t.Setenv("XDG_DATA_DIRS", strings.Join([]string{
		filepath.Join(base, "sys1"),
		filepath.Join(base, "missing"),
		"",
		filepath.Join(base, "sys2"),
	}, ":"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(base, "home"))

	got := Dirs(Options{Fallback: fallback, Extra: []string{extra, sys1}})
	assert.Equal(t, []string{sys1, sys2, home, fallback, extra}, got)
}

func TestDirs_UserDirMustBeDirectory(t *testing.T) {
	base := t.TempDir()
	mkdir(t, base, "home")
	require.NoError(t, os.WriteFile(filepath.Join(base, "home", Subdir), []byte("not a dir"), 0o644))

	t.Setenv("XDG_DATA_DIRS", filepath.Join(base, "none"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(base, "home"))

	got := Dirs(Options{Fallback: filepath.Join(base, "nofallback")})
	assert.Empty(t, got)
}

func TestDataHome(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/custom/data")
	dir, err := DataHome()
	require.NoError(t, err)
	assert.Equal(t, "/custom/data", dir)

	t.Setenv("XDG_DATA_HOME", "relative/data")
	t.Setenv("HOME", "/home/tester")
	dir, err = DataHome()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/tester", ".local", "share"), dir)
}
