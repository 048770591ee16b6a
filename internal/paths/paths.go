// Package paths resolves the directories scanned for application descriptors.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// Subdir is appended to every XDG data directory.
	Subdir = "applications"
	// FallbackDir is always scanned last.
	FallbackDir = "/run/current-system/sw/share/applications"
	// defaultDataDirs applies when XDG_DATA_DIRS is unset or empty.
	defaultDataDirs = "/usr/local/share:/usr/share"
)

// Options adds to the standard directory list.
type Options struct {
	// Extra directories are scanned after the standard ones, as given.
	Extra []string
	// Fallback replaces FallbackDir when non-empty.
	Fallback string
}

// DataHome returns the user data directory: $XDG_DATA_HOME if it is an
// absolute path, otherwise ~/.local/share.
func DataHome() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); filepath.IsAbs(dir) {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share"), nil
}

// Dirs returns the existing directories to scan, in order: each
// $XDG_DATA_DIRS entry joined with Subdir, the user's data directory joined
// with Subdir, the fallback directory, then any extra directories. Missing
// directories and duplicates are left out.
func Dirs(opts Options) []string {
	var candidates []string

	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = defaultDataDirs
	}
	for _, d := range strings.Split(dataDirs, ":") {
		if d == "" {
			continue
		}
		candidates = append(candidates, filepath.Join(d, Subdir))
	}

	if home, err := DataHome(); err == nil {
		candidates = append(candidates, filepath.Join(home, Subdir))
	}

	fallback := opts.Fallback
	if fallback == "" {
		fallback = FallbackDir
	}
	candidates = append(candidates, fallback)
	candidates = append(candidates, opts.Extra...)

	seen := make(map[string]bool, len(candidates))
	dirs := make([]string, 0, len(candidates))
	for _, c := range candidates {
		c = filepath.Clean(c)
		if seen[c] || !isDir(c) {
			continue
		}
		seen[c] = true
		dirs = append(dirs, c)
	}
	return dirs
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
