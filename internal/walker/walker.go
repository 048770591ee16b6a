package walker

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	ignore "github.com/sabhiram/go-gitignore"
)

// FileInfo describes a discovered descriptor candidate.
type FileInfo struct {
	Path    string
	Root    string
	RelPath string
}

// Options tune a walk. The zero value walks everything and logs nowhere.
type Options struct {
	// Exclude holds gitignore-style patterns matched against paths relative
	// to each root.
	Exclude []string
	Logger  *log.Logger
}

// Walk traverses every root depth-first and sends each regular file on the
// returned channel. Unreadable directories and files are skipped. The
// channel is closed once all roots have been walked.
func Walk(roots []string, opts Options) <-chan FileInfo {
	files := make(chan FileInfo, 64)

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	var excl *ignore.GitIgnore
	if len(opts.Exclude) > 0 {
		excl = ignore.CompileIgnoreLines(opts.Exclude...)
	}

	go func() {
		defer close(files)
		for _, root := range roots {
			walkRoot(root, excl, logger, files)
		}
	}()

	return files
}

func walkRoot(root string, excl *ignore.GitIgnore, logger *log.Logger, files chan<- FileInfo) {
	// WalkDir does not follow a symlinked root, and application dirs are
	// often symlinks into a package store.
	absRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		logger.Debug("skip root", "root", root, "err", err)
		return
	}

	_ = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Debug("skip unreadable path", "path", path, "err", err)
			return nil // skip errors, keep walking
		}

		if path != absRoot && excluded(excl, absRoot, path, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		if !isRegular(path, d) {
			return nil
		}

		relPath, _ := filepath.Rel(absRoot, path)
		files <- FileInfo{
			Path:    path,
			Root:    root,
			RelPath: filepath.ToSlash(relPath),
		}
		return nil
	})
}

// isRegular accepts regular files and symlinks that resolve to one.
// Symlinked directories are never descended.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func excluded(excl *ignore.GitIgnore, root, path string, dir bool) bool {
	if excl == nil {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if dir {
		rel += "/"
	}
	return excl.MatchesPath(rel)
}
