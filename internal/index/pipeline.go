package index

import (
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"launcher/internal/desktop"
	"launcher/internal/walker"
)

// itemBuffer is the capacity of the discovery output channel.
const itemBuffer = 256

// Item is one discovered entry together with its derived search key and the
// descriptor it came from.
type Item struct {
	Key   string
	Path  string
	Entry desktop.Entry
}

// Discover walks roots and parses every regular file found, streaming each
// entry as soon as it is parsed. The returned channel is closed when the
// walk and all parse workers have finished. Discovery cannot be cancelled;
// failures on individual files or directories are logged and skipped.
func Discover(roots []string, opts Options) <-chan Item {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// Stage 1: Walk
	fileCh := walker.Walk(roots, walker.Options{
		Exclude: opts.Exclude,
		Logger:  logger,
	})

	// Stage 2: Parse (N workers)
	out := make(chan Item, itemBuffer)
	var g errgroup.Group
	for range workers {
		g.Go(func() error {
			for fi := range fileCh {
				entry, ok, err := desktop.ParseFile(fi.Path)
				if err != nil {
					logger.Debug("skip descriptor", "path", fi.Path, "err", err)
					continue
				}
				if !ok {
					continue
				}
				out <- Item{
					Key:   entry.SearchKey(),
					Path:  fi.Path,
					Entry: entry,
				}
			}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(out)
	}()

	return out
}
