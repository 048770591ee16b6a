package index

import (
	"github.com/charmbracelet/log"
)

// Options configures discovery and the index it feeds.
type Options struct {
	Exclude []string
	Workers int
	KeyBy   KeyMode
	Logger  *log.Logger
}

// Start launches discovery over roots in the background and returns an empty
// index bound to its output. The caller drains it with Drain or DrainAll.
func Start(roots []string, opts Options) *Index {
	if opts.Logger != nil {
		opts.Logger.Debug("starting discovery", "roots", len(roots), "key_by", opts.KeyBy)
	}
	return NewIndex(Discover(roots, opts), opts.KeyBy)
}

// Load runs discovery to completion and returns the filled index.
func Load(roots []string, opts Options) *Index {
	x := Start(roots, opts)
	n := x.DrainAll()
	if opts.Logger != nil {
		opts.Logger.Debug("discovery finished", "items", n, "indexed", x.Len())
	}
	return x
}
