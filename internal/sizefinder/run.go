package sizefinder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Run measures every immediate child of opt.Path and returns the collected
// entries along with timing information.
//
// The target must exist and be a directory; otherwise an error is returned.
// Unreadable children are recorded as unmeasurable, and an interrupted
// collection (ctx done) still returns the entries gathered so far.
func Run(ctx context.Context, opt Options) (*Stats, error) {
	if opt.Path == "" {
		opt.Path = "."
	}

	opt.Path = filepath.Clean(opt.Path)

	// validate path exists and is accessible
	if statInfo, err := os.Stat(opt.Path); err != nil {
		return nil, fmt.Errorf("accessing path %q: %w", opt.Path, err)
	} else if !statInfo.IsDir() {
		return nil, fmt.Errorf("path %q is not a directory", opt.Path)
	}

	scanner := NewScanner(opt.Log, opt.Progress)

	start := time.Now()

	entries, err := scanner.CollectChildren(ctx, opt.Path)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Path:       opt.Path,
		Entries:    entries,
		Aborted:    scanner.Aborted(),
		ErrorCount: scanner.ErrorCount(),
		Started:    start,
		Elapsed:    time.Since(start),
	}, nil
}
