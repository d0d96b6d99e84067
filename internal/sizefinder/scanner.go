package sizefinder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charlievieth/fastwalk"
	"github.com/sirupsen/logrus"
)

// Scanner measures filesystem entries. It is not safe for concurrent use.
type Scanner struct {
	log      logrus.FieldLogger
	progress io.Writer
	stat     func(name string) (fs.FileInfo, error)

	errorCount int64
	aborted    bool
}

// NewScanner creates a Scanner that reports unreadable paths to log and writes
// progress lines to progress. Either may be nil to discard output.
func NewScanner(log logrus.FieldLogger, progress io.Writer) *Scanner {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	if progress == nil {
		progress = io.Discard
	}

	return &Scanner{
		log:      log,
		progress: progress,
		stat:     os.Stat,
	}
}

// ErrorCount returns the number of paths that could not be measured so far.
func (s *Scanner) ErrorCount() int64 {
	return s.errorCount
}

// Aborted reports whether the last collection was interrupted.
func (s *Scanner) Aborted() bool {
	return s.aborted
}

// unreadable records a path whose size could not be determined.
func (s *Scanner) unreadable(path string, err error) {
	s.errorCount++
	s.log.WithError(err).Warnf("Could not access %s", path)
}

// FolderSize returns the sum of the sizes of all files beneath path, at any depth.
// Files that vanish or cannot be read are reported and contribute nothing.
func (s *Scanner) FolderSize(path string) int64 {
	size, _ := s.folderSize(context.Background(), path)

	return size
}

// folderSize walks path sequentially, stopping early only when ctx is done.
func (s *Scanner) folderSize(ctx context.Context, root string) (int64, error) {
	var size int64

	conf := &fastwalk.Config{
		Follow:     false, // Don't follow symlinks
		NumWorkers: 1,     // One branch at a time
	}

	//nolint:varnamelen // d is standard for DirEntry
	err := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.unreadable(path, err)

			return nil
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			s.log.WithField("path", path).Debug("walking directory")

			return nil
		}

		info, err := s.stat(path)
		if err != nil {
			s.unreadable(path, err)

			return nil
		}

		// Links to directories are not descended into.
		if info.IsDir() {
			return nil
		}

		size += info.Size()

		return nil
	})

	switch {
	case err == nil:
		return size, nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return size, err
	default:
		// Callback errors are absorbed above; anything else comes from the walker itself.
		s.unreadable(root, err)

		return size, nil
	}
}

// CollectChildren measures each file and folder directly inside topPath.
// Files are measured directly, folders by their recursive total.
//
// ctx is checked before every child. Once it is done, collection stops, an
// "Aborted" notice is printed and the entries gathered so far are returned
// without error. Only a failure to list topPath itself is returned as an error.
func (s *Scanner) CollectChildren(ctx context.Context, topPath string) ([]NamedSize, error) {
	s.aborted = false

	dirEntries, err := os.ReadDir(topPath)
	if err != nil {
		return nil, fmt.Errorf("reading directory %q: %w", topPath, err)
	}

	entries := make([]NamedSize, 0, len(dirEntries))

	for _, d := range dirEntries {
		if ctx.Err() != nil {
			s.abort()

			break
		}

		fmt.Fprintf(s.progress, "Scanning %s: ", d.Name())

		entry, err := s.measureChild(ctx, filepath.Join(topPath, d.Name()), d)
		if err != nil {
			fmt.Fprintln(s.progress)
			s.abort()

			break
		}

		fmt.Fprintln(s.progress, Format(entry.Size))

		entries = append(entries, entry)
	}

	return entries, nil
}

func (s *Scanner) abort() {
	s.aborted = true

	fmt.Fprintln(s.progress, "\nAborted")
}

// measureChild sizes a single top-level entry. The only error returned is the
// context's, when the walk of a folder was interrupted.
func (s *Scanner) measureChild(ctx context.Context, path string, d fs.DirEntry) (NamedSize, error) {
	entry := NamedSize{Name: d.Name()}

	if target, ok := s.dirTarget(path, d); ok {
		size, err := s.folderSize(ctx, target)
		if err != nil {
			return entry, err
		}

		entry.Dir = true
		entry.Size = Measured(size)

		return entry, nil
	}

	info, err := s.stat(path)
	if err != nil {
		s.unreadable(path, err)
		entry.Size = Unmeasurable()

		return entry, nil
	}

	entry.Size = Measured(info.Size())

	return entry, nil
}

// dirTarget reports whether a top-level entry is a folder, resolving symlinks
// at this level so a linked folder is summed like a real one.
func (s *Scanner) dirTarget(path string, d fs.DirEntry) (string, bool) {
	if d.IsDir() {
		return path, true
	}

	if d.Type()&fs.ModeSymlink == 0 {
		return "", false
	}

	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", false
	}

	info, err := s.stat(target)
	if err != nil || !info.IsDir() {
		return "", false
	}

	return target, true
}
