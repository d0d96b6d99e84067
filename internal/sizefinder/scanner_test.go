package sizefinder

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates a file of the given size, including any missing parents.
func writeFile(t *testing.T, path string, size int) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), size), 0o600))
}

func newTestScanner(t *testing.T) (*Scanner, *test.Hook, *bytes.Buffer) {
	t.Helper()

	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	var progress bytes.Buffer

	return NewScanner(log, &progress), hook, &progress
}

// warnings returns the warning messages recorded by hook.
func warnings(hook *test.Hook) []string {
	var msgs []string

	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			msgs = append(msgs, e.Message)
		}
	}

	return msgs
}

func TestFolderSizeEmpty(t *testing.T) {
	s, hook, _ := newTestScanner(t)

	assert.Equal(t, int64(0), s.FolderSize(t.TempDir()))
	assert.Empty(t, warnings(hook))
}

func TestFolderSizeNested(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "a"), 10)
	writeFile(t, filepath.Join(root, "sub", "b"), 20)
	writeFile(t, filepath.Join(root, "sub", "deeper", "still", "c"), 30)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty", "dirs"), 0o755))

	s, hook, _ := newTestScanner(t)

	assert.Equal(t, int64(60), s.FolderSize(root))
	assert.Empty(t, warnings(hook))
	assert.Equal(t, int64(0), s.ErrorCount())
}

func TestFolderSizeSkipsVanishedFile(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "keep"), 10)
	writeFile(t, filepath.Join(root, "sub", "gone"), 20)
	writeFile(t, filepath.Join(root, "sub", "keep"), 30)

	gone := filepath.Join(root, "sub", "gone")

	s, hook, _ := newTestScanner(t)

	// Delete the file between discovery and measurement.
	s.stat = func(name string) (fs.FileInfo, error) {
		if name == gone {
			assert.NoError(t, os.Remove(name))
		}

		return os.Stat(name)
	}

	assert.Equal(t, int64(40), s.FolderSize(root))
	assert.Equal(t, int64(1), s.ErrorCount())

	msgs := warnings(hook)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], gone)
}

func TestFolderSizeDoesNotFollowLinkedDirectories(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()

	writeFile(t, filepath.Join(root, "file"), 10)
	writeFile(t, filepath.Join(outside, "big"), 1000)

	if err := os.Symlink(outside, filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	s, _, _ := newTestScanner(t)

	assert.Equal(t, int64(10), s.FolderSize(root))
}

func TestFolderSizeStopsOnCancel(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "a"), 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, _, _ := newTestScanner(t)

	_, err := s.folderSize(ctx, root)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCollectChildren(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "x.txt"), 1500)
	writeFile(t, filepath.Join(root, "y", "inner.bin"), 2500)

	s, hook, progress := newTestScanner(t)

	entries, err := s.CollectChildren(context.Background(), root)
	require.NoError(t, err)

	assert.ElementsMatch(t, []NamedSize{
		{Name: "x.txt", Size: Measured(1500)},
		{Name: "y", Size: Measured(2500), Dir: true},
	}, entries)

	assert.False(t, s.Aborted())
	assert.Empty(t, warnings(hook))
	assert.Contains(t, progress.String(), "Scanning x.txt: 1.50 KB\n")
	assert.Contains(t, progress.String(), "Scanning y: 2.50 KB\n")
}

func TestCollectChildrenOnlyTopLevel(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "a", "b", "c", "d"), 5)
	writeFile(t, filepath.Join(root, "a", "e"), 7)

	s, _, _ := newTestScanner(t)

	entries, err := s.CollectChildren(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, NamedSize{Name: "a", Size: Measured(12), Dir: true}, entries[0])
}

func TestCollectChildrenVanishedFileIsUnmeasurable(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "gone"), 100)
	writeFile(t, filepath.Join(root, "kept"), 200)

	s, hook, progress := newTestScanner(t)

	s.stat = func(name string) (fs.FileInfo, error) {
		if filepath.Base(name) == "gone" {
			require.NoError(t, os.Remove(name))
		}

		return os.Stat(name)
	}

	entries, err := s.CollectChildren(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, []NamedSize{
		{Name: "gone", Size: Unmeasurable()},
		{Name: "kept", Size: Measured(200)},
	}, entries)
	assert.Len(t, warnings(hook), 1)
	assert.Contains(t, progress.String(), "Scanning gone: Unscanned\n")
}

func TestCollectChildrenCanceledBeforeStart(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "a"), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, _, progress := newTestScanner(t)

	entries, err := s.CollectChildren(ctx, root)
	require.NoError(t, err)

	assert.Empty(t, entries)
	assert.True(t, s.Aborted())
	assert.Contains(t, progress.String(), "Aborted")
}

func TestCollectChildrenCanceledBetweenChildren(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "a"), 1)
	writeFile(t, filepath.Join(root, "b"), 2)
	writeFile(t, filepath.Join(root, "c"), 3)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, _, progress := newTestScanner(t)

	// Interrupt while the first child is being measured.
	s.stat = func(name string) (fs.FileInfo, error) {
		cancel()

		return os.Stat(name)
	}

	entries, err := s.CollectChildren(ctx, root)
	require.NoError(t, err)

	assert.Equal(t, []NamedSize{{Name: "a", Size: Measured(1)}}, entries)
	assert.True(t, s.Aborted())
	assert.Contains(t, progress.String(), "Aborted")
	assert.NotContains(t, progress.String(), "Scanning b")
}

func TestCollectChildrenMissingDirectory(t *testing.T) {
	s, _, _ := newTestScanner(t)

	_, err := s.CollectChildren(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestCollectChildrenFollowsTopLevelLinkedFolder(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()

	writeFile(t, filepath.Join(outside, "data"), 42)

	if err := os.Symlink(outside, filepath.Join(root, "linked")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	s, _, _ := newTestScanner(t)

	entries, err := s.CollectChildren(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, []NamedSize{{Name: "linked", Size: Measured(42), Dir: true}}, entries)
}
