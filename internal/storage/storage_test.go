//go:build unit

package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"wonders-cms/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough of a PNG for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(t.TempDir(), logger.Nop())
	require.NoError(t, s.EnsureDirs())
	return s
}

func TestStore_EnsureDirs(t *testing.T) {
	s := newTestStore(t)
	for _, dir := range Dirs {
		info, err := os.Stat(filepath.Join(s.Root(), filepath.FromSlash(dir)))
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
	}
}

func TestStore_PutImage(t *testing.T) {
	s := newTestStore(t)

	name, err := s.Put(bytes.NewReader(pngHeader), "Pantai.PNG", DirJelajahi, KindImage)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^\d{13}-\d+\.png$`), name)
	assert.True(t, s.Exists(DirJelajahi, name))

	got, err := os.ReadFile(s.Path(DirJelajahi, name))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, got)
}

func TestStore_PutRejectsWrongKind(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Put(bytes.NewReader([]byte("just some text")), "notes.jpg", DirJelajahi, KindImage)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedType))

	_, err = s.Put(bytes.NewReader(pngHeader), "clip.mp4", DirHomeVideos, KindVideo)
	assert.True(t, errors.Is(err, ErrUnsupportedType))

	entries, err := os.ReadDir(filepath.Join(s.Root(), "jelajahi", "images"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_PutUniqueNames(t *testing.T) {
	s := newTestStore(t)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		name, err := s.Put(bytes.NewReader(pngHeader), "a.png", DirEditor, KindImage)
		require.NoError(t, err)
		assert.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true
	}
}

func TestStore_Remove(t *testing.T) {
	s := newTestStore(t)
	name, err := s.Put(bytes.NewReader(pngHeader), "a.png", DirEvent, KindImage)
	require.NoError(t, err)

	require.NoError(t, s.Remove(DirEvent, name))
	assert.False(t, s.Exists(DirEvent, name))

	// Missing files and empty names are fine.
	assert.NoError(t, s.Remove(DirEvent, name))
	assert.NoError(t, s.Remove(DirEvent, ""))
}

func TestStore_PathStaysInDir(t *testing.T) {
	s := New("/srv/uploads", logger.Nop())
	assert.Equal(t, filepath.Join("/srv/uploads", "event", "passwd"), s.Path(DirEvent, "../../etc/passwd"))
}

func TestURL(t *testing.T) {
	assert.Equal(t, "/uploads/kuliner/items/video/1-2.mp4", URL(DirKulinerItemVideos, "1-2.mp4"))
}
