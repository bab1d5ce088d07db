package storage

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDisk(t *testing.T) (StorageAPI, string) {
	t.Helper()
	dir := t.TempDir()
	bucket := Bucket{Name: "test-media", StorageType: StorageTypeFile, Path: dir}
	return NewDiskStorage(&bucket), dir
}

func TestDiskSaveLoadDelete(t *testing.T) {
	store, _ := newTestDisk(t)

	size, err := store.Save("posts/hello.txt", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)
	assert.Equal(t, int64(5), store.GetSize("posts/hello.txt"))

	var buf bytes.Buffer
	size, err = store.Load("posts/hello.txt", &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)
	assert.Equal(t, "hello", buf.String())

	require.NoError(t, store.Delete("posts/hello.txt"))
	assert.Equal(t, int64(-1), store.GetSize("posts/hello.txt"))
	_, err = store.Load("posts/hello.txt", &buf)
	assert.Error(t, err)
}

func TestDiskServe(t *testing.T) {
	store, _ := newTestDisk(t)
	_, err := store.Save("posts/served.txt", strings.NewReader("served content"))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	store.Serve("posts/served.txt", httptest.NewRequest("GET", "/media/posts/served.txt", nil), w)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "served content", w.Body.String())
}

func TestDiskListFiles(t *testing.T) {
	store, dir := newTestDisk(t)
	for _, path := range []string{"posts/a.jpg", "posts/b.jpg", "posts/thumb/a.jpg"} {
		_, err := store.Save(path, strings.NewReader("x"))
		require.NoError(t, err)
	}
	// Age two of them so the in-flight-upload cutoff keeps only those
	old := time.Now().Add(-2 * time.Hour)
	for _, path := range []string{"posts/a.jpg", "posts/thumb/a.jpg"} {
		require.NoError(t, os.Chtimes(filepath.Join(dir, filepath.FromSlash(path)), old, old))
	}

	files, err := store.ListFiles(LocationPosts, time.Hour)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"posts/a.jpg", "posts/thumb/a.jpg"}, files)

	// A location that was never written to is empty, not an error
	files, err = store.ListFiles("avatars", time.Hour)
	require.NoError(t, err)
	assert.Empty(t, files)
}
