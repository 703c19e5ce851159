package service

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStoreSaveAndRemove(t *testing.T) {
	root := t.TempDir()
	store := NewDiskStore(root)

	path := "/uploads/listings/lst1/1-abc.jpg"
	require.NoError(t, store.Save(path, strings.NewReader("fakejpeg")))

	data, err := os.ReadFile(filepath.Join(root, "listings", "lst1", "1-abc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "fakejpeg", string(data))

	require.NoError(t, store.Remove(path))
	_, err = os.Stat(filepath.Join(root, "listings", "lst1", "1-abc.jpg"))
	assert.True(t, os.IsNotExist(err))

	// Removing twice is fine.
	require.NoError(t, store.Remove(path))
}

func TestDiskStoreRejectsEscapes(t *testing.T) {
	store := NewDiskStore(t.TempDir())

	err := store.Save("/uploads/../../etc/passwd", strings.NewReader("x"))
	require.Error(t, err)
	err = store.Remove("/uploads/../outside")
	require.Error(t, err)
}
