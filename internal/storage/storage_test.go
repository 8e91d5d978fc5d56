package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"petshop/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_PutAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir, "http://localhost:8080/media/")
	require.NoError(t, err)

	obj, err := store.Put(context.Background(), "petshop/images", "Dog Food.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(obj.Key, "petshop/images/"))
	assert.True(t, strings.HasSuffix(obj.Key, ".png"))
	assert.Equal(t, "http://localhost:8080/media/"+obj.Key, obj.URL)
	assert.EqualValues(t, len("png-bytes"), obj.Size)

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(obj.Key)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(context.Background(), obj.Key))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(obj.Key)))
	assert.True(t, os.IsNotExist(err))

	// Second delete is a no-op.
	assert.NoError(t, store.Delete(context.Background(), obj.Key))
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir(), "/media")
	require.NoError(t, err)

	err = store.Delete(context.Background(), "../etc/passwd")
	assert.ErrorIs(t, err, storage.ErrInvalidKey)

	_, err = store.Put(context.Background(), "../outside", "a.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, storage.ErrInvalidKey)
}
