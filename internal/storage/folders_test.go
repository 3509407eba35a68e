package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arteralabs/artera/internal/storage"
)

func TestCreateFolderNested(t *testing.T) {
	svc := newTestService(t)

	abs, err := svc.CreateFolder("a/b/c")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(svc.Root(), "a", "b", "c"), abs)

	items, err := svc.List("", true)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "a", items[0].Name)
	assert.Equal(t, "a", items[0].RelativePath)
	assert.Equal(t, storage.KindFolder, items[0].Kind)
	assert.Equal(t, "a/b", items[1].RelativePath)
	assert.Equal(t, "a/b/c", items[2].RelativePath)
}

func TestCreateFolderIdempotent(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.CreateFolder("repeat")
	require.NoError(t, err)
	second, err := svc.CreateFolder("repeat")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	items, err := svc.List("", true)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCreateFolderInvalidPath(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateFolder("../outside")
	assert.ErrorIs(t, err, storage.ErrInvalidPath)
}

func TestDeleteFolderNotFound(t *testing.T) {
	svc := newTestService(t)

	err := svc.DeleteFolder("missing", true)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteFolderOnFile(t *testing.T) {
	svc := newTestService(t)
	writeFile(t, svc, "plain.txt", []byte("data"))

	err := svc.DeleteFolder("plain.txt", true)
	assert.ErrorIs(t, err, storage.ErrNotAFolder)
}

func TestDeleteFolderNonRecursive(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.CreateFolder("a/b/c")
	require.NoError(t, err)

	// Non-empty folder refuses a non-recursive delete.
	err = svc.DeleteFolder("a", false)
	assert.ErrorIs(t, err, storage.ErrConflict)
	_, statErr := os.Stat(filepath.Join(svc.Root(), "a", "b", "c"))
	assert.NoError(t, statErr)

	// Empty folder deletes fine without recursion.
	require.NoError(t, svc.DeleteFolder("a/b/c", false))
}

func TestDeleteFolderRecursive(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.CreateFolder("a/b/c")
	require.NoError(t, err)
	writeFile(t, svc, "a/b/file.txt", []byte("x"))

	require.NoError(t, svc.DeleteFolder("a", true))

	items, err := svc.List("", true)
	require.NoError(t, err)
	assert.Empty(t, items)
}
