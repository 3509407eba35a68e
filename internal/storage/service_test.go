package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arteralabs/artera/internal/logging"
	"github.com/arteralabs/artera/internal/storage"
)

func newTestService(t *testing.T) *storage.Service {
	t.Helper()
	svc, err := storage.New(t.TempDir(), nil, testLogger())
	require.NoError(t, err)
	return svc
}

func testLogger() *logging.Logger {
	return &logging.Logger{Logger: zap.NewNop()}
}

func writeFile(t *testing.T, svc *storage.Service, rel string, content []byte) {
	t.Helper()
	abs := filepath.Join(svc.Root(), filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
	require.NoError(t, os.WriteFile(abs, content, 0o644))
}

func TestNewCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "artera")

	svc, err := storage.New(root, nil, testLogger())
	require.NoError(t, err)

	info, err := os.Stat(svc.Root())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewCreatesDefaultFolders(t *testing.T) {
	root := t.TempDir()

	svc, err := storage.New(root, []string{"logo", "potentials"}, testLogger())
	require.NoError(t, err)

	for _, name := range []string{"logo", "potentials"} {
		info, err := os.Stat(filepath.Join(svc.Root(), name))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestNewPreservesExistingContent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "logo", "old"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "logo", "old", "kept.txt"), []byte("kept"), 0o644))

	_, err := storage.New(root, []string{"logo"}, testLogger())
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(root, "logo", "old", "kept.txt"))
	require.NoError(t, err)
	assert.Equal(t, []byte("kept"), content)
}
