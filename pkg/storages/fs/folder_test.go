package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wal-g/seqdata/pkg/storages/storage"
)

func TestFSFolder(t *testing.T) {
	folder, err := ConfigureFolder(t.TempDir())
	require.NoError(t, err)

	storage.RunFolderTest(folder, t)
}

func TestConfigureFolder_Missing(t *testing.T) {
	_, err := ConfigureFolder(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestConfigureFolder_NotADirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	_, err := ConfigureFolder(path)
	assert.Error(t, err)
}

func TestConfigureFolder_WaleURL(t *testing.T) {
	dir := t.TempDir()
	folder, err := ConfigureFolder(waleFileURL + dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a.sdf"), folder.GetFilePath("a.sdf"))
}
