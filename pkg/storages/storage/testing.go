package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunFolderTest checks the Folder contract on an empty folder.
func RunFolderTest(storageFolder Folder, t *testing.T) {
	sub1 := storageFolder.GetSubFolder("Sub1")

	err := storageFolder.PutObject("file0", strings.NewReader("data0"))
	assert.NoError(t, err)

	err = sub1.PutObject("file1", strings.NewReader("data1"))
	assert.NoError(t, err)

	b, err := storageFolder.Exists("file0")
	assert.NoError(t, err)
	assert.True(t, b)
	b, err = sub1.Exists("file1")
	assert.NoError(t, err)
	assert.True(t, b)

	objects, subFolders, err := storageFolder.ListFolder()
	require.NoError(t, err)
	require.Len(t, objects, 1)
	require.Len(t, subFolders, 1)
	assert.Equal(t, "file0", objects[0].GetName())
	assert.Equal(t, int64(5), objects[0].GetSize())
	assert.True(t, strings.HasSuffix(subFolders[0].GetPath(), "Sub1/"))

	sublist, subFolders, err := sub1.ListFolder()
	require.NoError(t, err)
	assert.Len(t, subFolders, 0)
	require.Len(t, sublist, 1)
	assert.Equal(t, "file1", sublist[0].GetName())

	for i := 0; i < 2; i++ {
		data, err := sub1.ReadObject("file1")
		require.NoError(t, err)
		content, err := io.ReadAll(data)
		assert.NoError(t, err)
		assert.Equal(t, "data1", string(content))
		assert.NoError(t, data.Close())
	}

	err = sub1.CopyObject("file1", "file2")
	assert.NoError(t, err)
	b, err = sub1.Exists("file2")
	assert.NoError(t, err)
	assert.True(t, b)
	err = sub1.CopyObject("Tumba Yumba", "file3")
	assert.True(t, IsNotFound(err))

	err = sub1.DeleteObjects([]string{"file1", "file2"})
	assert.NoError(t, err)
	err = storageFolder.DeleteObjects([]string{"Sub1"})
	assert.NoError(t, err)
	err = storageFolder.DeleteObjects([]string{"file0"})
	assert.NoError(t, err)

	b, err = storageFolder.Exists("file0")
	assert.NoError(t, err)
	assert.False(t, b)
	b, err = sub1.Exists("file1")
	assert.NoError(t, err)
	assert.False(t, b)

	_, err = sub1.ReadObject("Tumba Yumba")
	assert.True(t, IsNotFound(err))
}
