// Package memory keeps container objects in process memory. It is meant for tests.
package memory

import (
	"bytes"
	"context"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/wal-g/seqdata/internal/contextio"
	"github.com/wal-g/seqdata/pkg/storages/storage"
)

var _ storage.Folder = &Folder{}

type Folder struct {
	path    string
	Storage *KVS
}

func NewFolder(path string, kvs *KVS) *Folder {
	return &Folder{storage.AddDelimiterToPath(path), kvs}
}

func (folder *Folder) key(objectRelativePath string) string {
	return storage.JoinPath(folder.path, objectRelativePath)
}

func (folder *Folder) Exists(objectRelativePath string) (bool, error) {
	_, exists := folder.Storage.Load(folder.key(objectRelativePath))
	return exists, nil
}

func (folder *Folder) GetPath() string {
	return folder.path
}

func (folder *Folder) ListFolder() (objects []storage.Object, subFolders []storage.Folder, err error) {
	subFolderNames := make(map[string]bool)
	folder.Storage.Range(func(key string, value TimeStampedData) bool {
		if !strings.HasPrefix(key, folder.path) {
			return true
		}
		name := strings.TrimPrefix(key, folder.path)
		if slash := strings.Index(name, "/"); slash >= 0 {
			subFolderNames[name[:slash]] = true
			return true
		}
		objects = append(objects, storage.NewLocalObject(name, value.Timestamp, value.Size()))
		return true
	})
	sort.Slice(objects, func(i, j int) bool {
		return objects[i].GetName() < objects[j].GetName()
	})
	names := make([]string, 0, len(subFolderNames))
	for name := range subFolderNames {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		subFolders = append(subFolders, NewFolder(folder.path+name, folder.Storage))
	}
	return
}

func (folder *Folder) DeleteObjects(objectRelativePaths []string) error {
	for _, objectName := range objectRelativePaths {
		folder.Storage.Delete(folder.key(objectName))
	}
	return nil
}

func (folder *Folder) GetSubFolder(subFolderRelativePath string) storage.Folder {
	return NewFolder(folder.path+strings.Trim(subFolderRelativePath, "/"), folder.Storage)
}

func (folder *Folder) ReadObject(objectRelativePath string) (io.ReadCloser, error) {
	objectAbsPath := folder.key(objectRelativePath)
	object, exists := folder.Storage.Load(objectAbsPath)
	if !exists {
		return nil, storage.NewObjectNotFoundError(objectAbsPath)
	}
	return io.NopCloser(bytes.NewReader(object.Data)), nil
}

func (folder *Folder) PutObject(name string, content io.Reader) error {
	data, err := io.ReadAll(content)
	objectPath := folder.key(name)
	if err != nil {
		return errors.Wrapf(err, "failed to put '%s' in memory storage", objectPath)
	}
	folder.Storage.Store(objectPath, data)
	return nil
}

func (folder *Folder) PutObjectWithContext(ctx context.Context, name string, content io.Reader) error {
	return folder.PutObject(name, contextio.NewReader(ctx, content))
}

func (folder *Folder) CopyObject(srcPath string, dstPath string) error {
	object, exists := folder.Storage.Load(folder.key(srcPath))
	if !exists {
		return storage.NewObjectNotFoundError(path.Join(folder.path, srcPath))
	}
	folder.Storage.Store(folder.key(dstPath), object.Data)
	return nil
}
