// Package fs keeps container objects in a local directory tree.
package fs

import (
	"context"
	"io"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/wal-g/seqdata/internal/contextio"
	"github.com/wal-g/seqdata/pkg/storages/storage"
	"github.com/wal-g/seqdata/utility"
	"github.com/wal-g/tracelog"
)

const (
	dirDefaultMode = 0755
	waleFileURL    = "file://localhost"
)

var _ storage.Folder = &Folder{}

func NewError(err error, format string, args ...interface{}) storage.Error {
	return storage.NewError(err, "FS", format, args...)
}

// Folder represents folder of file system
type Folder struct {
	rootPath string
	subpath  string
}

func NewFolder(rootPath string, subPath string) *Folder {
	subPath = storage.AddDelimiterToPath(strings.TrimPrefix(subPath, "/"))
	return &Folder{rootPath, subPath}
}

// ConfigureFolder opens an existing directory as the root folder.
func ConfigureFolder(prefix string) (*Folder, error) {
	prefix = strings.TrimPrefix(prefix, waleFileURL)
	info, err := os.Stat(prefix)
	if err != nil {
		return nil, NewError(err, "Folder not exists or is inaccessible")
	}
	if !info.IsDir() {
		return nil, NewError(errors.Errorf("%s is not a directory", prefix), "Folder is not usable")
	}
	return NewFolder(prefix, ""), nil
}

func (folder *Folder) GetPath() string {
	return folder.subpath
}

func (folder *Folder) ListFolder() (objects []storage.Object, subFolders []storage.Folder, err error) {
	files, err := os.ReadDir(path.Join(folder.rootPath, folder.subpath))
	if err != nil {
		return nil, nil, NewError(err, "Unable to read folder")
	}
	for _, fileInfo := range files {
		if fileInfo.IsDir() {
			subFolders = append(subFolders, NewFolder(folder.rootPath, path.Join(folder.subpath, fileInfo.Name())))
			continue
		}
		info, err := fileInfo.Info()
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, nil, NewError(err, "Unable to stat object %v", fileInfo.Name())
		}
		objects = append(objects, storage.NewLocalObject(fileInfo.Name(), info.ModTime(), info.Size()))
	}
	return
}

func (folder *Folder) DeleteObjects(objectRelativePaths []string) error {
	for _, fileName := range objectRelativePaths {
		err := os.RemoveAll(folder.GetFilePath(fileName))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return NewError(err, "Unable to delete object %v", fileName)
		}
	}
	return nil
}

func (folder *Folder) Exists(objectRelativePath string) (bool, error) {
	_, err := os.Stat(folder.GetFilePath(objectRelativePath))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, NewError(err, "Unable to stat object %v", objectRelativePath)
	}
	return true, nil
}

func (folder *Folder) GetSubFolder(subFolderRelativePath string) storage.Folder {
	sf := NewFolder(folder.rootPath, path.Join(folder.subpath, subFolderRelativePath))
	_ = sf.EnsureExists()

	// A failure here surfaces on the first call against the subfolder.
	return sf
}

func (folder *Folder) ReadObject(objectRelativePath string) (io.ReadCloser, error) {
	filePath := folder.GetFilePath(objectRelativePath)
	file, err := os.Open(filePath)
	if os.IsNotExist(err) {
		return nil, storage.NewObjectNotFoundError(filePath)
	}
	if err != nil {
		return nil, NewError(err, "Unable to read object %v", filePath)
	}
	return file, nil
}

func (folder *Folder) PutObject(name string, content io.Reader) error {
	tracelog.DebugLogger.Printf("Put %v into %v\n", name, folder.subpath)
	filePath := folder.GetFilePath(name)
	file, err := OpenFileWithDir(filePath)
	if err != nil {
		return NewError(err, "Unable to open file %v", filePath)
	}
	_, err = utility.FastCopy(file, content)
	if err != nil {
		closerErr := file.Close()
		if closerErr != nil {
			tracelog.InfoLogger.Println("Error during closing failed upload ", closerErr)
		}
		return NewError(err, "Unable to copy data to %v", filePath)
	}
	err = file.Close()
	if err != nil {
		return NewError(err, "Unable to close %v", filePath)
	}
	return nil
}

func (folder *Folder) PutObjectWithContext(ctx context.Context, name string, content io.Reader) error {
	ctxReader := contextio.NewReader(ctx, content)
	return folder.PutObject(name, ctxReader)
}

func (folder *Folder) CopyObject(srcPath string, dstPath string) error {
	src := folder.GetFilePath(srcPath)
	srcStat, err := os.Stat(src)
	if errors.Is(err, os.ErrNotExist) {
		return storage.NewObjectNotFoundError(srcPath)
	}
	if err != nil {
		return NewError(err, "Unable to stat object %v", srcPath)
	}
	if !srcStat.Mode().IsRegular() {
		return NewError(errors.Errorf("%s is not a regular file", srcPath), "Unable to copy object")
	}
	file, err := os.Open(src)
	if err != nil {
		return NewError(err, "Unable to read object %v", srcPath)
	}
	defer utility.LoggedClose(file, "")
	return folder.PutObject(dstPath, file)
}

func OpenFileWithDir(filePath string) (*os.File, error) {
	file, err := os.Create(filePath)
	if os.IsNotExist(err) {
		err = os.MkdirAll(path.Dir(filePath), dirDefaultMode)
		if err != nil {
			return nil, err
		}
		file, err = os.Create(filePath)
	}
	return file, err
}

func (folder *Folder) GetFilePath(objectRelativePath string) string {
	return path.Join(folder.rootPath, folder.subpath, objectRelativePath)
}

func (folder *Folder) EnsureExists() error {
	dirname := path.Join(folder.rootPath, folder.subpath)
	_, err := os.Stat(dirname)
	if os.IsNotExist(err) {
		return os.MkdirAll(dirname, dirDefaultMode)
	}
	return err
}
