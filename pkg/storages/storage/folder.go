package storage

import (
	"context"
	"io"
	"path"
	"strings"
	"time"
)

type Object interface {
	GetName() string
	GetLastModified() time.Time
	GetSize() int64
}

//go:generate mockgen -destination=mocks/mock_folder.go -package mocks -build_flags -mod=readonly github.com/wal-g/seqdata/pkg/storages/storage Folder

// Folder is a place where container objects are pushed to and fetched from.
type Folder interface {
	// GetPath provides a relative path from the root of the storage. It must always end with '/'.
	GetPath() string

	// ListFolder lists the folder and provides nested objects and folders. Objects must be with relative paths.
	ListFolder() (objects []Object, subFolders []Folder, err error)

	// DeleteObjects deletes objects from the storage if they exist.
	DeleteObjects(objectRelativePaths []string) error

	// Exists checks if an object exists in the folder.
	Exists(objectRelativePath string) (bool, error)

	// GetSubFolder returns a handle to the subfolder. Does not have to instantiate the subfolder in any material form.
	GetSubFolder(subFolderRelativePath string) Folder

	// ReadObject reads an object from the folder. Must return ObjectNotFoundError in case the object doesn't exist.
	ReadObject(objectRelativePath string) (io.ReadCloser, error)

	// PutObject uploads a new object into the folder by a relative path. If an object with the same name already
	// exists, it is overwritten.
	PutObject(name string, content io.Reader) error

	// PutObjectWithContext is PutObject that stops reading content once ctx is done.
	PutObjectWithContext(ctx context.Context, name string, content io.Reader) error

	// CopyObject copies an object from one place inside the folder to the other. Both paths must be relative. This is
	// an error if the source object doesn't exist.
	CopyObject(srcPath string, dstPath string) error
}

// JoinPath joins folder-relative elements with '/' regardless of the platform.
func JoinPath(elem ...string) string {
	return strings.TrimPrefix(path.Join(elem...), "/")
}

// AddDelimiterToPath makes path usable as a folder path.
func AddDelimiterToPath(path string) string {
	if strings.HasSuffix(path, "/") || path == "" {
		return path
	}
	return path + "/"
}
