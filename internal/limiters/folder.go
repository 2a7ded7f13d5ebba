package limiters

import (
	"context"
	"io"

	"github.com/wal-g/seqdata/pkg/storages/storage"
	"github.com/wal-g/seqdata/utility"
	"golang.org/x/time/rate"
)

// NewNetworkLimiter allows bytesPerSecond with bursts of up to one read buffer.
func NewNetworkLimiter(bytesPerSecond int64) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(bytesPerSecond), int(bytesPerSecond+utility.CopiedBlockMaxSize))
}

// Folder throttles object reads and uploads of the wrapped folder.
type Folder struct {
	storage.Folder
	limiter *rate.Limiter
}

func NewFolder(folder storage.Folder, limiter *rate.Limiter) *Folder {
	return &Folder{Folder: folder, limiter: limiter}
}

func (folder *Folder) GetSubFolder(subFolderRelativePath string) storage.Folder {
	return NewFolder(folder.Folder.GetSubFolder(subFolderRelativePath), folder.limiter)
}

func (folder *Folder) ReadObject(objectRelativePath string) (io.ReadCloser, error) {
	object, err := folder.Folder.ReadObject(objectRelativePath)
	if err != nil {
		return nil, err
	}
	return readCloser{NewReader(context.Background(), object, folder.limiter), object}, nil
}

func (folder *Folder) PutObject(name string, content io.Reader) error {
	return folder.Folder.PutObject(name, NewReader(context.Background(), content, folder.limiter))
}

func (folder *Folder) PutObjectWithContext(ctx context.Context, name string, content io.Reader) error {
	return folder.Folder.PutObjectWithContext(ctx, name, NewReader(ctx, content, folder.limiter))
}
