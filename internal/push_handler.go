package internal

import (
	"context"

	"github.com/wal-g/seqdata/internal/seqstore"
	"github.com/wal-g/seqdata/pkg/seqdata"
	"github.com/wal-g/seqdata/pkg/seqfile"
	"github.com/wal-g/seqdata/pkg/storages/storage"
)

// HandlePush uploads the container at path as object name of folder.
func HandlePush(ctx context.Context, folder storage.Folder, path string, name string,
	format seqdata.Format, bufferSize int) (seqstore.Stats, error) {
	reader, header, err := seqfile.Open(path, format, bufferSize)
	if err != nil {
		return seqstore.Stats{}, err
	}
	defer reader.Close()

	return seqstore.Push(ctx, folder, name, format, header, reader)
}
