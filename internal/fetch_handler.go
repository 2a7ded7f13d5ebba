package internal

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/wal-g/seqdata/internal/seqstore"
	"github.com/wal-g/seqdata/pkg/seqdata"
	"github.com/wal-g/seqdata/pkg/seqfile"
	"github.com/wal-g/seqdata/pkg/storages/storage"
	"github.com/wal-g/tracelog"
)

// HandleFetch downloads object name of folder into a new container file at path.
// The file appears only after every chunk has been validated and written.
func HandleFetch(ctx context.Context, folder storage.Folder, name string, path string,
	format seqdata.Format, maxRetries int) (seqstore.Stats, error) {
	if _, err := os.Stat(path); err == nil {
		return seqstore.Stats{}, errors.Errorf("%s already exists", path)
	}
	container, err := seqstore.Open(ctx, folder, name, format, maxRetries)
	if err != nil {
		return seqstore.Stats{}, err
	}
	defer container.Close()

	tempPath := seqstore.TempObjectName(path)
	file, err := seqfile.Create(tempPath, format, container.Header)
	if err != nil {
		return seqstore.Stats{}, err
	}
	stats, err := copyChunks(container, file)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = errors.Wrapf(os.Rename(tempPath, path), "failed to move fetched container to %s", path)
	}
	if err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil && !os.IsNotExist(removeErr) {
			tracelog.WarningLogger.Printf("Failed to remove %s: %v", tempPath, removeErr)
		}
		return stats, err
	}
	tracelog.InfoLogger.Printf("Fetched %s into %s: %d chunks", name, path, stats.Chunks)
	return stats, nil
}

func copyChunks(container *seqstore.Container, file *seqfile.File) (seqstore.Stats, error) {
	var stats seqstore.Stats
	for {
		chunk, err := container.Next()
		if err == io.EOF {
			stats.Size = container.Size()
			return stats, nil
		}
		if err != nil {
			return stats, errors.Wrapf(err, "failed to read %s", container.Name)
		}
		if err = file.WriteChunk(chunk); err != nil {
			return stats, err
		}
		stats.Chunks++
		stats.Bytes += int64(len(chunk))
	}
}
