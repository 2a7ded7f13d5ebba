package seqstore

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/wal-g/seqdata/internal/contextio"
	"github.com/wal-g/seqdata/pkg/seqdata"
	"github.com/wal-g/seqdata/pkg/storages/storage"
	"github.com/wal-g/seqdata/utility"
	"github.com/wal-g/tracelog"
	"golang.org/x/sync/errgroup"
)

// Push encodes the chunks of source into the object name of folder.
// The object is uploaded under a temporary name and published only once
// the whole container is stored, so readers never observe a partial object.
func Push(ctx context.Context, folder storage.Folder, name string,
	format seqdata.Format, header []byte, source ChunkSource) (Stats, error) {
	if err := format.CheckHeader(header); err != nil {
		return Stats{}, err
	}
	tempName := TempObjectName(name)
	pipeReader, pipeWriter := io.Pipe()

	var stats Stats
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		err := encode(groupCtx, pipeWriter, format, header, source, &stats)
		_ = pipeWriter.CloseWithError(err)
		return err
	})
	group.Go(func() error {
		err := folder.PutObjectWithContext(groupCtx, tempName, pipeReader)
		if err != nil {
			_ = pipeReader.CloseWithError(err)
			return errors.Wrapf(err, "failed to upload %s", tempName)
		}
		// The uploader may stop reading early without an error; drain so the encoder can finish.
		_, err = io.Copy(io.Discard, pipeReader)
		return err
	})
	if err := group.Wait(); err != nil {
		dropTemp(folder, tempName)
		return stats, err
	}

	if err := folder.CopyObject(tempName, name); err != nil {
		dropTemp(folder, tempName)
		return stats, errors.Wrapf(err, "failed to publish %s", name)
	}
	dropTemp(folder, tempName)
	tracelog.InfoLogger.Printf("Pushed %s: %d chunks, %d bytes", name, stats.Chunks, stats.Size)
	return stats, nil
}

// TempObjectName returns the name a push of name uploads to before publishing.
func TempObjectName(name string) string {
	return fmt.Sprintf("%s.%s%s", name, uuid.New().String(), utility.TempObjectSuffix)
}

func encode(ctx context.Context, w io.Writer, format seqdata.Format, header []byte,
	source ChunkSource, stats *Stats) error {
	writer, err := format.NewWriter(contextio.NewWriter(ctx, w), header)
	if err != nil {
		return err
	}
	for {
		chunk, err := source.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "failed to read chunk to push")
		}
		if err = writer.WriteChunk(chunk); err != nil {
			return err
		}
		stats.add(chunk)
	}
	if err = writer.Close(); err != nil {
		return err
	}
	stats.Size = writer.Written()
	return nil
}

func dropTemp(folder storage.Folder, tempName string) {
	if err := folder.DeleteObjects([]string{tempName}); err != nil {
		tracelog.WarningLogger.Printf("Failed to delete temporary object %s: %v", tempName, err)
	}
}
