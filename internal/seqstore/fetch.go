package seqstore

import (
	"bufio"
	"context"
	"io"

	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"
	"github.com/wal-g/seqdata/internal/contextio"
	"github.com/wal-g/seqdata/pkg/seqdata"
	"github.com/wal-g/seqdata/pkg/storages/storage"
	"github.com/wal-g/seqdata/utility"
	"github.com/wal-g/tracelog"
)

const fetchBufferSize = 1 << 20

// Container is a stored container opened for reading.
type Container struct {
	*seqdata.Reader
	Name   string
	Header []byte
	format seqdata.Format
	object io.ReadCloser
}

// Open opens object name and reads its magic and header.
// Opening the object is retried up to maxRetries times; a missing object is not retried.
func Open(ctx context.Context, folder storage.Folder, name string, format seqdata.Format,
	maxRetries int) (*Container, error) {
	object, err := openWithRetries(ctx, folder, name, maxRetries)
	if err != nil {
		return nil, err
	}
	reader, header, err := format.NewReader(bufio.NewReaderSize(contextio.NewReader(ctx, object), fetchBufferSize))
	if err != nil {
		utility.LoggedClose(object, "Failed to close "+name)
		return nil, errors.Wrapf(err, "failed to read %s", name)
	}
	return &Container{
		Reader: reader,
		Name:   name,
		Header: header,
		format: format,
		object: object,
	}, nil
}

// Size returns the number of container bytes consumed so far.
func (container *Container) Size() int64 {
	return container.format.Prelude() + container.Position()
}

func (container *Container) Close() error {
	return container.object.Close()
}

// Fetch streams the chunks of object name to sink and returns the container header.
func Fetch(ctx context.Context, folder storage.Folder, name string, format seqdata.Format,
	maxRetries int, sink ChunkSink) ([]byte, Stats, error) {
	container, err := Open(ctx, folder, name, format, maxRetries)
	if err != nil {
		return nil, Stats{}, err
	}
	defer utility.LoggedClose(container, "Failed to close fetched object")

	var stats Stats
	for {
		offset := container.Position()
		chunk, err := container.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			stats.Size = container.Size()
			return container.Header, stats, errors.Wrapf(err, "failed to read %s", name)
		}
		if err = sink(offset, chunk); err != nil {
			stats.Size = container.Size()
			return container.Header, stats, err
		}
		stats.add(chunk)
	}
	stats.Size = container.Size()
	return container.Header, stats, nil
}

func openWithRetries(ctx context.Context, folder storage.Folder, name string, maxRetries int) (io.ReadCloser, error) {
	if maxRetries < 0 {
		maxRetries = 0
	}
	var object io.ReadCloser
	attempt := 0
	operation := func() error {
		attempt++
		var err error
		object, err = folder.ReadObject(name)
		if storage.IsNotFound(err) {
			return backoff.Permanent(err)
		}
		if err != nil {
			tracelog.WarningLogger.Printf("Failed to open %s (attempt %d): %v", name, attempt, err)
		}
		return err
	}

	// WithMaxRetries treats 0 as unlimited.
	var policy backoff.BackOff = &backoff.StopBackOff{}
	if maxRetries > 0 {
		policy = backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(maxRetries))
	}
	policy = backoff.WithContext(policy, ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return object, nil
}
