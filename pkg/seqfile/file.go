// Package seqfile stores seqdata containers in local files.
package seqfile

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/gofrs/flock"
	"github.com/pkg/errors"
	"github.com/wal-g/seqdata/pkg/seqdata"
	"github.com/wal-g/tracelog"
)

const (
	fileDefaultMode = 0644
	writeBufferSize = 64 << 10
)

// LockedError is returned when another writer holds the file.
type LockedError struct {
	error
}

func NewLockedError(path string) LockedError {
	return LockedError{errors.Errorf("failed to lock %s, another writer running?", path)}
}

func (err LockedError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

// File is an exclusively locked container open for appending chunks.
type File struct {
	*seqdata.Writer
	file     *os.File
	buffered *bufio.Writer
	lock     *flock.Flock
	closed   bool
}

// Create creates a new container at path and writes the magic and header.
// It fails if the file already exists.
func Create(path string, format seqdata.Format, header []byte) (*File, error) {
	if err := format.CheckHeader(header); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL|os.O_APPEND, fileDefaultMode)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", path)
	}
	lock, err := lockFile(path)
	if err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return nil, err
	}

	result := newFile(file, lock, seqdata.NewWriter)
	if err = result.Writer.Open(format.Magic, header); err != nil {
		_ = result.abort()
		return nil, err
	}
	if err = result.Flush(); err != nil {
		_ = result.abort()
		return nil, err
	}
	tracelog.DebugLogger.Printf("Created %s (magic %x, header %d bytes)", path, format.Magic, len(header))
	return result, nil
}

// OpenAppend opens an existing container for appending. The magic must
// match format; the header read from the file is returned.
// A file whose last chunk is torn should be passed through Recover first.
func OpenAppend(path string, format seqdata.Format) (*File, []byte, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_APPEND, 0)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open %s", path)
	}
	lock, err := lockFile(path)
	if err != nil {
		_ = file.Close()
		return nil, nil, err
	}

	_, header, err := format.NewReader(file)
	if err == nil {
		_, err = file.Seek(0, io.SeekEnd)
	}
	if err != nil {
		_ = lock.Unlock()
		_ = file.Close()
		return nil, nil, err
	}
	return newFile(file, lock, seqdata.NewAppendWriter), header, nil
}

func newFile(file *os.File, lock *flock.Flock, newWriter func(io.Writer) *seqdata.Writer) *File {
	buffered := bufio.NewWriterSize(file, writeBufferSize)
	return &File{
		Writer:   newWriter(buffered),
		file:     file,
		buffered: buffered,
		lock:     lock,
	}
}

func lockFile(path string) (*flock.Flock, error) {
	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to lock %s", path)
	}
	if !locked {
		return nil, NewLockedError(path)
	}
	return lock, nil
}

func (file *File) Name() string {
	return file.file.Name()
}

// Flush pushes buffered chunks to the operating system.
func (file *File) Flush() error {
	if err := file.buffered.Flush(); err != nil {
		return errors.Wrapf(err, "failed to flush %s", file.Name())
	}
	return nil
}

// Sync flushes and commits the file to stable storage.
func (file *File) Sync() error {
	if err := file.Flush(); err != nil {
		return err
	}
	return errors.Wrapf(file.file.Sync(), "failed to sync %s", file.Name())
}

// Close flushes pending chunks, releases the lock and closes the file.
func (file *File) Close() error {
	if file.closed {
		return nil
	}
	file.closed = true
	err := file.Writer.Close()
	if unlockErr := file.lock.Unlock(); unlockErr != nil {
		tracelog.WarningLogger.Printf("Failed to unlock %s: %v", file.Name(), unlockErr)
	}
	if closeErr := file.file.Close(); err == nil && closeErr != nil {
		err = errors.Wrapf(closeErr, "failed to close %s", file.Name())
	}
	return err
}

func (file *File) abort() error {
	file.closed = true
	_ = file.lock.Unlock()
	err := file.file.Close()
	if removeErr := os.Remove(file.Name()); removeErr != nil {
		tracelog.WarningLogger.Printf("Failed to remove incomplete %s: %v", file.Name(), removeErr)
	}
	return err
}
