package seqfile

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/wal-g/seqdata/pkg/seqdata"
	"github.com/wal-g/tracelog"
)

// Truncate cuts the file at path to length bytes.
func Truncate(path string, length int64) error {
	file, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", path)
	}
	if err = file.Truncate(length); err != nil {
		_ = file.Close()
		return errors.Wrapf(err, "failed to truncate %s at %d", path, length)
	}
	return errors.Wrapf(file.Close(), "failed to close %s", path)
}

type RecoverResult struct {
	Chunks int
	// ValidLength is the file size after recovery.
	ValidLength int64
	// Removed is the number of trailing bytes dropped.
	Removed int64
	// Cause is the truncation that triggered the repair, nil for an intact file.
	Cause *seqdata.TruncatedStreamError
}

// Recover drops a torn trailing chunk: it walks the file up to the first
// truncated length prefix or body and cuts the file at the last whole chunk.
// An intact file is left untouched. Any other failure is returned as is.
func Recover(path string, format seqdata.Format) (RecoverResult, error) {
	lock, err := lockFile(path)
	if err != nil {
		return RecoverResult{}, err
	}
	defer func() {
		tracelog.ErrorLogger.PrintOnError(lock.Unlock())
	}()

	result, err := Check(path, format)
	if err != nil || result.Cause == nil {
		return result, err
	}

	tracelog.WarningLogger.Printf("Truncating %s at %d: %v", path, result.ValidLength, result.Cause)
	if err = Truncate(path, result.ValidLength); err != nil {
		return result, err
	}
	return result, nil
}

// Check walks the file like Recover but never modifies it.
// A torn trailing chunk is reported through RecoverResult.Cause.
func Check(path string, format seqdata.Format) (RecoverResult, error) {
	reader, _, err := Open(path, format, DefaultReadBufferSize)
	if err != nil {
		return RecoverResult{}, err
	}
	result, err := scanWholeChunks(reader, format)
	closeErr := reader.Close()
	if err != nil {
		return result, err
	}
	return result, errors.Wrapf(closeErr, "failed to close %s", path)
}

func scanWholeChunks(reader *Reader, format seqdata.Format) (RecoverResult, error) {
	var result RecoverResult
	for {
		boundary := reader.Position()
		result.ValidLength = format.Prelude() + boundary
		body, _, err := reader.NextReader()
		if err == nil {
			_, err = io.Copy(io.Discard, body)
		}
		if err == io.EOF {
			return result, nil
		}
		var truncated *seqdata.TruncatedStreamError
		if errors.As(err, &truncated) {
			result.Cause = truncated
			result.Removed = reader.Len() - boundary
			return result, nil
		}
		if err != nil {
			return result, err
		}
		result.Chunks++
	}
}
