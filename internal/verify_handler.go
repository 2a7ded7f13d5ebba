package internal

import (
	"io"

	"github.com/wal-g/seqdata/pkg/seqdata"
	"github.com/wal-g/seqdata/pkg/seqfile"
	"github.com/wal-g/tracelog"
)

type VerifyResult struct {
	Chunks int
	// Bytes is the total size of chunk data.
	Bytes int64
	// Length is the size of the chunk region.
	Length int64
}

// HandleVerify reads the whole container and fails on the first malformed chunk.
func HandleVerify(path string, format seqdata.Format, bufferSize int) (VerifyResult, error) {
	reader, _, err := seqfile.Open(path, format, bufferSize)
	if err != nil {
		return VerifyResult{}, err
	}
	defer reader.Close()

	var result VerifyResult
	for {
		body, size, err := reader.NextReader()
		if err == io.EOF {
			break
		}
		if err == nil {
			_, err = io.Copy(io.Discard, body)
		}
		if err != nil {
			result.Length = reader.Position()
			return result, err
		}
		result.Chunks++
		result.Bytes += size
	}
	result.Length = reader.Position()
	tracelog.InfoLogger.Printf("%s is intact: %d chunks, %d bytes of data", path, result.Chunks, result.Bytes)
	return result, nil
}
