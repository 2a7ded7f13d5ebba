package internal

import (
	"io"

	"github.com/pkg/errors"
	"github.com/wal-g/seqdata/pkg/seqdata"
	"github.com/wal-g/seqdata/pkg/seqfile"
)

// AllChunks makes HandleCat write every chunk.
const AllChunks = -1

// HandleCat writes the raw data of chunk index, or of all chunks back to back, to output.
func HandleCat(path string, format seqdata.Format, bufferSize int, index int, output io.Writer) error {
	reader, _, err := seqfile.Open(path, format, bufferSize)
	if err != nil {
		return err
	}
	defer reader.Close()

	for current := 0; ; current++ {
		body, _, err := reader.NextReader()
		if err == io.EOF {
			if index != AllChunks {
				return NewChunkIndexError(index, current)
			}
			return nil
		}
		if err != nil {
			return err
		}
		if index != AllChunks && current != index {
			continue
		}
		if _, err = io.Copy(output, body); err != nil {
			return errors.Wrapf(err, "failed to write chunk %d", current)
		}
		if current == index {
			return nil
		}
	}
}
