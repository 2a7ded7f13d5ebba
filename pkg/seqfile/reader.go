package seqfile

import (
	"bufio"
	"os"

	"github.com/pkg/errors"
	"github.com/wal-g/seqdata/pkg/seqdata"
)

// DefaultReadBufferSize is the read buffer used when Open gets a non-positive size.
const DefaultReadBufferSize = 1 << 20

// Reader reads the chunks of a container file.
type Reader struct {
	*seqdata.Reader
	file *os.File
	len  int64
}

// Open opens the container at path, checks its magic and returns its header.
func Open(path string, format seqdata.Format, bufferSize int) (*Reader, []byte, error) {
	if bufferSize <= 0 {
		bufferSize = DefaultReadBufferSize
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open %s", path)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, nil, errors.Wrapf(err, "failed to stat %s", path)
	}

	reader, header, err := format.NewReader(bufio.NewReaderSize(file, bufferSize))
	if err != nil {
		_ = file.Close()
		return nil, nil, err
	}
	return &Reader{
		Reader: reader,
		file:   file,
		len:    info.Size() - format.Prelude(),
	}, header, nil
}

// Len returns the size of the chunk region, as it was when the file was opened.
func (reader *Reader) Len() int64 {
	return reader.len
}

// NextWithOffset returns the next chunk along with its offset in the chunk region.
func (reader *Reader) NextWithOffset() (int64, []byte, error) {
	offset := reader.Position()
	data, err := reader.Next()
	return offset, data, err
}

func (reader *Reader) Close() error {
	return reader.file.Close()
}
