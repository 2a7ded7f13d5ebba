package seqdata

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

const (
	// LengthPrefixSize is the size of the little-endian length preceding each chunk.
	LengthPrefixSize = 4
	// MaxChunkSize is the largest chunk a length prefix can describe.
	MaxChunkSize = 1<<32 - 1
)

// Format describes a concrete flavour of the container: the magic every
// file starts with and the size of the header that follows it.
// Reader and Writer never consult a Format; it is a helper for callers
// that want the magic checked and the header size enforced.
type Format struct {
	Magic      []byte
	HeaderSize int
}

// NoMagicNoHeader is a format whose files start directly with the first chunk.
var NoMagicNoHeader = Format{}

// Prelude returns the number of bytes before the first chunk.
func (format Format) Prelude() int64 {
	return int64(len(format.Magic)) + int64(format.HeaderSize)
}

func (format Format) CheckMagic(magic []byte) error {
	if bytes.Equal(format.Magic, magic) {
		return nil
	}
	return &MagicMismatchError{
		Want:  format.Magic,
		Got:   magic,
		error: errors.Errorf("seqdata: magic %x does not match expected %x", magic, format.Magic),
	}
}

func (format Format) CheckHeader(header []byte) error {
	if len(header) == format.HeaderSize {
		return nil
	}
	return &HeaderSizeError{
		Want:  format.HeaderSize,
		Got:   len(header),
		error: errors.Errorf("seqdata: header has invalid size, expecting %d but got %d", format.HeaderSize, len(header)),
	}
}

// NewWriter checks the header size and writes the prelude to w.
func (format Format) NewWriter(w io.Writer, header []byte) (*Writer, error) {
	if err := format.CheckHeader(header); err != nil {
		return nil, err
	}
	writer := NewWriter(w)
	if err := writer.Open(format.Magic, header); err != nil {
		return nil, err
	}
	return writer, nil
}

// NewReader reads the prelude from r, checks the magic and returns the header.
func (format Format) NewReader(r io.Reader) (*Reader, []byte, error) {
	reader := NewReader(r)
	magic, header, err := reader.Open(len(format.Magic), format.HeaderSize)
	if err != nil {
		return nil, nil, err
	}
	if err = format.CheckMagic(magic); err != nil {
		return nil, nil, err
	}
	return reader, header, nil
}
