package seqdata

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Bodies above this size are grown as data arrives, so a corrupt length
// prefix cannot force a 4 GiB allocation for a short stream.
const eagerBodyLimit = 1 << 20

type readerState int

const (
	readerNew readerState = iota
	readerOpen
	readerDone
	readerFailed
)

// Reader yields the chunks of a stream in the order they were written.
// It is forward-only: a chunk can be re-read only by opening the stream again.
type Reader struct {
	r         io.Reader
	state     readerState
	err       error
	offset    int64
	dataStart int64
	body      *bodyReader
	prefix    [LengthPrefixSize]byte
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Reset discards all state and binds the Reader to r, which must be
// positioned at the start of a stream.
func (reader *Reader) Reset(r io.Reader) {
	*reader = Reader{r: r}
}

// Open reads exactly magicLen bytes of magic and headerLen bytes of header.
// Comparing the magic against an expected value is left to the caller.
func (reader *Reader) Open(magicLen, headerLen int) (magic, header []byte, err error) {
	switch reader.state {
	case readerNew:
	case readerFailed:
		return nil, nil, newProtocolError("open", "reader failed earlier", reader.err)
	default:
		return nil, nil, newProtocolError("open", "reader is already open", nil)
	}
	if magicLen < 0 || headerLen < 0 {
		return nil, nil, newProtocolError("open", "negative magic or header length", nil)
	}
	if magic, err = reader.readRegion(RegionMagic, magicLen); err != nil {
		return nil, nil, err
	}
	if header, err = reader.readRegion(RegionHeader, headerLen); err != nil {
		return nil, nil, err
	}
	reader.dataStart = reader.offset
	reader.state = readerOpen
	return magic, header, nil
}

// Next returns the next chunk. At a clean end of stream it returns io.EOF;
// a stream ending inside a length prefix or a body yields a
// *TruncatedStreamError.
func (reader *Reader) Next() ([]byte, error) {
	size, err := reader.nextPrefix("next")
	if err != nil {
		return nil, err
	}
	start := reader.offset
	var data []byte
	var got int64
	if size <= eagerBodyLimit {
		data = make([]byte, size)
		var n int
		n, err = io.ReadFull(reader.r, data)
		got = int64(n)
	} else {
		var buf bytes.Buffer
		got, err = io.CopyN(&buf, reader.r, size)
		data = buf.Bytes()
	}
	reader.offset += got
	if err != nil {
		return nil, reader.fail(classify("read chunk body", RegionBody, start, size, got, err))
	}
	return data, nil
}

// NextReader returns a reader over the next chunk body and its length,
// for chunks that should not be held in memory. The body must be consumed
// before it is discarded by the next call to Next or NextReader.
func (reader *Reader) NextReader() (io.Reader, int64, error) {
	size, err := reader.nextPrefix("next reader")
	if err != nil {
		return nil, 0, err
	}
	reader.body = &bodyReader{reader: reader, start: reader.offset, size: size, remaining: size}
	return reader.body, size, nil
}

// Position returns the offset of the next unread byte relative to the end
// of the header. Between calls to Next it is the offset of the next chunk.
func (reader *Reader) Position() int64 {
	return reader.offset - reader.dataStart
}

func (reader *Reader) nextPrefix(op string) (int64, error) {
	switch reader.state {
	case readerNew:
		return 0, newProtocolError(op, "reader is not open", nil)
	case readerDone:
		return 0, io.EOF
	case readerFailed:
		return 0, newProtocolError(op, "reader failed earlier", reader.err)
	}
	if err := reader.skipBody(); err != nil {
		return 0, err
	}
	start := reader.offset
	n, err := io.ReadFull(reader.r, reader.prefix[:])
	reader.offset += int64(n)
	if err == io.EOF {
		reader.state = readerDone
		return 0, io.EOF
	}
	if err != nil {
		return 0, reader.fail(classify("read length prefix", RegionLength, start, LengthPrefixSize, int64(n), err))
	}
	return int64(binary.LittleEndian.Uint32(reader.prefix[:])), nil
}

func (reader *Reader) skipBody() error {
	body := reader.body
	if body == nil {
		return nil
	}
	var err error
	if body.remaining > 0 {
		_, err = io.Copy(io.Discard, body)
	}
	reader.body = nil
	return err
}

func (reader *Reader) readRegion(region Region, size int) ([]byte, error) {
	start := reader.offset
	buf := make([]byte, size)
	n, err := io.ReadFull(reader.r, buf)
	reader.offset += int64(n)
	if err != nil {
		return nil, reader.fail(classify("read "+string(region), region, start, int64(size), int64(n), err))
	}
	return buf, nil
}

func (reader *Reader) fail(err error) error {
	reader.state = readerFailed
	reader.err = err
	return err
}

// classify maps a short read onto TruncatedStreamError and anything else
// onto IOError.
func classify(op string, region Region, offset, want, got int64, err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return newTruncatedStreamError(region, offset, want, got)
	}
	return newIOError(op, err)
}

type bodyReader struct {
	reader    *Reader
	start     int64
	size      int64
	remaining int64
}

func (body *bodyReader) Read(p []byte) (int, error) {
	reader := body.reader
	if reader.body != body {
		return 0, newProtocolError("read chunk body", "chunk body was discarded by a later call", nil)
	}
	if reader.state == readerFailed {
		return 0, newProtocolError("read chunk body", "reader failed earlier", reader.err)
	}
	if body.remaining == 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > body.remaining {
		p = p[:body.remaining]
	}
	n, err := reader.r.Read(p)
	body.remaining -= int64(n)
	reader.offset += int64(n)
	if err == io.EOF && body.remaining > 0 {
		return n, reader.fail(newTruncatedStreamError(RegionBody, body.start, body.size, body.size-body.remaining))
	}
	if err != nil && err != io.EOF {
		return n, reader.fail(newIOError("read chunk body", err))
	}
	if body.remaining == 0 {
		return n, io.EOF
	}
	return n, nil
}
