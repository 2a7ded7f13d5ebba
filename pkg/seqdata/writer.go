package seqdata

import (
	"encoding/binary"
	"io"
)

type flusher interface {
	Flush() error
}

type writerState int

const (
	writerNew writerState = iota
	writerOpen
	writerFailed
	writerClosed
)

// Writer appends length-prefixed chunks to a stream. It never seeks and
// never rewrites bytes it has already emitted.
type Writer struct {
	w       io.Writer
	state   writerState
	err     error
	written int64
	prefix  [LengthPrefixSize]byte
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// NewAppendWriter returns a Writer for a stream that already holds a magic,
// a header and zero or more whole chunks, positioned at its end.
// Open must not be called on it.
func NewAppendWriter(w io.Writer) *Writer {
	return &Writer{w: w, state: writerOpen}
}

// Open writes magic and header verbatim. It may be called once.
func (writer *Writer) Open(magic, header []byte) error {
	if writer.state != writerNew {
		return writer.misuse("open")
	}
	if err := writer.write("write magic", magic); err != nil {
		return err
	}
	if err := writer.write("write header", header); err != nil {
		return err
	}
	writer.state = writerOpen
	return nil
}

// WriteChunk writes the length prefix of data followed by data.
func (writer *Writer) WriteChunk(data []byte) error {
	if writer.state != writerOpen {
		return writer.misuse("write chunk")
	}
	if uint64(len(data)) > MaxChunkSize {
		return newChunkTooLargeError(int64(len(data)))
	}
	if err := writer.writePrefix(uint32(len(data))); err != nil {
		return err
	}
	return writer.write("write chunk body", data)
}

// WriteChunkFrom writes a chunk of exactly size bytes copied from r,
// without holding the chunk in memory.
func (writer *Writer) WriteChunkFrom(r io.Reader, size int64) error {
	if writer.state != writerOpen {
		return writer.misuse("write chunk")
	}
	if size < 0 || size > MaxChunkSize {
		return newChunkTooLargeError(size)
	}
	if err := writer.writePrefix(uint32(size)); err != nil {
		return err
	}
	n, err := io.CopyN(writer.w, r, size)
	writer.written += n
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return writer.fail("copy chunk body", err)
	}
	return nil
}

// Close flushes the stream if it buffers. The stream itself is not closed.
func (writer *Writer) Close() error {
	if writer.state == writerClosed {
		return nil
	}
	failed := writer.state == writerFailed
	writer.state = writerClosed
	if failed {
		return nil
	}
	if f, ok := writer.w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return newIOError("flush", err)
		}
	}
	return nil
}

// Written returns the number of bytes emitted to the stream so far.
func (writer *Writer) Written() int64 {
	return writer.written
}

func (writer *Writer) writePrefix(size uint32) error {
	binary.LittleEndian.PutUint32(writer.prefix[:], size)
	return writer.write("write length prefix", writer.prefix[:])
}

func (writer *Writer) write(op string, p []byte) error {
	if len(p) == 0 {
		return nil
	}
	n, err := writer.w.Write(p)
	writer.written += int64(n)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return writer.fail(op, err)
	}
	return nil
}

func (writer *Writer) fail(op string, err error) error {
	writer.state = writerFailed
	writer.err = newIOError(op, err)
	return writer.err
}

func (writer *Writer) misuse(op string) error {
	switch writer.state {
	case writerNew:
		return newProtocolError(op, "writer is not open", nil)
	case writerOpen:
		return newProtocolError(op, "writer is already open", nil)
	case writerFailed:
		return newProtocolError(op, "writer failed earlier", writer.err)
	default:
		return newProtocolError(op, "writer is closed", nil)
	}
}
