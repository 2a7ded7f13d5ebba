package seqdata

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/wal-g/tracelog"
)

// Region names the part of the stream an error refers to.
type Region string

const (
	RegionMagic  Region = "magic"
	RegionHeader Region = "header"
	RegionLength Region = "length prefix"
	RegionBody   Region = "chunk body"
)

// IOError is returned when the underlying stream fails to read or write.
// The stream position after an IOError is unknown.
type IOError struct {
	Op string
	error
}

func newIOError(op string, err error) *IOError {
	return &IOError{Op: op, error: errors.Wrapf(err, "seqdata: %s", op)}
}

func (err *IOError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

func (err *IOError) Unwrap() error {
	return err.error
}

// TruncatedStreamError is returned when the stream ends in the middle of
// a region: the stream was cut short or a length prefix is corrupt.
type TruncatedStreamError struct {
	Region Region
	// Offset is the absolute stream offset at which the region starts.
	Offset int64
	Want   int64
	Got    int64
	error
}

func newTruncatedStreamError(region Region, offset, want, got int64) *TruncatedStreamError {
	return &TruncatedStreamError{
		Region: region,
		Offset: offset,
		Want:   want,
		Got:    got,
		error: errors.Errorf("seqdata: truncated %s at offset %d: expected %d bytes, got %d",
			region, offset, want, got),
	}
}

func (err *TruncatedStreamError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

// ChunkTooLargeError is returned before anything is written when a chunk
// does not fit the 32-bit length prefix.
type ChunkTooLargeError struct {
	Size int64
	error
}

func newChunkTooLargeError(size int64) *ChunkTooLargeError {
	return &ChunkTooLargeError{
		Size:  size,
		error: errors.Errorf("seqdata: chunk of %d bytes does not fit a %d byte length prefix", size, LengthPrefixSize),
	}
}

func (err *ChunkTooLargeError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

// ProtocolError reports a Reader or Writer used out of sequence.
// Cause is set when the instance is unusable because of an earlier failure.
type ProtocolError struct {
	Op     string
	Reason string
	Cause  error
	error
}

func newProtocolError(op, reason string, cause error) *ProtocolError {
	var err error
	if cause != nil {
		err = errors.Errorf("seqdata: %s: %s: %v", op, reason, cause)
	} else {
		err = errors.Errorf("seqdata: %s: %s", op, reason)
	}
	return &ProtocolError{Op: op, Reason: reason, Cause: cause, error: err}
}

func (err *ProtocolError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

func (err *ProtocolError) Unwrap() error {
	return err.Cause
}

// MagicMismatchError is returned by Format.CheckMagic.
type MagicMismatchError struct {
	Want []byte
	Got  []byte
	error
}

func (err *MagicMismatchError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

// HeaderSizeError is returned by Format.CheckHeader.
type HeaderSizeError struct {
	Want int
	Got  int
	error
}

func (err *HeaderSizeError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}
