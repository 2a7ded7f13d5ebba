package utility

import (
	"encoding/hex"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/wal-g/tracelog"
)

func LoggedClose(c io.Closer, errmsg string) {
	err := c.Close()
	if errmsg == "" {
		errmsg = "Problem with closing object"
	}
	if err != nil {
		tracelog.ErrorLogger.Printf(errmsg+": %v", err)
	}
}

const (
	CopiedBlockMaxSize = 1 << 20
	// TempObjectSuffix marks objects that are still being pushed.
	TempObjectSuffix = ".partial"
)

// NopWriteCloser hands a writer to APIs that close what they write to,
// leaving the underlying writer open.
type NopWriteCloser struct {
	io.Writer
}

func (NopWriteCloser) Close() error {
	return nil
}

// Empty is used for channel signaling.
type Empty struct{}

func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FastCopy copies data from src to dst in blocks of CopiedBlockMaxSize bytes
func FastCopy(dst io.Writer, src io.Reader) (int64, error) {
	n := int64(0)
	buf := make([]byte, CopiedBlockMaxSize)
	for {
		m, readingErr := src.Read(buf)
		if readingErr != nil && readingErr != io.EOF {
			return n, readingErr
		}
		m, writingErr := dst.Write(buf[:m])
		n += int64(m)
		if writingErr != nil || readingErr == io.EOF {
			return n, writingErr
		}
	}
}

// DecodeHex parses a hex string, optionally prefixed with 0x and with spaces between bytes.
func DecodeHex(value string) ([]byte, error) {
	value = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(value), "0x"), "0X")
	value = strings.ReplaceAll(value, " ", "")
	decoded, err := hex.DecodeString(value)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid hex value '%s'", value)
	}
	return decoded, nil
}

// StripObjectName removes the folder part of an object path.
func StripObjectName(path string) string {
	all := strings.Split(strings.TrimSuffix(path, "/"), "/")
	return all[len(all)-1]
}
