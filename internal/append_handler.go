package internal

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/wal-g/seqdata/pkg/seqdata"
	"github.com/wal-g/seqdata/pkg/seqfile"
	"github.com/wal-g/seqdata/utility"
	"github.com/wal-g/tracelog"
)

const (
	StdinInputName = "-"
	maxLineSize    = 64 << 20
)

// HandleAppend appends every input as one chunk, or every line of it when splitLines is set.
// With no inputs stdin is read. The number of appended chunks is returned.
// A container with a torn last chunk is left untouched.
func HandleAppend(path string, format seqdata.Format, inputs []string, splitLines bool, stdin io.Reader) (int, error) {
	file, _, err := seqfile.OpenAppend(path, format)
	if err != nil {
		return 0, err
	}
	if err = checkTail(path, format); err != nil {
		tracelog.ErrorLogger.PrintOnError(file.Close())
		return 0, err
	}
	if len(inputs) == 0 {
		inputs = []string{StdinInputName}
	}

	appended := 0
	for _, input := range inputs {
		var n int
		n, err = appendInput(file, input, splitLines, stdin)
		appended += n
		if err != nil {
			break
		}
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return appended, err
	}
	tracelog.InfoLogger.Printf("Appended %d chunks to %s", appended, path)
	return appended, nil
}

// checkTail refuses containers whose last chunk is torn: chunks written
// after it would be framed by the torn length prefix.
func checkTail(path string, format seqdata.Format) error {
	result, err := seqfile.Check(path, format)
	if err != nil {
		return err
	}
	if result.Cause != nil {
		return NewTornTailError(path, result.ValidLength, result.Cause)
	}
	return nil
}

func appendInput(file *seqfile.File, input string, splitLines bool, stdin io.Reader) (int, error) {
	if input == StdinInputName {
		return appendFrom(file, stdin, -1, splitLines)
	}
	source, err := os.Open(input)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to open input %s", input)
	}
	defer utility.LoggedClose(source, "")
	info, err := source.Stat()
	if err != nil {
		return 0, errors.Wrapf(err, "failed to stat input %s", input)
	}
	size := int64(-1)
	if info.Mode().IsRegular() {
		size = info.Size()
	}
	n, err := appendFrom(file, source, size, splitLines)
	return n, errors.Wrapf(err, "failed to append %s", input)
}

func appendFrom(file *seqfile.File, source io.Reader, size int64, splitLines bool) (int, error) {
	if splitLines {
		scanner := bufio.NewScanner(source)
		scanner.Buffer(make([]byte, 0, 64<<10), maxLineSize)
		appended := 0
		for scanner.Scan() {
			if err := file.WriteChunk(scanner.Bytes()); err != nil {
				return appended, err
			}
			appended++
		}
		return appended, errors.Wrap(scanner.Err(), "failed to split input into lines")
	}
	if size >= 0 {
		if err := file.WriteChunkFrom(source, size); err != nil {
			return 0, err
		}
		return 1, nil
	}
	data, err := io.ReadAll(source)
	if err != nil {
		return 0, errors.Wrap(err, "failed to read input")
	}
	if err = file.WriteChunk(data); err != nil {
		return 0, err
	}
	return 1, nil
}
