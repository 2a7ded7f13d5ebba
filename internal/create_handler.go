package internal

import (
	"github.com/wal-g/seqdata/pkg/seqdata"
	"github.com/wal-g/seqdata/pkg/seqfile"
	"github.com/wal-g/tracelog"
)

// HandleCreate creates an empty container holding only magic and header.
func HandleCreate(path string, format seqdata.Format, header []byte) error {
	file, err := seqfile.Create(path, format, header)
	if err != nil {
		return err
	}
	if err = file.Close(); err != nil {
		return err
	}
	tracelog.InfoLogger.Printf("Created %s", path)
	return nil
}
