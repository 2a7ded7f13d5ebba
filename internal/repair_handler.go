package internal

import (
	"github.com/wal-g/seqdata/pkg/seqdata"
	"github.com/wal-g/seqdata/pkg/seqfile"
	"github.com/wal-g/tracelog"
)

// HandleRepair cuts a torn trailing chunk off the container at path.
func HandleRepair(path string, format seqdata.Format) (seqfile.RecoverResult, error) {
	result, err := seqfile.Recover(path, format)
	if err != nil {
		return result, err
	}
	if result.Cause == nil {
		tracelog.InfoLogger.Printf("%s is intact, %d chunks", path, result.Chunks)
	} else {
		tracelog.InfoLogger.Printf("Removed %d trailing bytes from %s, %d chunks kept",
			result.Removed, path, result.Chunks)
	}
	return result, nil
}
