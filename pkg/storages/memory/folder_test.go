package memory

import (
	"testing"

	"github.com/wal-g/seqdata/pkg/storages/storage"
)

func TestMemoryFolder(t *testing.T) {
	storage.RunFolderTest(NewFolder("in_memory/", NewKVS()), t)
}

func TestMemoryFolder_Root(t *testing.T) {
	storage.RunFolderTest(NewFolder("", NewKVS()), t)
}
