package main

import (
	"github.com/wal-g/seqdata/cmd/sdf"
)

func main() {
	sdf.Execute()
}
