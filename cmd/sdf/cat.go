package sdf

import (
	"bufio"
	"os"

	"github.com/spf13/cobra"
	"github.com/wal-g/seqdata/internal"
	"github.com/wal-g/tracelog"
)

const (
	catShortDescription = "Write chunk data to stdout"

	indexFlag            = "index"
	indexFlagDescription = "Write only the chunk with this index"
)

var chunkIndex int

// catCmd represents the cat command
var catCmd = &cobra.Command{
	Use:   "cat container_path",
	Short: catShortDescription,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		output := bufio.NewWriter(os.Stdout)
		err := internal.HandleCat(args[0], configureFormat(), readBufferSize(), chunkIndex, output)
		if flushErr := output.Flush(); err == nil {
			err = flushErr
		}
		tracelog.ErrorLogger.FatalOnError(err)
	},
}

func init() {
	cmd.AddCommand(catCmd)
	catCmd.Flags().IntVar(&chunkIndex, indexFlag, internal.AllChunks, indexFlagDescription)
}
