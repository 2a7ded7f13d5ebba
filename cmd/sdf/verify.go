package sdf

import (
	"github.com/spf13/cobra"
	"github.com/wal-g/seqdata/internal"
	"github.com/wal-g/tracelog"
)

const verifyShortDescription = "Check that every chunk of a container is whole"

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify container_path",
	Short: verifyShortDescription,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, err := internal.HandleVerify(args[0], configureFormat(), readBufferSize())
		tracelog.ErrorLogger.FatalOnError(err)
	},
}

func init() {
	cmd.AddCommand(verifyCmd)
}
