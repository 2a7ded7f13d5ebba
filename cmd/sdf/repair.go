package sdf

import (
	"github.com/spf13/cobra"
	"github.com/wal-g/seqdata/internal"
	"github.com/wal-g/tracelog"
)

const (
	repairShortDescription = "Cut a torn trailing chunk off a container"
	repairLongDescription  = "Truncates the container after its last whole chunk, " +
		"e.g. after a writer crashed in the middle of an append."
)

// repairCmd represents the repair command
var repairCmd = &cobra.Command{
	Use:   "repair container_path",
	Short: repairShortDescription,
	Long:  repairLongDescription,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, err := internal.HandleRepair(args[0], configureFormat())
		tracelog.ErrorLogger.FatalOnError(err)
	},
}

func init() {
	cmd.AddCommand(repairCmd)
}
