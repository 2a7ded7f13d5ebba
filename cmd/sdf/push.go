package sdf

import (
	"github.com/spf13/cobra"
	"github.com/wal-g/seqdata/internal"
	"github.com/wal-g/tracelog"
)

const pushShortDescription = "Upload a container to storage"

// pushCmd represents the push command
var pushCmd = &cobra.Command{
	Use:   "push container_path object_name",
	Short: pushShortDescription,
	Args:  cobra.ExactArgs(2),
	PreRun: func(cmd *cobra.Command, args []string) {
		tracelog.ErrorLogger.FatalOnError(internal.AssertRequiredSettingsSet())
	},
	Run: func(cmd *cobra.Command, args []string) {
		folder, err := internal.ConfigureFolder()
		tracelog.ErrorLogger.FatalOnError(err)

		ctx, cancel := signalContext()
		defer cancel()
		_, err = internal.HandlePush(ctx, folder, args[0], args[1], configureFormat(), readBufferSize())
		tracelog.ErrorLogger.FatalOnError(err)
	},
}

func init() {
	cmd.AddCommand(pushCmd)
}
