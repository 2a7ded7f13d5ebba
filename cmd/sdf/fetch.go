package sdf

import (
	"github.com/spf13/cobra"
	"github.com/wal-g/seqdata/internal"
	"github.com/wal-g/tracelog"
)

const fetchShortDescription = "Download a container from storage"

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch object_name container_path",
	Short: fetchShortDescription,
	Args:  cobra.ExactArgs(2),
	PreRun: func(cmd *cobra.Command, args []string) {
		tracelog.ErrorLogger.FatalOnError(internal.AssertRequiredSettingsSet())
	},
	Run: func(cmd *cobra.Command, args []string) {
		folder, err := internal.ConfigureFolder()
		tracelog.ErrorLogger.FatalOnError(err)
		maxRetries, err := internal.GetFetchMaxRetries()
		tracelog.ErrorLogger.FatalOnError(err)

		ctx, cancel := signalContext()
		defer cancel()
		_, err = internal.HandleFetch(ctx, folder, args[0], args[1], configureFormat(), maxRetries)
		tracelog.ErrorLogger.FatalOnError(err)
	},
}

func init() {
	cmd.AddCommand(fetchCmd)
}
