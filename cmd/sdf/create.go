package sdf

import (
	"github.com/spf13/cobra"
	"github.com/wal-g/seqdata/internal"
	"github.com/wal-g/seqdata/utility"
	"github.com/wal-g/tracelog"
)

const (
	createShortDescription = "Create an empty container"
	createLongDescription  = "Creates a new container file holding the configured magic and the given header. " +
		"Fails if the file exists."

	headerFlag            = "header"
	headerFlagDescription = "Header bytes in hex, must match " + internal.HeaderSizeSetting
)

var headerHex string

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create container_path",
	Short: createShortDescription,
	Long:  createLongDescription,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		format := configureFormat()
		header, err := utility.DecodeHex(headerHex)
		tracelog.ErrorLogger.FatalOnError(err)

		err = internal.HandleCreate(args[0], format, header)
		tracelog.ErrorLogger.FatalOnError(err)
	},
}

func init() {
	cmd.AddCommand(createCmd)
	createCmd.Flags().StringVar(&headerHex, headerFlag, "", headerFlagDescription)
}
