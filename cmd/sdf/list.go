package sdf

import (
	"github.com/spf13/cobra"
	"github.com/wal-g/seqdata/internal"
)

const (
	listShortDescription = "Print the chunks of a container"

	prettyFlag            = "pretty"
	prettyFlagDescription = "Prints more readable output in table format"
	jsonFlag              = "json"
	jsonFlagDescription   = "Prints output in json format"
)

var (
	prettyList bool
	jsonList   bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list container_path",
	Short: listShortDescription,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		internal.DefaultHandleChunkList(args[0], configureFormat(), readBufferSize(), prettyList, jsonList)
	},
}

func init() {
	cmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&prettyList, prettyFlag, false, prettyFlagDescription)
	listCmd.Flags().BoolVar(&jsonList, jsonFlag, false, jsonFlagDescription)
}
