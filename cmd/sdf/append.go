package sdf

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/wal-g/seqdata/internal"
	"github.com/wal-g/tracelog"
)

const (
	appendShortDescription = "Append chunks to a container"
	appendLongDescription  = "Appends every input file as one chunk. Reads stdin when no input or '-' is given."

	splitLinesFlag            = "split-lines"
	splitLinesFlagDescription = "Append every line of the input as a separate chunk"
)

var splitLines bool

// appendCmd represents the append command
var appendCmd = &cobra.Command{
	Use:   "append container_path [input_path...]",
	Short: appendShortDescription,
	Long:  appendLongDescription,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		format := configureFormat()
		_, err := internal.HandleAppend(args[0], format, args[1:], splitLines, os.Stdin)
		tracelog.ErrorLogger.FatalOnError(err)
	},
}

func init() {
	cmd.AddCommand(appendCmd)
	appendCmd.Flags().BoolVar(&splitLines, splitLinesFlag, false, splitLinesFlagDescription)
}
