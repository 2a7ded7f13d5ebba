package sdf

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/wal-g/seqdata/cmd/common"
	"github.com/wal-g/seqdata/internal"
	"github.com/wal-g/seqdata/pkg/seqdata"
	"github.com/wal-g/tracelog"
)

const ShortDescription = "Length-prefixed chunk container tool"

// These variables are here only to show current version. They are set in makefile during build process
var sdfVersion = "devel"
var gitRevision = "devel"
var buildDate = "devel"

var cmd = &cobra.Command{
	Use:     "sdf",
	Short:   ShortDescription,
	Version: strings.Join([]string{sdfVersion, gitRevision, buildDate}, "\t"),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the root command.
func Execute() {
	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(internal.InitConfig, internal.Configure)

	cmd.PersistentFlags().StringVar(&internal.CfgFile, "config", "", "config file (default is $HOME/.seqdata.yaml)")
	cmd.InitDefaultVersionFlag()
	internal.AddConfigFlags(cmd, common.HiddenConfigFlagAnnotation)

	cmd.AddCommand(common.CompletionCmd, common.FlagsCmd)
}

func configureFormat() seqdata.Format {
	format, err := internal.ConfigureFormat()
	tracelog.ErrorLogger.FatalOnError(err)
	return format
}

func readBufferSize() int {
	size, err := internal.GetReadBufferSize()
	tracelog.ErrorLogger.FatalOnError(err)
	return size
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
