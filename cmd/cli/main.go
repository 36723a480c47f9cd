package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var cmdRoot = &cobra.Command{
	Use:   "issue-webhooks",
	Short: "send and sign issue tracker webhooks",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if rootOpts.debug {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

type rootOptions struct {
	debug bool
}

var rootOpts rootOptions

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cmdRoot.PersistentFlags().BoolVarP(&rootOpts.debug, "debug", "d", false, "debug")
}

func main() {
	if err := cmdRoot.Execute(); err != nil {
		os.Exit(1)
	}
}
