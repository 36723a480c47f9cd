package main

import (
	"fmt"

	"github.com/marcelsud/issue-webhooks/webhook/signature"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var cmdSecret = &cobra.Command{
	Use:   "secret",
	Short: "generate a random shared secret",
	Run: func(cmd *cobra.Command, args []string) {
		if err := secret(cmd, args); err != nil {
			log.Fatal().Err(err).Send()
		}
	},
}

type secretOptions struct {
	size int
}

var secretOpts secretOptions

func init() {
	cmdSecret.Flags().IntVar(&secretOpts.size, "bytes", 32, fmt.Sprintf("secret size in bytes (%d-%d)", signature.MinSecretBytes, signature.MaxSecretBytes))

	cmdRoot.AddCommand(cmdSecret)
}

func secret(cmd *cobra.Command, args []string) error {
	s, err := signature.GenerateSecret(secretOpts.size)
	if err != nil {
		return err
	}
	fmt.Println(s)
	return nil
}
