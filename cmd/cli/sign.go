package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/marcelsud/issue-webhooks/config"
	"github.com/marcelsud/issue-webhooks/webhook"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var cmdSign = &cobra.Command{
	Use:   "sign",
	Short: "print the X-Signature header for a body read from stdin",
	Run: func(cmd *cobra.Command, args []string) {
		if err := sign(cmd, args); err != nil {
			log.Fatal().Err(err).Send()
		}
	},
}

type signOptions struct {
	secret    string
	timestamp int64
}

var signOpts signOptions

func init() {
	flags := cmdSign.Flags()

	flags.StringVar(&signOpts.secret, "secret", "", "shared secret (defaults to WEBHOOK_SECRET)")
	flags.Int64Var(&signOpts.timestamp, "timestamp", 0, "unix timestamp to sign with (defaults to now)")

	cmdRoot.AddCommand(cmdSign)
}

func sign(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}
	secret := firstNonEmpty(signOpts.secret, cfg.WebhookSecret)
	if secret == "" {
		return webhook.ErrMissingSecret
	}

	body, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading body: %w", err)
	}

	at := time.Now()
	if signOpts.timestamp != 0 {
		at = time.Unix(signOpts.timestamp, 0)
	}

	fmt.Println(webhook.Seal(secret, at, body).Header())
	return nil
}
