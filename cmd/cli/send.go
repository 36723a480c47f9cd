package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/marcelsud/issue-webhooks/config"
	"github.com/marcelsud/issue-webhooks/policy"
	"github.com/marcelsud/issue-webhooks/webhook"
	"github.com/marcelsud/issue-webhooks/webhook/delivery"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var cmdSend = &cobra.Command{
	Use:   "send",
	Short: "deliver one issue.updated webhook and wait for the result",
	Run: func(cmd *cobra.Command, args []string) {
		if err := send(cmd, args); err != nil {
			log.Fatal().Err(err).Send()
		}
	},
}

type sendOptions struct {
	url        string
	secret     string
	policyFile string
	issueID    string
	status     string
	actor      string
}

var sendOpts sendOptions

func init() {
	flags := cmdSend.Flags()

	flags.StringVar(&sendOpts.url, "url", "", "destination url (defaults to WEBHOOK_URL)")
	flags.StringVar(&sendOpts.secret, "secret", "", "shared secret (defaults to WEBHOOK_SECRET)")
	flags.StringVar(&sendOpts.policyFile, "policy", "", "retry policy file (defaults to WEBHOOK_POLICY_FILE)")
	flags.StringVar(&sendOpts.issueID, "issue", "", "issue id")
	flags.StringVar(&sendOpts.status, "status", "RESOLVED", "new issue status")
	flags.StringVar(&sendOpts.actor, "actor", "System", "who made the change")

	if err := cmdSend.MarkFlagRequired("issue"); err != nil {
		log.Fatal().Err(err).Send()
	}

	cmdRoot.AddCommand(cmdSend)
}

func send(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	destination := webhook.Destination{
		URL:    firstNonEmpty(sendOpts.url, cfg.WebhookURL),
		Secret: firstNonEmpty(sendOpts.secret, cfg.WebhookSecret),
	}

	p, err := policy.LoadOrDefault(firstNonEmpty(sendOpts.policyFile, cfg.WebhookPolicyFile))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sender := delivery.NewSender(destination, p, delivery.WithLogger(log.Logger))
	event := webhook.Event{
		Type:       webhook.IssueUpdated,
		ResourceID: sendOpts.issueID,
		NewState:   sendOpts.status,
		Actor:      sendOpts.actor,
	}
	if err := sender.Deliver(ctx, event); err != nil {
		return fmt.Errorf("delivering webhook: %w", err)
	}

	fmt.Printf("delivered %s for issue %s to %s\n", event.Type, event.ResourceID, destination.URL)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
