package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/prkeeper/internal/bot"
	"github.com/teemow/prkeeper/internal/logging"
)

func newReopenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reopen [event.json]",
		Short: "Reassign linked issues when a pull request is reopened",
		Long: `Handle a pull_request_target "reopened" event: issues the pull request
closes are assigned back to the returning author and posted a welcome
comment, and a stale label on the pull request is removed.

The optional argument is the path to the event payload file, normally
$GITHUB_EVENT_PATH inside a workflow run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rt, err := newRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.shutdown(context.Background())

			payload, err := loadPayload(args)
			if err != nil {
				rt.log.Error("failed to load event payload", logging.Err(err))
				return err
			}

			b := bot.NewReopen(rt.client, rt.cfg, rt.log, rt.provider.Metrics())
			reassigned, err := b.Run(ctx, payload)
			if err != nil {
				return fmt.Errorf("reopen bot failed: %w", err)
			}
			if !reassigned {
				rt.log.Info("no issues were reassigned")
			}
			return nil
		},
	}

	return cmd
}
