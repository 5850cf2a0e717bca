package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/teemow/prkeeper/internal/bot"
)

func newStaleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stale",
		Short: "Warn, unassign and close pull requests after review inactivity",
		Long: `Scan every open pull request and apply the inactivity policy. A pull
request counts as inactive once its author has neither pushed nor commented
since the most recent changes-requested review. Escalation happens in three
tiers: a reminder comment, unassigning linked issues plus a stale label,
and finally closing the pull request. Pull requests still awaiting their
first review are never touched.

This command runs on a schedule and ignores event payloads.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rt, err := newRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.shutdown(context.Background())

			b := bot.NewStale(rt.client, rt.cfg, rt.log, rt.provider.Metrics())
			processed, err := b.Run(ctx)
			if err != nil {
				return fmt.Errorf("stale bot failed: %w", err)
			}
			rt.log.Info("run finished", slog.Int("processed_pull_requests", processed))
			return nil
		},
	}

	return cmd
}
