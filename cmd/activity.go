package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teemow/prkeeper/internal/bot"
	"github.com/teemow/prkeeper/internal/logging"
)

func newActivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity [event.json]",
		Short: "Clear the stale state when a contributor follows up",
		Long: `Handle an issue_comment event on a stale pull request: when the comment
comes from the pull request author, the stale label is removed, linked
issues nobody has claimed are assigned back to them, and an encouragement
comment is posted.

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

			b := bot.NewActivity(rt.client, rt.cfg, rt.log, rt.provider.Metrics())
			acted, err := b.Run(ctx, payload)
			if err != nil {
				return fmt.Errorf("activity bot failed: %w", err)
			}
			if !acted {
				rt.log.Info("no contributor activity to act on")
			}
			return nil
		},
	}

	return cmd
}
