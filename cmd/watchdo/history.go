package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"watchdo/config"
	"watchdo/internal/journal"
)

// newHistoryCmd returns the subcommand listing journaled events and runs
func newHistoryCmd(cfg *config.Config) *cobra.Command {
	var (
		journalPath string
		limit       int
		showActions bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent journaled change events",
		RunE: func(cmd *cobra.Command, args []string) error {
			if journalPath == "" {
				return fmt.Errorf("no journal configured (use --journal or WATCHDO_JOURNAL)")
			}

			j, err := journal.Open(journalPath, nil)
			if err != nil {
				return err
			}
			defer j.Close()

			ctx := context.Background()

			if showActions {
				actions, err := j.RecentActions(ctx, limit)
				if err != nil {
					return err
				}
				for _, a := range actions {
					fmt.Printf("%s  %s\n", formatUnix(a.Timestamp), a.Command)
				}
				return nil
			}

			events, err := j.RecentEvents(ctx, limit)
			if err != nil {
				return err
			}
			for _, ev := range events {
				fmt.Printf("%s  %-8s %s\n", formatUnix(ev.Timestamp), ev.Kind, ev.Path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&journalPath, "journal", cfg.JournalPath, "journal SQLite file to read")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of rows to show")
	cmd.Flags().BoolVar(&showActions, "actions", false, "list command invocations instead of events")

	return cmd
}

func formatUnix(ts int64) string {
	return time.Unix(ts, 0).Format("2006-01-02 15:04:05")
}
