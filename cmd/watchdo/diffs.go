package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"watchdo/config"
	"watchdo/internal/journal"
)

// newDiffsCmd returns the subcommand listing journaled content diffs
func newDiffsCmd(cfg *config.Config) *cobra.Command {
	var (
		journalPath string
		limit       int
		showContent bool
	)

	cmd := &cobra.Command{
		Use:   "diffs",
		Short: "List recent content diffs from the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if journalPath == "" {
				return fmt.Errorf("no journal configured (use --journal or WATCHDO_JOURNAL)")
			}

			j, err := journal.Open(journalPath, nil)
			if err != nil {
				return err
			}
			defer j.Close()

			diffs, err := j.RecentDiffs(context.Background(), limit)
			if err != nil {
				return err
			}

			for _, d := range diffs {
				fmt.Printf("%s  %s (+%d -%d)\n", formatUnix(d.Timestamp), d.Path, d.LinesAdded, d.LinesRemoved)
				if showContent {
					fmt.Println(d.DiffContent)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&journalPath, "journal", cfg.JournalPath, "journal SQLite file to read")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of rows to show")
	cmd.Flags().BoolVar(&showContent, "content", false, "print the diff bodies")

	return cmd
}
