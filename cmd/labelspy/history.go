package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/labelspy/labelspy/internal/history"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show saved analyses, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries := history.NewStore(cfg.HistoryPath).List()
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "История пуста.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-22s %s\n",
					e.Timestamp.Local().Format("2006-01-02 15:04"), e.VerdictTitle, e.Summary)
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all saved analyses",
		RunE: func(_ *cobra.Command, _ []string) error {
			return history.NewStore(cfg.HistoryPath).Clear()
		},
	})

	return cmd
}
