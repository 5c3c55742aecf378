package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cinebot/internal/api"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show recent searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *api.Service) error {
				entries, err := svc.History(cmd.Context(), ctx.userID())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No searches recorded")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{
						entry.CreatedAt.Local().Format("2006-01-02 15:04"),
						entry.Query,
					})
				}
				fmt.Fprintln(out, renderTable([]string{"When", "Query"}, rows))
				return nil
			})
		},
	}
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show most viewed titles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *api.Service) error {
				stats, err := svc.Stats(cmd.Context(), ctx.userID())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(stats) == 0 {
					fmt.Fprintln(out, "No views recorded")
					return nil
				}
				rows := make([][]string, 0, len(stats))
				for _, stat := range stats {
					title := stat.Title
					if stat.Year != "" {
						title = fmt.Sprintf("%s (%s)", stat.Title, stat.Year)
					}
					rows = append(rows, []string{
						title,
						strconv.FormatInt(stat.Count, 10),
						stat.LastViewed.Local().Format("2006-01-02 15:04"),
					})
				}
				fmt.Fprintln(out, renderTable([]string{"Title", "Views", "Last viewed"}, rows, 1))
				return nil
			})
		},
	}
}
