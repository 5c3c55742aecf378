package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cinebot/internal/api"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the lookup cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newCacheStatusCommand(ctx))
	cmd.AddCommand(newCacheClearCommand(ctx))
	return cmd
}

func newCacheStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show live entry counts per namespace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *api.Service) error {
				sizes := svc.CacheSizes()
				rows := make([][]string, 0, len(sizes))
				for _, ns := range []string{"posters", "metadata", "links"} {
					rows = append(rows, []string{ns, strconv.Itoa(sizes[ns])})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Namespace", "Entries"}, rows, 1))
				return nil
			})
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <posters|metadata|links|all>",
		Short: "Remove cached entries from one namespace, or all of them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *api.Service) error {
				removed, err := svc.ClearCache(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached entries\n", removed)
				return nil
			})
		},
	}
}
