package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cinebot/internal/api"
)

func newSettingsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change search source toggles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *api.Service) error {
				prefs, err := svc.Preferences(cmd.Context(), ctx.userID())
				if err != nil {
					return err
				}
				rows := [][]string{
					{"metadata", yesNo(prefs.UseMetadata)},
					{"links", yesNo(prefs.UseLinks)},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Source", "Enabled"}, rows))
				return nil
			})
		},
	}

	cmd.AddCommand(newSettingsSetCommand(ctx))
	cmd.AddCommand(newSettingsToggleCommand(ctx))
	return cmd
}

func newSettingsSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <source> <on|off>",
		Short: "Enable or disable a search source",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseOnOff(args[1])
			if err != nil {
				return err
			}
			return ctx.withService(func(svc *api.Service) error {
				if err := svc.SetPreference(cmd.Context(), ctx.userID(), args[0], value); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], yesNo(value))
				return nil
			})
		},
	}
}

func newSettingsToggleCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <source>",
		Short: "Flip a search source on or off",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withService(func(svc *api.Service) error {
				value, err := svc.TogglePreference(cmd.Context(), ctx.userID(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], yesNo(value))
				return nil
			})
		},
	}
}

func parseOnOff(value string) (bool, error) {
	switch value {
	case "on", "yes", "1":
		return true, nil
	case "off", "no", "0":
		return false, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("expected on or off, got %q", value)
	}
	return parsed, nil
}
