package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"cinebot/internal/api"
	"cinebot/internal/search"
)

const (
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>...",
		Short: "Look up a movie and its streaming links",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return ctx.withService(func(svc *api.Service) error {
				res, err := svc.Search(cmd.Context(), ctx.userID(), query)
				if err != nil {
					return err
				}
				printSearchResult(cmd.OutOrStdout(), res)
				return nil
			})
		},
	}
}

func printSearchResult(out io.Writer, res search.Result) {
	if res.Metadata == nil && len(res.Links) == 0 {
		fmt.Fprintf(out, "Nothing found for %q\n", res.Query)
		return
	}

	if m := res.Metadata; m != nil {
		title := m.DisplayTitle()
		if isTerminal(out) {
			title = ansiBold + title + ansiReset
		}
		fmt.Fprintln(out, title)
		if m.Rating > 0 {
			fmt.Fprintf(out, "  Rating:    %.1f\n", m.Rating)
		}
		if len(m.Genres) > 0 {
			fmt.Fprintf(out, "  Genres:    %s\n", strings.Join(m.Genres, ", "))
		}
		if len(m.Countries) > 0 {
			fmt.Fprintf(out, "  Countries: %s\n", strings.Join(m.Countries, ", "))
		}
		if m.Description != "" {
			fmt.Fprintf(out, "  %s\n", m.Description)
		}
		if m.PosterURL != "" {
			fmt.Fprintf(out, "  Poster:    %s\n", m.PosterURL)
		}
		if res.FromCache.Metadata {
			fmt.Fprintln(out, "  (served from cache)")
		}
	}

	if len(res.Links) > 0 {
		fmt.Fprintln(out, "Watch:")
		for _, link := range res.Links {
			if link.Label != "" {
				fmt.Fprintf(out, "  %s  %s\n", link.URL, link.Label)
			} else {
				fmt.Fprintf(out, "  %s\n", link.URL)
			}
		}
	}
}
