package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect and mutate the session interaction record",
	}
	cmd.AddCommand(sessionShowCmd())
	cmd.AddCommand(sessionViewCmd())
	cmd.AddCommand(sessionBookmarkCmd())
	cmd.AddCommand(sessionResetCmd())
	cmd.AddCommand(sessionSimilarityCmd())
	return cmd
}

func sessionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the session's views and bookmarks",
		Run: func(cmd *cobra.Command, args []string) {
			record, err := apiClient.Session.Snapshot(context.Background())
			if err != nil {
				fatal("get session", err)
			}
			output(record, apiClient.SessionID())
		},
	}
}

func sessionViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <item-id>",
		Short: "Record a view of an item",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := apiClient.Session.TrackView(context.Background(), args[0]); err != nil {
				fatal("track view", err)
			}
			fmt.Println("viewed", args[0])
		},
	}
}

func sessionBookmarkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bookmark <item-id>",
		Short: "Toggle a bookmark on an item",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			on, err := apiClient.Session.ToggleBookmark(context.Background(), args[0])
			if err != nil {
				fatal("toggle bookmark", err)
			}
			if on {
				fmt.Println("bookmarked", args[0])
			} else {
				fmt.Println("unbookmarked", args[0])
			}
		},
	}
}

func sessionResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the session's views and bookmarks",
		Run: func(cmd *cobra.Command, args []string) {
			if err := apiClient.Session.Reset(context.Background()); err != nil {
				fatal("reset session", err)
			}
			fmt.Println("reset")
		},
	}
}

func sessionSimilarityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "similarity",
		Short: "Show the user-similarity pairs derived from this session",
		Run: func(cmd *cobra.Command, args []string) {
			pairs, err := apiClient.Session.Similarity(context.Background())
			if err != nil {
				fatal("get similarity", err)
			}
			if flagFmt == "table" {
				headers := []string{"SOURCE", "TARGET", "S_USER"}
				var rows [][]string
				for _, p := range pairs {
					rows = append(rows, []string{p.Source, p.Target, fmt.Sprintf("%.3f", p.SUser)})
				}
				formatTable(headers, rows)
				return
			}
			output(pairs, "")
		},
	}
}
