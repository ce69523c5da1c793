package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dataset, session, and graph statistics",
		Run: func(cmd *cobra.Command, args []string) {
			stats, err := apiClient.Stats(context.Background())
			if err != nil {
				fatal("get stats", err)
			}
			if flagFmt == "table" {
				formatTable([]string{"METRIC", "VALUE"}, [][]string{
					{"dataset items", fmt.Sprintf("%d", stats.Dataset.Items)},
					{"dataset edges", fmt.Sprintf("%d", stats.Dataset.Edges)},
					{"active sessions", fmt.Sprintf("%d", stats.Sessions.Active)},
					{"websocket clients", fmt.Sprintf("%d", stats.Sessions.Websockets)},
					{"graphs built", fmt.Sprintf("%d", stats.Graphs.Built)},
					{"clusters", fmt.Sprintf("%d", stats.Graphs.Clusters)},
				})
				return
			}
			output(stats, "")
		},
	}
}

func newDatasetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Administer the server-side dataset",
	}
	cmd.AddCommand(datasetReloadCmd())
	return cmd
}

func datasetReloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Reload the dataset from the server's configured source",
		Run: func(cmd *cobra.Command, args []string) {
			resp, err := apiClient.Dataset.Reload(context.Background())
			if err != nil {
				fatal("reload dataset", err)
			}
			output(resp, resp.Source)
		},
	}
}
