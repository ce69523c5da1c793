package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goodneighborlab/goodneighbor/client"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Build the session's working graph",
	}
	cmd.AddCommand(graphBuildCmd())
	return cmd
}

func graphBuildCmd() *cobra.Command {
	var budget int
	var threshold float64
	var collection, country, query string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a working graph from the dataset",
	}
	weights := weightFlags(cmd)
	cmd.Flags().IntVar(&budget, "budget", 0, "Node budget (0 = server default)")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "Score threshold (0 = server default)")
	cmd.Flags().StringVar(&collection, "collection", "", "Filter by collection")
	cmd.Flags().StringVar(&country, "country", "", "Filter by country")
	cmd.Flags().StringVar(&query, "query", "", "Filter by text query")
	cmd.Run = func(cmd *cobra.Command, args []string) {
		if budget < 0 {
			fmt.Fprintf(os.Stderr, "Error: --budget must be non-negative\n")
			os.Exit(1)
		}
		resp, err := apiClient.Graph.Build(context.Background(), &client.BuildGraphRequest{
			NodeBudget:     budget,
			ScoreThreshold: threshold,
			Weights:        weights(),
			Collection:     collection,
			Country:        country,
			Query:          query,
		})
		if err != nil {
			fatal("build graph", err)
		}
		if flagFmt == "table" {
			headers := []string{"ID", "TITLE", "DEGREE", "CLUSTER"}
			var rows [][]string
			for _, n := range resp.Nodes {
				rows = append(rows, []string{
					n.ID, truncate(n.Title, 48),
					fmt.Sprintf("%d", n.Degree), fmt.Sprintf("%d", n.Cluster),
				})
			}
			formatTable(headers, rows)
			fmt.Printf("\n%d nodes, %d edges, %d clusters\n", len(resp.Nodes), len(resp.Edges), resp.Clusters)
			return
		}
		output(resp, resp.SessionID)
	}
	return cmd
}
