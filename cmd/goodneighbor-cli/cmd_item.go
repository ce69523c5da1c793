package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goodneighborlab/goodneighbor/client"
)

func newItemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Browse archival items",
	}
	cmd.AddCommand(itemListCmd())
	cmd.AddCommand(itemGetCmd())
	cmd.AddCommand(itemNeighborsCmd())
	return cmd
}

func itemListCmd() *cobra.Command {
	var collection, country, query string
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items",
		Run: func(cmd *cobra.Command, args []string) {
			if limit < 0 {
				fmt.Fprintf(os.Stderr, "Error: --limit must be non-negative\n")
				os.Exit(1)
			}
			if offset < 0 {
				fmt.Fprintf(os.Stderr, "Error: --offset must be non-negative\n")
				os.Exit(1)
			}
			opts := &client.ItemListOptions{
				Collection: collection,
				Country:    country,
				Query:      query,
				Limit:      limit,
				Offset:     offset,
			}
			items, _, err := apiClient.Items.List(context.Background(), opts)
			if err != nil {
				fatal("list items", err)
			}
			if flagFmt == "table" {
				headers := []string{"ID", "TITLE", "COLLECTION", "COUNTRY", "YEAR"}
				var rows [][]string
				for _, it := range items {
					title := ""
					if len(it.Title) > 0 {
						title = it.Title[0]
					}
					year := ""
					if it.Year != nil {
						year = fmt.Sprintf("%d", *it.Year)
					}
					rows = append(rows, []string{it.ID, truncate(title, 48), it.Collection, it.Country, year})
				}
				formatTable(headers, rows)
				return
			}
			if flagFmt == "quiet" {
				for _, it := range items {
					fmt.Println(it.ID)
				}
				return
			}
			output(items, "")
		},
	}
	cmd.Flags().StringVar(&collection, "collection", "", "Filter by collection")
	cmd.Flags().StringVar(&country, "country", "", "Filter by country")
	cmd.Flags().StringVar(&query, "query", "", "Filter by text query")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results")
	cmd.Flags().IntVar(&offset, "offset", 0, "Offset")
	return cmd
}

func itemGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get an item by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			item, err := apiClient.Items.Get(context.Background(), args[0])
			if err != nil {
				fatal("get item", err)
			}
			output(item, item.ID)
		},
	}
}

// weightFlags registers the four blend-weight flags and returns a getter
// that builds a Weights value, or nil when no weight flag was set.
func weightFlags(cmd *cobra.Command) func() *client.Weights {
	var wtext, wdate, wplace, wuser float64
	cmd.Flags().Float64Var(&wtext, "wtext", -1, "Text similarity weight")
	cmd.Flags().Float64Var(&wdate, "wdate", -1, "Date similarity weight")
	cmd.Flags().Float64Var(&wplace, "wplace", -1, "Place similarity weight")
	cmd.Flags().Float64Var(&wuser, "wuser", -1, "User similarity weight")

	return func() *client.Weights {
		if wtext < 0 && wdate < 0 && wplace < 0 && wuser < 0 {
			return nil
		}
		w := &client.Weights{}
		if wtext >= 0 {
			w.Text = wtext
		}
		if wdate >= 0 {
			w.Date = wdate
		}
		if wplace >= 0 {
			w.Place = wplace
		}
		if wuser >= 0 {
			w.User = wuser
		}
		return w
	}
}

func itemNeighborsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "neighbors <id>",
		Short: "Show the most similar items",
		Args:  cobra.ExactArgs(1),
	}
	weights := weightFlags(cmd)
	cmd.Flags().IntVar(&limit, "limit", 0, "Max neighbors")
	cmd.Run = func(cmd *cobra.Command, args []string) {
		neighbors, err := apiClient.Items.Neighbors(context.Background(), args[0], &client.NeighborOptions{
			Weights: weights(),
			Limit:   limit,
		})
		if err != nil {
			fatal("get neighbors", err)
		}
		if flagFmt == "table" {
			headers := []string{"ID", "TITLE", "SCORE"}
			var rows [][]string
			for _, n := range neighbors {
				title := ""
				if len(n.Item.Title) > 0 {
					title = n.Item.Title[0]
				}
				rows = append(rows, []string{n.Item.ID, truncate(title, 48), fmt.Sprintf("%.3f", n.Score)})
			}
			formatTable(headers, rows)
			return
		}
		output(neighbors, "")
	}
	return cmd
}
