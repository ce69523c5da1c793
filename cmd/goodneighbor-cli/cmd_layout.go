package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Control the session's layout simulation",
	}
	cmd.AddCommand(layoutStartCmd())
	cmd.AddCommand(layoutReheatCmd())
	cmd.AddCommand(layoutStopCmd())
	cmd.AddCommand(layoutPositionsCmd())
	cmd.AddCommand(layoutZoomCmd())
	cmd.AddCommand(layoutPanCmd())
	cmd.AddCommand(layoutResetViewCmd())
	return cmd
}

func layoutStartCmd() *cobra.Command {
	var width, height float64
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the layout for the most recent graph build",
		Run: func(cmd *cobra.Command, args []string) {
			status, err := apiClient.Layout.Start(context.Background(), width, height)
			if err != nil {
				fatal("start layout", err)
			}
			output(status, status.SessionID)
		},
	}
	cmd.Flags().Float64Var(&width, "width", 960, "Viewport width")
	cmd.Flags().Float64Var(&height, "height", 680, "Viewport height")
	return cmd
}

func layoutReheatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reheat",
		Short: "Restart a cooled simulation",
		Run: func(cmd *cobra.Command, args []string) {
			status, err := apiClient.Layout.Reheat(context.Background())
			if err != nil {
				fatal("reheat layout", err)
			}
			output(status, status.SessionID)
		},
	}
}

func layoutStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the simulation",
		Run: func(cmd *cobra.Command, args []string) {
			if err := apiClient.Layout.Stop(context.Background()); err != nil {
				fatal("stop layout", err)
			}
			fmt.Println("stopped")
		},
	}
}

func layoutPositionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "positions",
		Short: "Show the current node positions",
		Run: func(cmd *cobra.Command, args []string) {
			frames, err := apiClient.Layout.Positions(context.Background())
			if err != nil {
				fatal("get positions", err)
			}
			if flagFmt == "table" {
				headers := []string{"ID", "X", "Y"}
				var rows [][]string
				for _, f := range frames {
					rows = append(rows, []string{f.ID, fmt.Sprintf("%.1f", f.X), fmt.Sprintf("%.1f", f.Y)})
				}
				formatTable(headers, rows)
				return
			}
			output(frames, "")
		},
	}
}

func layoutZoomCmd() *cobra.Command {
	var factor, px, py float64
	cmd := &cobra.Command{
		Use:   "zoom",
		Short: "Zoom the view about a screen point",
		Run: func(cmd *cobra.Command, args []string) {
			state, err := apiClient.Layout.Zoom(context.Background(), factor, px, py)
			if err != nil {
				fatal("zoom", err)
			}
			output(state, "")
		},
	}
	cmd.Flags().Float64Var(&factor, "factor", 1.25, "Zoom factor (>1 in, <1 out)")
	cmd.Flags().Float64Var(&px, "px", 0, "Screen point x")
	cmd.Flags().Float64Var(&py, "py", 0, "Screen point y")
	return cmd
}

func layoutPanCmd() *cobra.Command {
	var dx, dy float64
	cmd := &cobra.Command{
		Use:   "pan",
		Short: "Pan the view",
		Run: func(cmd *cobra.Command, args []string) {
			state, err := apiClient.Layout.Pan(context.Background(), dx, dy)
			if err != nil {
				fatal("pan", err)
			}
			output(state, "")
		},
	}
	cmd.Flags().Float64Var(&dx, "dx", 0, "Horizontal shift")
	cmd.Flags().Float64Var(&dy, "dy", 0, "Vertical shift")
	return cmd
}

func layoutResetViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-view",
		Short: "Restore the identity view transform",
		Run: func(cmd *cobra.Command, args []string) {
			state, err := apiClient.Layout.ResetView(context.Background())
			if err != nil {
				fatal("reset view", err)
			}
			output(state, "")
		},
	}
}
