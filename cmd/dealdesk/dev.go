//go:build !release

package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/garrettladley/dealdesk/internal/bento"
	"github.com/garrettladley/dealdesk/internal/config"
	"github.com/garrettladley/dealdesk/internal/db"
	"github.com/garrettladley/dealdesk/internal/layout"
	"github.com/garrettladley/dealdesk/internal/paths"
	"github.com/garrettladley/dealdesk/internal/storage"
	"github.com/garrettladley/dealdesk/internal/store"
)

func addDevCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(layoutCmd())
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the demo snapshot to the local cache",
		Long:  "Stores the demo dashboard in the offline cache so the TUI has data without a backend.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := config.Read()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			if _, err := paths.EnsureDir(); err != nil {
				return err
			}
			dbPath, err := paths.DB()
			if err != nil {
				return err
			}
			sqlDB, err := db.Open(ctx, dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer func() { _ = sqlDB.Close() }()

			snap := storage.DemoSnapshot(time.Now())
			if err := store.NewCache(sqlDB).Save(ctx, cfg.OrgID, snap); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s for org %s\n", dbPath, cfg.OrgID)
			return nil
		},
	}
}

func layoutCmd() *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Print where each widget lands on the grid",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := config.Read()
				if err != nil {
					return fmt.Errorf("failed to read config: %w", err)
				}
				path = cfg.LayoutPath
				if path == "" {
					if path, err = paths.Layout(); err != nil {
						return err
					}
				}
			}

			l, err := layout.Load(path)
			if err != nil {
				return err
			}
			return printPlacements(cmd.OutOrStdout(), l, bento.DefaultGrid(), width)
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 140, "terminal width in columns")

	return cmd
}

func printPlacements(w io.Writer, l layout.Layout, g bento.Grid, width int) error {
	bp := g.Breakpoints.For(width)
	cells := l.Cells(func(string) func(int, int, bento.Transform) string { return nil })
	ps := g.Layout(cells, width)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "breakpoint\t%s (%d tracks)\n", bp, bp.Tracks())
	fmt.Fprintln(tw, "widget\trow\tcol\tspan\tx\ty\tw\th")
	for _, p := range ps {
		r := g.Rect(p, bp, width)
		fmt.Fprintf(tw, "%s\t%d\t%d\t%dx%d\t%d\t%d\t%d\t%d\n",
			p.ID, p.Row, p.Col, p.Cols, p.Rows, r.X, r.Y, r.W, r.H)
	}
	fmt.Fprintf(tw, "height\t%d\n", g.Height(ps))
	return tw.Flush()
}
