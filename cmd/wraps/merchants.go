package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"wraps/internal/engine"
	"wraps/internal/model"
)

func merchantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merchants",
		Short: "List available merchants",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := newPipeline(slog.Default())
			if err != nil {
				return err
			}
			defer p.close()

			merchants, err := p.src.AvailableMerchants(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list merchants: %w", err)
			}
			return printJSON(merchants)
		},
	}

	cmd.AddCommand(merchantsTopCmd())

	return cmd
}

func merchantsTopCmd() *cobra.Command {
	var orderBy string
	var limit int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Rank merchants by total or average spend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var key model.SortKey
			switch orderBy {
			case "total":
				key = model.SortByTotal
			case "average":
				key = model.SortByAverage
			default:
				return fmt.Errorf("invalid --order-by %q (want total or average)", orderBy)
			}

			p, err := newPipeline(slog.Default())
			if err != nil {
				return err
			}
			defer p.close()

			summary, err := p.engine.SummarizeAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to summarize spending: %w", err)
			}

			return printJSON(engine.RankMerchants(summary, key, limit))
		},
	}

	cmd.Flags().StringVar(&orderBy, "order-by", "average", "ranking metric (total, average)")
	cmd.Flags().IntVar(&limit, "limit", 5, "number of merchants to return")

	return cmd
}
