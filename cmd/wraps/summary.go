package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"wraps/internal/common"
)

func summaryCmd() *cobra.Command {
	var merchantID int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Aggregate spending across all merchants",
		Long: `Builds the full spending summary: per-merchant category, payment and
monthly breakdowns plus the global roll-up. Output is indented JSON on
stdout.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := slog.Default()

			p, err := newPipeline(logger)
			if err != nil {
				return err
			}
			defer p.close()

			ctx := cmd.Context()

			if cmd.Flags().Changed("merchant") {
				summary, err := p.engine.SummarizeMerchant(ctx, merchantID)
				if err != nil {
					return fmt.Errorf("failed to summarize merchant %d: %w", merchantID, err)
				}
				return printJSON(summary)
			}

			summary, err := p.engine.SummarizeAll(ctx)
			if err != nil {
				return fmt.Errorf("failed to summarize spending: %w", err)
			}
			if len(summary.MerchantSummaries) == 0 {
				return common.NewUserError("no merchant data found, check data.dir", common.ErrNoMerchants)
			}
			return printJSON(summary)
		},
	}

	cmd.Flags().IntVar(&merchantID, "merchant", 0, "summarize a single merchant by ID")

	return cmd
}
