package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"wraps/internal/llm"
)

func estimateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the AI cost of categorizing the current dataset",
		Long: `Dry run: counts the distinct product names that would be sent to the
external classifier and reports the estimated cost range. No network calls
are made.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := newPipeline(slog.Default())
			if err != nil {
				return err
			}
			defer p.close()

			merchants, err := p.src.ListMerchantData(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load merchant data: %w", err)
			}

			pending := p.engine.PendingNames(merchants)
			batchSize := viper.GetInt("ai.batch_size")
			if batchSize <= 0 {
				batchSize = llm.DefaultBatchSize
			}

			return printJSON(map[string]any{
				"pendingProducts": len(pending),
				"batchSize":       batchSize,
				"estimatedCost":   llm.EstimateCost(len(pending), batchSize),
			})
		},
	}
}
