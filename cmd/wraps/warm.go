package main

import (
	"fmt"
	"log/slog"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func warmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "warm",
		Short: "Pre-resolve AI categorization for the whole dataset",
		Long: `Scans every merchant's products, sends the names keyword rules cannot
resolve to the external classifier, and fills the categorization cache so
summary runs need no further network calls.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := slog.Default()

			p, err := newPipeline(logger)
			if err != nil {
				return err
			}
			defer p.close()

			if p.categorizer == nil {
				logger.Info("no AI credential configured, nothing to warm")
				return nil
			}

			var bar *progressbar.ProgressBar
			p.categorizer.OnBatch = func(done, total int) {
				if bar == nil {
					bar = progressbar.NewOptions(total,
						progressbar.OptionSetDescription("categorizing"),
						progressbar.OptionShowCount(),
						progressbar.OptionClearOnFinish(),
					)
				}
				_ = bar.Set(done)
			}

			if err := p.engine.Warm(cmd.Context()); err != nil {
				return fmt.Errorf("warm-up failed: %w", err)
			}

			logger.Info("warm-up finished", "cached_products", p.cache.Size())
			return nil
		},
	}
}
