package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"wraps/internal/catcache"
	"wraps/internal/engine"
	"wraps/internal/llm"
	"wraps/internal/rules"
	"wraps/internal/source"
)

// pipeline bundles the engine with the collaborators a command may need
// directly, plus a cleanup hook for closable sources.
type pipeline struct {
	engine      *engine.Engine
	src         source.Source
	cache       *catcache.Cache
	categorizer *llm.Categorizer
	cleanup     func() error
}

// newPipeline wires a full engine from the viper configuration. A missing
// API key is not an error: the engine runs rules-only.
func newPipeline(logger *slog.Logger) (*pipeline, error) {
	src, cleanup, err := newSource(logger)
	if err != nil {
		return nil, err
	}

	cache := catcache.New()
	ruleClassifier := rules.NewClassifier()

	var categorizer *llm.Categorizer
	if viper.GetBool("ai.enabled") && viper.GetString("ai.api_key") != "" {
		categorizer, err = llm.NewCategorizer(llmConfig(), logger)
		if err != nil {
			if cleanup != nil {
				_ = cleanup()
			}
			return nil, fmt.Errorf("failed to create AI categorizer: %w", err)
		}
	} else {
		logger.Info("no AI credential configured, using rules-only classification")
	}

	var engineCategorizer engine.Categorizer
	if categorizer != nil {
		engineCategorizer = categorizer
	}

	return &pipeline{
		engine:      engine.New(src, cache, ruleClassifier, engineCategorizer, logger),
		src:         src,
		cache:       cache,
		categorizer: categorizer,
		cleanup:     cleanup,
	}, nil
}

func (p *pipeline) close() {
	if p.cleanup != nil {
		_ = p.cleanup()
	}
}

func newSource(logger *slog.Logger) (source.Source, func() error, error) {
	switch driver := viper.GetString("source.driver"); driver {
	case "json", "":
		return source.NewJSONFileSource(viper.GetString("data.dir"), logger), nil, nil
	case "sqlite":
		src, err := source.NewSQLiteSource(viper.GetString("source.dsn"))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite source: %w", err)
		}
		return src, src.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported source driver: %s", driver)
	}
}

func llmConfig() llm.Config {
	return llm.Config{
		APIKey:     viper.GetString("ai.api_key"),
		Model:      viper.GetString("ai.model"),
		BatchSize:  viper.GetInt("ai.batch_size"),
		MaxRetries: viper.GetInt("ai.max_retries"),
		RetryDelay: viper.GetDuration("ai.retry_delay"),
		BatchDelay: viper.GetDuration("ai.batch_delay"),
	}
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
