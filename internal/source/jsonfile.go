package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"wraps/internal/common"
	"wraps/internal/model"
)

// merchantFilePrefix and merchantFileExt bound the files the JSON source
// reads: development_<id>_<name>.json.
const (
	merchantFilePrefix = "development_"
	merchantFileExt    = ".json"
)

// JSONFileSource loads merchant transaction sets from a directory of JSON
// files named development_<id>_<name>.json, each containing a transaction
// array.
type JSONFileSource struct {
	dir    string
	logger *slog.Logger
}

// NewJSONFileSource creates a source reading from the given directory.
func NewJSONFileSource(dir string, logger *slog.Logger) *JSONFileSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONFileSource{dir: dir, logger: logger}
}

// ListMerchantData loads every merchant file with at least one transaction.
func (s *JSONFileSource) ListMerchantData(ctx context.Context) ([]model.MerchantData, error) {
	files, err := s.merchantFiles()
	if err != nil {
		return nil, err
	}

	var merchants []model.MerchantData
	for _, file := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		info, ok := parseMerchantFilename(file)
		if !ok {
			continue
		}

		transactions, err := s.loadTransactions(file)
		if err != nil {
			s.logger.Error("failed to load merchant file, skipping",
				"file", file,
				"error", err)
			continue
		}
		if len(transactions) == 0 {
			continue
		}

		merchants = append(merchants, model.MerchantData{
			MerchantID:   info.ID,
			MerchantName: info.Name,
			Transactions: transactions,
		})
	}

	return merchants, nil
}

// LoadMerchantData loads the transaction set for one merchant ID.
func (s *JSONFileSource) LoadMerchantData(ctx context.Context, merchantID int) (*model.MerchantData, error) {
	files, err := s.merchantFiles()
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		info, ok := parseMerchantFilename(file)
		if !ok || info.ID != merchantID {
			continue
		}

		transactions, err := s.loadTransactions(file)
		if err != nil {
			return nil, fmt.Errorf("failed to load merchant %d: %w", merchantID, err)
		}

		return &model.MerchantData{
			MerchantID:   info.ID,
			MerchantName: info.Name,
			Transactions: transactions,
		}, nil
	}

	return nil, fmt.Errorf("merchant %d: %w", merchantID, common.ErrNotFound)
}

// AvailableMerchants lists merchants without loading their transactions.
func (s *JSONFileSource) AvailableMerchants(_ context.Context) ([]model.MerchantInfo, error) {
	files, err := s.merchantFiles()
	if err != nil {
		return nil, err
	}

	var merchants []model.MerchantInfo
	for _, file := range files {
		if info, ok := parseMerchantFilename(file); ok {
			merchants = append(merchants, info)
		}
	}
	return merchants, nil
}

// merchantFiles returns the merchant data filenames in the directory.
func (s *JSONFileSource) merchantFiles() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory %s: %w", s.dir, err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, merchantFilePrefix) || !strings.HasSuffix(name, merchantFileExt) {
			continue
		}
		files = append(files, name)
	}
	return files, nil
}

func (s *JSONFileSource) loadTransactions(filename string) ([]model.Transaction, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var transactions []model.Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return transactions, nil
}

// parseMerchantFilename extracts the merchant ID and a title-cased display
// name from a filename like development_44_whole-foods.json.
func parseMerchantFilename(filename string) (model.MerchantInfo, bool) {
	base := strings.TrimSuffix(filename, merchantFileExt)
	parts := strings.Split(base, "_")
	if len(parts) < 3 {
		return model.MerchantInfo{}, false
	}

	id, err := strconv.Atoi(parts[1])
	if err != nil {
		return model.MerchantInfo{}, false
	}

	raw := strings.Join(parts[2:], " ")
	raw = strings.ReplaceAll(raw, "-", " ")

	words := strings.Fields(raw)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}

	return model.MerchantInfo{ID: id, Name: strings.Join(words, " ")}, true
}
