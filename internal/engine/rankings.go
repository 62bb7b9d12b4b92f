package engine

import (
	"math"
	"sort"

	"wraps/internal/model"
)

// RankMerchants ranks the merchants of a summary by the given sort key and
// truncates to limit entries. Metadata describes the ranking relative to
// the whole dataset.
func RankMerchants(summary model.SpendingSummary, key model.SortKey, limit int) model.MerchantRankings {
	if limit <= 0 {
		limit = 5
	}

	rankings := make([]model.MerchantRanking, 0, len(summary.MerchantSummaries))
	for _, m := range summary.MerchantSummaries {
		entry := model.MerchantRanking{
			MerchantID:       m.MerchantID,
			MerchantName:     m.MerchantName,
			TotalSpent:       m.TotalSpent,
			TransactionCount: m.TransactionCount,
			AverageSpend:     roundCents(safeDivide(m.TotalSpent, m.TransactionCount)),
		}
		if len(m.CategoryBreakdown) > 0 {
			entry.TopCategory = m.CategoryBreakdown[0].Category
			entry.TopCategorySpent = m.CategoryBreakdown[0].TotalSpent
		}
		rankings = append(rankings, entry)
	}

	switch key {
	case model.SortByTotal:
		sort.SliceStable(rankings, func(i, j int) bool { return rankings[i].TotalSpent > rankings[j].TotalSpent })
	default:
		key = model.SortByAverage
		sort.SliceStable(rankings, func(i, j int) bool { return rankings[i].AverageSpend > rankings[j].AverageSpend })
	}

	overallAverage := roundCents(safeDivide(summary.TotalSpent, summary.TotalTransactions))
	above := 0
	for _, r := range rankings {
		if r.AverageSpend > overallAverage {
			above++
		}
	}

	total := len(rankings)
	if len(rankings) > limit {
		rankings = rankings[:limit]
	}

	return model.MerchantRankings{
		Merchants: rankings,
		Metadata: model.RankingMetadata{
			OrderBy:               key,
			Limit:                 limit,
			TotalMerchants:        total,
			OverallAverageSpend:   overallAverage,
			MerchantsAboveAverage: above,
			MerchantsBelowAverage: total - above,
		},
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
