package model

// SortKey selects the metric used to rank merchants.
type SortKey string

const (
	// SortByTotal ranks merchants by total spend.
	SortByTotal SortKey = "total"
	// SortByAverage ranks merchants by average spend per transaction.
	SortByAverage SortKey = "average"
)

// MerchantRanking is one entry in a ranked merchant list.
type MerchantRanking struct {
	MerchantID       int      `json:"merchantId"`
	MerchantName     string   `json:"merchantName"`
	TotalSpent       float64  `json:"totalSpent"`
	TransactionCount int      `json:"transactionCount"`
	AverageSpend     float64  `json:"averageSpend"`
	TopCategory      Category `json:"topCategory"`
	TopCategorySpent float64  `json:"topCategorySpent"`
}

// RankingMetadata describes a ranking run relative to the whole dataset.
type RankingMetadata struct {
	OrderBy               SortKey `json:"orderBy"`
	Limit                 int     `json:"limit"`
	TotalMerchants        int     `json:"totalMerchants"`
	OverallAverageSpend   float64 `json:"overallAverageSpend"`
	MerchantsAboveAverage int     `json:"merchantsAboveAverage"`
	MerchantsBelowAverage int     `json:"merchantsBelowAverage"`
}

// MerchantRankings is a ranked merchant list plus run metadata.
type MerchantRankings struct {
	Merchants []MerchantRanking `json:"topMerchants"`
	Metadata  RankingMetadata   `json:"metadata"`
}
