package model

// MerchantInfo identifies a merchant known to a transaction source.
type MerchantInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MerchantData is one merchant's full transaction set as supplied by a
// transaction source.
type MerchantData struct {
	MerchantID   int           `json:"merchantId"`
	MerchantName string        `json:"merchantName"`
	Transactions []Transaction `json:"transactions"`
}

// ProductSummary aggregates a single product name within a category.
type ProductSummary struct {
	Name         string  `json:"name"`
	TotalSpent   float64 `json:"totalSpent"`
	Quantity     int     `json:"quantity"`
	AveragePrice float64 `json:"averagePrice"`
}

// CategoryBreakdown aggregates spending within one category.
type CategoryBreakdown struct {
	Category     Category         `json:"category"`
	TotalSpent   float64          `json:"totalSpent"`
	ItemCount    int              `json:"itemCount"`
	AveragePrice float64          `json:"averagePrice"`
	TopProducts  []ProductSummary `json:"topProducts"`
}

// PaymentMethodBreakdown aggregates spending per (brand, last four) key.
type PaymentMethodBreakdown struct {
	Brand            string  `json:"brand"`
	LastFour         string  `json:"lastFour"`
	TotalSpent       float64 `json:"totalSpent"`
	TransactionCount int     `json:"transactionCount"`
}

// MonthlySpending aggregates spending in one YYYY-MM bucket.
type MonthlySpending struct {
	Month            string  `json:"month"`
	TotalSpent       float64 `json:"totalSpent"`
	TransactionCount int     `json:"transactionCount"`
}

// MerchantSummary is the per-merchant aggregation result.
type MerchantSummary struct {
	MerchantID             int                      `json:"merchantId"`
	MerchantName           string                   `json:"merchantName"`
	TotalSpent             float64                  `json:"totalSpent"`
	TransactionCount       int                      `json:"transactionCount"`
	AverageOrderValue      float64                  `json:"averageOrderValue"`
	CategoryBreakdown      []CategoryBreakdown      `json:"categoryBreakdown"`
	PaymentMethodBreakdown []PaymentMethodBreakdown `json:"paymentMethodBreakdown"`
	MonthlySpending        []MonthlySpending        `json:"monthlySpending"`
}

// SpendingSummary is the global roll-up across all merchants.
type SpendingSummary struct {
	TotalSpent           float64                  `json:"totalSpent"`
	TotalTransactions    int                      `json:"totalTransactions"`
	AverageOrderValue    float64                  `json:"averageOrderValue"`
	MerchantSummaries    []MerchantSummary        `json:"merchantSummaries"`
	TopCategories        []CategoryBreakdown      `json:"topCategories"`
	MonthlyTrends        []MonthlySpending        `json:"monthlyTrends"`
	PaymentMethodSummary []PaymentMethodBreakdown `json:"paymentMethodSummary"`
}
