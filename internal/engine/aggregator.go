package engine

import (
	"sort"

	"wraps/internal/model"
)

// topProductsPerCategory bounds the per-category product list.
const topProductsPerCategory = 5

// topCategoriesGlobal bounds the global top-category list.
const topCategoriesGlobal = 10

// ClassifyFunc resolves a product name to a category.
type ClassifyFunc func(name string) model.Category

// Summarize aggregates merchant transaction sets into a SpendingSummary.
// It is pure and deterministic given its inputs: classification is injected
// and no I/O or shared state is touched, so callers may parallelize the
// per-merchant pass if they wish.
func Summarize(merchants []model.MerchantData, classify ClassifyFunc) model.SpendingSummary {
	merchantSummaries := make([]model.MerchantSummary, 0, len(merchants))
	for _, m := range merchants {
		merchantSummaries = append(merchantSummaries, SummarizeMerchant(m, classify))
	}

	var totalSpent float64
	var totalTransactions int
	for _, ms := range merchantSummaries {
		totalSpent += ms.TotalSpent
		totalTransactions += ms.TransactionCount
	}

	summary := model.SpendingSummary{
		TotalSpent:           totalSpent,
		TotalTransactions:    totalTransactions,
		AverageOrderValue:    safeDivide(totalSpent, totalTransactions),
		MerchantSummaries:    merchantSummaries,
		TopCategories:        mergeCategories(merchantSummaries),
		MonthlyTrends:        mergeMonths(merchantSummaries),
		PaymentMethodSummary: mergePayments(merchantSummaries),
	}

	sort.SliceStable(summary.MerchantSummaries, func(i, j int) bool {
		return summary.MerchantSummaries[i].TotalSpent > summary.MerchantSummaries[j].TotalSpent
	})

	return summary
}

// SummarizeMerchant aggregates a single merchant's transactions.
func SummarizeMerchant(data model.MerchantData, classify ClassifyFunc) model.MerchantSummary {
	type productAgg struct {
		totalSpent float64
		quantity   int
		prices     []float64
	}
	type categoryAgg struct {
		products   map[string]*productAgg
		totalSpent float64
		itemCount  int
	}
	type paymentAgg struct {
		brand      string
		lastFour   string
		totalSpent float64
		count      int
	}
	type monthAgg struct {
		totalSpent float64
		count      int
	}

	categories := make(map[model.Category]*categoryAgg)
	payments := make(map[string]*paymentAgg)
	months := make(map[string]*monthAgg)

	var totalSpent float64

	for _, tx := range data.Transactions {
		totalSpent += tx.Price.Total

		// Payment methods with a missing or sentinel brand/lastFour cannot
		// be grouped and are skipped.
		for _, pm := range tx.PaymentMethods {
			if pm.Brand == "" || pm.Brand == "Unknown" || pm.LastFour == "" || pm.LastFour == "Unknown" {
				continue
			}
			key := pm.Brand + "-" + pm.LastFour
			agg, ok := payments[key]
			if !ok {
				agg = &paymentAgg{brand: pm.Brand, lastFour: pm.LastFour}
				payments[key] = agg
			}
			agg.totalSpent += pm.Amount()
			agg.count++
		}

		// An unparseable date drops the transaction from monthly trends
		// only; total and category accumulation are independent steps.
		if month, ok := tx.DateTime.Month(); ok {
			agg, found := months[month]
			if !found {
				agg = &monthAgg{}
				months[month] = agg
			}
			agg.totalSpent += tx.Price.Total
			agg.count++
		}

		for _, product := range tx.Products {
			category := classify(product.Name)
			cagg, ok := categories[category]
			if !ok {
				cagg = &categoryAgg{products: make(map[string]*productAgg)}
				categories[category] = cagg
			}

			lineTotal := product.Price.SafeTotal()
			cagg.totalSpent += lineTotal
			cagg.itemCount += product.Quantity

			pagg, ok := cagg.products[product.Name]
			if !ok {
				pagg = &productAgg{}
				cagg.products[product.Name] = pagg
			}
			pagg.totalSpent += lineTotal
			pagg.quantity += product.Quantity
			if unit, valid := product.Price.SafeUnitPrice(); valid {
				pagg.prices = append(pagg.prices, unit)
			}
		}
	}

	breakdown := make([]model.CategoryBreakdown, 0, len(categories))
	for category, cagg := range categories {
		top := make([]model.ProductSummary, 0, len(cagg.products))
		for name, pagg := range cagg.products {
			top = append(top, model.ProductSummary{
				Name:         name,
				TotalSpent:   pagg.totalSpent,
				Quantity:     pagg.quantity,
				AveragePrice: meanOf(pagg.prices),
			})
		}
		sort.SliceStable(top, func(i, j int) bool { return top[i].TotalSpent > top[j].TotalSpent })
		if len(top) > topProductsPerCategory {
			top = top[:topProductsPerCategory]
		}

		breakdown = append(breakdown, model.CategoryBreakdown{
			Category:     category,
			TotalSpent:   cagg.totalSpent,
			ItemCount:    cagg.itemCount,
			AveragePrice: safeDivide(cagg.totalSpent, cagg.itemCount),
			TopProducts:  top,
		})
	}
	sort.SliceStable(breakdown, func(i, j int) bool { return breakdown[i].TotalSpent > breakdown[j].TotalSpent })

	paymentBreakdown := make([]model.PaymentMethodBreakdown, 0, len(payments))
	for _, agg := range payments {
		paymentBreakdown = append(paymentBreakdown, model.PaymentMethodBreakdown{
			Brand:            agg.brand,
			LastFour:         agg.lastFour,
			TotalSpent:       agg.totalSpent,
			TransactionCount: agg.count,
		})
	}
	sort.SliceStable(paymentBreakdown, func(i, j int) bool {
		return paymentBreakdown[i].TotalSpent > paymentBreakdown[j].TotalSpent
	})

	monthly := make([]model.MonthlySpending, 0, len(months))
	for month, agg := range months {
		monthly = append(monthly, model.MonthlySpending{
			Month:            month,
			TotalSpent:       agg.totalSpent,
			TransactionCount: agg.count,
		})
	}
	// Lexicographic YYYY-MM order is chronological.
	sort.SliceStable(monthly, func(i, j int) bool { return monthly[i].Month < monthly[j].Month })

	return model.MerchantSummary{
		MerchantID:             data.MerchantID,
		MerchantName:           data.MerchantName,
		TotalSpent:             totalSpent,
		TransactionCount:       len(data.Transactions),
		AverageOrderValue:      safeDivide(totalSpent, len(data.Transactions)),
		CategoryBreakdown:      breakdown,
		PaymentMethodBreakdown: paymentBreakdown,
		MonthlySpending:        monthly,
	}
}

// mergeCategories sums matching category names across merchants and keeps
// the global top 10. TopProducts is intentionally empty at the global level.
func mergeCategories(merchants []model.MerchantSummary) []model.CategoryBreakdown {
	type agg struct {
		totalSpent float64
		itemCount  int
	}
	all := make(map[model.Category]*agg)
	for _, m := range merchants {
		for _, cb := range m.CategoryBreakdown {
			a, ok := all[cb.Category]
			if !ok {
				a = &agg{}
				all[cb.Category] = a
			}
			a.totalSpent += cb.TotalSpent
			a.itemCount += cb.ItemCount
		}
	}

	top := make([]model.CategoryBreakdown, 0, len(all))
	for category, a := range all {
		top = append(top, model.CategoryBreakdown{
			Category:     category,
			TotalSpent:   a.totalSpent,
			ItemCount:    a.itemCount,
			AveragePrice: safeDivide(a.totalSpent, a.itemCount),
			TopProducts:  []model.ProductSummary{},
		})
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].TotalSpent > top[j].TotalSpent })
	if len(top) > topCategoriesGlobal {
		top = top[:topCategoriesGlobal]
	}
	return top
}

// mergeMonths sums matching month buckets across merchants.
func mergeMonths(merchants []model.MerchantSummary) []model.MonthlySpending {
	type agg struct {
		totalSpent float64
		count      int
	}
	all := make(map[string]*agg)
	for _, m := range merchants {
		for _, ms := range m.MonthlySpending {
			a, ok := all[ms.Month]
			if !ok {
				a = &agg{}
				all[ms.Month] = a
			}
			a.totalSpent += ms.TotalSpent
			a.count += ms.TransactionCount
		}
	}

	trends := make([]model.MonthlySpending, 0, len(all))
	for month, a := range all {
		trends = append(trends, model.MonthlySpending{
			Month:            month,
			TotalSpent:       a.totalSpent,
			TransactionCount: a.count,
		})
	}
	sort.SliceStable(trends, func(i, j int) bool { return trends[i].Month < trends[j].Month })
	return trends
}

// mergePayments sums matching (brand, lastFour) keys across merchants.
func mergePayments(merchants []model.MerchantSummary) []model.PaymentMethodBreakdown {
	type agg struct {
		brand      string
		lastFour   string
		totalSpent float64
		count      int
	}
	all := make(map[string]*agg)
	for _, m := range merchants {
		for _, pb := range m.PaymentMethodBreakdown {
			key := pb.Brand + "-" + pb.LastFour
			a, ok := all[key]
			if !ok {
				a = &agg{brand: pb.Brand, lastFour: pb.LastFour}
				all[key] = a
			}
			a.totalSpent += pb.TotalSpent
			a.count += pb.TransactionCount
		}
	}

	summary := make([]model.PaymentMethodBreakdown, 0, len(all))
	for _, a := range all {
		summary = append(summary, model.PaymentMethodBreakdown{
			Brand:            a.brand,
			LastFour:         a.lastFour,
			TotalSpent:       a.totalSpent,
			TransactionCount: a.count,
		})
	}
	sort.SliceStable(summary, func(i, j int) bool { return summary[i].TotalSpent > summary[j].TotalSpent })
	return summary
}

// safeDivide returns total/count, defined as 0 when count is 0.
func safeDivide(total float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
