// Package report computes the derived analytics views. Every function
// is stateless and recomputes from the collections it is handed; there
// is no caching or incremental maintenance.
package report

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medibill/medibill/internal/bill"
	"github.com/medibill/medibill/internal/customer"
	"github.com/medibill/medibill/internal/medicine"
)

const (
	// LowStockThreshold is the on-hand quantity at or below which a
	// medicine counts as low stock.
	LowStockThreshold = 10

	// ExpiryWindowMonths is how far ahead the expiring-soon view looks.
	ExpiryWindowMonths = 3

	defaultTopN = 5
)

// LowStock returns the medicines with stock at or below the threshold.
func LowStock(meds []*medicine.Medicine) []*medicine.Medicine {
	var low []*medicine.Medicine

	for _, m := range meds {
		if m.Stock <= LowStockThreshold {
			low = append(low, m)
		}
	}

	return low
}

// ExpiringSoon returns the medicines whose expiry date falls within the
// expiry window of now.
func ExpiringSoon(meds []*medicine.Medicine, now time.Time) []*medicine.Medicine {
	cutoff := now.AddDate(0, ExpiryWindowMonths, 0)

	var expiring []*medicine.Medicine

	for _, m := range meds {
		if !m.ExpiryDate.After(cutoff) {
			expiring = append(expiring, m)
		}
	}

	return expiring
}

// TopCustomers returns the n biggest spenders, ties kept in collection
// order. n defaults to 5 when not positive.
func TopCustomers(customers []*customer.Customer, n int) []*customer.Customer {
	if n <= 0 {
		n = defaultTopN
	}

	ranked := append([]*customer.Customer(nil), customers...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalSpent.GreaterThan(ranked[j].TotalSpent)
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}

	return ranked
}

// MedicineSales aggregates one medicine's sales across all bills.
type MedicineSales struct {
	MedicineID   uuid.UUID
	MedicineName string
	QuantitySold int
	Revenue      decimal.Decimal
}

// TopSelling aggregates quantity and revenue per medicine over all bill
// line items and returns the n best sellers by quantity. Names come
// from the line-item snapshots, so medicines deleted from the
// inventory still report under the name they were sold as.
func TopSelling(bills []*bill.Bill, n int) []MedicineSales {
	if n <= 0 {
		n = defaultTopN
	}

	totals := make(map[uuid.UUID]*MedicineSales)

	var order []uuid.UUID

	for _, b := range bills {
		for _, item := range b.Items {
			agg, ok := totals[item.MedicineID]
			if !ok {
				agg = &MedicineSales{
					MedicineID:   item.MedicineID,
					MedicineName: item.MedicineName,
					Revenue:      decimal.Zero,
				}
				totals[item.MedicineID] = agg

				order = append(order, item.MedicineID)
			}

			agg.QuantitySold += item.Quantity
			agg.Revenue = agg.Revenue.Add(item.LineTotal())
		}
	}

	ranked := make([]MedicineSales, 0, len(order))
	for _, id := range order {
		ranked = append(ranked, *totals[id])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].QuantitySold > ranked[j].QuantitySold
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}

	return ranked
}

// CategorySummary is the per-category inventory aggregate.
type CategorySummary struct {
	Category   string
	Count      int
	StockValue decimal.Decimal
}

// CategoryBreakdown counts medicines per category and sums the stock
// value (price x stock), sorted by value descending.
func CategoryBreakdown(meds []*medicine.Medicine) []CategorySummary {
	totals := make(map[string]*CategorySummary)

	var order []string

	for _, m := range meds {
		agg, ok := totals[m.Category]
		if !ok {
			agg = &CategorySummary{
				Category:   m.Category,
				StockValue: decimal.Zero,
			}
			totals[m.Category] = agg

			order = append(order, m.Category)
		}

		agg.Count++
		agg.StockValue = agg.StockValue.Add(m.Price.Mul(decimal.NewFromInt(int64(m.Stock))))
	}

	summaries := make([]CategorySummary, 0, len(order))
	for _, category := range order {
		summaries = append(summaries, *totals[category])
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].StockValue.GreaterThan(summaries[j].StockValue)
	})

	return summaries
}

// SalesSummary is the headline paid/unpaid breakdown over all bills.
type SalesSummary struct {
	TotalSales   decimal.Decimal
	PaidAmount   decimal.Decimal
	UnpaidAmount decimal.Decimal
	PaidCount    int
	UnpaidCount  int
}

// Summarize totals all bills and splits them by paid status.
func Summarize(bills []*bill.Bill) SalesSummary {
	summary := SalesSummary{
		TotalSales:   decimal.Zero,
		PaidAmount:   decimal.Zero,
		UnpaidAmount: decimal.Zero,
	}

	for _, b := range bills {
		summary.TotalSales = summary.TotalSales.Add(b.TotalAmount)

		if b.Paid {
			summary.PaidAmount = summary.PaidAmount.Add(b.TotalAmount)
			summary.PaidCount++
		} else {
			summary.UnpaidAmount = summary.UnpaidAmount.Add(b.TotalAmount)
			summary.UnpaidCount++
		}
	}

	return summary
}
