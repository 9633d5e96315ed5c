package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medibill/medibill/internal/customer"
	"github.com/medibill/medibill/internal/medicine"
	"github.com/medibill/medibill/internal/report"
)

type medicineView struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	ExpiryDate string          `json:"expiry_date"`
	Category   string          `json:"category,omitempty"`
}

func toMedicineViews(meds []*medicine.Medicine) []medicineView {
	views := make([]medicineView, len(meds))
	for i, m := range meds {
		views[i] = medicineView{
			ID:         m.ID,
			Name:       m.Name,
			Price:      m.Price,
			Stock:      m.Stock,
			ExpiryDate: m.ExpiryDate.Format(time.DateOnly),
			Category:   m.Category,
		}
	}

	return views
}

type customerView struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	VisitCount int             `json:"visit_count"`
	TotalSpent decimal.Decimal `json:"total_spent"`
	LastVisit  *time.Time      `json:"last_visit,omitempty"`
}

func toCustomerViews(customers []*customer.Customer) []customerView {
	views := make([]customerView, len(customers))
	for i, c := range customers {
		views[i] = customerView{
			ID:         c.ID,
			Name:       c.Name,
			VisitCount: c.VisitCount,
			TotalSpent: c.TotalSpent,
			LastVisit:  c.LastVisit,
		}
	}

	return views
}

type salesView struct {
	MedicineID   uuid.UUID       `json:"medicine_id"`
	MedicineName string          `json:"medicine_name"`
	QuantitySold int             `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

func toSalesViews(sales []report.MedicineSales) []salesView {
	views := make([]salesView, len(sales))
	for i, s := range sales {
		views[i] = salesView{
			MedicineID:   s.MedicineID,
			MedicineName: s.MedicineName,
			QuantitySold: s.QuantitySold,
			Revenue:      s.Revenue,
		}
	}

	return views
}

type categoryView struct {
	Category   string          `json:"category"`
	Count      int             `json:"count"`
	StockValue decimal.Decimal `json:"stock_value"`
}

func toCategoryViews(summaries []report.CategorySummary) []categoryView {
	views := make([]categoryView, len(summaries))
	for i, s := range summaries {
		views[i] = categoryView{
			Category:   s.Category,
			Count:      s.Count,
			StockValue: s.StockValue,
		}
	}

	return views
}

type summaryView struct {
	TotalSales   decimal.Decimal `json:"total_sales"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
	UnpaidAmount decimal.Decimal `json:"unpaid_amount"`
	PaidCount    int             `json:"paid_count"`
	UnpaidCount  int             `json:"unpaid_count"`
}

func toSummaryView(s report.SalesSummary) summaryView {
	return summaryView{
		TotalSales:   s.TotalSales,
		PaidAmount:   s.PaidAmount,
		UnpaidAmount: s.UnpaidAmount,
		PaidCount:    s.PaidCount,
		UnpaidCount:  s.UnpaidCount,
	}
}
