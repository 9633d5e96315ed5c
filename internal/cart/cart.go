package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medibill/medibill/internal/bill"
)

// Session is the in-progress, not-yet-committed sale being assembled by
// the operator. It is ephemeral: nothing here touches the database
// until Commit.
type Session struct {
	CustomerName   string
	CustomerID     *uuid.UUID
	Items          []bill.Item
	DiscountAmount decimal.Decimal
}

// Subtotal is the sum of all pending line totals.
func (s *Session) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range s.Items {
		sum = sum.Add(item.LineTotal())
	}

	return sum
}

// Total is the subtotal minus the discount, floored at zero. The
// discount field itself is never clamped.
func (s *Session) Total() decimal.Decimal {
	return bill.Total(s.Subtotal(), s.DiscountAmount)
}

func (s *Session) itemIndex(medicineID uuid.UUID) int {
	for i, item := range s.Items {
		if item.MedicineID == medicineID {
			return i
		}
	}

	return -1
}
