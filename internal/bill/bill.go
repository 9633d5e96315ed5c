package bill

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("bill not found")

// Item is one line of a bill. MedicineName and UnitPrice are snapshots
// taken when the line entered the cart; they are never re-joined
// against the live medicine, so historical bills keep showing what was
// actually charged.
type Item struct {
	MedicineID   uuid.UUID
	MedicineName string
	Quantity     int
	UnitPrice    decimal.Decimal
}

func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Bill is a finalized, itemized sale. Items are immutable after
// creation; only the top-level fields may change.
type Bill struct {
	ID             uuid.UUID
	CustomerID     *uuid.UUID
	CustomerName   string
	Date           time.Time
	Items          []Item
	DiscountAmount decimal.Decimal
	TotalAmount    decimal.Decimal
	Paid           bool
	CreatedAt      time.Time
}

// Subtotal is the sum of all line totals before the discount.
func (b *Bill) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range b.Items {
		sum = sum.Add(item.LineTotal())
	}

	return sum
}

// Total applies the discount to a subtotal, floored at zero. The
// discount itself is not clamped to the subtotal.
func Total(subtotal, discount decimal.Decimal) decimal.Decimal {
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}

	return total
}
