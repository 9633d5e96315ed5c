package customer

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("customer not found")

// Customer is a repeat buyer tracked for loyalty analytics. VisitCount
// and TotalSpent only ever grow, and only as a side effect of a bill
// being committed under this customer.
type Customer struct {
	ID         uuid.UUID
	Name       string
	Phone      string
	Email      string
	VisitCount int
	TotalSpent decimal.Decimal
	LastVisit  *time.Time
	CreatedAt  time.Time
}
