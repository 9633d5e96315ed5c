package medicine

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("medicine not found")

// Medicine represents a stock-keeping unit held in the pharmacy inventory.
type Medicine struct {
	ID           uuid.UUID
	Name         string
	Description  string
	Price        decimal.Decimal
	Stock        int
	ExpiryDate   time.Time
	Category     string
	Manufacturer string
	CreatedAt    time.Time
}
