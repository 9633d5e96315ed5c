// Package payment holds the card processor the bill payment endpoint
// charges through. The only implementation is a simulated gateway; the
// interface is the seam where a real processor would plug in.
package payment

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrDeclined          = errors.New("payment declined")
	ErrInvalidCardNumber = errors.New("invalid card number")
	ErrInvalidHolderName = errors.New("cardholder name is required")
	ErrInvalidExpiry     = errors.New("invalid expiry date")
	ErrInvalidCVV        = errors.New("invalid cvv")
)

// Card is the payment form as typed by the operator.
type Card struct {
	Number     string
	HolderName string
	Expiry     string // MM/YY
	CVV        string
}

var expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)

// Validate checks the card fields for shape only; no issuer checks.
func (c Card) Validate() error {
	digits := strings.ReplaceAll(c.Number, " ", "")
	if len(digits) < 13 || len(digits) > 19 || strings.Trim(digits, "0123456789") != "" {
		return ErrInvalidCardNumber
	}

	if strings.TrimSpace(c.HolderName) == "" {
		return ErrInvalidHolderName
	}

	if !expiryPattern.MatchString(c.Expiry) {
		return ErrInvalidExpiry
	}

	if n := len(c.CVV); n < 3 || n > 4 || strings.Trim(c.CVV, "0123456789") != "" {
		return ErrInvalidCVV
	}

	return nil
}

type Processor interface {
	Charge(ctx context.Context, amount decimal.Decimal, card Card) error
}

// Simulated stands in for a real gateway: it waits a fixed delay and
// declines a configurable fraction of charges at random.
type Simulated struct {
	delay       time.Duration
	declineRate float64
}

func NewSimulated(delay time.Duration, declineRate float64) *Simulated {
	return &Simulated{delay: delay, declineRate: declineRate}
}

func (s *Simulated) Charge(ctx context.Context, amount decimal.Decimal, card Card) error {
	if err := card.Validate(); err != nil {
		return err
	}

	if amount.IsNegative() {
		return fmt.Errorf("charge amount must not be negative: %s", amount)
	}

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if rand.Float64() < s.declineRate {
		return ErrDeclined
	}

	return nil
}
