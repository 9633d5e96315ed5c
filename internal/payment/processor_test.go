package payment_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medibill/medibill/internal/payment"
)

func validCard() payment.Card {
	return payment.Card{
		Number:     "4242 4242 4242 4242",
		HolderName: "John Doe",
		Expiry:     "12/27",
		CVV:        "123",
	}
}

func TestCard_Validate(t *testing.T) {
	type testCase struct {
		name    string
		mutate  func(c *payment.Card)
		wantErr error
	}

	tests := []testCase{
		{
			name:   "Valid",
			mutate: func(c *payment.Card) {},
		},
		{
			name:    "ShortNumber",
			mutate:  func(c *payment.Card) { c.Number = "4242" },
			wantErr: payment.ErrInvalidCardNumber,
		},
		{
			name:    "LettersInNumber",
			mutate:  func(c *payment.Card) { c.Number = "4242 4242 4242 424x" },
			wantErr: payment.ErrInvalidCardNumber,
		},
		{
			name:    "MissingHolder",
			mutate:  func(c *payment.Card) { c.HolderName = "  " },
			wantErr: payment.ErrInvalidHolderName,
		},
		{
			name:    "BadExpiryMonth",
			mutate:  func(c *payment.Card) { c.Expiry = "13/27" },
			wantErr: payment.ErrInvalidExpiry,
		},
		{
			name:    "BadExpiryFormat",
			mutate:  func(c *payment.Card) { c.Expiry = "1227" },
			wantErr: payment.ErrInvalidExpiry,
		},
		{
			name:    "ShortCVV",
			mutate:  func(c *payment.Card) { c.CVV = "12" },
			wantErr: payment.ErrInvalidCVV,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := validCard()
			tt.mutate(&card)

			err := card.Validate()

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSimulated_Charge(t *testing.T) {
	amount := decimal.RequireFromString("19.73")

	t.Run("AlwaysApproves", func(t *testing.T) {
		p := payment.NewSimulated(0, 0)
		require.NoError(t, p.Charge(context.Background(), amount, validCard()))
	})

	t.Run("AlwaysDeclines", func(t *testing.T) {
		p := payment.NewSimulated(0, 1)
		require.ErrorIs(t, p.Charge(context.Background(), amount, validCard()), payment.ErrDeclined)
	})

	t.Run("InvalidCardRejectedBeforeCharge", func(t *testing.T) {
		p := payment.NewSimulated(0, 0)

		card := validCard()
		card.CVV = "x"

		require.ErrorIs(t, p.Charge(context.Background(), amount, card), payment.ErrInvalidCVV)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		p := payment.NewSimulated(time.Second, 0)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.ErrorIs(t, p.Charge(ctx, amount, validCard()), context.Canceled)
	})
}
