package bill

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medibill/medibill/internal/bill"
)

type ItemResponse struct {
	MedicineID   uuid.UUID       `json:"medicine_id"`
	MedicineName string          `json:"medicine_name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

type Response struct {
	ID             uuid.UUID       `json:"id"`
	CustomerID     *uuid.UUID      `json:"customer_id,omitempty"`
	CustomerName   string          `json:"customer_name"`
	Date           time.Time       `json:"date"`
	Items          []ItemResponse  `json:"items"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Paid           bool            `json:"paid"`
	CreatedAt      time.Time       `json:"created_at"`
}

func ToResponse(b *bill.Bill) Response {
	items := make([]ItemResponse, len(b.Items))
	for i, item := range b.Items {
		items[i] = ItemResponse{
			MedicineID:   item.MedicineID,
			MedicineName: item.MedicineName,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			LineTotal:    item.LineTotal(),
		}
	}

	return Response{
		ID:             b.ID,
		CustomerID:     b.CustomerID,
		CustomerName:   b.CustomerName,
		Date:           b.Date,
		Items:          items,
		DiscountAmount: b.DiscountAmount,
		TotalAmount:    b.TotalAmount,
		Paid:           b.Paid,
		CreatedAt:      b.CreatedAt,
	}
}

func toResponseList(bills []*bill.Bill) []Response {
	resp := make([]Response, len(bills))
	for i, b := range bills {
		resp[i] = ToResponse(b)
	}

	return resp
}
