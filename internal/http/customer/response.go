package customer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medibill/medibill/internal/customer"
)

type customerResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone,omitempty"`
	Email      string          `json:"email,omitempty"`
	VisitCount int             `json:"visit_count"`
	TotalSpent decimal.Decimal `json:"total_spent"`
	LastVisit  *time.Time      `json:"last_visit,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

func toResponse(c *customer.Customer) customerResponse {
	return customerResponse{
		ID:         c.ID,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		VisitCount: c.VisitCount,
		TotalSpent: c.TotalSpent,
		LastVisit:  c.LastVisit,
		CreatedAt:  c.CreatedAt,
	}
}

func toResponseList(customers []*customer.Customer) []customerResponse {
	resp := make([]customerResponse, len(customers))
	for i, c := range customers {
		resp[i] = toResponse(c)
	}

	return resp
}
