package medicine

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medibill/medibill/internal/medicine"
)

type medicineResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	ExpiryDate   string          `json:"expiry_date"`
	Category     string          `json:"category,omitempty"`
	Manufacturer string          `json:"manufacturer,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

func toResponse(m *medicine.Medicine) medicineResponse {
	return medicineResponse{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		Price:        m.Price,
		Stock:        m.Stock,
		ExpiryDate:   m.ExpiryDate.Format(time.DateOnly),
		Category:     m.Category,
		Manufacturer: m.Manufacturer,
		CreatedAt:    m.CreatedAt,
	}
}

func toResponseList(meds []*medicine.Medicine) []medicineResponse {
	resp := make([]medicineResponse, len(meds))
	for i, m := range meds {
		resp[i] = toResponse(m)
	}

	return resp
}
