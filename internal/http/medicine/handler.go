package medicine

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medibill/medibill/internal/medicine"
)

type Handler struct {
	svc *medicine.Service
}

func NewHandler(svc *medicine.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createMedicineRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	ExpiryDate   string          `json:"expiry_date"`
	Category     string          `json:"category"`
	Manufacturer string          `json:"manufacturer"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createMedicineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var expiry time.Time
	if req.ExpiryDate != "" {
		t, err := time.Parse(time.DateOnly, req.ExpiryDate)
		if err != nil {
			http.Error(w, "invalid expiry_date", http.StatusBadRequest)
			return
		}

		expiry = t
	}

	m, err := h.svc.Create(r.Context(), medicine.CreateParams{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Stock:        req.Stock,
		ExpiryDate:   expiry,
		Category:     req.Category,
		Manufacturer: req.Manufacturer,
	})
	if err != nil {
		if errors.Is(err, medicine.ErrEmptyName) || errors.Is(err, medicine.ErrNegativePrice) || errors.Is(err, medicine.ErrNegativeStock) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(m)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	meds, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(meds)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	m, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, medicine.ErrNotFound) {
			http.Error(w, "medicine not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(m)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateMedicineRequest struct {
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	Stock        *int             `json:"stock,omitempty"`
	ExpiryDate   *string          `json:"expiry_date,omitempty"`
	Category     *string          `json:"category,omitempty"`
	Manufacturer *string          `json:"manufacturer,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateMedicineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, medicine.ErrNotFound) {
			http.Error(w, "medicine not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Name != nil {
		m.Name = *req.Name
	}

	if req.Description != nil {
		m.Description = *req.Description
	}

	if req.Price != nil {
		m.Price = *req.Price
	}

	if req.Stock != nil {
		m.Stock = *req.Stock
	}

	if req.ExpiryDate != nil {
		t, err := time.Parse(time.DateOnly, *req.ExpiryDate)
		if err != nil {
			http.Error(w, "invalid expiry_date", http.StatusBadRequest)
			return
		}

		m.ExpiryDate = t
	}

	if req.Category != nil {
		m.Category = *req.Category
	}

	if req.Manufacturer != nil {
		m.Manufacturer = *req.Manufacturer
	}

	if err := h.svc.Update(r.Context(), m); err != nil {
		if errors.Is(err, medicine.ErrEmptyName) || errors.Is(err, medicine.ErrNegativePrice) || errors.Is(err, medicine.ErrNegativeStock) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(m)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
