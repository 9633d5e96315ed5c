package bill

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medibill/medibill/internal/bill"
	"github.com/medibill/medibill/internal/payment"
	"github.com/medibill/medibill/internal/receipt"
)

type Handler struct {
	svc       *bill.Service
	processor payment.Processor
}

func NewHandler(svc *bill.Service, processor payment.Processor) *Handler {
	return &Handler{svc: svc, processor: processor}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/pay", h.pay)
	r.Get("/{id}/receipt", h.receipt)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	bills, err := h.svc.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(bills)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	b, ok := h.lookup(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(ToResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateBillRequest struct {
	CustomerName   *string          `json:"customer_name,omitempty"`
	DiscountAmount *decimal.Decimal `json:"discount_amount,omitempty"`
	Paid           *bool            `json:"paid,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if req.CustomerName != nil {
		b.CustomerName = *req.CustomerName
	}

	if req.DiscountAmount != nil {
		b.DiscountAmount = *req.DiscountAmount
	}

	if req.Paid != nil {
		b.Paid = *req.Paid
	}

	if err := h.svc.Update(r.Context(), b); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(ToResponse(b)); err != nil {
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
		if errors.Is(err, bill.ErrNotFound) {
			http.Error(w, "bill not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type payRequest struct {
	CardNumber string `json:"card_number"`
	HolderName string `json:"holder_name"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

func (h *Handler) pay(w http.ResponseWriter, r *http.Request) {
	var req payRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if b.Paid {
		http.Error(w, "bill already paid", http.StatusConflict)
		return
	}

	card := payment.Card{
		Number:     req.CardNumber,
		HolderName: req.HolderName,
		Expiry:     req.Expiry,
		CVV:        req.CVV,
	}

	if err := h.processor.Charge(r.Context(), b.TotalAmount, card); err != nil {
		if errors.Is(err, payment.ErrDeclined) {
			http.Error(w, err.Error(), http.StatusPaymentRequired)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	if err := h.svc.SetPaid(r.Context(), b.ID, true); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	b.Paid = true

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(ToResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) receipt(w http.ResponseWriter, r *http.Request) {
	b, ok := h.lookup(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := receipt.Render(w, b); err != nil {
		slog.Error("failed to render receipt", "error", err)
	}
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*bill.Bill, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, false
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, bill.ErrNotFound) {
			http.Error(w, "bill not found", http.StatusNotFound)
			return nil, false
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return nil, false
	}

	return b, true
}
