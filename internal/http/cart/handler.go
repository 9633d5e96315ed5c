package cart

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/medibill/medibill/internal/cart"
	billhttp "github.com/medibill/medibill/internal/http/bill"
	"github.com/medibill/medibill/internal/medicine"
)

type Handler struct {
	svc *cart.Service
}

func NewHandler(svc *cart.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.session)
	r.Delete("/", h.clear)
	r.Put("/customer", h.setCustomer)
	r.Put("/discount", h.setDiscount)
	r.Post("/items", h.addItem)
	r.Patch("/items/{id}", h.setItemQuantity)
	r.Delete("/items/{id}", h.removeItem)
	r.Post("/checkout", h.checkout)
}

type itemView struct {
	MedicineID   uuid.UUID       `json:"medicine_id"`
	MedicineName string          `json:"medicine_name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

type sessionView struct {
	CustomerName   string          `json:"customer_name"`
	CustomerID     *uuid.UUID      `json:"customer_id,omitempty"`
	Items          []itemView      `json:"items"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Total          decimal.Decimal `json:"total"`
}

func toSessionView(s cart.Session) sessionView {
	items := make([]itemView, len(s.Items))
	for i, item := range s.Items {
		items[i] = itemView{
			MedicineID:   item.MedicineID,
			MedicineName: item.MedicineName,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			LineTotal:    item.LineTotal(),
		}
	}

	return sessionView{
		CustomerName:   s.CustomerName,
		CustomerID:     s.CustomerID,
		Items:          items,
		DiscountAmount: s.DiscountAmount,
		Subtotal:       s.Subtotal(),
		Total:          s.Total(),
	}
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	h.writeSession(w)
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	h.svc.Clear()
	w.WriteHeader(http.StatusNoContent)
}

type setCustomerRequest struct {
	Name       string     `json:"name"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
}

func (h *Handler) setCustomer(w http.ResponseWriter, r *http.Request) {
	var req setCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.svc.SetCustomerName(req.Name)
	h.svc.SetCustomerID(req.CustomerID)

	h.writeSession(w)
}

type setDiscountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) setDiscount(w http.ResponseWriter, r *http.Request) {
	var req setDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.svc.SetDiscountAmount(req.Amount)

	h.writeSession(w)
}

type addItemRequest struct {
	MedicineID uuid.UUID `json:"medicine_id"`
	Quantity   int       `json:"quantity"`
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.AddItem(r.Context(), req.MedicineID, req.Quantity); err != nil {
		writeCartError(w, err)
		return
	}

	h.writeSession(w)
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) setItemQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.SetItemQuantity(r.Context(), id, req.Quantity); err != nil {
		writeCartError(w, err)
		return
	}

	h.writeSession(w)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	h.svc.RemoveItem(id)

	h.writeSession(w)
}

type checkoutRequest struct {
	Paid bool `json:"paid"`
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.svc.Commit(r.Context(), req.Paid)
	if err != nil {
		writeCartError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(billhttp.ToResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeSession(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toSessionView(h.svc.Session())); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, medicine.ErrNotFound):
		http.Error(w, "medicine not found", http.StatusNotFound)
	case errors.Is(err, cart.ErrNotInCart):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, cart.ErrInsufficientStock):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, cart.ErrEmptyCustomerName), errors.Is(err, cart.ErrEmptyCart):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
