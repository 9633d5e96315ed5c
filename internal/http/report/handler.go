package report

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/medibill/medibill/internal/bill"
	"github.com/medibill/medibill/internal/customer"
	"github.com/medibill/medibill/internal/medicine"
	"github.com/medibill/medibill/internal/report"
)

// Handler recomputes every view from the live services on each request.
// Nothing is cached; the datasets are small enough that a full scan per
// request is fine.
type Handler struct {
	medicines *medicine.Service
	customers *customer.Service
	bills     *bill.Service
}

func NewHandler(medicines *medicine.Service, customers *customer.Service, bills *bill.Service) *Handler {
	return &Handler{
		medicines: medicines,
		customers: customers,
		bills:     bills,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/low-stock", h.lowStock)
	r.Get("/expiring", h.expiring)
	r.Get("/top-customers", h.topCustomers)
	r.Get("/top-selling", h.topSelling)
	r.Get("/categories", h.categories)
	r.Get("/summary", h.summary)
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	meds, err := h.medicines.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, toMedicineViews(report.LowStock(meds)))
}

func (h *Handler) expiring(w http.ResponseWriter, r *http.Request) {
	meds, err := h.medicines.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, toMedicineViews(report.ExpiringSoon(meds, time.Now())))
}

func (h *Handler) topCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, toCustomerViews(report.TopCustomers(customers, limitParam(r))))
}

func (h *Handler) topSelling(w http.ResponseWriter, r *http.Request) {
	bills, err := h.bills.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, toSalesViews(report.TopSelling(bills, limitParam(r))))
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	meds, err := h.medicines.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, toCategoryViews(report.CategoryBreakdown(meds)))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	bills, err := h.bills.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, toSummaryView(report.Summarize(bills)))
}

// limitParam reads ?limit=, returning 0 (meaning "use the default") on
// absence or garbage.
func limitParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n < 0 {
		return 0
	}

	return n
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
