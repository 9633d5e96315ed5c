package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/medibill/medibill/internal/importer"
	"github.com/medibill/medibill/internal/medicine"
)

type Handler struct {
	importSvc   *importer.Service
	medicineSvc *medicine.Service
}

func NewHandler(importSvc *importer.Service, medicineSvc *medicine.Service) *Handler {
	return &Handler{
		importSvc:   importSvc,
		medicineSvc: medicineSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importedMedicine struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type importSuccessResponse struct {
	Imported  int                `json:"imported"`
	Medicines []importedMedicine `json:"medicines"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Parse(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	imported := make([]importedMedicine, 0, len(params))

	for _, p := range params {
		m, err := h.medicineSvc.Create(r.Context(), p)
		if err != nil {
			http.Error(w, "importing "+p.Name+": "+err.Error(), http.StatusInternalServerError)
			return
		}

		imported = append(imported, importedMedicine{ID: m.ID, Name: m.Name})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	resp := importSuccessResponse{
		Imported:  len(imported),
		Medicines: imported,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
