package importcsv

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mwarren-dev/finsight/internal/importer"
	"github.com/mwarren-dev/finsight/internal/transaction"
)

const maxUploadBytes = 10 << 20

type Handler struct {
	svc *importer.Service
}

func NewHandler(svc *importer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type transactionResponse struct {
	ID          uuid.UUID        `json:"id"`
	Kind        transaction.Kind `json:"kind"`
	Amount      int64            `json:"amount"`
	Description string           `json:"description"`
	Category    string           `json:"category,omitempty"`
	Date        time.Time        `json:"date"`
	CreatedAt   time.Time        `json:"created_at"`
}

type importSuccessResponse struct {
	Imported     int                   `json:"imported"`
	Transactions []transactionResponse `json:"transactions"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	txs, err := h.svc.Import(r.Context(), file)
	if err != nil {
		if errors.Is(err, importer.ErrEmptyFile) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	resp := importSuccessResponse{
		Imported:     len(txs),
		Transactions: make([]transactionResponse, 0, len(txs)),
	}

	for _, tx := range txs {
		resp.Transactions = append(resp.Transactions, transactionResponse{
			ID:          tx.ID,
			Kind:        tx.Kind,
			Amount:      tx.Amount,
			Description: tx.Description,
			Category:    tx.Category,
			Date:        tx.Date,
			CreatedAt:   tx.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
