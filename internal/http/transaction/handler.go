package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mwarren-dev/finsight/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createTransactionRequest struct {
	Kind          transaction.Kind `json:"kind"`
	Amount        int64            `json:"amount"`
	Description   string           `json:"description"`
	Category      string           `json:"category"`
	Subcategory   string           `json:"subcategory"`
	PaymentMethod string           `json:"payment_method"`
	Reference     string           `json:"reference"`
	Date          time.Time        `json:"date"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Create(r.Context(), transaction.CreateParams{
		Kind:          req.Kind,
		Amount:        req.Amount,
		Description:   req.Description,
		Category:      req.Category,
		Subcategory:   req.Subcategory,
		PaymentMethod: req.PaymentMethod,
		Reference:     req.Reference,
		Date:          req.Date,
	})
	if err != nil {
		if errors.Is(err, transaction.ErrInvalidAmount) || errors.Is(err, transaction.ErrInvalidKind) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := transaction.ListFilter{}

	if s := r.URL.Query().Get("kind"); s != "" {
		kind, err := transaction.ParseKind(s)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		filter.Kind = new(kind)
	}

	if s := r.URL.Query().Get("category"); s != "" {
		filter.Category = new(s)
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = new(t)
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = new(t)
		}
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateTransactionRequest struct {
	Kind          *transaction.Kind `json:"kind,omitempty"`
	Amount        *int64            `json:"amount,omitempty"`
	Description   *string           `json:"description,omitempty"`
	Category      *string           `json:"category,omitempty"`
	Subcategory   *string           `json:"subcategory,omitempty"`
	PaymentMethod *string           `json:"payment_method,omitempty"`
	Reference     *string           `json:"reference,omitempty"`
	Date          *time.Time        `json:"date,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Kind != nil {
		tx.Kind = *req.Kind
	}

	if req.Amount != nil {
		tx.Amount = *req.Amount
	}

	if req.Description != nil {
		tx.Description = *req.Description
	}

	if req.Category != nil {
		tx.Category = *req.Category
	}

	if req.Subcategory != nil {
		tx.Subcategory = *req.Subcategory
	}

	if req.PaymentMethod != nil {
		tx.PaymentMethod = *req.PaymentMethod
	}

	if req.Reference != nil {
		tx.Reference = *req.Reference
	}

	if req.Date != nil {
		tx.Date = *req.Date
	}

	if err := h.svc.Update(r.Context(), tx); err != nil {
		if errors.Is(err, transaction.ErrInvalidAmount) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
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
