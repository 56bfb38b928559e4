package budget

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mwarren-dev/finsight/internal/budget"
)

type Handler struct {
	svc *budget.Service
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Get("/{id}/status", h.status)
	r.Post("/{id}/renew", h.renew)
	r.Patch("/{id}/active", h.setActive)
	r.Delete("/{id}", h.delete)
}

type budgetResponse struct {
	ID        uuid.UUID     `json:"id"`
	Category  string        `json:"category"`
	Amount    int64         `json:"amount"`
	Period    budget.Period `json:"period"`
	StartDate time.Time     `json:"start_date"`
	EndDate   time.Time     `json:"end_date"`
	IsActive  bool          `json:"is_active"`
	CreatedAt time.Time     `json:"created_at"`
}

type statusResponse struct {
	Budget        budgetResponse `json:"budget"`
	Spent         int64          `json:"spent"`
	Percentage    float64        `json:"percentage"`
	Remaining     int64          `json:"remaining"`
	Status        budget.Status  `json:"status"`
	DaysRemaining int            `json:"days_remaining"`
}

func toResponse(b *budget.Budget) budgetResponse {
	return budgetResponse{
		ID:        b.ID,
		Category:  b.Category,
		Amount:    b.Amount,
		Period:    b.Period,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
	}
}

type createBudgetRequest struct {
	Category  string        `json:"category"`
	Amount    int64         `json:"amount"`
	Period    budget.Period `json:"period"`
	StartDate *time.Time    `json:"start_date,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := budget.CreateParams{
		Category: req.Category,
		Amount:   req.Amount,
		Period:   req.Period,
	}
	if req.StartDate != nil {
		params.StartDate = *req.StartDate
	}

	b, err := h.svc.Create(r.Context(), params)
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	budgets, err := h.svc.List(r.Context(), activeOnly)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]budgetResponse, 0, len(budgets))
	for _, b := range budgets {
		resp = append(resp, toResponse(b))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeGetError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(b)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	b, ev, err := h.svc.Status(r.Context(), id)
	if err != nil {
		writeGetError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(statusResponse{
		Budget:        toResponse(b),
		Spent:         ev.Spent,
		Percentage:    ev.Percentage,
		Remaining:     ev.Remaining,
		Status:        ev.Status,
		DaysRemaining: ev.DaysRemaining,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) renew(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	next, err := h.svc.Renew(r.Context(), id)
	if err != nil {
		writeGetError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(next)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.SetActive(r.Context(), id, req.Active); err != nil {
		writeGetError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
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

func isValidationError(err error) bool {
	return errors.Is(err, budget.ErrEmptyCategory) ||
		errors.Is(err, budget.ErrInvalidAmount) ||
		errors.Is(err, budget.ErrInvalidPeriod)
}

func writeGetError(w http.ResponseWriter, err error) {
	if errors.Is(err, budget.ErrNotFound) {
		http.Error(w, "budget not found", http.StatusNotFound)
		return
	}

	http.Error(w, "internal error", http.StatusInternalServerError)
}
