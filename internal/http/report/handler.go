package report

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mwarren-dev/finsight/internal/period"
	"github.com/mwarren-dev/finsight/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/dashboard", h.dashboard)
}

type totalsResponse struct {
	Income   int64 `json:"income"`
	Expenses int64 `json:"expenses"`
	Balance  int64 `json:"balance"`
	Count    int   `json:"count"`
}

type monthlyResponse struct {
	Month    string `json:"month"`
	Income   int64  `json:"income"`
	Expenses int64  `json:"expenses"`
	Balance  int64  `json:"balance"`
	Count    int    `json:"count"`
}

type categoryResponse struct {
	Category   string  `json:"category"`
	Amount     int64   `json:"amount"`
	Percentage float64 `json:"percentage"`
	Count      int     `json:"count"`
}

type summaryResponse struct {
	Period     string             `json:"period"`
	Totals     totalsResponse     `json:"totals"`
	Monthly    []monthlyResponse  `json:"monthly"`
	Categories []categoryResponse `json:"categories"`
}

// dashboard serves GET /reports/dashboard?window=30d or, for custom
// periods, ?window=custom&start_date=...&end_date=... (dates inclusive).
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	window, custom, err := periodFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := h.svc.Dashboard(r.Context(), window, custom)
	if err != nil {
		if isPeriodError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toSummaryResponse(summary)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func periodFromQuery(r *http.Request) (period.Window, *period.Range, error) {
	window, err := period.Parse(r.URL.Query().Get("window"))
	if err != nil {
		return "", nil, err
	}

	if window != period.WindowCustom {
		return window, nil, nil
	}

	var custom period.Range

	if s := r.URL.Query().Get("start_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return "", nil, err
		}

		custom.Start = t
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return "", nil, err
		}

		custom.End = t
	}

	return window, &custom, nil
}

func isPeriodError(err error) bool {
	return errors.Is(err, period.ErrUnknownWindow) ||
		errors.Is(err, period.ErrMissingBounds) ||
		errors.Is(err, period.ErrInvertedRange)
}

func toSummaryResponse(s *report.Summary) summaryResponse {
	resp := summaryResponse{
		Period: s.Period,
		Totals: totalsResponse{
			Income:   s.Totals.Income,
			Expenses: s.Totals.Expenses,
			Balance:  s.Totals.Balance,
			Count:    s.Totals.Count,
		},
		Monthly:    make([]monthlyResponse, 0, len(s.Monthly)),
		Categories: make([]categoryResponse, 0, len(s.Categories)),
	}

	for _, m := range s.Monthly {
		resp.Monthly = append(resp.Monthly, monthlyResponse{
			Month:    m.Month,
			Income:   m.Income,
			Expenses: m.Expenses,
			Balance:  m.Balance,
			Count:    m.Count,
		})
	}

	for _, c := range s.Categories {
		resp.Categories = append(resp.Categories, categoryResponse{
			Category:   c.Category,
			Amount:     c.Amount,
			Percentage: c.Percentage,
			Count:      c.Count,
		})
	}

	return resp
}
