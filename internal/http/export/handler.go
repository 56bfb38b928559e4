package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mwarren-dev/finsight/internal/export"
	"github.com/mwarren-dev/finsight/internal/period"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.download)
}

type exportRequest struct {
	Format             string     `json:"format"`
	Window             string     `json:"window"`
	StartDate          *time.Time `json:"start_date,omitempty"`
	EndDate            *time.Time `json:"end_date,omitempty"`
	IncludeSubcategory bool       `json:"include_subcategory"`
	IncludePaymentInfo bool       `json:"include_payment_info"`
	RawAmounts         bool       `json:"raw_amounts"`
}

// download renders the export synchronously and streams it back as an
// attachment.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	format, err := export.ParseFormat(req.Format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	window, err := period.Parse(req.Window)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	opts := export.Options{
		Format:             format,
		Window:             window,
		IncludeSubcategory: req.IncludeSubcategory,
		IncludePaymentInfo: req.IncludePaymentInfo,
		RawAmounts:         req.RawAmounts,
	}

	if window == period.WindowCustom {
		custom := period.Range{}
		if req.StartDate != nil {
			custom.Start = *req.StartDate
		}

		if req.EndDate != nil {
			custom.End = *req.EndDate
		}

		opts.Custom = &custom
	}

	artifact, err := h.svc.Export(r.Context(), opts)
	if err != nil {
		if isPeriodError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", artifact.Filename))

	if _, err := w.Write(artifact.Data); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

func isPeriodError(err error) bool {
	return errors.Is(err, period.ErrUnknownWindow) ||
		errors.Is(err, period.ErrMissingBounds) ||
		errors.Is(err, period.ErrInvertedRange)
}
