package filings

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forzencookie/verifikat/internal/periods"
	"github.com/forzencookie/verifikat/internal/platform/httpx"
)

// Exporter schedules the XML export of a submitted filing.
type Exporter interface {
	Export(ctx context.Context, kind periods.Kind, periodID string) error
}

// ExporterFunc adapts a function to the Exporter interface.
type ExporterFunc func(ctx context.Context, kind periods.Kind, periodID string) error

func (f ExporterFunc) Export(ctx context.Context, kind periods.Kind, periodID string) error {
	return f(ctx, kind, periodID)
}

// Handler serves the statutory report read and submit APIs.
type Handler struct {
	service  *Service
	logger   *slog.Logger
	exporter Exporter
}

func NewHandler(logger *slog.Logger, service *Service, exporter Exporter) *Handler {
	return &Handler{service: service, logger: logger, exporter: exporter}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/reports/vat/{periodID}", h.GetVAT)
	r.Get("/reports/vat/{periodID}/xml", h.GetVATXML)
	r.Post("/reports/vat/{periodID}/submit", h.SubmitVAT)
	r.Get("/reports/agi", h.ListAGI)
	r.Get("/reports/agi/{periodID}/xml", h.GetAGIXML)
	r.Post("/reports/agi/{periodID}/submit", h.SubmitAGI)
}

func (h *Handler) GetVAT(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.GetVAT(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"period":        report.Period,
		"boxes":         report.Boxes(),
		"discrepancies": report.CrossCheck(),
	})
}

func (h *Handler) GetVATXML(w http.ResponseWriter, r *http.Request) {
	body, err := h.service.GetVATXML(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.XML(w, http.StatusOK, body)
}

func (h *Handler) SubmitVAT(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.SubmitVAT(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.scheduleExport(r.Context(), periods.KindVAT, report.Period.ID)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"period": report.Period,
		"boxes":  report.Boxes(),
	})
}

func (h *Handler) ListAGI(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.ListAGI(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, reports)
}

func (h *Handler) GetAGIXML(w http.ResponseWriter, r *http.Request) {
	body, err := h.service.GetAGIXML(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.XML(w, http.StatusOK, body)
}

func (h *Handler) SubmitAGI(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.SubmitAGI(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.scheduleExport(r.Context(), periods.KindAGI, report.Period.ID)
	httpx.JSON(w, http.StatusOK, report)
}

// scheduleExport queues the XML export of a freshly submitted filing. The
// submission already succeeded, so a queue hiccup is logged, not surfaced.
func (h *Handler) scheduleExport(ctx context.Context, kind periods.Kind, periodID string) {
	if h.exporter == nil {
		return
	}
	if err := h.exporter.Export(ctx, kind, periodID); err != nil {
		h.logger.Warn("schedule filing export", slog.String("period", periodID), slog.Any("error", err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, periods.ErrPeriodNotFound):
		httpx.Problem(w, http.StatusNotFound, "Unknown Period", err.Error())
	case errors.Is(err, ErrAlreadySubmitted):
		httpx.Problem(w, http.StatusConflict, "Already Submitted", err.Error())
	case errors.Is(err, ErrSnapshotMissing):
		h.logger.Error("filing snapshot missing", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Snapshot Missing", err.Error())
	default:
		h.logger.Error("filings request failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
