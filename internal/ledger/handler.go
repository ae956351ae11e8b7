package ledger

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/forzencookie/verifikat/internal/platform/httpx"
)

// Handler exposes the verification journal over HTTP.
type Handler struct {
	service  *Service
	logger   *slog.Logger
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{service: service, logger: logger, validate: validator.New()}
}

// Routes mounts the journal endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/verifications", h.List)
	r.Post("/verifications", h.Append)
	r.Post("/verifications/{id}/reverse", h.Reverse)
}

type appendRowRequest struct {
	Account     string  `json:"account" validate:"required,len=4,numeric"`
	Debit       float64 `json:"debit" validate:"gte=0"`
	Credit      float64 `json:"credit" validate:"gte=0"`
	Description string  `json:"description"`
}

type appendRequest struct {
	Date         string             `json:"date" validate:"required,datetime=2006-01-02"`
	Description  string             `json:"description" validate:"required"`
	SourceModule string             `json:"sourceModule" validate:"required"`
	SourceID     string             `json:"sourceId" validate:"required,uuid4"`
	Rows         []appendRowRequest `json:"rows" validate:"required,min=2,dive"`
}

func (h *Handler) Append(w http.ResponseWriter, r *http.Request) {
	var req appendRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body is not valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	date, _ := time.Parse("2006-01-02", req.Date)
	sourceID, _ := uuid.Parse(req.SourceID)

	input := AppendInput{
		Date:         date,
		Description:  req.Description,
		SourceModule: req.SourceModule,
		SourceID:     sourceID,
	}
	for _, row := range req.Rows {
		input.Rows = append(input.Rows, RowInput(row))
	}

	verification, err := h.service.Append(r.Context(), input)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, verification)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRange(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Range", err.Error())
		return
	}
	verifications, err := h.service.List(r.Context(), rng)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, verifications)
}

func (h *Handler) Reverse(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "verification id must be a uuid")
		return
	}
	var req struct {
		Memo string `json:"memo"`
	}
	_ = httpx.DecodeJSON(r, &req)

	verification, err := h.service.Reverse(r.Context(), id, req.Memo)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, verification)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var imbalance *ImbalanceError
	switch {
	case errors.As(err, &imbalance):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Unbalanced Verification", imbalance.Error())
	case errors.Is(err, ErrTooFewRows):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Too Few Rows", err.Error())
	case errors.Is(err, ErrVerificationNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrSourceAlreadyBooked):
		httpx.Problem(w, http.StatusConflict, "Already Booked", err.Error())
	default:
		h.logger.Error("ledger request failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

func parseRange(r *http.Request) (DateRange, error) {
	var rng DateRange
	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return DateRange{}, err
		}
		rng.From = t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return DateRange{}, err
		}
		rng.To = t
	}
	return rng, nil
}
