package balances

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/forzencookie/verifikat/internal/platform/httpx"
)

var errInvalidClass = errors.New("balances: class must be between 1 and 8")

// defaultMaxEntries caps the drill-down list served to the UI.
const defaultMaxEntries = 20

// Handler serves the account activity read API.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/accounts/activity", h.Activity)
}

func (h *Handler) Activity(w http.ResponseWriter, r *http.Request) {
	opts, err := parseOptions(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Query", err.Error())
		return
	}
	activity, err := h.service.AccountActivity(r.Context(), opts)
	if err != nil {
		h.logger.Error("account activity", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, ToRows(activity))
}

func parseOptions(r *http.Request) (Options, error) {
	q := r.URL.Query()
	opts := Options{
		View:       ViewActivity,
		Search:     q.Get("q"),
		MaxEntries: defaultMaxEntries,
	}
	if q.Get("view") == string(ViewAll) {
		opts.View = ViewAll
	}
	if class := q.Get("class"); class != "" {
		n, err := strconv.Atoi(class)
		if err != nil || n < 1 || n > 8 {
			return Options{}, errInvalidClass
		}
		opts.Class = n
	}
	if from := q.Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return Options{}, err
		}
		opts.Range.From = t
	}
	if to := q.Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return Options{}, err
		}
		opts.Range.To = t
	}
	return opts, nil
}
