package payroll

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/forzencookie/verifikat/internal/ledger"
	"github.com/forzencookie/verifikat/internal/platform/httpx"
)

// Handler exposes payslip preview and confirmation.
type Handler struct {
	service  *Service
	logger   *slog.Logger
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{service: service, logger: logger, validate: validator.New()}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/payroll/payslip", h.Preview)
	r.Post("/payroll/confirm", h.Confirm)
}

type adjustmentRequest struct {
	Kind        string  `json:"kind" validate:"required,oneof=sick overtime deduction addition"`
	Days        int     `json:"days" validate:"gte=0"`
	Hours       float64 `json:"hours" validate:"gte=0"`
	Amount      float64 `json:"amount" validate:"gte=0"`
	Description string  `json:"description"`
}

type payslipRequest struct {
	Name            string              `json:"name" validate:"required"`
	PersonalNumber  string              `json:"personalNumber" validate:"required,min=10"`
	MonthlySalary   float64             `json:"monthlySalary" validate:"required,gt=0"`
	TaxRate         float64             `json:"taxRate" validate:"gte=0,lte=1"`
	UnionFee        float64             `json:"unionFee" validate:"gte=0"`
	UnemploymentFee float64             `json:"unemploymentFee" validate:"gte=0"`
	PensionRate     float64             `json:"pensionRate" validate:"gte=0,lte=1"`
	Period          string              `json:"period" validate:"required,datetime=2006-01"`
	RunID           string              `json:"runId" validate:"omitempty,uuid4"`
	Adjustments     []adjustmentRequest `json:"adjustments" validate:"dive"`
}

func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	employee, adjustments, period, _, ok := h.decode(w, r)
	if !ok {
		return
	}
	httpx.JSON(w, http.StatusOK, h.service.Preview(employee, adjustments, period))
}

func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	employee, adjustments, period, runID, ok := h.decode(w, r)
	if !ok {
		return
	}
	payslip, verification, err := h.service.Confirm(r.Context(), employee, adjustments, period, runID)
	if err != nil {
		if errors.Is(err, ledger.ErrSourceAlreadyBooked) {
			httpx.Problem(w, http.StatusConflict, "Already Booked", err.Error())
			return
		}
		h.logger.Error("payroll confirm", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"payslip":      payslip,
		"verification": verification,
	})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (Employee, []Adjustment, time.Time, uuid.UUID, bool) {
	var req payslipRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body is not valid JSON")
		return Employee{}, nil, time.Time{}, uuid.Nil, false
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return Employee{}, nil, time.Time{}, uuid.Nil, false
	}
	period, _ := time.Parse("2006-01", req.Period)
	runID := uuid.New()
	if req.RunID != "" {
		runID, _ = uuid.Parse(req.RunID)
	}
	employee := Employee{
		Name:            req.Name,
		PersonalNumber:  req.PersonalNumber,
		MonthlySalary:   req.MonthlySalary,
		TaxRate:         req.TaxRate,
		UnionFee:        req.UnionFee,
		UnemploymentFee: req.UnemploymentFee,
		PensionRate:     req.PensionRate,
	}
	adjustments := make([]Adjustment, 0, len(req.Adjustments))
	for _, adj := range req.Adjustments {
		adjustments = append(adjustments, Adjustment{
			Kind:        AdjustmentKind(adj.Kind),
			Days:        adj.Days,
			Hours:       adj.Hours,
			Amount:      adj.Amount,
			Description: adj.Description,
		})
	}
	return employee, adjustments, period, runID, true
}
