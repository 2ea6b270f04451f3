package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/payroll"
	"github.com/quanlycuahang/attendance-backend-go/internal/handler/http/response"
	"github.com/quanlycuahang/attendance-backend-go/internal/pkg/validator"
)

type PayrollHandler interface {
	StaffSummary(w http.ResponseWriter, r *http.Request)
	EmployeeSummary(w http.ResponseWriter, r *http.Request)
	GeneratePenalties(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService   payroll.PayrollService
	penaltyGenerator payroll.PenaltyGenerator
}

func NewPayrollHandler(payrollService payroll.PayrollService, penaltyGenerator payroll.PenaltyGenerator) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService:   payrollService,
		penaltyGenerator: penaltyGenerator,
	}
}

// StaffSummary implements PayrollHandler.
func (h *payrollHandlerImpl) StaffSummary(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if _, ok := validator.IsValidMonth(month); !ok {
		response.HandleError(w, payroll.ErrInvalidMonth)
		return
	}

	results, err := h.payrollService.StaffSummary(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// EmployeeSummary implements PayrollHandler.
func (h *payrollHandlerImpl) EmployeeSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	month := r.URL.Query().Get("month")
	if _, ok := validator.IsValidMonth(month); !ok {
		response.HandleError(w, payroll.ErrInvalidMonth)
		return
	}

	result, err := h.payrollService.EmployeeSummary(r.Context(), id, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GeneratePenalties implements PayrollHandler.
func (h *payrollHandlerImpl) GeneratePenalties(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	start, okStart := validator.IsValidDate(req.StartDate)
	end, okEnd := validator.IsValidDate(req.EndDate)
	if !okStart || !okEnd {
		response.BadRequest(w, "start_date and end_date must be YYYY-MM-DD", nil)
		return
	}
	if end.Before(start) {
		response.BadRequest(w, "end_date must not be before start_date", nil)
		return
	}
	if end.Sub(start) > 62*24*time.Hour {
		response.BadRequest(w, "Date range must not exceed two months", nil)
		return
	}

	result, err := h.penaltyGenerator.Generate(r.Context(), start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
