package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/ledger"
	"github.com/quanlycuahang/attendance-backend-go/internal/handler/http/response"
)

type LedgerHandler interface {
	CreateEntry(w http.ResponseWriter, r *http.Request)
	ListEntries(w http.ResponseWriter, r *http.Request)
	UpdateEntry(w http.ResponseWriter, r *http.Request)
	DeleteEntry(w http.ResponseWriter, r *http.Request)
	CreateDebt(w http.ResponseWriter, r *http.Request)
	ListDebts(w http.ResponseWriter, r *http.Request)
	MarkDebtPaid(w http.ResponseWriter, r *http.Request)
	DeleteDebt(w http.ResponseWriter, r *http.Request)
}

type ledgerHandlerImpl struct {
	ledgerService ledger.LedgerService
}

func NewLedgerHandler(ledgerService ledger.LedgerService) LedgerHandler {
	return &ledgerHandlerImpl{
		ledgerService: ledgerService,
	}
}

// CreateEntry implements LedgerHandler.
func (h *ledgerHandlerImpl) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req ledger.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.ledgerService.CreateEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Entry created successfully", result)
}

// ListEntries implements LedgerHandler.
func (h *ledgerHandlerImpl) ListEntries(w http.ResponseWriter, r *http.Request) {
	filter := ledger.EntryFilter{}

	if kind := r.URL.Query().Get("kind"); kind != "" {
		k := ledger.Kind(kind)
		if !k.Valid() {
			response.HandleError(w, ledger.ErrInvalidKind)
			return
		}
		filter.Kind = &k
	}

	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}

	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		parsed, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			response.BadRequest(w, "Invalid start_date, expected YYYY-MM-DD", nil)
			return
		}
		filter.StartDate = parsed
	}

	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		parsed, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			response.BadRequest(w, "Invalid end_date, expected YYYY-MM-DD", nil)
			return
		}
		filter.EndDate = parsed
	}

	results, err := h.ledgerService.ListEntries(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// UpdateEntry implements LedgerHandler.
func (h *ledgerHandlerImpl) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ledger.UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.ledgerService.UpdateEntry(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Entry updated successfully", result)
}

// DeleteEntry implements LedgerHandler.
func (h *ledgerHandlerImpl) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.ledgerService.DeleteEntry(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Entry deleted successfully", nil)
}

// CreateDebt implements LedgerHandler.
func (h *ledgerHandlerImpl) CreateDebt(w http.ResponseWriter, r *http.Request) {
	var req ledger.CreateDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.ledgerService.CreateDebt(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Debt created successfully", result)
}

// ListDebts implements LedgerHandler.
func (h *ledgerHandlerImpl) ListDebts(w http.ResponseWriter, r *http.Request) {
	var employeeID *string
	if id := r.URL.Query().Get("employee_id"); id != "" {
		employeeID = &id
	}
	unpaidOnly := r.URL.Query().Get("unpaid_only") == "true"

	results, err := h.ledgerService.ListDebts(r.Context(), employeeID, unpaidOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// MarkDebtPaid implements LedgerHandler.
func (h *ledgerHandlerImpl) MarkDebtPaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		PaidDate *string `json:"paid_date,omitempty"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	paidDate := time.Now()
	if body.PaidDate != nil {
		parsed, err := time.Parse("2006-01-02", *body.PaidDate)
		if err != nil {
			response.BadRequest(w, "Invalid paid_date, expected YYYY-MM-DD", nil)
			return
		}
		paidDate = parsed
	}

	result, err := h.ledgerService.MarkDebtPaid(r.Context(), id, paidDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Debt marked as paid", result)
}

// DeleteDebt implements LedgerHandler.
func (h *ledgerHandlerImpl) DeleteDebt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.ledgerService.DeleteDebt(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Debt deleted successfully", nil)
}
