package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/schedule"
	"github.com/quanlycuahang/attendance-backend-go/internal/handler/http/response"
)

type ScheduleHandler interface {
	Upsert(w http.ResponseWriter, r *http.Request)
	ListWeek(w http.ResponseWriter, r *http.Request)
	CopyWeek(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.WorkScheduleService
}

func NewScheduleHandler(scheduleService schedule.WorkScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

// Upsert implements ScheduleHandler.
func (h *scheduleHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req schedule.UpsertScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.scheduleService.Upsert(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule saved successfully", result)
}

// ListWeek implements ScheduleHandler.
func (h *scheduleHandlerImpl) ListWeek(w http.ResponseWriter, r *http.Request) {
	weekStart := r.URL.Query().Get("week_start")
	if weekStart == "" {
		response.BadRequest(w, "Query parameter 'week_start' is required", nil)
		return
	}

	results, err := h.scheduleService.ListWeek(r.Context(), weekStart)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// CopyWeek implements ScheduleHandler.
func (h *scheduleHandlerImpl) CopyWeek(w http.ResponseWriter, r *http.Request) {
	var req schedule.CopyWeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	copied, err := h.scheduleService.CopyWeek(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Week copied successfully", map[string]int{"copied": copied})
}

// Delete implements ScheduleHandler.
func (h *scheduleHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.scheduleService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule deleted successfully", nil)
}
