package http

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/quanlycuahang/attendance-backend-go/internal/domain/accesstoken"
	"github.com/quanlycuahang/attendance-backend-go/internal/domain/attendance"
	"github.com/quanlycuahang/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	IssueToken(w http.ResponseWriter, r *http.Request)
	ValidateToken(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	tokenService      accesstoken.TokenService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, tokenService accesstoken.TokenService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		tokenService:      tokenService,
	}
}

// Submit implements AttendanceHandler.
func (h *attendanceHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req attendance.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		req.IPAddress = &host
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// IssueToken implements AttendanceHandler.
func (h *attendanceHandlerImpl) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req accesstoken.IssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.tokenService.Issue(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Token issued", result)
}

// ValidateToken implements AttendanceHandler.
func (h *attendanceHandlerImpl) ValidateToken(w http.ResponseWriter, r *http.Request) {
	var req accesstoken.ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.tokenService.Validate(r.Context(), req.Token)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.ListFilter{}

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

	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			filter.Page = pageNum
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			filter.Limit = limitNum
		}
	}

	results, total, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: total,
	})
}

// Upsert implements AttendanceHandler.
func (h *attendanceHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req attendance.ManualUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.Upsert(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result == nil {
		response.SuccessWithMessage(w, "Attendance record cleared", nil)
		return
	}

	response.SuccessWithMessage(w, "Attendance record saved", result)
}
