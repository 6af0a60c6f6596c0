package http

import (
	"net/http"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/kintai-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	SubmissionStatus(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.ClockIn(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock in successful", result)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.ClockOut(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clock out successful", result)
}

// monthQuery validates ?month=YYYY-MM.
func monthQuery(w http.ResponseWriter, r *http.Request) (attendance.MonthRequest, bool) {
	req := attendance.MonthRequest{Month: r.URL.Query().Get("month")}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return req, false
	}
	return req, true
}

// History implements AttendanceHandler.
func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	month, ok := monthQuery(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.GetHistory(r.Context(), p, r.URL.Query().Get("employee_id"), month.YearMonth())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SubmissionStatus implements AttendanceHandler.
func (h *attendanceHandlerImpl) SubmissionStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	month, ok := monthQuery(w, r)
	if !ok {
		return
	}

	result, err := h.attendanceService.CanSubmitMonth(r.Context(), p, month.YearMonth())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Submit implements AttendanceHandler.
func (h *attendanceHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	var req attendance.MonthRequest
	if !decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.SubmitMonth(r.Context(), p, req.YearMonth())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Monthly attendance submitted", result)
}
