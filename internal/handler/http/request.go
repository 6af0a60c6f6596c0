package http

import (
	"net/http"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/request"
	"github.com/cmlabs-hris/kintai-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type RequestHandler interface {
	CreateLeave(w http.ResponseWriter, r *http.Request)
	CreateAdjustment(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type requestHandlerImpl struct {
	requestService request.RequestService
}

func NewRequestHandler(requestService request.RequestService) RequestHandler {
	return &requestHandlerImpl{
		requestService: requestService,
	}
}

// CreateLeave implements RequestHandler.
func (h *requestHandlerImpl) CreateLeave(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	var req request.CreateLeaveRequest
	if !decode(w, r, &req) {
		return
	}

	result, err := h.requestService.RequestLeave(r.Context(), p, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

// CreateAdjustment implements RequestHandler.
func (h *requestHandlerImpl) CreateAdjustment(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	var req request.CreateAdjustmentRequest
	if !decode(w, r, &req) {
		return
	}

	result, err := h.requestService.RequestAdjustment(r.Context(), p, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Adjustment request submitted", result)
}

func listFilter(r *http.Request) request.ListFilter {
	q := r.URL.Query()
	return request.ListFilter{
		Kind:   q.Get("kind"),
		Status: q.Get("status"),
	}
}

// ListMy implements RequestHandler.
func (h *requestHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	result, err := h.requestService.ListMyRequests(r.Context(), p, listFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements RequestHandler.
func (h *requestHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	result, err := h.requestService.ListRequests(r.Context(), p, listFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Approve implements RequestHandler.
func (h *requestHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	var req request.ApproveRequest
	if !decode(w, r, &req) {
		return
	}

	result, err := h.requestService.Approve(r.Context(), p, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request approved", result)
}

// Reject implements RequestHandler.
func (h *requestHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	var req request.RejectRequest
	if !decode(w, r, &req) {
		return
	}

	result, err := h.requestService.Reject(r.Context(), p, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request rejected", result)
}
