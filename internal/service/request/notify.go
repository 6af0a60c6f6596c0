package request

import (
	"context"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/request"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/sse"
)

// EventRequestDecided is published to the requester after an approval or rejection.
const EventRequestDecided = "request.decided"

// NotifyingRequestService publishes decisions to the requester's event stream.
type NotifyingRequestService struct {
	request.RequestService
	hub *sse.Hub
}

func NewNotifyingRequestService(inner request.RequestService, hub *sse.Hub) request.RequestService {
	return &NotifyingRequestService{RequestService: inner, hub: hub}
}

func (n *NotifyingRequestService) Approve(ctx context.Context, p auth.Principal, id string, req request.ApproveRequest) (request.RequestResponse, error) {
	resp, err := n.RequestService.Approve(ctx, p, id, req)
	if err != nil {
		return resp, err
	}
	n.hub.Publish(sse.Event{EmployeeID: resp.EmployeeID, Name: EventRequestDecided, Data: resp})
	return resp, nil
}

func (n *NotifyingRequestService) Reject(ctx context.Context, p auth.Principal, id string, req request.RejectRequest) (request.RequestResponse, error) {
	resp, err := n.RequestService.Reject(ctx, p, id, req)
	if err != nil {
		return resp, err
	}
	n.hub.Publish(sse.Event{EmployeeID: resp.EmployeeID, Name: EventRequestDecided, Data: resp})
	return resp, nil
}
