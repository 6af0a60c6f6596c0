package request

import (
	"context"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/auth"
)

type RequestService interface {
	RequestLeave(ctx context.Context, p auth.Principal, req CreateLeaveRequest) (RequestResponse, error)
	RequestAdjustment(ctx context.Context, p auth.Principal, req CreateAdjustmentRequest) (RequestResponse, error)

	// Approve and Reject accept the id of either request kind.
	Approve(ctx context.Context, p auth.Principal, id string, req ApproveRequest) (RequestResponse, error)
	Reject(ctx context.Context, p auth.Principal, id string, req RejectRequest) (RequestResponse, error)

	ListMyRequests(ctx context.Context, p auth.Principal, filter ListFilter) ([]RequestResponse, error)
	ListRequests(ctx context.Context, p auth.Principal, filter ListFilter) ([]RequestResponse, error)
}
