package attendance

import (
	"context"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timeutil"
)

// AttendanceService defines business logic for attendance operations.
type AttendanceService interface {
	// ClockIn records the first punch of today for the caller.
	ClockIn(ctx context.Context, p auth.Principal) (RecordResponse, error)

	// ClockOut closes the caller's open record.
	ClockOut(ctx context.Context, p auth.Principal) (RecordResponse, error)

	// GetHistory lists one month of records with a summary.
	GetHistory(ctx context.Context, p auth.Principal, employeeID string, ym timeutil.YearMonth) (HistoryResponse, error)

	CanSubmitMonth(ctx context.Context, p auth.Principal, ym timeutil.YearMonth) (EligibilityResponse, error)

	// SubmitMonth locks every record of the month in one transaction.
	SubmitMonth(ctx context.Context, p auth.Principal, ym timeutil.YearMonth) (SubmissionResponse, error)

	// MarkAbsentDays creates absent records for past business days nobody recorded.
	MarkAbsentDays(ctx context.Context, upTo time.Time) (int, error)
}
