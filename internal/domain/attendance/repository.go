package attendance

import (
	"context"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timeutil"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, rec Record) (Record, error)

	// GetByEmployeeAndDate returns nil, nil when the date has no record.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	Update(ctx context.Context, rec Record) error

	// ListByEmployeeAndMonth returns the records of ym ordered by date.
	ListByEmployeeAndMonth(ctx context.Context, employeeID string, ym timeutil.YearMonth) ([]Record, error)

	// FixMonth sets the fixed flag on every record of ym and returns how many were locked.
	FixMonth(ctx context.Context, employeeID string, ym timeutil.YearMonth) (int64, error)
}

type SubmissionRepository interface {
	// Create returns ErrAlreadySubmitted when the employee-month already exists.
	Create(ctx context.Context, sub MonthlySubmission) (MonthlySubmission, error)
	Exists(ctx context.Context, employeeID string, ym timeutil.YearMonth) (bool, error)
}
