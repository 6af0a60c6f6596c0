package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timeutil"
)

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	clock             timeutil.Clock
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, clock timeutil.Clock) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		clock:             clock,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("mark_absent_days", interval, j.MarkAbsentDays)
}

// MarkAbsentDays records every business day up to yesterday that has no attendance as absent.
func (j *AttendanceJobs) MarkAbsentDays(ctx context.Context) error {
	yesterday := timeutil.Today(j.clock).AddDate(0, 0, -1)
	slog.Info("Cron: Starting mark absent days job", "up_to", yesterday.Format(timeutil.DateLayout))

	created, err := j.attendanceService.MarkAbsentDays(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("failed to mark absent days: %w", err)
	}

	slog.Info("Cron: Marked absent days", "count", created)
	return nil
}
