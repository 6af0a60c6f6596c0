package attendance

import "github.com/cmlabs-hris/kintai-backend-go/internal/pkg/apperror"

var (
	ErrAlreadyClockedIn       = apperror.New(apperror.KindStateConflict, "ALREADY_CLOCKED_IN", "you have already clocked in today")
	ErrAlreadyClockedOut      = apperror.New(apperror.KindStateConflict, "ALREADY_CLOCKED_OUT", "you have already clocked out")
	ErrNotClockedIn           = apperror.New(apperror.KindStateConflict, "NOT_CLOCKED_IN", "you have not clocked in yet")
	ErrFixedAttendance        = apperror.New(apperror.KindStateConflict, "FIXED_ATTENDANCE", "attendance for this month has been submitted and can no longer be changed")
	ErrOnPaidLeave            = apperror.New(apperror.KindStateConflict, "ON_PAID_LEAVE", "this date is registered as paid leave")
	ErrAlreadySubmitted       = apperror.New(apperror.KindStateConflict, "ALREADY_SUBMITTED", "attendance for this month has already been submitted")
	ErrIncompleteAttendance   = apperror.New(apperror.KindStateConflict, "INCOMPLETE_ATTENDANCE", "some business days have no completed attendance")
	ErrClockInNotToday        = apperror.New(apperror.KindValidation, "CLOCK_IN_NOT_TODAY", "clock in is only allowed for today")
	ErrClockOutBeforeClockIn  = apperror.New(apperror.KindValidation, "CLOCK_OUT_BEFORE_CLOCK_IN", "clock out must be after clock in")
	ErrNoCorrection           = apperror.New(apperror.KindValidation, "NO_CORRECTION", "at least one of clock in or clock out must be corrected")
	ErrClockOutWithoutClockIn = apperror.New(apperror.KindValidation, "CLOCK_OUT_WITHOUT_CLOCK_IN", "clock out cannot be set without a clock in")
	ErrFutureMonth            = apperror.New(apperror.KindValidation, "FUTURE_MONTH", "cannot submit a month that has not started")
	ErrRecordNotFound         = apperror.New(apperror.KindNotFound, "ATTENDANCE_NOT_FOUND", "attendance record not found")
)
