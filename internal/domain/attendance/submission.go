package attendance

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timeutil"
)

// Eligibility is the outcome of the monthly submission gate.
type Eligibility struct {
	Eligible     bool
	Err          error
	MissingDates []time.Time
}

func (e Eligibility) Reason() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// CheckSubmission decides whether records (all records of one employee in ym)
// may be submitted. Every business day from the first of the month up to and
// including today needs a complete record, no record of the month may still be
// open, and the month must not be locked yet.
func CheckSubmission(records []Record, ym timeutil.YearMonth, today time.Time, alreadySubmitted bool) Eligibility {
	if timeutil.YearMonthOf(today).Before(ym) {
		return Eligibility{Err: ErrFutureMonth}
	}
	if alreadySubmitted {
		return Eligibility{Err: ErrAlreadySubmitted}
	}

	byDate := make(map[string]Record, len(records))
	for _, r := range records {
		if r.Fixed {
			return Eligibility{Err: ErrAlreadySubmitted}
		}
		byDate[r.Date.Format(timeutil.DateLayout)] = r
	}

	var missing []time.Time
	counted := make(map[string]bool)
	for _, day := range timeutil.BusinessDays(ym, today) {
		key := day.Format(timeutil.DateLayout)
		r, ok := byDate[key]
		if !ok || !r.IsComplete() {
			missing = append(missing, day)
			counted[key] = true
		}
	}
	for key, r := range byDate {
		if r.State() == StateOpen && !counted[key] {
			missing = append(missing, r.Date)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i].Before(missing[j]) })
	if len(missing) > 0 {
		return Eligibility{Err: ErrIncompleteAttendance, MissingDates: missing}
	}
	return Eligibility{Eligible: true}
}
