package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timeutil"
)

type attendanceRepository struct {
	s *Store
}

func NewAttendanceRepository(s *Store) attendance.AttendanceRepository {
	return &attendanceRepository{s: s}
}

func (r *attendanceRepository) findLocked(employeeID string, date time.Time) (attendance.Record, bool) {
	for _, rec := range r.s.data.records {
		if rec.EmployeeID == employeeID && timeutil.SameDate(rec.Date, date) {
			return rec, true
		}
	}
	return attendance.Record{}, false
}

func (r *attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.findLocked(rec.EmployeeID, rec.Date); exists {
		return attendance.Record{}, attendance.ErrAlreadyClockedIn
	}
	if rec.ID == "" {
		id, err := newID()
		if err != nil {
			return attendance.Record{}, err
		}
		rec.ID = id
	}
	put(ctx, r.s.data.records, rec.ID, rec)
	return rec, nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.findLocked(employeeID, date)
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *attendanceRepository) Update(ctx context.Context, rec attendance.Record) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.data.records[rec.ID]
	if !ok {
		return attendance.ErrRecordNotFound
	}
	if existing.Fixed {
		return attendance.ErrFixedAttendance
	}
	rec.Fixed = false
	put(ctx, r.s.data.records, rec.ID, rec)
	return nil
}

func (r *attendanceRepository) ListByEmployeeAndMonth(_ context.Context, employeeID string, ym timeutil.YearMonth) ([]attendance.Record, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []attendance.Record
	for _, rec := range r.s.data.records {
		if rec.EmployeeID == employeeID && ym.Contains(rec.Date) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *attendanceRepository) FixMonth(ctx context.Context, employeeID string, ym timeutil.YearMonth) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for id, rec := range r.s.data.records {
		if rec.EmployeeID == employeeID && ym.Contains(rec.Date) && !rec.Fixed {
			rec.Fixed = true
			put(ctx, r.s.data.records, id, rec)
			n++
		}
	}
	return n, nil
}

type submissionRepository struct {
	s *Store
}

func NewSubmissionRepository(s *Store) attendance.SubmissionRepository {
	return &submissionRepository{s: s}
}

func submissionKey(employeeID, ym string) string {
	return employeeID + "|" + ym
}

func (r *submissionRepository) Create(ctx context.Context, sub attendance.MonthlySubmission) (attendance.MonthlySubmission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	k := submissionKey(sub.EmployeeID, sub.YearMonth)
	if _, exists := r.s.data.submissions[k]; exists {
		return attendance.MonthlySubmission{}, attendance.ErrAlreadySubmitted
	}
	if sub.ID == "" {
		id, err := newID()
		if err != nil {
			return attendance.MonthlySubmission{}, err
		}
		sub.ID = id
	}
	put(ctx, r.s.data.submissions, k, sub)
	return sub, nil
}

func (r *submissionRepository) Exists(_ context.Context, employeeID string, ym timeutil.YearMonth) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.data.submissions[submissionKey(employeeID, ym.String())]
	return ok, nil
}
