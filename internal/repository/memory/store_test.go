package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/timeutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_WithinTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	employees := NewEmployeeRepository(s)
	records := NewAttendanceRepository(s)

	e, err := employees.Create(ctx, employee.Employee{Code: "E001", Status: employee.StatusActive})
	require.NoError(t, err)

	date := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	boom := errors.New("boom")
	err = s.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := records.Create(ctx, attendance.Record{EmployeeID: e.ID, Date: date}); err != nil {
			return err
		}
		e.RemainingLeaveDays = 99
		if err := employees.Update(ctx, e); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	rec, err := records.GetByEmployeeAndDate(ctx, e.ID, date)
	require.NoError(t, err)
	assert.Nil(t, rec)

	got, err := employees.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.RemainingLeaveDays)
}

func TestAttendanceRepository_FixMonth(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	records := NewAttendanceRepository(s)

	for _, d := range []int{1, 2, 30} {
		_, err := records.Create(ctx, attendance.Record{EmployeeID: "e1", Date: time.Date(2026, 10, d, 0, 0, 0, 0, time.UTC)})
		require.NoError(t, err)
	}
	_, err := records.Create(ctx, attendance.Record{EmployeeID: "e1", Date: time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	n, err := records.FixMonth(ctx, "e1", timeutil.YearMonth{Year: 2026, Month: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	list, err := records.ListByEmployeeAndMonth(ctx, "e1", timeutil.YearMonth{Year: 2026, Month: 10})
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, rec := range list {
		assert.True(t, rec.Fixed)
		assert.ErrorIs(t, records.Update(ctx, rec), attendance.ErrFixedAttendance)
	}
}

func TestEmployeeRepository_DuplicateCode(t *testing.T) {
	ctx := context.Background()
	employees := NewEmployeeRepository(NewStore())

	_, err := employees.Create(ctx, employee.Employee{Code: "E001"})
	require.NoError(t, err)
	_, err = employees.Create(ctx, employee.Employee{Code: "E001"})
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)
}

func TestStore_RollbackKeepsWritesOutsideTransaction(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	employees := NewEmployeeRepository(s)
	records := NewAttendanceRepository(s)

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	date := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	go func() {
		done <- s.WithinTransaction(ctx, func(ctx context.Context) error {
			if _, err := records.Create(ctx, attendance.Record{EmployeeID: "e1", Date: date}); err != nil {
				return err
			}
			close(entered)
			<-release
			return errors.New("boom")
		})
	}()

	<-entered
	outside, err := employees.Create(ctx, employee.Employee{Code: "E777", Status: employee.StatusActive})
	require.NoError(t, err)
	close(release)
	require.Error(t, <-done)

	got, err := employees.GetByID(ctx, outside.ID)
	require.NoError(t, err)
	assert.Equal(t, "E777", got.Code)

	rec, err := records.GetByEmployeeAndDate(ctx, "e1", date)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestStore_RollbackRestoresUpdatedValues(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	records := NewAttendanceRepository(s)

	date := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	rec, err := records.Create(ctx, attendance.Record{EmployeeID: "e1", Date: date, Status: attendance.DayStatusAbsent})
	require.NoError(t, err)

	err = s.WithinTransaction(ctx, func(ctx context.Context) error {
		changed := rec
		changed.Status = attendance.DayStatusPaidLeave
		if err := records.Update(ctx, changed); err != nil {
			return err
		}
		if _, err := records.FixMonth(ctx, "e1", timeutil.YearMonth{Year: 2026, Month: 10}); err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)

	got, err := records.GetByEmployeeAndDate(ctx, "e1", date)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, attendance.DayStatusAbsent, got.Status)
	assert.False(t, got.Fixed)
}
