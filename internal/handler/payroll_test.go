package handler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweet-solutions/backend/internal/domain"
	"github.com/sweet-solutions/backend/internal/payroll"
)

type stubPayrollStore struct {
	employees []*domain.Employee
	shifts    []*domain.Shift
	entries   []*domain.PayrollEntry
	inserts   int

	existsErr error
	insertErr error
}

func (s *stubPayrollStore) PayrollExistsForPeriod(period string) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	for _, entry := range s.entries {
		if entry.Period == period {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubPayrollStore) GetAllEmployees(includeInactive bool) ([]*domain.Employee, error) {
	return s.employees, nil
}

func (s *stubPayrollStore) GetCompletedShiftsInRange(start, end domain.Date) ([]*domain.Shift, error) {
	return s.shifts, nil
}

func (s *stubPayrollStore) InsertPayrollEntries(entries []*domain.PayrollEntry) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.inserts++
	s.entries = append(s.entries, entries...)
	return nil
}

func mustPeriod(t *testing.T, s string) payroll.Period {
	t.Helper()
	period, err := payroll.ParsePeriod(s)
	require.NoError(t, err)
	return period
}

func TestGeneratePayrollSecondRunForSamePeriodRejected(t *testing.T) {
	store := &stubPayrollStore{
		employees: []*domain.Employee{
			{ID: 1, Name: "Sarah Johnson", Role: "Scooper", HourlyRate: 15, IsActive: true},
		},
		shifts: []*domain.Shift{
			{EmployeeID: 1, Date: domain.NewDate(2026, time.March, 5), StartTime: 9 * 60, EndTime: 17 * 60, Status: domain.ShiftStatusCompleted},
		},
	}
	period := mustPeriod(t, "2026-03")

	first, err := generatePayroll(store, period, 99, time.Now())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, store.inserts)

	second, err := generatePayroll(store, period, 99, time.Now())
	assert.ErrorIs(t, err, errPayrollExists)
	assert.Nil(t, second)

	// the rejected run persisted nothing
	assert.Equal(t, 1, store.inserts)
	assert.Len(t, store.entries, 1)
}

func TestGeneratePayrollDistinctPeriodsBothSucceed(t *testing.T) {
	store := &stubPayrollStore{
		employees: []*domain.Employee{
			{ID: 1, Name: "Mike Chen", Role: "Shift Lead", HourlyRate: 15, IsActive: true},
		},
	}

	_, err := generatePayroll(store, mustPeriod(t, "2026-03"), 99, time.Now())
	require.NoError(t, err)
	_, err = generatePayroll(store, mustPeriod(t, "2026-04"), 99, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 2, store.inserts)
	assert.Len(t, store.entries, 2)
}

func TestGeneratePayrollStoreErrorsPropagate(t *testing.T) {
	boom := errors.New("connection reset")

	store := &stubPayrollStore{existsErr: boom}
	_, err := generatePayroll(store, mustPeriod(t, "2026-03"), 99, time.Now())
	assert.ErrorIs(t, err, boom)

	store = &stubPayrollStore{
		employees: []*domain.Employee{
			{ID: 1, Name: "Emma Park", Role: "Cashier", HourlyRate: 14, IsActive: true},
		},
		insertErr: boom,
	}
	_, err = generatePayroll(store, mustPeriod(t, "2026-03"), 99, time.Now())
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, store.entries)
}
