package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweet-solutions/backend/internal/domain"
)

func mustTime(t *testing.T, s string) domain.TimeOfDay {
	t.Helper()
	parsed, err := domain.ParseTimeOfDay(s)
	require.NoError(t, err)
	return parsed
}

func testShift(t *testing.T, id int64, start, end string, status domain.ShiftStatus) *domain.Shift {
	t.Helper()
	return &domain.Shift{
		ID:        id,
		Date:      domain.NewDate(2026, time.March, 5),
		StartTime: mustTime(t, start),
		EndTime:   mustTime(t, end),
		Status:    status,
	}
}

func TestValidateShiftTimes(t *testing.T) {
	assert.NoError(t, ValidateShiftTimes(testShift(t, 0, "09:00", "17:00", domain.ShiftStatusScheduled)))
	assert.Error(t, ValidateShiftTimes(testShift(t, 0, "17:00", "09:00", domain.ShiftStatusScheduled)))
	// zero-length and cross-midnight shifts are both rejected
	assert.Error(t, ValidateShiftTimes(testShift(t, 0, "09:00", "09:00", domain.ShiftStatusScheduled)))
	assert.Error(t, ValidateShiftTimes(testShift(t, 0, "22:00", "02:00", domain.ShiftStatusScheduled)))
}

func TestValidateNoShiftOverlap(t *testing.T) {
	existing := []*domain.Shift{
		testShift(t, 1, "09:00", "17:00", domain.ShiftStatusScheduled),
	}

	// back-to-back is fine: intervals are half-open
	assert.NoError(t, ValidateNoShiftOverlap(testShift(t, 0, "17:00", "21:00", domain.ShiftStatusScheduled), existing, 0))
	assert.NoError(t, ValidateNoShiftOverlap(testShift(t, 0, "06:00", "09:00", domain.ShiftStatusScheduled), existing, 0))

	assert.Error(t, ValidateNoShiftOverlap(testShift(t, 0, "16:59", "18:00", domain.ShiftStatusScheduled), existing, 0))
	assert.Error(t, ValidateNoShiftOverlap(testShift(t, 0, "08:00", "09:01", domain.ShiftStatusScheduled), existing, 0))
	assert.Error(t, ValidateNoShiftOverlap(testShift(t, 0, "10:00", "12:00", domain.ShiftStatusScheduled), existing, 0))
	assert.Error(t, ValidateNoShiftOverlap(testShift(t, 0, "08:00", "18:00", domain.ShiftStatusScheduled), existing, 0))
}

func TestValidateNoShiftOverlapSkipsSelfOnEdit(t *testing.T) {
	existing := []*domain.Shift{
		testShift(t, 1, "09:00", "17:00", domain.ShiftStatusScheduled),
	}

	// editing shift 1 must not conflict with its own stored row
	edited := testShift(t, 1, "10:00", "18:00", domain.ShiftStatusScheduled)
	assert.NoError(t, ValidateNoShiftOverlap(edited, existing, 1))
	assert.Error(t, ValidateNoShiftOverlap(edited, existing, 0))
}

func TestValidateNoShiftOverlapIgnoresCancelled(t *testing.T) {
	existing := []*domain.Shift{
		testShift(t, 1, "09:00", "17:00", domain.ShiftStatusCancelled),
	}

	assert.NoError(t, ValidateNoShiftOverlap(testShift(t, 0, "10:00", "12:00", domain.ShiftStatusScheduled), existing, 0))
}

func testRequest(start, end string, status domain.RequestStatus) *domain.TimeOffRequest {
	startDate, err := domain.ParseDate(start)
	if err != nil {
		panic(err)
	}
	endDate, err := domain.ParseDate(end)
	if err != nil {
		panic(err)
	}
	return &domain.TimeOffRequest{
		StartDate: startDate,
		EndDate:   endDate,
		Status:    status,
	}
}

func TestValidateRequestDates(t *testing.T) {
	assert.NoError(t, ValidateRequestDates(testRequest("2026-03-10", "2026-03-12", domain.RequestStatusPending)))
	// single-day requests are allowed
	assert.NoError(t, ValidateRequestDates(testRequest("2026-03-10", "2026-03-10", domain.RequestStatusPending)))
	assert.Error(t, ValidateRequestDates(testRequest("2026-03-12", "2026-03-10", domain.RequestStatusPending)))
}

func TestValidateNoRequestOverlap(t *testing.T) {
	existing := []*domain.TimeOffRequest{
		testRequest("2026-03-10", "2026-03-14", domain.RequestStatusPending),
	}

	assert.NoError(t, ValidateNoRequestOverlap(testRequest("2026-03-15", "2026-03-16", domain.RequestStatusPending), existing))
	assert.NoError(t, ValidateNoRequestOverlap(testRequest("2026-03-05", "2026-03-09", domain.RequestStatusPending), existing))

	// the range is inclusive, so sharing a single boundary day conflicts
	assert.Error(t, ValidateNoRequestOverlap(testRequest("2026-03-14", "2026-03-16", domain.RequestStatusPending), existing))
	assert.Error(t, ValidateNoRequestOverlap(testRequest("2026-03-08", "2026-03-10", domain.RequestStatusPending), existing))
	assert.Error(t, ValidateNoRequestOverlap(testRequest("2026-03-11", "2026-03-12", domain.RequestStatusPending), existing))
}

func TestValidateNoRequestOverlapIgnoresDenied(t *testing.T) {
	existing := []*domain.TimeOffRequest{
		testRequest("2026-03-10", "2026-03-14", domain.RequestStatusDenied),
	}

	assert.NoError(t, ValidateNoRequestOverlap(testRequest("2026-03-11", "2026-03-12", domain.RequestStatusPending), existing))
}

func TestValidateNoRequestOverlapApprovedBlocks(t *testing.T) {
	existing := []*domain.TimeOffRequest{
		testRequest("2026-03-10", "2026-03-14", domain.RequestStatusApproved),
	}

	assert.Error(t, ValidateNoRequestOverlap(testRequest("2026-03-12", "2026-03-18", domain.RequestStatusPending), existing))
}
