package utils

import (
	"errors"
	"fmt"

	"github.com/sweet-solutions/backend/internal/domain"
)

// ValidateShiftTimes checks that a candidate shift stays within one calendar
// day. Cross-midnight shifts are not supported: the end must be strictly
// after the start.
func ValidateShiftTimes(shift *domain.Shift) error {
	if shift.EndTime <= shift.StartTime {
		return errors.New("shift end time must be after its start time")
	}
	return nil
}

// ValidateNoShiftOverlap rejects the candidate if any existing non-cancelled
// shift for the same employee and date overlaps it under half-open interval
// semantics. When editing, pass the shift's own ID as excludeID so it does
// not conflict with itself; pass 0 on create.
func ValidateNoShiftOverlap(candidate *domain.Shift, existing []*domain.Shift, excludeID int64) error {
	for _, other := range existing {
		if other.ID == excludeID {
			continue
		}
		if other.Status == domain.ShiftStatusCancelled {
			continue
		}
		if candidate.Overlaps(other) {
			return fmt.Errorf("shift overlaps with an existing shift (%s-%s)", other.StartTime, other.EndTime)
		}
	}
	return nil
}

// ValidateRequestDates checks that a time-off range is well formed. The range
// is inclusive, so a single-day request has startDate == endDate.
func ValidateRequestDates(req *domain.TimeOffRequest) error {
	if req.EndDate.Before(req.StartDate.Time) {
		return errors.New("request end date must not be before its start date")
	}
	return nil
}

// ValidateNoRequestOverlap rejects the candidate if its inclusive date range
// shares any day with an existing pending or approved request for the same
// employee. Denied requests do not block.
func ValidateNoRequestOverlap(candidate *domain.TimeOffRequest, existing []*domain.TimeOffRequest) error {
	for _, other := range existing {
		if !other.BlocksNewRequests() {
			continue
		}
		if candidate.OverlapsDates(other) {
			return fmt.Errorf("time-off request overlaps with an existing %s request (%s to %s)", other.Status, other.StartDate, other.EndDate)
		}
	}
	return nil
}
