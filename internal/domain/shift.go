package domain

import "time"

type ShiftStatus string

const (
	ShiftStatusScheduled ShiftStatus = "scheduled"
	ShiftStatusCompleted ShiftStatus = "completed"
	ShiftStatusCancelled ShiftStatus = "cancelled"
)

// Shift references its employee one-directionally. EmployeeName is a snapshot
// taken when the shift is written; renaming the employee later does not
// rewrite it.
type Shift struct {
	ID           int64       `json:"id"`
	EmployeeID   int64       `json:"employeeId"`
	EmployeeName string      `json:"employeeName"`
	Date         Date        `json:"date"`
	StartTime    TimeOfDay   `json:"startTime"`
	EndTime      TimeOfDay   `json:"endTime"`
	Role         string      `json:"role"` // may differ from the employee's default role
	Status       ShiftStatus `json:"status"`
	CreatedBy    int64       `json:"createdBy"`
	CreatedAt    time.Time   `json:"createdAt"`
	Version      int32       `json:"-"`
}

// Overlaps reports whether the two time-of-day intervals share any instant
// under half-open [start, end) semantics. Back-to-back shifts (one ending
// exactly when the other starts) do not overlap, and a zero-duration shift
// overlaps nothing. Callers are responsible for only comparing shifts of the
// same employee on the same date.
func (s *Shift) Overlaps(other *Shift) bool {
	return s.StartTime < other.EndTime && s.EndTime > other.StartTime
}

// CountsTowardPayroll reports whether the shift's status lets its hours into
// payroll aggregation.
func (s *Shift) CountsTowardPayroll() bool {
	return s.Status == ShiftStatusCompleted
}
