package domain

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusDenied   RequestStatus = "denied"
)

type TimeOffRequest struct {
	ID            int64         `json:"id"`
	EmployeeID    int64         `json:"employeeId"`
	EmployeeName  string        `json:"employeeName"` // snapshot at submission time
	StartDate     Date          `json:"startDate"`
	EndDate       Date          `json:"endDate"`
	Reason        string        `json:"reason"`
	Status        RequestStatus `json:"status"`
	SubmittedDate time.Time     `json:"submittedDate"`
	ReviewedBy    *int64        `json:"reviewedBy,omitempty"`
	ReviewedDate  *time.Time    `json:"reviewedDate,omitempty"`
	ReviewNotes   string        `json:"reviewNotes,omitempty"`
	Version       int32         `json:"-"`
}

// OverlapsDates reports whether the two inclusive date ranges share any
// calendar day. A request ending on the day another starts overlaps it.
func (r *TimeOffRequest) OverlapsDates(other *TimeOffRequest) bool {
	return !r.StartDate.After(other.EndDate.Time) && !r.EndDate.Before(other.StartDate.Time)
}

// BlocksNewRequests reports whether the request still occupies its date range
// for overlap purposes. Denied requests free their days up again.
func (r *TimeOffRequest) BlocksNewRequests() bool {
	return r.Status == RequestStatusPending || r.Status == RequestStatusApproved
}

// CanBeReviewed reports whether approve/deny is a valid transition. Approved
// and denied are terminal, so only pending requests qualify.
func (r *TimeOffRequest) CanBeReviewed() bool {
	return r.Status == RequestStatusPending
}
