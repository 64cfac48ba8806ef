package domain

import "time"

type PayrollStatus string

const (
	PayrollStatusDraft    PayrollStatus = "draft"
	PayrollStatusApproved PayrollStatus = "approved"
	PayrollStatusPaid     PayrollStatus = "paid"
)

// PayrollEntry is one employee's pay for one period (a "YYYY-MM" month
// label). EmployeeName, Role and HourlyRate are snapshots taken at generation
// time; later edits to the employee do not change historical entries.
type PayrollEntry struct {
	ID            int64         `json:"id"`
	EmployeeID    int64         `json:"employeeId"`
	EmployeeName  string        `json:"employeeName"`
	Role          string        `json:"role"`
	Period        string        `json:"period"`
	HoursWorked   float64       `json:"hoursWorked"`
	HourlyRate    float64       `json:"hourlyRate"`
	OvertimeHours float64       `json:"overtimeHours"`
	OvertimePay   float64       `json:"overtimePay"`
	TotalPay      float64       `json:"totalPay"`
	Deductions    float64       `json:"deductions"`
	NetPay        float64       `json:"netPay"`
	Status        PayrollStatus `json:"status"`
	ProcessedBy   int64         `json:"processedBy"`
	ProcessedDate time.Time     `json:"processedDate"`
	Version       int32         `json:"-"`
}

// ValidPayrollStatus reports whether s is one of draft/approved/paid. Status
// is manager-advanced with no automatic transitions, so any of the three is
// accepted as a target.
func ValidPayrollStatus(s PayrollStatus) bool {
	switch s {
	case PayrollStatusDraft, PayrollStatusApproved, PayrollStatusPaid:
		return true
	}
	return false
}
