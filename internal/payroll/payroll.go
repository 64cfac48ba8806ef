// Package payroll holds the aggregation core: given a period, a roster and
// the period's shifts, it computes per-employee hours, splits them into
// regular and overtime, and prices them. It is pure compute; persistence and
// the one-generation-per-period guard live in the repository.
package payroll

import (
	"time"

	"github.com/sweet-solutions/backend/internal/domain"
)

const (
	// RegularWeeklyHours is the per-week threshold beyond which hours are
	// paid at the overtime multiplier.
	RegularWeeklyHours = 40.0
	// OvertimeMultiplier prices hours beyond the period's regular cap.
	OvertimeMultiplier = 1.5
)

// Generate computes one draft PayrollEntry per active employee for the
// period. Only completed shifts dated inside the period count; an employee
// with no qualifying shifts still gets a zero-hour entry. Hourly rates are
// snapshotted from the roster, and entries are stamped with the acting
// manager and now. Inactive employees are skipped entirely.
func Generate(period Period, employees []*domain.Employee, shifts []*domain.Shift, processedBy int64, now time.Time) []*domain.PayrollEntry {
	byEmployee := make(map[int64]float64, len(employees))
	for _, shift := range shifts {
		if !shift.CountsTowardPayroll() {
			continue
		}
		if !period.Contains(shift.Date) {
			continue
		}
		byEmployee[shift.EmployeeID] += shift.StartTime.HoursUntil(shift.EndTime)
	}

	regularCap := float64(period.Weeks()) * RegularWeeklyHours

	entries := make([]*domain.PayrollEntry, 0, len(employees))
	for _, employee := range employees {
		if !employee.IsActive {
			continue
		}

		totalHours := byEmployee[employee.ID]
		regularHours := min(totalHours, regularCap)
		overtimeHours := max(0, totalHours-regularCap)

		regularPay := regularHours * employee.HourlyRate
		overtimePay := overtimeHours * employee.HourlyRate * OvertimeMultiplier
		totalPay := regularPay + overtimePay

		entries = append(entries, &domain.PayrollEntry{
			EmployeeID:    employee.ID,
			EmployeeName:  employee.Name,
			Role:          employee.Role,
			Period:        period.String(),
			HoursWorked:   totalHours,
			HourlyRate:    employee.HourlyRate,
			OvertimeHours: overtimeHours,
			OvertimePay:   overtimePay,
			TotalPay:      totalPay,
			Deductions:    0,
			NetPay:        totalPay, // no deductions on the generation path
			Status:        domain.PayrollStatusDraft,
			ProcessedBy:   processedBy,
			ProcessedDate: now,
		})
	}

	return entries
}
