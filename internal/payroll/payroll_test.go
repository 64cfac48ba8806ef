package payroll

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sweet-solutions/backend/internal/domain"
)

func shiftOn(employeeID int64, date domain.Date, start, end string, status domain.ShiftStatus) *domain.Shift {
	startTime, err := domain.ParseTimeOfDay(start)
	if err != nil {
		panic(err)
	}
	endTime, err := domain.ParseTimeOfDay(end)
	if err != nil {
		panic(err)
	}
	return &domain.Shift{
		EmployeeID: employeeID,
		Date:       date,
		StartTime:  startTime,
		EndTime:    endTime,
		Status:     status,
	}
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("2026-03")
	require.NoError(t, err)
	assert.Equal(t, 2026, p.Year)
	assert.Equal(t, time.March, p.Month)
	assert.Equal(t, "2026-03", p.String())

	_, err = ParsePeriod("March 2026")
	assert.Error(t, err)

	_, err = ParsePeriod("2026-13")
	assert.Error(t, err)
}

func TestPeriodBounds(t *testing.T) {
	p, err := ParsePeriod("2026-02")
	require.NoError(t, err)

	assert.Equal(t, "2026-02-01", p.Start().String())
	assert.Equal(t, "2026-02-28", p.End().String())
	assert.Equal(t, 28, p.Days())
	assert.Equal(t, 4, p.Weeks())

	assert.True(t, p.Contains(domain.NewDate(2026, time.February, 1)))
	assert.True(t, p.Contains(domain.NewDate(2026, time.February, 28)))
	assert.False(t, p.Contains(domain.NewDate(2026, time.March, 1)))
	assert.False(t, p.Contains(domain.NewDate(2026, time.January, 31)))
}

func TestPeriodWeeksRoundsUp(t *testing.T) {
	p, err := ParsePeriod("2026-01")
	require.NoError(t, err)

	// 31 days is four full weeks plus three days
	assert.Equal(t, 31, p.Days())
	assert.Equal(t, 5, p.Weeks())
}

func TestGenerateRegularHoursOnly(t *testing.T) {
	p, err := ParsePeriod("2026-03")
	require.NoError(t, err)

	employees := []*domain.Employee{
		{ID: 1, Name: "Sarah Johnson", Role: "Scooper", HourlyRate: 15, IsActive: true},
	}
	// ten 9-hour completed shifts, 90 hours, well under the 200-hour cap
	shifts := make([]*domain.Shift, 0, 10)
	for day := 1; day <= 10; day++ {
		shifts = append(shifts, shiftOn(1, domain.NewDate(2026, time.March, day), "08:00", "17:00", domain.ShiftStatusCompleted))
	}

	entries := Generate(p, employees, shifts, 99, time.Now())
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, int64(1), entry.EmployeeID)
	assert.Equal(t, "Sarah Johnson", entry.EmployeeName)
	assert.Equal(t, "2026-03", entry.Period)
	assert.InDelta(t, 90.0, entry.HoursWorked, 1e-9)
	assert.InDelta(t, 0.0, entry.OvertimeHours, 1e-9)
	assert.InDelta(t, 0.0, entry.OvertimePay, 1e-9)
	assert.InDelta(t, 1350.0, entry.TotalPay, 1e-9)
	assert.InDelta(t, 1350.0, entry.NetPay, 1e-9)
	assert.InDelta(t, 0.0, entry.Deductions, 1e-9)
	assert.Equal(t, domain.PayrollStatusDraft, entry.Status)
	assert.Equal(t, int64(99), entry.ProcessedBy)
}

func TestGenerateSplitsOvertime(t *testing.T) {
	p, err := ParsePeriod("2026-02")
	require.NoError(t, err)

	employees := []*domain.Employee{
		{ID: 1, Name: "Mike Chen", Role: "Shift Lead", HourlyRate: 15, IsActive: true},
	}
	// 17 ten-hour shifts: 170 hours against a 4-week cap of 160
	shifts := make([]*domain.Shift, 0, 17)
	for day := 1; day <= 17; day++ {
		shifts = append(shifts, shiftOn(1, domain.NewDate(2026, time.February, day), "08:00", "18:00", domain.ShiftStatusCompleted))
	}

	entries := Generate(p, employees, shifts, 99, time.Now())
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.InDelta(t, 170.0, entry.HoursWorked, 1e-9)
	assert.InDelta(t, 10.0, entry.OvertimeHours, 1e-9)
	// 160 * 15 + 10 * 15 * 1.5
	assert.InDelta(t, 225.0, entry.OvertimePay, 1e-9)
	assert.InDelta(t, 2625.0, entry.TotalPay, 1e-9)
	assert.InDelta(t, 2625.0, entry.NetPay, 1e-9)
}

func TestGenerateOnlyCountsCompletedShiftsInPeriod(t *testing.T) {
	p, err := ParsePeriod("2026-03")
	require.NoError(t, err)

	employees := []*domain.Employee{
		{ID: 1, Name: "Emma Park", Role: "Cashier", HourlyRate: 14, IsActive: true},
	}
	shifts := []*domain.Shift{
		shiftOn(1, domain.NewDate(2026, time.March, 5), "09:00", "17:00", domain.ShiftStatusCompleted),
		shiftOn(1, domain.NewDate(2026, time.March, 6), "09:00", "17:00", domain.ShiftStatusScheduled),
		shiftOn(1, domain.NewDate(2026, time.March, 7), "09:00", "17:00", domain.ShiftStatusCancelled),
		shiftOn(1, domain.NewDate(2026, time.April, 1), "09:00", "17:00", domain.ShiftStatusCompleted),
	}

	entries := Generate(p, employees, shifts, 99, time.Now())
	require.Len(t, entries, 1)
	assert.InDelta(t, 8.0, entries[0].HoursWorked, 1e-9)
}

func TestGenerateIncludesZeroHourEmployeesAndSkipsInactive(t *testing.T) {
	p, err := ParsePeriod("2026-03")
	require.NoError(t, err)

	employees := []*domain.Employee{
		{ID: 1, Name: "Sarah Johnson", Role: "Scooper", HourlyRate: 15, IsActive: true},
		{ID: 2, Name: "Jake Wilson", Role: "Cashier", HourlyRate: 13, IsActive: true},
		{ID: 3, Name: "Lily Davis", Role: "Scooper", HourlyRate: 15, IsActive: false},
	}
	shifts := []*domain.Shift{
		shiftOn(1, domain.NewDate(2026, time.March, 5), "09:00", "17:00", domain.ShiftStatusCompleted),
	}

	entries := Generate(p, employees, shifts, 99, time.Now())
	require.Len(t, entries, 2)

	assert.InDelta(t, 8.0, entries[0].HoursWorked, 1e-9)
	assert.InDelta(t, 0.0, entries[1].HoursWorked, 1e-9)
	assert.InDelta(t, 0.0, entries[1].TotalPay, 1e-9)
	for _, entry := range entries {
		assert.NotEqual(t, int64(3), entry.EmployeeID)
	}
}

func TestGenerateSnapshotsHourlyRate(t *testing.T) {
	p, err := ParsePeriod("2026-03")
	require.NoError(t, err)

	employees := []*domain.Employee{
		{ID: 1, Name: "Sarah Johnson", Role: "Scooper", HourlyRate: 16.5, IsActive: true},
	}
	shifts := []*domain.Shift{
		shiftOn(1, domain.NewDate(2026, time.March, 5), "10:00", "14:00", domain.ShiftStatusCompleted),
	}

	entries := Generate(p, employees, shifts, 99, time.Now())
	require.Len(t, entries, 1)
	assert.InDelta(t, 16.5, entries[0].HourlyRate, 1e-9)
	assert.InDelta(t, 66.0, entries[0].TotalPay, 1e-9)
}

func TestExportCSV(t *testing.T) {
	entries := []*domain.PayrollEntry{
		{
			EmployeeName: "Sarah Johnson",
			Role:         "Scooper",
			Period:       "2026-03",
			HoursWorked:  90,
			HourlyRate:   15,
			TotalPay:     1350,
			NetPay:       1350,
			Status:       domain.PayrollStatusDraft,
		},
		{
			EmployeeName:  `Chen, Mike "MC"`,
			Role:          "Shift Lead",
			Period:        "2026-03",
			HoursWorked:   170,
			HourlyRate:    15,
			OvertimeHours: 10,
			OvertimePay:   225,
			TotalPay:      2625,
			NetPay:        2625,
			Status:        domain.PayrollStatusApproved,
		},
	}

	data, err := ExportCSV(entries)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t, "Employee Name,Role,Period,Hours Worked,Hourly Rate,Total Pay,Overtime Hours,Overtime Pay,Net Pay,Status", lines[0])
	assert.Equal(t, "Sarah Johnson,Scooper,2026-03,90,15,1350,0,0,1350,draft", lines[1])
	// names containing commas and quotes must be quoted and escaped
	assert.Equal(t, `"Chen, Mike ""MC""",Shift Lead,2026-03,170,15,2625,10,225,2625,approved`, lines[2])
}

func TestExportCSVEmptyEntriesStillHasHeader(t *testing.T) {
	data, err := ExportCSV(nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "Employee Name,"))
}

func TestExportXLSXProducesWorkbook(t *testing.T) {
	entries := []*domain.PayrollEntry{
		{
			EmployeeName: "Sarah Johnson",
			Role:         "Scooper",
			Period:       "2026-03",
			HoursWorked:  90,
			HourlyRate:   15,
			TotalPay:     1350,
			NetPay:       1350,
			Status:       domain.PayrollStatusDraft,
		},
	}

	data, err := ExportXLSX(entries)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	// xlsx files are zip archives
	assert.Equal(t, []byte{'P', 'K'}, data[:2])
}
