// Package seed fills a development database with demo data: two login
// accounts with known passwords, a roster of employees, a month of shifts,
// a handful of time-off requests and a generated payroll run.
package seed

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/sweet-solutions/backend/internal/config"
	"github.com/sweet-solutions/backend/internal/domain"
	"github.com/sweet-solutions/backend/internal/payroll"
	"github.com/sweet-solutions/backend/internal/repository"
	"github.com/sweet-solutions/backend/internal/utils"
)

const (
	emailDomain   = "sweetsolutions.com"
	managerEmail  = "manager@" + emailDomain
	employeeEmail = "employee@" + emailDomain

	// demoDeductionRate gives seeded payroll rows a plausible non-zero
	// deductions column; real generation leaves deductions at zero.
	demoDeductionRate = 0.15
)

// DemoAccounts creates the two well-known login accounts plus an employee
// record tied to the employee account's email, so logging in as the demo
// employee exercises the own-records-only paths.
func DemoAccounts(repo *repository.Repository, cfg *config.Config) error {
	manager, err := utils.GenerateRandomUser("Maya Sullivan", managerEmail, domain.RoleManager, cfg.Seed.ManagerPassword)
	if err != nil {
		return err
	}
	if err := repo.CreateUser(manager); err != nil {
		return err
	}

	employee, err := utils.GenerateRandomUser("Emma Rodriguez", employeeEmail, domain.RoleEmployee, cfg.Seed.EmployeePassword)
	if err != nil {
		return err
	}
	if err := repo.CreateUser(employee); err != nil {
		return err
	}

	record := &domain.Employee{
		Name:         employee.Name,
		Email:        employee.Email,
		Phone:        "555-0001",
		Role:         "Scooper",
		HourlyRate:   14.5,
		HoursPerWeek: 30,
		IsActive:     true,
		HireDate:     domain.Date{Time: time.Now().UTC().AddDate(0, -6, 0)},
		Availability: utils.GenerateRandomAvailability(),
	}
	if err := repo.CreateEmployee(record); err != nil {
		return err
	}

	slog.Info("demo accounts created", slog.String("manager", managerEmail), slog.String("employee", employeeEmail))
	return nil
}

// Employees inserts n random roster entries.
func Employees(repo *repository.Repository, n int) error {
	cnt := 0
	for i := 0; i < n; i++ {
		employee := utils.GenerateRandomEmployee(emailDomain)
		if err := repo.CreateEmployee(employee); err != nil {
			slog.Error("unable to insert employee", slog.String("error", err.Error()))
			continue
		}
		cnt++
	}

	slog.Info("employees inserted", slog.Int("count", cnt))
	return nil
}

// Shifts schedules n shifts across the current month, at most one per
// employee per day so none of them overlap.
func Shifts(repo *repository.Repository, n int) error {
	manager, err := repo.GetUserByEmail(managerEmail)
	if err != nil {
		return fmt.Errorf("demo manager account missing, run the accounts op first: %w", err)
	}

	employees, err := repo.GetAllEmployees(false)
	if err != nil {
		return err
	}
	if len(employees) == 0 {
		return fmt.Errorf("no employees to schedule, run the employees op first")
	}

	now := time.Now().UTC()
	period := payroll.Period{Year: now.Year(), Month: now.Month()}

	type slot struct {
		employeeID int64
		day        int
	}
	used := map[slot]bool{}

	cnt := 0
	for i := 0; i < n; i++ {
		employee := employees[rand.Intn(len(employees))]
		day := rand.Intn(period.Days()) + 1

		s := slot{employeeID: employee.ID, day: day}
		if used[s] {
			continue
		}
		used[s] = true

		date := domain.NewDate(period.Year, period.Month, day)
		shift := utils.GenerateRandomShift(employee, date, manager.ID)
		if err := repo.CreateShift(shift); err != nil {
			slog.Error("unable to insert shift", slog.String("error", err.Error()))
			continue
		}
		cnt++
	}

	slog.Info("shifts inserted", slog.Int("count", cnt))
	return nil
}

var requestReasons = []string{
	"Family vacation out of state, booked months ago",
	"Medical appointment that could not be scheduled outside work hours",
	"Attending my sister's graduation ceremony",
	"Moving apartments and need the days for the move",
	"Out-of-town wedding for a close friend",
}

// Requests files n time-off requests over the coming weeks and has the demo
// manager review roughly half of them.
func Requests(repo *repository.Repository, n int) error {
	manager, err := repo.GetUserByEmail(managerEmail)
	if err != nil {
		return fmt.Errorf("demo manager account missing, run the accounts op first: %w", err)
	}

	employees, err := repo.GetAllEmployees(false)
	if err != nil {
		return err
	}
	if len(employees) == 0 {
		return fmt.Errorf("no employees to request for, run the employees op first")
	}

	cnt := 0
	for i := 0; i < n; i++ {
		employee := employees[rand.Intn(len(employees))]

		start := time.Now().UTC().AddDate(0, 0, rand.Intn(45)+7)
		end := start.AddDate(0, 0, rand.Intn(4))

		request := &domain.TimeOffRequest{
			EmployeeID:   employee.ID,
			EmployeeName: employee.Name,
			StartDate:    domain.NewDate(start.Year(), start.Month(), start.Day()),
			EndDate:      domain.NewDate(end.Year(), end.Month(), end.Day()),
			Reason:       requestReasons[rand.Intn(len(requestReasons))],
		}

		// seeded requests obey the same no-overlap rule submissions do
		blocking, err := repo.GetBlockingRequests(employee.ID, request.StartDate, request.EndDate)
		if err != nil {
			slog.Error("unable to check request overlap", slog.String("error", err.Error()))
			continue
		}
		if utils.ValidateNoRequestOverlap(request, blocking) != nil {
			continue // window already taken for this employee
		}

		if err := repo.CreateRequest(request); err != nil {
			slog.Error("unable to insert time-off request", slog.String("error", err.Error()))
			continue
		}
		cnt++

		if rand.Intn(2) == 0 {
			continue // leave it pending
		}

		reviewedAt := time.Now().UTC()
		request.Status = domain.RequestStatusApproved
		request.ReviewNotes = "Approved, coverage arranged"
		if rand.Intn(3) == 0 {
			request.Status = domain.RequestStatusDenied
			request.ReviewNotes = "Denied, too many staff already out that week"
		}
		request.ReviewedBy = &manager.ID
		request.ReviewedDate = &reviewedAt
		if err := repo.ReviewRequest(request); err != nil {
			slog.Error("unable to review time-off request", slog.String("error", err.Error()))
		}
	}

	slog.Info("time-off requests inserted", slog.Int("count", cnt))
	return nil
}

// Payroll generates entries for the current month from whatever completed
// shifts exist, then applies a flat demo deduction so the deductions and net
// pay columns are visibly distinct.
func Payroll(repo *repository.Repository) error {
	manager, err := repo.GetUserByEmail(managerEmail)
	if err != nil {
		return fmt.Errorf("demo manager account missing, run the accounts op first: %w", err)
	}

	now := time.Now().UTC()
	period := payroll.Period{Year: now.Year(), Month: now.Month()}

	exists, err := repo.PayrollExistsForPeriod(period.String())
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("payroll already exists for %s", period)
	}

	employees, err := repo.GetAllEmployees(false)
	if err != nil {
		return err
	}

	shifts, err := repo.GetCompletedShiftsInRange(period.Start(), period.End())
	if err != nil {
		return err
	}

	entries := payroll.Generate(period, employees, shifts, manager.ID, now)
	for _, entry := range entries {
		entry.Deductions = entry.TotalPay * demoDeductionRate
		entry.NetPay = entry.TotalPay - entry.Deductions
	}

	if err := repo.InsertPayrollEntries(entries); err != nil {
		return err
	}

	slog.Info("payroll generated", slog.String("period", period.String()), slog.Int("count", len(entries)))
	return nil
}
