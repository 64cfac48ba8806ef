package repository

import (
	"context"
	"time"

	"github.com/sweet-solutions/backend/internal/domain"
)

const payrollColumns = `id, employee_id, employee_name, role, period, hours_worked, hourly_rate, overtime_hours, overtime_pay, total_pay, deductions, net_pay, status, processed_by, processed_date, version`

func scanPayrollEntry(scan func(...any) error) (*domain.PayrollEntry, error) {
	entry := &domain.PayrollEntry{}
	dst := []any{&entry.ID, &entry.EmployeeID, &entry.EmployeeName, &entry.Role, &entry.Period, &entry.HoursWorked, &entry.HourlyRate, &entry.OvertimeHours, &entry.OvertimePay, &entry.TotalPay, &entry.Deductions, &entry.NetPay, &entry.Status, &entry.ProcessedBy, &entry.ProcessedDate, &entry.Version}
	if err := scan(dst...); err != nil {
		return nil, err
	}
	return entry, nil
}

// GetPayrollEntries lists entries, newest period first then by employee name.
// An empty period means all periods.
func (r *Repository) GetPayrollEntries(period string) ([]*domain.PayrollEntry, error) {
	query := `
		SELECT ` + payrollColumns + `
		FROM payroll_entries
		WHERE ($1::text = '' OR period = $1)
		ORDER BY period DESC, employee_name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.PayrollEntry, 0)
	for rows.Next() {
		entry, err := scanPayrollEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *Repository) GetPayrollEntryByID(id int64) (*domain.PayrollEntry, error) {
	query := `SELECT ` + payrollColumns + ` FROM payroll_entries WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	row := r.dbpool.QueryRowContext(ctx, query, id)
	return scanPayrollEntry(row.Scan)
}

func (r *Repository) PayrollExistsForPeriod(period string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM payroll_entries WHERE period = $1)`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	exists := false
	if err := r.dbpool.QueryRowContext(ctx, query, period).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// InsertPayrollEntries writes a whole generation in one transaction, so a
// failure partway through a period leaves no entries behind. The
// (employee_id, period) unique index is the durable backstop should two
// generators slip past the handler-level checks at once.
func (r *Repository) InsertPayrollEntries(entries []*domain.PayrollEntry) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO payroll_entries (
			employee_id,
			employee_name,
			role,
			period,
			hours_worked,
			hourly_rate,
			overtime_hours,
			overtime_pay,
			total_pay,
			deductions,
			net_pay,
			status,
			processed_by,
			processed_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, version
	`

	for _, entry := range entries {
		args := []any{
			entry.EmployeeID,
			entry.EmployeeName,
			entry.Role,
			entry.Period,
			entry.HoursWorked,
			entry.HourlyRate,
			entry.OvertimeHours,
			entry.OvertimePay,
			entry.TotalPay,
			entry.Deductions,
			entry.NetPay,
			entry.Status,
			entry.ProcessedBy,
			entry.ProcessedDate,
		}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.Version); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdatePayrollStatus(entry *domain.PayrollEntry) error {
	query := `
		UPDATE payroll_entries
		SET status = $1, version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, entry.Status, entry.ID, entry.Version).Scan(&entry.Version); err != nil {
		return err
	}

	return nil
}
