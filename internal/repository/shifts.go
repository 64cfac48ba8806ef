package repository

import (
	"context"
	"time"

	"github.com/sweet-solutions/backend/internal/domain"
)

// ShiftFilter narrows GetShifts. Zero values mean "no constraint".
type ShiftFilter struct {
	StartDate  *domain.Date
	EndDate    *domain.Date
	EmployeeID int64
}

const shiftColumns = `id, employee_id, employee_name, date, start_time, end_time, role, status, created_by, created_at, version`

func scanShift(scan func(...any) error) (*domain.Shift, error) {
	shift := &domain.Shift{}
	dst := []any{&shift.ID, &shift.EmployeeID, &shift.EmployeeName, &shift.Date, &shift.StartTime, &shift.EndTime, &shift.Role, &shift.Status, &shift.CreatedBy, &shift.CreatedAt, &shift.Version}
	if err := scan(dst...); err != nil {
		return nil, err
	}
	return shift, nil
}

func (r *Repository) CreateShift(shift *domain.Shift) error {
	query := `
		INSERT INTO shifts (employee_id, employee_name, date, start_time, end_time, role, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{shift.EmployeeID, shift.EmployeeName, shift.Date, shift.StartTime, shift.EndTime, shift.Role, shift.Status, shift.CreatedBy}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.ID, &shift.CreatedAt, &shift.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetShiftByID(id int64) (*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	row := r.dbpool.QueryRowContext(ctx, query, id)
	return scanShift(row.Scan)
}

func (r *Repository) GetShifts(filter ShiftFilter) ([]*domain.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE ($1::date IS NULL OR date >= $1)
		  AND ($2::date IS NULL OR date <= $2)
		  AND ($3::bigint = 0 OR employee_id = $3)
		ORDER BY date, start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, filter.StartDate, filter.EndDate, filter.EmployeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift, err := scanShift(rows.Scan)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

// GetShiftsForEmployeeOnDate feeds the overlap validator: everything the
// employee already has on that calendar day, cancelled shifts included (the
// validator skips those itself).
func (r *Repository) GetShiftsForEmployeeOnDate(employeeID int64, date domain.Date) ([]*domain.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE employee_id = $1 AND date = $2
		ORDER BY start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift, err := scanShift(rows.Scan)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) UpdateShift(shift *domain.Shift) error {
	query := `
		UPDATE shifts
		SET
			employee_id = $1,
			employee_name = $2,
			date = $3,
			start_time = $4,
			end_time = $5,
			role = $6,
			status = $7,
			version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{shift.EmployeeID, shift.EmployeeName, shift.Date, shift.StartTime, shift.EndTime, shift.Role, shift.Status, shift.ID, shift.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShift(id int64) error {
	query := `DELETE FROM shifts WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

// GetCompletedShiftsInRange returns every completed shift dated inside
// [start, end], across all employees. Payroll generation uses one call here
// instead of a query per employee.
func (r *Repository) GetCompletedShiftsInRange(start, end domain.Date) ([]*domain.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE status = 'completed' AND date >= $1 AND date <= $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift, err := scanShift(rows.Scan)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}
