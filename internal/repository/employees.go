package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sweet-solutions/backend/internal/domain"
)

// availability lives in a jsonb column; the slot list is small and only ever
// read or replaced whole.
func marshalAvailability(slots []domain.AvailabilitySlot) ([]byte, error) {
	if slots == nil {
		slots = []domain.AvailabilitySlot{}
	}
	return json.Marshal(slots)
}

func (r *Repository) CreateEmployee(employee *domain.Employee) error {
	availability, err := marshalAvailability(employee.Availability)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO employees (name, email, phone, role, hourly_rate, hours_per_week, hire_date, availability)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, is_active, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{employee.Name, employee.Email, employee.Phone, employee.Role, employee.HourlyRate, employee.HoursPerWeek, employee.HireDate, availability}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&employee.ID, &employee.IsActive, &employee.CreatedAt, &employee.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetEmployeeByID(id int64) (*domain.Employee, error) {
	query := `
		SELECT name, email, phone, role, hourly_rate, hours_per_week, is_active, hire_date, availability, created_at, version
		FROM employees WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	employee := &domain.Employee{
		ID: id,
	}

	var availability []byte
	dst := []any{&employee.Name, &employee.Email, &employee.Phone, &employee.Role, &employee.HourlyRate, &employee.HoursPerWeek, &employee.IsActive, &employee.HireDate, &availability, &employee.CreatedAt, &employee.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(availability, &employee.Availability); err != nil {
		return nil, err
	}

	return employee, nil
}

func (r *Repository) GetEmployeeByEmail(email string) (*domain.Employee, error) {
	query := `
		SELECT id, name, phone, role, hourly_rate, hours_per_week, is_active, hire_date, availability, created_at, version
		FROM employees WHERE email = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	employee := &domain.Employee{
		Email: email,
	}

	var availability []byte
	dst := []any{&employee.ID, &employee.Name, &employee.Phone, &employee.Role, &employee.HourlyRate, &employee.HoursPerWeek, &employee.IsActive, &employee.HireDate, &availability, &employee.CreatedAt, &employee.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(dst...); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(availability, &employee.Availability); err != nil {
		return nil, err
	}

	return employee, nil
}

// GetAllEmployees returns the roster sorted by name. The dashboard's default
// view hides deactivated employees; pass includeInactive for the manager's
// full listing.
func (r *Repository) GetAllEmployees(includeInactive bool) ([]*domain.Employee, error) {
	query := `
		SELECT id, name, email, phone, role, hourly_rate, hours_per_week, is_active, hire_date, availability, created_at, version
		FROM employees
		WHERE is_active OR $1
		ORDER BY name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, includeInactive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		employee := &domain.Employee{}
		var availability []byte
		dst := []any{&employee.ID, &employee.Name, &employee.Email, &employee.Phone, &employee.Role, &employee.HourlyRate, &employee.HoursPerWeek, &employee.IsActive, &employee.HireDate, &availability, &employee.CreatedAt, &employee.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(availability, &employee.Availability); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *Repository) UpdateEmployee(employee *domain.Employee) error {
	availability, err := marshalAvailability(employee.Availability)
	if err != nil {
		return err
	}

	query := `
		UPDATE employees
		SET
			name = $1,
			email = $2,
			phone = $3,
			role = $4,
			hourly_rate = $5,
			hours_per_week = $6,
			is_active = $7,
			availability = $8,
			version = version + 1
		WHERE id = $9 AND version = $10
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{employee.Name, employee.Email, employee.Phone, employee.Role, employee.HourlyRate, employee.HoursPerWeek, employee.IsActive, availability, employee.ID, employee.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&employee.Version); err != nil {
		return err
	}

	return nil
}

// DeactivateEmployee is the soft delete: history keeps referencing the row,
// it just stops appearing in the default roster and in payroll generation.
func (r *Repository) DeactivateEmployee(employee *domain.Employee) error {
	query := `
		UPDATE employees
		SET is_active = FALSE, version = version + 1
		WHERE id = $1 AND version = $2
		RETURNING is_active, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, employee.ID, employee.Version).Scan(&employee.IsActive, &employee.Version); err != nil {
		return err
	}

	return nil
}
