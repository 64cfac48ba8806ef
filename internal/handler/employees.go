package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sweet-solutions/backend/internal/domain"
)

func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserCtx).(*domain.User)

	// only managers may see deactivated employees
	includeInactive := r.URL.Query().Get("all") == "true" && user.Role == domain.RoleManager

	employees, err := h.repository.GetAllEmployees(includeInactive)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.listResponse(w, r, employees, len(employees))
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)
	h.successResponse(w, r, http.StatusOK, "", employee)
}

type employeePayload struct {
	Name         string                    `json:"name" validate:"required,min=2"`
	Email        string                    `json:"email" validate:"required,email"`
	Phone        string                    `json:"phone"`
	Role         string                    `json:"role" validate:"required"`
	HourlyRate   float64                   `json:"hourlyRate" validate:"min=0"`
	HoursPerWeek float64                   `json:"hoursPerWeek" validate:"min=0"`
	HireDate     *domain.Date              `json:"hireDate"`
	Availability []domain.AvailabilitySlot `json:"availability" validate:"dive"`
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employeePayload

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee := &domain.Employee{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         req.Role,
		HourlyRate:   req.HourlyRate,
		HoursPerWeek: req.HoursPerWeek,
		Availability: req.Availability,
	}
	if req.HireDate != nil {
		employee.HireDate = *req.HireDate
	} else {
		now := time.Now().UTC()
		employee.HireDate = domain.NewDate(now.Year(), now.Month(), now.Day())
	}

	if err := h.repository.CreateEmployee(employee); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "employees_email_key":
			h.badRequest(w, r, errors.New("an employee with this email already exists"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.notifyByMail(domain.MailMessage{
		Type: "employee_welcome",
		To:   employee.Email,
		Data: domain.EmployeeWelcomeMailData{
			Name:     employee.Name,
			Role:     employee.Role,
			HireDate: employee.HireDate.String(),
		},
	})

	h.successResponse(w, r, http.StatusCreated, "employee created successfully", employee)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         *string                   `json:"name" validate:"omitempty,min=2"`
		Email        *string                   `json:"email" validate:"omitempty,email"`
		Phone        *string                   `json:"phone"`
		Role         *string                   `json:"role"`
		HourlyRate   *float64                  `json:"hourlyRate" validate:"omitempty,min=0"`
		HoursPerWeek *float64                  `json:"hoursPerWeek" validate:"omitempty,min=0"`
		IsActive     *bool                     `json:"isActive"`
		Availability []domain.AvailabilitySlot `json:"availability" validate:"omitempty,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if req.Role != nil {
		employee.Role = *req.Role
	}
	if req.HourlyRate != nil {
		employee.HourlyRate = *req.HourlyRate
	}
	if req.HoursPerWeek != nil {
		employee.HoursPerWeek = *req.HoursPerWeek
	}
	if req.IsActive != nil {
		employee.IsActive = *req.IsActive
	}
	if req.Availability != nil {
		employee.Availability = req.Availability
	}

	if err := h.repository.UpdateEmployee(employee); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "employees_email_key":
			h.badRequest(w, r, errors.New("an employee with this email already exists"))
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "employee was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, http.StatusOK, "employee updated successfully", employee)
}

// DeleteEmployee soft-deletes. Shifts, requests and payroll history keep
// their snapshots of the employee's name.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	if err := h.repository.DeactivateEmployee(employee); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "employee was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, http.StatusOK, "employee deactivated successfully", nil)
}
