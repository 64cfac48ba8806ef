package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/sweet-solutions/backend/internal/domain"
	"github.com/sweet-solutions/backend/internal/repository"
	"github.com/sweet-solutions/backend/internal/utils"
)

func (h *Handler) GetShifts(w http.ResponseWriter, r *http.Request) {
	filter := repository.ShiftFilter{}

	if s := r.URL.Query().Get("startDate"); s != "" {
		d, err := domain.ParseDate(s)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		filter.StartDate = &d
	}
	if s := r.URL.Query().Get("endDate"); s != "" {
		d, err := domain.ParseDate(s)
		if err != nil {
			h.badRequest(w, r, err)
			return
		}
		filter.EndDate = &d
	}
	if s := r.URL.Query().Get("employee"); s != "" {
		employeeID, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			h.badRequest(w, r, errors.New("invalid employee id"))
			return
		}
		filter.EmployeeID = employeeID
	}

	shifts, err := h.repository.GetShifts(filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.listResponse(w, r, shifts, len(shifts))
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)
	h.successResponse(w, r, http.StatusOK, "", shift)
}

type shiftPayload struct {
	EmployeeID int64            `json:"employee" validate:"required"`
	Date       domain.Date      `json:"date" validate:"required"`
	StartTime  domain.TimeOfDay `json:"startTime"`
	EndTime    domain.TimeOfDay `json:"endTime"`
	Role       string           `json:"role" validate:"required"`
	Status     string           `json:"status" validate:"omitempty,oneof=scheduled completed cancelled"`
}

// checkShiftConflicts runs the end-after-start check plus the half-open
// overlap check against the employee's other shifts on the same date. It
// writes the error response itself and reports whether the caller may
// proceed.
func (h *Handler) checkShiftConflicts(w http.ResponseWriter, r *http.Request, candidate *domain.Shift, excludeID int64) bool {
	if err := utils.ValidateShiftTimes(candidate); err != nil {
		h.badRequest(w, r, err)
		return false
	}

	existing, err := h.repository.GetShiftsForEmployeeOnDate(candidate.EmployeeID, candidate.Date)
	if err != nil {
		h.internalServerError(w, r, err)
		return false
	}

	if err := utils.ValidateNoShiftOverlap(candidate, existing, excludeID); err != nil {
		h.badRequest(w, r, err)
		return false
	}

	return true
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserCtx).(*domain.User)

	var req shiftPayload
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee, err := h.repository.GetEmployeeByID(req.EmployeeID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "employee not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	status := domain.ShiftStatusScheduled
	if req.Status != "" {
		status = domain.ShiftStatus(req.Status)
	}

	shift := &domain.Shift{
		EmployeeID:   employee.ID,
		EmployeeName: employee.Name, // snapshot, not refreshed on rename
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Role:         req.Role,
		Status:       status,
		CreatedBy:    user.ID,
	}

	if !h.checkShiftConflicts(w, r, shift, 0) {
		return
	}

	if err := h.repository.CreateShift(shift); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusCreated, "shift created successfully", shift)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	var req shiftPayload
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	employee, err := h.repository.GetEmployeeByID(req.EmployeeID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "employee not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	shift.EmployeeID = employee.ID
	shift.EmployeeName = employee.Name
	shift.Date = req.Date
	shift.StartTime = req.StartTime
	shift.EndTime = req.EndTime
	shift.Role = req.Role
	if req.Status != "" {
		shift.Status = domain.ShiftStatus(req.Status)
	}

	if !h.checkShiftConflicts(w, r, shift, shift.ID) {
		return
	}

	if err := h.repository.UpdateShift(shift); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "shift was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, http.StatusOK, "shift updated successfully", shift)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if err := h.repository.DeleteShift(shift.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusOK, "shift deleted successfully", nil)
}
