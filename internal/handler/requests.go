package handler

import (
	"database/sql"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sweet-solutions/backend/internal/domain"
	"github.com/sweet-solutions/backend/internal/repository"
	"github.com/sweet-solutions/backend/internal/utils"
)

func (h *Handler) GetRequests(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserCtx).(*domain.User)

	filter := repository.RequestFilter{}
	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = domain.RequestStatus(s)
	}
	if s := r.URL.Query().Get("employee"); s != "" {
		employeeID, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			h.badRequest(w, r, errors.New("invalid employee id"))
			return
		}
		filter.EmployeeID = employeeID
	}

	// employee-role callers only ever see their own requests
	if user.Role == domain.RoleEmployee {
		employee, err := h.employeeForUser(user)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.listResponse(w, r, []*domain.TimeOffRequest{}, 0)
			default:
				h.internalServerError(w, r, err)
			}
			return
		}
		filter.EmployeeID = employee.ID
	}

	requests, err := h.repository.GetRequests(filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.listResponse(w, r, requests, len(requests))
}

func (h *Handler) GetRequest(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserCtx).(*domain.User)
	request := r.Context().Value(RequestCtx).(*domain.TimeOffRequest)

	if user.Role == domain.RoleEmployee {
		employee, err := h.employeeForUser(user)
		if err != nil || request.EmployeeID != employee.ID {
			h.forbidden(w, r, "access denied")
			return
		}
	}

	h.successResponse(w, r, http.StatusOK, "", request)
}

func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserCtx).(*domain.User)

	var req struct {
		EmployeeID int64       `json:"employee"`
		StartDate  domain.Date `json:"startDate" validate:"required"`
		EndDate    domain.Date `json:"endDate" validate:"required"`
		Reason     string      `json:"reason" validate:"required,min=10"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// employee-role callers always file for their own record, whatever the
	// payload says
	employeeID := req.EmployeeID
	if user.Role == domain.RoleEmployee {
		employee, err := h.employeeForUser(user)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.notFound(w, r, "no employee record matches your account")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}
		employeeID = employee.ID
	}

	employee, err := h.repository.GetEmployeeByID(employeeID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "employee not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	request := &domain.TimeOffRequest{
		EmployeeID:   employee.ID,
		EmployeeName: employee.Name, // snapshot, not refreshed on rename
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Reason:       req.Reason,
	}

	if err := utils.ValidateRequestDates(request); err != nil {
		h.badRequest(w, r, err)
		return
	}

	blocking, err := h.repository.GetBlockingRequests(employee.ID, request.StartDate, request.EndDate)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if err := utils.ValidateNoRequestOverlap(request, blocking); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.CreateRequest(request); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, http.StatusCreated, "time-off request submitted successfully", request)
}

// reviewRequest is the shared terminal transition behind approve and deny.
// Only pending requests can be reviewed; approved and denied are terminal.
func (h *Handler) reviewRequest(w http.ResponseWriter, r *http.Request, decision domain.RequestStatus, successMsg string) {
	user := r.Context().Value(UserCtx).(*domain.User)
	request := r.Context().Value(RequestCtx).(*domain.TimeOffRequest)

	var req struct {
		ReviewNotes string `json:"reviewNotes"`
	}
	// an empty body is fine for approve/deny
	if err := h.readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.badRequest(w, r, err)
		return
	}

	if !request.CanBeReviewed() {
		h.conflict(w, r, "time-off request has already been reviewed")
		return
	}

	now := time.Now()
	request.Status = decision
	request.ReviewedBy = &user.ID
	request.ReviewedDate = &now
	request.ReviewNotes = req.ReviewNotes

	if err := h.repository.ReviewRequest(request); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// another manager reviewed it between our read and write
			h.conflict(w, r, "time-off request has already been reviewed")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if employee, err := h.repository.GetEmployeeByID(request.EmployeeID); err == nil {
		h.notifyByMail(domain.MailMessage{
			Type: "request_reviewed",
			To:   employee.Email,
			Data: domain.RequestReviewedMailData{
				EmployeeName: request.EmployeeName,
				StartDate:    request.StartDate.String(),
				EndDate:      request.EndDate.String(),
				Decision:     string(decision),
				ReviewNotes:  request.ReviewNotes,
			},
		})
	}

	h.successResponse(w, r, http.StatusOK, successMsg, request)
}

func (h *Handler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.reviewRequest(w, r, domain.RequestStatusApproved, "time-off request approved successfully")
}

func (h *Handler) DenyRequest(w http.ResponseWriter, r *http.Request) {
	h.reviewRequest(w, r, domain.RequestStatusDenied, "time-off request denied")
}
