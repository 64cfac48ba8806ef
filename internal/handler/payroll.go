package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sweet-solutions/backend/internal/domain"
	"github.com/sweet-solutions/backend/internal/payroll"
)

var errPayrollExists = errors.New("payroll already exists for this period")

// payrollStore is the slice of the repository that payroll generation reads
// and writes.
type payrollStore interface {
	PayrollExistsForPeriod(period string) (bool, error)
	GetAllEmployees(includeInactive bool) ([]*domain.Employee, error)
	GetCompletedShiftsInRange(start, end domain.Date) ([]*domain.Shift, error)
	InsertPayrollEntries(entries []*domain.PayrollEntry) error
}

// generatePayroll runs one generation end to end: the duplicate-period check,
// the aggregation over the period's completed shifts, and the transactional
// insert. A period that already has entries returns errPayrollExists and
// persists nothing.
func generatePayroll(store payrollStore, period payroll.Period, processedBy int64, now time.Time) ([]*domain.PayrollEntry, error) {
	exists, err := store.PayrollExistsForPeriod(period.String())
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errPayrollExists
	}

	employees, err := store.GetAllEmployees(false)
	if err != nil {
		return nil, err
	}

	shifts, err := store.GetCompletedShiftsInRange(period.Start(), period.End())
	if err != nil {
		return nil, err
	}

	entries := payroll.Generate(period, employees, shifts, processedBy, now)

	if err := store.InsertPayrollEntries(entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (h *Handler) GetPayroll(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")

	entries, err := h.repository.GetPayrollEntries(period)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.listResponse(w, r, entries, len(entries))
}

func (h *Handler) GeneratePayroll(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserCtx).(*domain.User)

	var req struct {
		Period string `json:"period" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	period, err := payroll.ParsePeriod(req.Period)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	// take the per-period lock so two managers clicking generate at once
	// cannot both pass the exists check below
	lockKey := fmt.Sprintf("payroll_generate_%s", period)
	locked, err := h.redisClient.SetNX(r.Context(), lockKey, user.ID, time.Duration(h.config.Payroll.GenerateLockExpiration)*time.Second).Result()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !locked {
		h.conflict(w, r, "payroll generation for this period is already in progress")
		return
	}
	defer func() {
		// the request context may already be canceled here; release the lock
		// on its own context so it never lingers until expiration
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
		defer cancel()
		if err := h.redisClient.Del(ctx, lockKey).Err(); err != nil {
			h.logInternalServerError(r, err)
		}
	}()

	entries, err := generatePayroll(h.repository, period, user.ID, time.Now())
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, errPayrollExists):
			h.conflict(w, r, errPayrollExists.Error())
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "payroll_entries_employee_id_period_key":
			// unique-index backstop in case the lock expired mid-generation
			h.conflict(w, r, errPayrollExists.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, http.StatusCreated, fmt.Sprintf("payroll generated for %s", period), entries)
}

func (h *Handler) ExportPayroll(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	entries, err := h.repository.GetPayrollEntries(period)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if len(entries) == 0 {
		h.notFound(w, r, "no payroll data found for export")
		return
	}

	label := period
	if label == "" {
		label = "all"
	}

	switch format {
	case "csv":
		data, err := payroll.ExportCSV(entries)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payroll-%s.csv", label))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil {
			h.logInternalServerError(r, err)
		}
	case "xlsx":
		data, err := payroll.ExportXLSX(entries)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=payroll-%s.xlsx", label))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil {
			h.logInternalServerError(r, err)
		}
	default:
		h.badRequest(w, r, errors.New("invalid format: must be csv or xlsx"))
	}
}

func (h *Handler) UpdatePayrollStatus(w http.ResponseWriter, r *http.Request) {
	entry := r.Context().Value(PayrollEntryCtx).(*domain.PayrollEntry)

	var req struct {
		Status string `json:"status" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	status := domain.PayrollStatus(req.Status)
	if !domain.ValidPayrollStatus(status) {
		h.badRequest(w, r, errors.New("invalid status: must be draft, approved or paid"))
		return
	}

	entry.Status = status

	if err := h.repository.UpdatePayrollStatus(entry); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "payroll entry was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, http.StatusOK, "payroll status updated successfully", entry)
}
