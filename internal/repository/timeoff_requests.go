package repository

import (
	"context"
	"time"

	"github.com/sweet-solutions/backend/internal/domain"
)

// RequestFilter narrows GetRequests. Zero values mean "no constraint".
type RequestFilter struct {
	Status     domain.RequestStatus
	EmployeeID int64
}

const requestColumns = `id, employee_id, employee_name, start_date, end_date, reason, status, submitted_date, reviewed_by, reviewed_date, review_notes, version`

func scanRequest(scan func(...any) error) (*domain.TimeOffRequest, error) {
	request := &domain.TimeOffRequest{}
	dst := []any{&request.ID, &request.EmployeeID, &request.EmployeeName, &request.StartDate, &request.EndDate, &request.Reason, &request.Status, &request.SubmittedDate, &request.ReviewedBy, &request.ReviewedDate, &request.ReviewNotes, &request.Version}
	if err := scan(dst...); err != nil {
		return nil, err
	}
	return request, nil
}

func (r *Repository) CreateRequest(request *domain.TimeOffRequest) error {
	query := `
		INSERT INTO time_off_requests (employee_id, employee_name, start_date, end_date, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, status, submitted_date, review_notes, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{request.EmployeeID, request.EmployeeName, request.StartDate, request.EndDate, request.Reason}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&request.ID, &request.Status, &request.SubmittedDate, &request.ReviewNotes, &request.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetRequestByID(id int64) (*domain.TimeOffRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM time_off_requests WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	row := r.dbpool.QueryRowContext(ctx, query, id)
	return scanRequest(row.Scan)
}

func (r *Repository) GetRequests(filter RequestFilter) ([]*domain.TimeOffRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM time_off_requests
		WHERE ($1::text = '' OR status = $1)
		  AND ($2::bigint = 0 OR employee_id = $2)
		ORDER BY submitted_date DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, string(filter.Status), filter.EmployeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*domain.TimeOffRequest, 0)
	for rows.Next() {
		request, err := scanRequest(rows.Scan)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// GetBlockingRequests feeds the overlap check on submission: the employee's
// pending and approved requests whose inclusive date range touches
// [start, end].
func (r *Repository) GetBlockingRequests(employeeID int64, start, end domain.Date) ([]*domain.TimeOffRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM time_off_requests
		WHERE employee_id = $1
		  AND status IN ('pending', 'approved')
		  AND start_date <= $3
		  AND end_date >= $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*domain.TimeOffRequest, 0)
	for rows.Next() {
		request, err := scanRequest(rows.Scan)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// ReviewRequest records the terminal transition. The version predicate makes
// two managers racing on the same request lose cleanly: the second reviewer
// gets sql.ErrNoRows.
func (r *Repository) ReviewRequest(request *domain.TimeOffRequest) error {
	query := `
		UPDATE time_off_requests
		SET
			status = $1,
			reviewed_by = $2,
			reviewed_date = $3,
			review_notes = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{request.Status, request.ReviewedBy, request.ReviewedDate, request.ReviewNotes, request.ID, request.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&request.Version); err != nil {
		return err
	}

	return nil
}
