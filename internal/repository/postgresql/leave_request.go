package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/leave"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestSelect = `
	SELECT lr.id, lr.employee_id, lr.leave_type_id, lr.from_date, lr.to_date, lr.days, lr.reason,
		   lr.status, lr.approver_id, lr.decision_at, lr.note, lr.created_at, lr.updated_at,
		   e.full_name AS employee_name, lt.name AS leave_type_name, COALESCE(lt.paid, FALSE)
	FROM leave_requests lr
	LEFT JOIN employees e ON e.id = lr.employee_id
	LEFT JOIN leave_types lt ON lt.id = lr.leave_type_id
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.LeaveTypeID, &lr.FromDate, &lr.ToDate, &lr.Days, &lr.Reason,
		&lr.Status, &lr.ApproverID, &lr.DecisionAt, &lr.Note, &lr.CreatedAt, &lr.UpdatedAt,
		&lr.EmployeeName, &lr.LeaveTypeName, &lr.Paid,
	)
	return lr, err
}

func (r *leaveRequestRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return requests, nil
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type_id, from_date, to_date, days, reason, status, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3::date, $4::date, $5, $6, $7, NOW(), NOW()
		) RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		request.EmployeeID,
		request.LeaveTypeID,
		dateArg(request.FromDate),
		dateArg(request.ToDate),
		request.Days,
		request.Reason,
		request.Status,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return leave.LeaveRequest{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, leaveRequestSelect+" WHERE lr.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return lr, nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	var conditions []string
	var args []any

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("lr.employee_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("lr.status = $%d", len(args)))
	}

	query := leaveRequestSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY lr.from_date DESC, lr.created_at DESC"

	return r.list(ctx, query, args...)
}

// Decide implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Decide(ctx context.Context, id string, status leave.RequestStatus, approverID string, decisionAt time.Time, note *string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, approver_id = $2, decision_at = $3, note = $4, updated_at = NOW()
		WHERE id = $5 AND status = $6
	`

	commandTag, err := q.Exec(ctx, query, status, approverID, decisionAt, note, id, leave.StatusPending)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to decide leave request: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		// Either missing or no longer pending.
		if _, err := r.GetByID(ctx, id); err != nil {
			return leave.LeaveRequest{}, err
		}
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	return r.GetByID(ctx, id)
}

// ListApprovedOverlapping implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	query := leaveRequestSelect + `
		WHERE lr.employee_id = $1
		  AND lr.status = $2
		  AND lr.from_date <= $4::date
		  AND lr.to_date >= $3::date
		ORDER BY lr.from_date ASC
	`
	return r.list(ctx, query, employeeID, leave.StatusApproved, dateArg(from), dateArg(to))
}
