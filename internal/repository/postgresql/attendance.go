package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceSelect = `
	SELECT a.id, a.employee_id, a.shift_id, a.date, a.check_in, a.check_out,
		   a.work_minutes, a.late_minutes, a.early_minutes, a.ot_minutes, a.is_holiday,
		   a.note, a.status, a.approver_id, a.approved_at, a.manager_note,
		   a.manual_check_in, a.manual_check_out, a.fix_reason, a.created_at, a.updated_at,
		   e.full_name AS employee_name, s.name AS shift_name, u.full_name AS approver_name
	FROM attendance_records a
	LEFT JOIN employees e ON e.id = a.employee_id
	LEFT JOIN shifts s ON s.id = a.shift_id
	LEFT JOIN users u ON u.id = a.approver_id
`

func scanAttendance(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.ShiftID, &rec.Date, &rec.CheckIn, &rec.CheckOut,
		&rec.WorkMinutes, &rec.LateMinutes, &rec.EarlyMinutes, &rec.OtMinutes, &rec.IsHoliday,
		&rec.Note, &rec.Status, &rec.ApproverID, &rec.ApprovedAt, &rec.ManagerNote,
		&rec.ManualCheckIn, &rec.ManualCheckOut, &rec.FixReason, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName, &rec.ShiftName, &rec.ApproverName,
	)
	return rec, err
}

func (a *attendanceRepository) one(ctx context.Context, where string, args ...any) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	rec, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+where, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return rec, nil
}

func (a *attendanceRepository) many(ctx context.Context, query string, args ...any) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return records, nil
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, shift_id, date, check_in, check_out,
			work_minutes, late_minutes, early_minutes, ot_minutes, is_holiday, note, status,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3::date, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW()
		) RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		rec.EmployeeID,
		rec.ShiftID,
		dateArg(rec.Date),
		rec.CheckIn,
		rec.CheckOut,
		rec.WorkMinutes,
		rec.LateMinutes,
		rec.EarlyMinutes,
		rec.OtMinutes,
		rec.IsHoliday,
		rec.Note,
		rec.Status,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return a.GetByID(ctx, id)
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	return a.one(ctx, " WHERE a.id = $1", id)
}

// GetByEmployeeShiftDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeShiftDate(ctx context.Context, employeeID, shiftID string, date time.Time) (attendance.Record, error) {
	return a.one(ctx, " WHERE a.employee_id = $1 AND a.shift_id = $2 AND a.date = $3::date", employeeID, shiftID, dateArg(date))
}

// GetLatestOpen implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetLatestOpen(ctx context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	where := `
		WHERE a.employee_id = $1
		  AND a.date = $2::date
		  AND a.check_in IS NOT NULL
		  AND a.check_out IS NULL
		ORDER BY a.check_in DESC
		LIMIT 1
	`
	return a.one(ctx, where, employeeID, dateArg(date))
}

// ListByEmployeeDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeDate(ctx context.Context, employeeID string, date time.Time) ([]attendance.Record, error) {
	query := attendanceSelect + `
		WHERE a.employee_id = $1 AND a.date = $2::date
		ORDER BY a.check_in ASC NULLS LAST
	`
	return a.many(ctx, query, employeeID, dateArg(date))
}

// ListByEmployeeRange implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	query := attendanceSelect + `
		WHERE a.employee_id = $1 AND a.date BETWEEN $2::date AND $3::date
		ORDER BY a.date ASC, a.check_in ASC NULLS LAST
	`
	return a.many(ctx, query, employeeID, dateArg(from), dateArg(to))
}

// Update implements attendance.AttendanceRepository. Every mutable column is written.
func (a *attendanceRepository) Update(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET check_in = $1, check_out = $2,
			work_minutes = $3, late_minutes = $4, early_minutes = $5, ot_minutes = $6,
			is_holiday = $7, note = $8, status = $9,
			approver_id = $10, approved_at = $11, manager_note = $12,
			manual_check_in = $13, manual_check_out = $14, fix_reason = $15,
			updated_at = NOW()
		WHERE id = $16
	`

	commandTag, err := q.Exec(ctx, query,
		rec.CheckIn, rec.CheckOut,
		rec.WorkMinutes, rec.LateMinutes, rec.EarlyMinutes, rec.OtMinutes,
		rec.IsHoliday, rec.Note, rec.Status,
		rec.ApproverID, rec.ApprovedAt, rec.ManagerNote,
		rec.ManualCheckIn, rec.ManualCheckOut, rec.FixReason,
		rec.ID,
	)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}

	return a.GetByID(ctx, rec.ID)
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Record, int64, error) {
	q := GetQuerier(ctx, a.db)

	var conditions []string
	var args []any

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", len(args)))
	}
	if filter.FromDate != nil {
		args = append(args, dateArg(*filter.FromDate))
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d::date", len(args)))
	}
	if filter.ToDate != nil {
		args = append(args, dateArg(*filter.ToDate))
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d::date", len(args)))
	}
	if filter.Status != nil && *filter.Status != "" {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM attendance_records a"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	page := max(filter.Page, 1)
	args = append(args, limit, (page-1)*limit)

	query := fmt.Sprintf("%s%s ORDER BY a.date %s, a.check_in %s LIMIT $%d OFFSET $%d",
		attendanceSelect, where, sortOrder, sortOrder, len(args)-1, len(args))

	records, err := a.many(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
