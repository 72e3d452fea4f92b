package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/shift"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

const shiftColumns = `id, name, start_time, end_time, grace_minutes, ot_multiplier, is_overnight, is_active, created_at, updated_at`

func toPgTime(d time.Duration) pgtype.Time {
	return pgtype.Time{Microseconds: d.Microseconds(), Valid: true}
}

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	var start, end pgtype.Time
	err := row.Scan(
		&s.ID, &s.Name, &start, &end, &s.GraceMinutes, &s.OtMultiplier,
		&s.IsOvernight, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return shift.Shift{}, err
	}
	s.StartTime = time.Duration(start.Microseconds) * time.Microsecond
	s.EndTime = time.Duration(end.Microseconds) * time.Microsecond
	return s, nil
}

func (r *shiftRepositoryImpl) one(ctx context.Context, query string, args ...any) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanShift(q.QueryRow(ctx, query, args...))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return shift.Shift{}, shift.ErrShiftNotFound
		case isUniqueViolation(err):
			return shift.Shift{}, shift.ErrShiftNameExists
		}
		return shift.Shift{}, fmt.Errorf("failed to query shift: %w", err)
	}
	return s, nil
}

// Create implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	query := `
		INSERT INTO shifts (id, name, start_time, end_time, grace_minutes, ot_multiplier, is_overnight, is_active, created_at, updated_at)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING ` + shiftColumns
	return r.one(ctx, query, s.Name, toPgTime(s.StartTime), toPgTime(s.EndTime), s.GraceMinutes, s.OtMultiplier, s.IsOvernight, s.IsActive)
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	return r.one(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = $1`, id)
}

// GetDefault implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetDefault(ctx context.Context) (shift.Shift, error) {
	s, err := r.one(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE is_active ORDER BY start_time ASC, created_at ASC LIMIT 1`)
	if errors.Is(err, shift.ErrShiftNotFound) {
		return shift.Shift{}, shift.ErrNoActiveShift
	}
	return s, err
}

// List implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) List(ctx context.Context) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+shiftColumns+` FROM shifts ORDER BY start_time ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return shifts, nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	query := `
		UPDATE shifts
		SET name = $1, start_time = $2, end_time = $3, grace_minutes = $4, ot_multiplier = $5,
			is_overnight = $6, is_active = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING ` + shiftColumns
	return r.one(ctx, query, s.Name, toPgTime(s.StartTime), toPgTime(s.EndTime), s.GraceMinutes, s.OtMultiplier, s.IsOvernight, s.IsActive, s.ID)
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return shift.ErrShiftInUse
		}
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}
	return nil
}
