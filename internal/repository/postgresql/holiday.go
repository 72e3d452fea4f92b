package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-timekeeping/internal/domain/holiday"
	"github.com/cmlabs-hris/hris-timekeeping/internal/pkg/database"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// Create implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (id, date, name, recurrence_rule, created_at)
		VALUES (uuidv7(), $1::date, $2, $3, NOW())
		RETURNING id, date, name, recurrence_rule, created_at
	`

	var created holiday.Holiday
	err := q.QueryRow(ctx, query, dateArg(h.Date), h.Name, h.RecurrenceRule).Scan(
		&created.ID, &created.Date, &created.Name, &created.RecurrenceRule, &created.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return created, nil
}

// Delete implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}

// ListAll implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ListAll(ctx context.Context) ([]holiday.Holiday, error) {
	return r.list(ctx, `SELECT id, date, name, recurrence_rule, created_at FROM holidays ORDER BY date ASC`)
}

// ListByYear implements holiday.HolidayRepository.
func (r *holidayRepositoryImpl) ListByYear(ctx context.Context, year int) ([]holiday.Holiday, error) {
	query := `
		SELECT id, date, name, recurrence_rule, created_at
		FROM holidays
		WHERE EXTRACT(YEAR FROM date) = $1 OR recurrence_rule IS NOT NULL
		ORDER BY date ASC
	`
	return r.list(ctx, query, year)
}

func (r *holidayRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var h holiday.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.RecurrenceRule, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return holidays, nil
}
