package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frontandrew/viabus/internal/domain"
	"github.com/frontandrew/viabus/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type periodRepository struct {
	db *pgxpool.Pool
}

func NewPeriodRepository(db *pgxpool.Pool) repository.PeriodRepository {
	return &periodRepository{db: db}
}

// Время суток хранится в колонках start_minutes/end_minutes как
// число минут от полуночи - это позволяет сравнивать интервалы в Go
// без парсинга time-колонок.

func (r *periodRepository) Create(ctx context.Context, period *domain.Period) error {
	query := `
		INSERT INTO periods (id, name, start_minutes, end_minutes, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	period.ID = uuid.New()
	period.CreatedAt = time.Now()
	period.UpdatedAt = time.Now()

	_, err := r.db.Exec(ctx, query,
		period.ID,
		period.Name,
		int(period.Start),
		int(period.End),
		period.Description,
		period.CreatedAt,
		period.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPeriodAlreadyExists
		}
		return err
	}

	return nil
}

func (r *periodRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Period, error) {
	query := `
		SELECT id, name, start_minutes, end_minutes, description, created_at, updated_at
		FROM periods
		WHERE id = $1
	`

	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *periodRepository) GetByName(ctx context.Context, name string) (*domain.Period, error) {
	query := `
		SELECT id, name, start_minutes, end_minutes, description, created_at, updated_at
		FROM periods
		WHERE name = $1
	`

	return r.scanOne(r.db.QueryRow(ctx, query, name))
}

func (r *periodRepository) GetAll(ctx context.Context) ([]*domain.Period, error) {
	query := `
		SELECT id, name, start_minutes, end_minutes, description, created_at, updated_at
		FROM periods
		ORDER BY start_minutes
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []*domain.Period
	for rows.Next() {
		period := &domain.Period{}
		var startMinutes, endMinutes int
		err := rows.Scan(
			&period.ID,
			&period.Name,
			&startMinutes,
			&endMinutes,
			&period.Description,
			&period.CreatedAt,
			&period.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		period.Start = domain.TimeOfDay(startMinutes)
		period.End = domain.TimeOfDay(endMinutes)
		periods = append(periods, period)
	}

	return periods, rows.Err()
}

func (r *periodRepository) Update(ctx context.Context, period *domain.Period) error {
	query := `
		UPDATE periods
		SET name = $2, start_minutes = $3, end_minutes = $4, description = $5, updated_at = $6
		WHERE id = $1
	`

	period.UpdatedAt = time.Now()

	tag, err := r.db.Exec(ctx, query,
		period.ID,
		period.Name,
		int(period.Start),
		int(period.End),
		period.Description,
		period.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPeriodAlreadyExists
		}
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPeriodNotFound
	}

	return nil
}

func (r *periodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM periods WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPeriodNotFound
	}

	return nil
}

func (r *periodRepository) scanOne(row pgx.Row) (*domain.Period, error) {
	period := &domain.Period{}
	var startMinutes, endMinutes int

	err := row.Scan(
		&period.ID,
		&period.Name,
		&startMinutes,
		&endMinutes,
		&period.Description,
		&period.CreatedAt,
		&period.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPeriodNotFound
		}
		return nil, err
	}

	period.Start = domain.TimeOfDay(startMinutes)
	period.End = domain.TimeOfDay(endMinutes)
	return period, nil
}
