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

type routeTimeRepository struct {
	db *pgxpool.Pool
}

func NewRouteTimeRepository(db *pgxpool.Pool) repository.RouteTimeRepository {
	return &routeTimeRepository{db: db}
}

func (r *routeTimeRepository) Create(ctx context.Context, routeTime *domain.RouteTime) error {
	query := `
		INSERT INTO route_times (id, route_id, period_id, average_minutes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	routeTime.ID = uuid.New()
	routeTime.CreatedAt = time.Now()
	routeTime.UpdatedAt = time.Now()

	_, err := r.db.Exec(ctx, query,
		routeTime.ID,
		routeTime.RouteID,
		routeTime.PeriodID,
		routeTime.AverageMinutes,
		routeTime.CreatedAt,
		routeTime.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRouteTimeAlreadyExists
		}
		return err
	}

	return nil
}

func (r *routeTimeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.RouteTime, error) {
	query := `
		SELECT id, route_id, period_id, average_minutes, created_at, updated_at
		FROM route_times
		WHERE id = $1
	`

	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *routeTimeRepository) GetByRouteAndPeriod(ctx context.Context, routeID, periodID uuid.UUID) (*domain.RouteTime, error) {
	query := `
		SELECT id, route_id, period_id, average_minutes, created_at, updated_at
		FROM route_times
		WHERE route_id = $1 AND period_id = $2
	`

	return r.scanOne(r.db.QueryRow(ctx, query, routeID, periodID))
}

func (r *routeTimeRepository) GetByRoute(ctx context.Context, routeID uuid.UUID) ([]*domain.RouteTime, error) {
	query := `
		SELECT id, route_id, period_id, average_minutes, created_at, updated_at
		FROM route_times
		WHERE route_id = $1
	`

	rows, err := r.db.Query(ctx, query, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routeTimes []*domain.RouteTime
	for rows.Next() {
		rt := &domain.RouteTime{}
		err := rows.Scan(
			&rt.ID,
			&rt.RouteID,
			&rt.PeriodID,
			&rt.AverageMinutes,
			&rt.CreatedAt,
			&rt.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		routeTimes = append(routeTimes, rt)
	}

	return routeTimes, rows.Err()
}

func (r *routeTimeRepository) Update(ctx context.Context, routeTime *domain.RouteTime) error {
	query := `
		UPDATE route_times
		SET average_minutes = $2, updated_at = $3
		WHERE id = $1
	`

	routeTime.UpdatedAt = time.Now()

	tag, err := r.db.Exec(ctx, query,
		routeTime.ID,
		routeTime.AverageMinutes,
		routeTime.UpdatedAt,
	)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRouteTimeNotFound
	}

	return nil
}

func (r *routeTimeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM route_times WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRouteTimeNotFound
	}

	return nil
}

func (r *routeTimeRepository) scanOne(row pgx.Row) (*domain.RouteTime, error) {
	rt := &domain.RouteTime{}

	err := row.Scan(
		&rt.ID,
		&rt.RouteID,
		&rt.PeriodID,
		&rt.AverageMinutes,
		&rt.CreatedAt,
		&rt.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRouteTimeNotFound
		}
		return nil, err
	}

	return rt, nil
}
