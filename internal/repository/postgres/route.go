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

type routeRepository struct {
	db *pgxpool.Pool
}

func NewRouteRepository(db *pgxpool.Pool) repository.RouteRepository {
	return &routeRepository{db: db}
}

func (r *routeRepository) Create(ctx context.Context, route *domain.Route) error {
	query := `
		INSERT INTO routes (id, name, origin, destination, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	route.ID = uuid.New()
	route.CreatedAt = time.Now()
	route.UpdatedAt = time.Now()

	_, err := r.db.Exec(ctx, query,
		route.ID,
		route.Name,
		route.Origin,
		route.Destination,
		route.CreatedAt,
		route.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRouteAlreadyExists
		}
		return err
	}

	return nil
}

func (r *routeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Route, error) {
	query := `
		SELECT id, name, origin, destination, created_at, updated_at
		FROM routes
		WHERE id = $1
	`

	route := &domain.Route{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&route.ID,
		&route.Name,
		&route.Origin,
		&route.Destination,
		&route.CreatedAt,
		&route.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRouteNotFound
		}
		return nil, err
	}

	return route, nil
}

func (r *routeRepository) GetByName(ctx context.Context, name string) (*domain.Route, error) {
	query := `
		SELECT id, name, origin, destination, created_at, updated_at
		FROM routes
		WHERE name = $1
	`

	route := &domain.Route{}
	err := r.db.QueryRow(ctx, query, name).Scan(
		&route.ID,
		&route.Name,
		&route.Origin,
		&route.Destination,
		&route.CreatedAt,
		&route.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRouteNotFound
		}
		return nil, err
	}

	return route, nil
}

func (r *routeRepository) List(ctx context.Context, limit, offset int) ([]*domain.Route, error) {
	query := `
		SELECT id, name, origin, destination, created_at, updated_at
		FROM routes
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []*domain.Route
	for rows.Next() {
		route := &domain.Route{}
		err := rows.Scan(
			&route.ID,
			&route.Name,
			&route.Origin,
			&route.Destination,
			&route.CreatedAt,
			&route.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}

	return routes, rows.Err()
}

func (r *routeRepository) Update(ctx context.Context, route *domain.Route) error {
	query := `
		UPDATE routes
		SET name = $2, origin = $3, destination = $4, updated_at = $5
		WHERE id = $1
	`

	route.UpdatedAt = time.Now()

	tag, err := r.db.Exec(ctx, query,
		route.ID,
		route.Name,
		route.Origin,
		route.Destination,
		route.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrRouteAlreadyExists
		}
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRouteNotFound
	}

	return nil
}

// Delete удаляет маршрут; зависимые строки (траектории, остановки,
// времена по периодам, избранное, жалобы) удаляет каскад в БД.
func (r *routeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM routes WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRouteNotFound
	}

	return nil
}
