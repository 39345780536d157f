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

type favoriteRepository struct {
	db *pgxpool.Pool
}

func NewFavoriteRepository(db *pgxpool.Pool) repository.FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(ctx context.Context, favorite *domain.FavoriteRoute) error {
	query := `
		INSERT INTO favorite_routes (id, user_id, route_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	favorite.ID = uuid.New()
	favorite.CreatedAt = time.Now()

	_, err := r.db.Exec(ctx, query,
		favorite.ID,
		favorite.UserID,
		favorite.RouteID,
		favorite.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrFavoriteAlreadyExists
		}
		return err
	}

	return nil
}

func (r *favoriteRepository) GetByUserAndRoute(ctx context.Context, userID, routeID uuid.UUID) (*domain.FavoriteRoute, error) {
	query := `
		SELECT id, user_id, route_id, created_at
		FROM favorite_routes
		WHERE user_id = $1 AND route_id = $2
	`

	favorite := &domain.FavoriteRoute{}
	err := r.db.QueryRow(ctx, query, userID, routeID).Scan(
		&favorite.ID,
		&favorite.UserID,
		&favorite.RouteID,
		&favorite.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFavoriteNotFound
		}
		return nil, err
	}

	return favorite, nil
}

// GetByUser возвращает избранное пользователя вместе с данными маршрутов
func (r *favoriteRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]*domain.FavoriteRoute, error) {
	query := `
		SELECT f.id, f.user_id, f.route_id, f.created_at,
		       r.id, r.name, r.origin, r.destination, r.created_at, r.updated_at
		FROM favorite_routes f
		JOIN routes r ON r.id = f.route_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []*domain.FavoriteRoute
	for rows.Next() {
		favorite := &domain.FavoriteRoute{Route: &domain.Route{}}
		err := rows.Scan(
			&favorite.ID,
			&favorite.UserID,
			&favorite.RouteID,
			&favorite.CreatedAt,
			&favorite.Route.ID,
			&favorite.Route.Name,
			&favorite.Route.Origin,
			&favorite.Route.Destination,
			&favorite.Route.CreatedAt,
			&favorite.Route.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		favorites = append(favorites, favorite)
	}

	return favorites, rows.Err()
}

func (r *favoriteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM favorite_routes WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrFavoriteNotFound
	}

	return nil
}
