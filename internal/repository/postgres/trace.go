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

type traceRepository struct {
	db *pgxpool.Pool
}

func NewTraceRepository(db *pgxpool.Pool) repository.TraceRepository {
	return &traceRepository{db: db}
}

// UpsertTrace создает или заменяет траекторию маршрута.
// У маршрута не более одной траектории (unique по route_id).
func (r *traceRepository) UpsertTrace(ctx context.Context, trace *domain.Trace) error {
	query := `
		INSERT INTO traces (id, route_id, geometry, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (route_id)
		DO UPDATE SET geometry = EXCLUDED.geometry, updated_at = EXCLUDED.updated_at
	`

	if trace.ID == uuid.Nil {
		trace.ID = uuid.New()
		trace.CreatedAt = time.Now()
	}
	trace.UpdatedAt = time.Now()

	_, err := r.db.Exec(ctx, query,
		trace.ID,
		trace.RouteID,
		trace.Geometry,
		trace.CreatedAt,
		trace.UpdatedAt,
	)

	return err
}

func (r *traceRepository) GetTraceByRoute(ctx context.Context, routeID uuid.UUID) (*domain.Trace, error) {
	query := `
		SELECT id, route_id, geometry, created_at, updated_at
		FROM traces
		WHERE route_id = $1
	`

	trace := &domain.Trace{}
	err := r.db.QueryRow(ctx, query, routeID).Scan(
		&trace.ID,
		&trace.RouteID,
		&trace.Geometry,
		&trace.CreatedAt,
		&trace.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTraceNotFound
		}
		return nil, err
	}

	return trace, nil
}

// ReplaceStops атомарно заменяет набор остановок маршрута
func (r *traceRepository) ReplaceStops(ctx context.Context, routeID uuid.UUID, stops []*domain.Stop) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM stops WHERE route_id = $1`, routeID); err != nil {
		return err
	}

	query := `
		INSERT INTO stops (id, route_id, name, seq, lat, lng)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, stop := range stops {
		stop.ID = uuid.New()
		stop.RouteID = routeID
		if _, err := tx.Exec(ctx, query, stop.ID, stop.RouteID, stop.Name, stop.Seq, stop.Lat, stop.Lng); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *traceRepository) GetStopsByRoute(ctx context.Context, routeID uuid.UUID) ([]*domain.Stop, error) {
	query := `
		SELECT id, route_id, name, seq, lat, lng
		FROM stops
		WHERE route_id = $1
		ORDER BY seq
	`

	rows, err := r.db.Query(ctx, query, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stops []*domain.Stop
	for rows.Next() {
		stop := &domain.Stop{}
		err := rows.Scan(
			&stop.ID,
			&stop.RouteID,
			&stop.Name,
			&stop.Seq,
			&stop.Lat,
			&stop.Lng,
		)
		if err != nil {
			return nil, err
		}
		stops = append(stops, stop)
	}

	return stops, rows.Err()
}
