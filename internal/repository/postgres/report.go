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

type reportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *domain.Report) error {
	query := `
		INSERT INTO reports (id, route_id, author_id, type, title, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	report.ID = uuid.New()
	report.CreatedAt = time.Now()
	report.UpdatedAt = report.CreatedAt

	_, err := r.db.Exec(ctx, query,
		report.ID,
		report.RouteID,
		report.AuthorID,
		int(report.Type),
		report.Title,
		report.Body,
		report.CreatedAt,
		report.UpdatedAt,
	)

	return err
}

func (r *reportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	query := `
		SELECT id, route_id, author_id, type, title, body, created_at, updated_at
		FROM reports
		WHERE id = $1
	`

	report := &domain.Report{}
	var typeCode int

	err := r.db.QueryRow(ctx, query, id).Scan(
		&report.ID,
		&report.RouteID,
		&report.AuthorID,
		&typeCode,
		&report.Title,
		&report.Body,
		&report.CreatedAt,
		&report.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}

	report.Type = domain.ReportType(typeCode)
	return report, nil
}

func (r *reportRepository) GetByRoute(ctx context.Context, routeID uuid.UUID, limit, offset int) ([]*domain.Report, error) {
	query := `
		SELECT id, route_id, author_id, type, title, body, created_at, updated_at
		FROM reports
		WHERE route_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.list(ctx, query, routeID, limit, offset)
}

func (r *reportRepository) GetByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]*domain.Report, error) {
	query := `
		SELECT id, route_id, author_id, type, title, body, created_at, updated_at
		FROM reports
		WHERE author_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.list(ctx, query, authorID, limit, offset)
}

// Update изменяет содержимое жалобы; route_id, author_id и created_at
// неизменяемы после создания.
func (r *reportRepository) Update(ctx context.Context, report *domain.Report) error {
	query := `
		UPDATE reports
		SET type = $2, title = $3, body = $4, updated_at = $5
		WHERE id = $1
	`

	report.UpdatedAt = time.Now()

	tag, err := r.db.Exec(ctx, query,
		report.ID,
		int(report.Type),
		report.Title,
		report.Body,
		report.UpdatedAt,
	)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrReportNotFound
	}

	return nil
}

func (r *reportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrReportNotFound
	}

	return nil
}

func (r *reportRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Report, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*domain.Report
	for rows.Next() {
		report := &domain.Report{}
		var typeCode int
		err := rows.Scan(
			&report.ID,
			&report.RouteID,
			&report.AuthorID,
			&typeCode,
			&report.Title,
			&report.Body,
			&report.CreatedAt,
			&report.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		report.Type = domain.ReportType(typeCode)
		reports = append(reports, report)
	}

	return reports, rows.Err()
}
