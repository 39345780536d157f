package report

import (
	"context"
	"fmt"

	"github.com/frontandrew/viabus/internal/domain"
	"github.com/frontandrew/viabus/internal/pkg/logger"
	"github.com/frontandrew/viabus/internal/repository"
	"github.com/google/uuid"
)

// CreateReportRequest - запрос на создание жалобы
type CreateReportRequest struct {
	RouteID uuid.UUID         `json:"route_id" validate:"required"`
	Type    domain.ReportType `json:"type" validate:"required"`
	Title   string            `json:"title" validate:"required"`
	Body    string            `json:"body" validate:"required"`
}

// UpdateReportRequest - запрос на обновление жалобы
// Не указанные поля остаются без изменений
type UpdateReportRequest struct {
	Type  *domain.ReportType `json:"type,omitempty"`
	Title *string            `json:"title,omitempty"`
	Body  *string            `json:"body,omitempty"`
}

// Service содержит бизнес-логику работы с жалобами
type Service struct {
	reportRepo repository.ReportRepository
	routeRepo  repository.RouteRepository
	userRepo   repository.UserRepository
	logger     logger.Logger

	// Опциональный привилегированный пользователь, которому разрешено
	// удалять чужие жалобы; nil отключает переопределение
	adminOverrideID *uuid.UUID
}

// NewService создает новый экземпляр ReportService
func NewService(
	reportRepo repository.ReportRepository,
	routeRepo repository.RouteRepository,
	userRepo repository.UserRepository,
	logger logger.Logger,
	adminOverrideID *uuid.UUID,
) *Service {
	return &Service{
		reportRepo:      reportRepo,
		routeRepo:       routeRepo,
		userRepo:        userRepo,
		logger:          logger,
		adminOverrideID: adminOverrideID,
	}
}

// CreateReport создает новую жалобу от имени authorID
func (s *Service) CreateReport(ctx context.Context, authorID uuid.UUID, req *CreateReportRequest) (*domain.Report, error) {
	s.logger.Info("Creating new report", map[string]interface{}{
		"route_id":  req.RouteID,
		"author_id": authorID,
	})

	report := &domain.Report{
		RouteID:  req.RouteID,
		AuthorID: authorID,
		Type:     req.Type,
		Title:    req.Title,
		Body:     req.Body,
	}

	if err := report.Validate(); err != nil {
		return nil, err
	}

	// Обе ссылки должны существовать; при отсутствии любой из них
	// жалоба не сохраняется
	if _, err := s.routeRepo.GetByID(ctx, report.RouteID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, report.AuthorID); err != nil {
		return nil, err
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		s.logger.Error("Failed to create report", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	s.logger.Info("Report created successfully", map[string]interface{}{
		"report_id": report.ID,
	})

	return report, nil
}

// GetReportByID возвращает жалобу по ID
func (s *Service) GetReportByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	return s.reportRepo.GetByID(ctx, id)
}

// GetReportsByRoute возвращает жалобы по маршруту с пагинацией
func (s *Service) GetReportsByRoute(ctx context.Context, routeID uuid.UUID, limit, offset int) ([]*domain.Report, error) {
	return s.reportRepo.GetByRoute(ctx, routeID, limit, offset)
}

// GetReportsByAuthor возвращает жалобы пользователя с пагинацией
func (s *Service) GetReportsByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]*domain.Report, error) {
	return s.reportRepo.GetByAuthor(ctx, authorID, limit, offset)
}

// UpdateReport изменяет жалобу. Разрешено только автору;
// при нарушении жалоба остается без изменений.
func (s *Service) UpdateReport(ctx context.Context, id, actorID uuid.UUID, req *UpdateReportRequest) (*domain.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !report.CanBeUpdatedBy(actorID) {
		s.logger.Warn("Report update denied", map[string]interface{}{
			"report_id": report.ID,
			"actor_id":  actorID,
		})
		return nil, domain.ErrNotReportAuthor
	}

	if req.Type != nil {
		report.Type = *req.Type
	}
	if req.Title != nil {
		report.Title = *req.Title
	}
	if req.Body != nil {
		report.Body = *req.Body
	}

	if err := report.Validate(); err != nil {
		return nil, err
	}

	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}

	return report, nil
}

// DeleteReport удаляет жалобу. Разрешено автору и, если настроен,
// привилегированному пользователю.
func (s *Service) DeleteReport(ctx context.Context, id, actorID uuid.UUID) error {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !report.CanBeDeletedBy(actorID, s.adminOverrideID) {
		s.logger.Warn("Report delete denied", map[string]interface{}{
			"report_id": report.ID,
			"actor_id":  actorID,
		})
		return domain.ErrNotReportAuthor
	}

	return s.reportRepo.Delete(ctx, report.ID)
}
