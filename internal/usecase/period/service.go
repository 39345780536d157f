package period

import (
	"context"
	"errors"
	"fmt"

	"github.com/frontandrew/viabus/internal/domain"
	"github.com/frontandrew/viabus/internal/pkg/logger"
	"github.com/frontandrew/viabus/internal/repository"
	"github.com/google/uuid"
)

// CreatePeriodRequest - запрос на создание периода
type CreatePeriodRequest struct {
	Name        string           `json:"name" validate:"required"`
	Start       domain.TimeOfDay `json:"start" validate:"required"`
	End         domain.TimeOfDay `json:"end" validate:"required"`
	Description string           `json:"description,omitempty"`
}

// UpdatePeriodRequest - запрос на обновление периода
// Не указанные поля остаются без изменений
type UpdatePeriodRequest struct {
	Name        *string           `json:"name,omitempty"`
	Start       *domain.TimeOfDay `json:"start,omitempty"`
	End         *domain.TimeOfDay `json:"end,omitempty"`
	Description *string           `json:"description,omitempty"`
}

// CreateRouteTimeRequest - запрос на создание записи среднего времени
type CreateRouteTimeRequest struct {
	RouteID        uuid.UUID `json:"route_id" validate:"required"`
	PeriodID       uuid.UUID `json:"period_id" validate:"required"`
	AverageMinutes int       `json:"average_minutes" validate:"required"`
}

// ETAResult - результат ETA-запроса: активный период и среднее
// время в пути по маршруту в течение этого периода
type ETAResult struct {
	RouteID        uuid.UUID      `json:"route_id"`
	Period         *domain.Period `json:"period"`
	AverageMinutes int            `json:"average_minutes"`
}

// Service содержит бизнес-логику работы с периодами и временем в пути
type Service struct {
	periodRepo    repository.PeriodRepository
	routeRepo     repository.RouteRepository
	routeTimeRepo repository.RouteTimeRepository
	logger        logger.Logger
}

// NewService создает новый экземпляр PeriodService
func NewService(
	periodRepo repository.PeriodRepository,
	routeRepo repository.RouteRepository,
	routeTimeRepo repository.RouteTimeRepository,
	logger logger.Logger,
) *Service {
	return &Service{
		periodRepo:    periodRepo,
		routeRepo:     routeRepo,
		routeTimeRepo: routeTimeRepo,
		logger:        logger,
	}
}

// CreatePeriod создает новый период.
// Порядок проверок: поля → уникальность названия → пересечения
// со всеми существующими периодами. Первый конфликт прерывает создание.
func (s *Service) CreatePeriod(ctx context.Context, req *CreatePeriodRequest) (*domain.Period, error) {
	s.logger.Info("Creating new period", map[string]interface{}{
		"name":  req.Name,
		"start": req.Start.String(),
		"end":   req.End.String(),
	})

	period := &domain.Period{
		Name:        req.Name,
		Start:       req.Start,
		End:         req.End,
		Description: req.Description,
	}

	if err := period.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkNameUnique(ctx, period.Name, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.checkNoOverlap(ctx, period, uuid.Nil); err != nil {
		return nil, err
	}

	if err := s.periodRepo.Create(ctx, period); err != nil {
		s.logger.Error("Failed to create period", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to create period: %w", err)
	}

	s.logger.Info("Period created successfully", map[string]interface{}{
		"period_id": period.ID,
		"name":      period.Name,
	})

	return period, nil
}

// UpdatePeriod обновляет период. Проверки уникальности и пересечений
// исключают текущую запись самого периода, чтобы период можно было
// обновить "на месте" без конфликта с самим собой.
func (s *Service) UpdatePeriod(ctx context.Context, id uuid.UUID, req *UpdatePeriodRequest) (*domain.Period, error) {
	period, err := s.periodRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		period.Name = *req.Name
	}
	if req.Start != nil {
		period.Start = *req.Start
	}
	if req.End != nil {
		period.End = *req.End
	}
	if req.Description != nil {
		period.Description = *req.Description
	}

	if err := period.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkNameUnique(ctx, period.Name, period.ID); err != nil {
		return nil, err
	}

	if err := s.checkNoOverlap(ctx, period, period.ID); err != nil {
		return nil, err
	}

	if err := s.periodRepo.Update(ctx, period); err != nil {
		s.logger.Error("Failed to update period", map[string]interface{}{
			"period_id": period.ID,
			"error":     err.Error(),
		})
		return nil, fmt.Errorf("failed to update period: %w", err)
	}

	return period, nil
}

// GetPeriodByID возвращает период по ID
func (s *Service) GetPeriodByID(ctx context.Context, id uuid.UUID) (*domain.Period, error) {
	return s.periodRepo.GetByID(ctx, id)
}

// ListPeriods возвращает все периоды
func (s *Service) ListPeriods(ctx context.Context) ([]*domain.Period, error) {
	return s.periodRepo.GetAll(ctx)
}

// DeletePeriod удаляет период
func (s *Service) DeletePeriod(ctx context.Context, id uuid.UUID) error {
	return s.periodRepo.Delete(ctx, id)
}

// ResolveCurrent возвращает период, активный в указанное время суток.
// Если ни один период не подходит, возвращается ErrNoActivePeriod.
func (s *Service) ResolveCurrent(ctx context.Context, at domain.TimeOfDay) (*domain.Period, error) {
	periods, err := s.periodRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load periods: %w", err)
	}

	period := domain.ResolvePeriod(at, periods)
	if period == nil {
		return nil, domain.ErrNoActivePeriod
	}

	return period, nil
}

// GetETA возвращает среднее время в пути по маршруту для периода,
// активного в указанное время суток.
func (s *Service) GetETA(ctx context.Context, routeID uuid.UUID, at domain.TimeOfDay) (*ETAResult, error) {
	// Маршрут должен существовать
	if _, err := s.routeRepo.GetByID(ctx, routeID); err != nil {
		return nil, err
	}

	period, err := s.ResolveCurrent(ctx, at)
	if err != nil {
		return nil, err
	}

	routeTime, err := s.routeTimeRepo.GetByRouteAndPeriod(ctx, routeID, period.ID)
	if err != nil {
		return nil, err
	}

	return &ETAResult{
		RouteID:        routeID,
		Period:         period,
		AverageMinutes: routeTime.AverageMinutes,
	}, nil
}

// CreateRouteTime создает запись среднего времени для пары (маршрут, период)
func (s *Service) CreateRouteTime(ctx context.Context, req *CreateRouteTimeRequest) (*domain.RouteTime, error) {
	routeTime := &domain.RouteTime{
		RouteID:        req.RouteID,
		PeriodID:       req.PeriodID,
		AverageMinutes: req.AverageMinutes,
	}

	if err := routeTime.Validate(); err != nil {
		return nil, err
	}

	// Обе ссылки должны существовать
	if _, err := s.routeRepo.GetByID(ctx, routeTime.RouteID); err != nil {
		return nil, err
	}
	if _, err := s.periodRepo.GetByID(ctx, routeTime.PeriodID); err != nil {
		return nil, err
	}

	// Для пары (маршрут, период) допускается не более одной записи
	existing, err := s.routeTimeRepo.GetByRouteAndPeriod(ctx, routeTime.RouteID, routeTime.PeriodID)
	if err != nil && !errors.Is(err, domain.ErrRouteTimeNotFound) {
		return nil, fmt.Errorf("failed to check existing route time: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrRouteTimeAlreadyExists
	}

	if err := s.routeTimeRepo.Create(ctx, routeTime); err != nil {
		s.logger.Error("Failed to create route time", map[string]interface{}{
			"route_id":  routeTime.RouteID,
			"period_id": routeTime.PeriodID,
			"error":     err.Error(),
		})
		return nil, fmt.Errorf("failed to create route time: %w", err)
	}

	return routeTime, nil
}

// UpdateRouteTime изменяет среднее время существующей записи
func (s *Service) UpdateRouteTime(ctx context.Context, id uuid.UUID, averageMinutes int) (*domain.RouteTime, error) {
	routeTime, err := s.routeTimeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	routeTime.AverageMinutes = averageMinutes
	if err := routeTime.Validate(); err != nil {
		return nil, err
	}

	if err := s.routeTimeRepo.Update(ctx, routeTime); err != nil {
		return nil, fmt.Errorf("failed to update route time: %w", err)
	}

	return routeTime, nil
}

// GetRouteTimes возвращает все записи среднего времени маршрута
func (s *Service) GetRouteTimes(ctx context.Context, routeID uuid.UUID) ([]*domain.RouteTime, error) {
	return s.routeTimeRepo.GetByRoute(ctx, routeID)
}

// DeleteRouteTime удаляет запись среднего времени
func (s *Service) DeleteRouteTime(ctx context.Context, id uuid.UUID) error {
	return s.routeTimeRepo.Delete(ctx, id)
}

// checkNameUnique проверяет уникальность названия периода.
// excludeID исключает собственную запись периода при обновлении.
func (s *Service) checkNameUnique(ctx context.Context, name string, excludeID uuid.UUID) error {
	existing, err := s.periodRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrPeriodNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check existing period: %w", err)
	}

	if existing.ID != excludeID {
		s.logger.Warn("Period name already taken", map[string]interface{}{
			"name": name,
		})
		return domain.ErrPeriodAlreadyExists
	}

	return nil
}

// checkNoOverlap сканирует все существующие периоды и возвращает
// Conflict при первом найденном пересечении интервалов.
// excludeID исключает собственную запись периода при обновлении.
func (s *Service) checkNoOverlap(ctx context.Context, candidate *domain.Period, excludeID uuid.UUID) error {
	periods, err := s.periodRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load periods: %w", err)
	}

	for _, existing := range periods {
		if existing.ID == excludeID {
			continue
		}
		if candidate.Overlaps(existing) {
			s.logger.Warn("Period overlaps existing period", map[string]interface{}{
				"candidate": candidate.Name,
				"existing":  existing.Name,
			})
			return fmt.Errorf("%w: %q", domain.ErrPeriodOverlap, existing.Name)
		}
	}

	return nil
}
