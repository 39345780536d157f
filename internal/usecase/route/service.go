package route

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/frontandrew/viabus/internal/domain"
	"github.com/frontandrew/viabus/internal/pkg/logger"
	"github.com/frontandrew/viabus/internal/repository"
	"github.com/google/uuid"
	"github.com/twpayne/go-geom"
	geojson "github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// CreateRouteRequest - запрос на создание маршрута
type CreateRouteRequest struct {
	Name        string `json:"name" validate:"required"`
	Origin      string `json:"origin" validate:"required"`
	Destination string `json:"destination" validate:"required"`
}

// UpdateRouteRequest - запрос на обновление маршрута
// Не указанные поля остаются без изменений
type UpdateRouteRequest struct {
	Name        *string `json:"name,omitempty"`
	Origin      *string `json:"origin,omitempty"`
	Destination *string `json:"destination,omitempty"`
}

// StopInput - остановка в запросе на замену остановок маршрута
type StopInput struct {
	Name string  `json:"name"`
	Seq  int     `json:"seq"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// Service содержит бизнес-логику работы с маршрутами,
// их траекториями, остановками и избранным
type Service struct {
	routeRepo    repository.RouteRepository
	traceRepo    repository.TraceRepository
	favoriteRepo repository.FavoriteRepository
	userRepo     repository.UserRepository
	logger       logger.Logger
}

// NewService создает новый экземпляр RouteService
func NewService(
	routeRepo repository.RouteRepository,
	traceRepo repository.TraceRepository,
	favoriteRepo repository.FavoriteRepository,
	userRepo repository.UserRepository,
	logger logger.Logger,
) *Service {
	return &Service{
		routeRepo:    routeRepo,
		traceRepo:    traceRepo,
		favoriteRepo: favoriteRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// CreateRoute создает новый маршрут
func (s *Service) CreateRoute(ctx context.Context, req *CreateRouteRequest) (*domain.Route, error) {
	s.logger.Info("Creating new route", map[string]interface{}{
		"name": req.Name,
	})

	route := &domain.Route{
		Name:        req.Name,
		Origin:      req.Origin,
		Destination: req.Destination,
	}

	if err := route.Validate(); err != nil {
		return nil, err
	}

	// Проверяем, что маршрут с таким названием еще не существует
	existing, err := s.routeRepo.GetByName(ctx, route.Name)
	if err != nil && !errors.Is(err, domain.ErrRouteNotFound) {
		return nil, fmt.Errorf("failed to check existing route: %w", err)
	}
	if existing != nil {
		s.logger.Warn("Route name already taken", map[string]interface{}{
			"name": route.Name,
		})
		return nil, domain.ErrRouteAlreadyExists
	}

	if err := s.routeRepo.Create(ctx, route); err != nil {
		s.logger.Error("Failed to create route", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to create route: %w", err)
	}

	s.logger.Info("Route created successfully", map[string]interface{}{
		"route_id": route.ID,
	})

	return route, nil
}

// GetRouteByID возвращает маршрут по ID вместе с остановками
func (s *Service) GetRouteByID(ctx context.Context, id uuid.UUID) (*domain.Route, error) {
	route, err := s.routeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stops, err := s.traceRepo.GetStopsByRoute(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load stops: %w", err)
	}
	route.Stops = stops

	return route, nil
}

// ListRoutes возвращает список маршрутов с пагинацией
func (s *Service) ListRoutes(ctx context.Context, limit, offset int) ([]*domain.Route, error) {
	return s.routeRepo.List(ctx, limit, offset)
}

// UpdateRoute обновляет данные маршрута.
// Проверка уникальности названия исключает сам обновляемый маршрут.
func (s *Service) UpdateRoute(ctx context.Context, id uuid.UUID, req *UpdateRouteRequest) (*domain.Route, error) {
	route, err := s.routeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		route.Name = *req.Name
	}
	if req.Origin != nil {
		route.Origin = *req.Origin
	}
	if req.Destination != nil {
		route.Destination = *req.Destination
	}

	if err := route.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.routeRepo.GetByName(ctx, route.Name)
	if err != nil && !errors.Is(err, domain.ErrRouteNotFound) {
		return nil, fmt.Errorf("failed to check existing route: %w", err)
	}
	if existing != nil && existing.ID != route.ID {
		return nil, domain.ErrRouteAlreadyExists
	}

	if err := s.routeRepo.Update(ctx, route); err != nil {
		return nil, fmt.Errorf("failed to update route: %w", err)
	}

	return route, nil
}

// DeleteRoute удаляет маршрут
func (s *Service) DeleteRoute(ctx context.Context, id uuid.UUID) error {
	return s.routeRepo.Delete(ctx, id)
}

// SetTrace привязывает к маршруту траекторию из GeoJSON LineString
func (s *Service) SetTrace(ctx context.Context, routeID uuid.UUID, geoJSON string) (*domain.Trace, error) {
	if _, err := s.routeRepo.GetByID(ctx, routeID); err != nil {
		return nil, err
	}

	wkbGeom, err := geoJSONToWKB(geoJSON)
	if err != nil {
		return nil, err
	}

	trace := &domain.Trace{
		RouteID:  routeID,
		Geometry: wkbGeom,
	}

	if err := trace.Validate(); err != nil {
		return nil, err
	}

	if err := s.traceRepo.UpsertTrace(ctx, trace); err != nil {
		return nil, fmt.Errorf("failed to save trace: %w", err)
	}

	return trace, nil
}

// GetTraceGeoJSON возвращает траекторию маршрута в формате GeoJSON
func (s *Service) GetTraceGeoJSON(ctx context.Context, routeID uuid.UUID) (string, error) {
	trace, err := s.traceRepo.GetTraceByRoute(ctx, routeID)
	if err != nil {
		return "", err
	}

	return wkbToGeoJSON(trace.Geometry)
}

// ReplaceStops заменяет все остановки маршрута
func (s *Service) ReplaceStops(ctx context.Context, routeID uuid.UUID, inputs []StopInput) ([]*domain.Stop, error) {
	if _, err := s.routeRepo.GetByID(ctx, routeID); err != nil {
		return nil, err
	}

	stops := make([]*domain.Stop, 0, len(inputs))
	for _, in := range inputs {
		stop := &domain.Stop{
			RouteID: routeID,
			Name:    in.Name,
			Seq:     in.Seq,
			Lat:     in.Lat,
			Lng:     in.Lng,
		}
		if err := stop.Validate(); err != nil {
			return nil, err
		}
		stops = append(stops, stop)
	}

	if err := s.traceRepo.ReplaceStops(ctx, routeID, stops); err != nil {
		return nil, fmt.Errorf("failed to replace stops: %w", err)
	}

	return stops, nil
}

// AddFavorite добавляет маршрут в избранное пользователя
func (s *Service) AddFavorite(ctx context.Context, userID, routeID uuid.UUID) (*domain.FavoriteRoute, error) {
	favorite := &domain.FavoriteRoute{
		UserID:  userID,
		RouteID: routeID,
	}

	if err := favorite.Validate(); err != nil {
		return nil, err
	}

	// Обе ссылки должны существовать
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.routeRepo.GetByID(ctx, routeID); err != nil {
		return nil, err
	}

	// Для пары (пользователь, маршрут) допускается не более одной записи
	existing, err := s.favoriteRepo.GetByUserAndRoute(ctx, userID, routeID)
	if err != nil && !errors.Is(err, domain.ErrFavoriteNotFound) {
		return nil, fmt.Errorf("failed to check existing favorite: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrFavoriteAlreadyExists
	}

	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		return nil, fmt.Errorf("failed to create favorite: %w", err)
	}

	return favorite, nil
}

// RemoveFavorite убирает маршрут из избранного пользователя
func (s *Service) RemoveFavorite(ctx context.Context, userID, routeID uuid.UUID) error {
	favorite, err := s.favoriteRepo.GetByUserAndRoute(ctx, userID, routeID)
	if err != nil {
		return err
	}

	return s.favoriteRepo.Delete(ctx, favorite.ID)
}

// GetFavorites возвращает избранные маршруты пользователя
func (s *Service) GetFavorites(ctx context.Context, userID uuid.UUID) ([]*domain.FavoriteRoute, error) {
	return s.favoriteRepo.GetByUser(ctx, userID)
}

// geoJSONToWKB разбирает GeoJSON геометрию и возвращает WKB байты
func geoJSONToWKB(raw string) ([]byte, error) {
	var g geom.T
	if err := geojson.Unmarshal([]byte(raw), &g); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidGeometry, err)
	}

	encoded, err := wkb.Marshal(g, binary.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidGeometry, err)
	}

	return encoded, nil
}

// wkbToGeoJSON конвертирует WKB байты в GeoJSON строку
func wkbToGeoJSON(wkbBytes []byte) (string, error) {
	g, err := wkb.Unmarshal(wkbBytes)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidGeometry, err)
	}

	encoded, err := geojson.Marshal(g)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidGeometry, err)
	}

	return string(encoded), nil
}
