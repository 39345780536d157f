package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frontandrew/viabus/internal/delivery/http/middleware"
	"github.com/frontandrew/viabus/internal/domain"
	"github.com/frontandrew/viabus/internal/pkg/logger"
	"github.com/frontandrew/viabus/internal/usecase/route"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// RouteService определяет интерфейс для сервиса маршрутов
type RouteService interface {
	CreateRoute(ctx context.Context, req *route.CreateRouteRequest) (*domain.Route, error)
	GetRouteByID(ctx context.Context, id uuid.UUID) (*domain.Route, error)
	ListRoutes(ctx context.Context, limit, offset int) ([]*domain.Route, error)
	UpdateRoute(ctx context.Context, id uuid.UUID, req *route.UpdateRouteRequest) (*domain.Route, error)
	DeleteRoute(ctx context.Context, id uuid.UUID) error
	SetTrace(ctx context.Context, routeID uuid.UUID, geoJSON string) (*domain.Trace, error)
	GetTraceGeoJSON(ctx context.Context, routeID uuid.UUID) (string, error)
	ReplaceStops(ctx context.Context, routeID uuid.UUID, inputs []route.StopInput) ([]*domain.Stop, error)
	AddFavorite(ctx context.Context, userID, routeID uuid.UUID) (*domain.FavoriteRoute, error)
	RemoveFavorite(ctx context.Context, userID, routeID uuid.UUID) error
	GetFavorites(ctx context.Context, userID uuid.UUID) ([]*domain.FavoriteRoute, error)
}

// RouteHandler обрабатывает запросы связанные с маршрутами
type RouteHandler struct {
	routeService RouteService
	logger       logger.Logger
}

// NewRouteHandler создает новый handler
func NewRouteHandler(routeService RouteService, logger logger.Logger) *RouteHandler {
	return &RouteHandler{
		routeService: routeService,
		logger:       logger,
	}
}

// CreateRoute создает новый маршрут
// POST /api/v1/routes
func (h *RouteHandler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var req route.CreateRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.routeService.CreateRoute(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err, "Failed to create route")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    created,
	})
}

// GetRoute возвращает маршрут по ID вместе с остановками
// GET /api/v1/routes/{id}
func (h *RouteHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid route ID")
		return
	}

	found, err := h.routeService.GetRouteByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, "Failed to get route")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    found,
	})
}

// ListRoutes возвращает список маршрутов
// GET /api/v1/routes
func (h *RouteHandler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	routes, err := h.routeService.ListRoutes(r.Context(), limit, offset)
	if err != nil {
		h.respondServiceError(w, err, "Failed to list routes")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    routes,
	})
}

// UpdateRoute обновляет данные маршрута
// PUT /api/v1/routes/{id}
func (h *RouteHandler) UpdateRoute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid route ID")
		return
	}

	var req route.UpdateRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.routeService.UpdateRoute(r.Context(), id, &req)
	if err != nil {
		h.respondServiceError(w, err, "Failed to update route")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    updated,
	})
}

// DeleteRoute удаляет маршрут
// DELETE /api/v1/routes/{id}
func (h *RouteHandler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid route ID")
		return
	}

	if err := h.routeService.DeleteRoute(r.Context(), id); err != nil {
		h.respondServiceError(w, err, "Failed to delete route")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// SetTrace привязывает траекторию к маршруту
// PUT /api/v1/routes/{id}/trace
func (h *RouteHandler) SetTrace(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid route ID")
		return
	}

	var req struct {
		Geometry json.RawMessage `json:"geometry"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	trace, err := h.routeService.SetTrace(r.Context(), id, string(req.Geometry))
	if err != nil {
		h.respondServiceError(w, err, "Failed to set trace")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    trace,
	})
}

// GetTrace возвращает траекторию маршрута в формате GeoJSON
// GET /api/v1/routes/{id}/trace
func (h *RouteHandler) GetTrace(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid route ID")
		return
	}

	geoJSON, err := h.routeService.GetTraceGeoJSON(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, "Failed to get trace")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"route_id": id,
			"geometry": json.RawMessage(geoJSON),
		},
	})
}

// ReplaceStops заменяет остановки маршрута
// PUT /api/v1/routes/{id}/stops
func (h *RouteHandler) ReplaceStops(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid route ID")
		return
	}

	var req struct {
		Stops []route.StopInput `json:"stops"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	stops, err := h.routeService.ReplaceStops(r.Context(), id, req.Stops)
	if err != nil {
		h.respondServiceError(w, err, "Failed to replace stops")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    stops,
	})
}

// AddFavorite добавляет маршрут в избранное текущего пользователя
// POST /api/v1/routes/{id}/favorite
func (h *RouteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid route ID")
		return
	}

	favorite, err := h.routeService.AddFavorite(r.Context(), claims.UserID, id)
	if err != nil {
		h.respondServiceError(w, err, "Failed to add favorite")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    favorite,
	})
}

// RemoveFavorite убирает маршрут из избранного текущего пользователя
// DELETE /api/v1/routes/{id}/favorite
func (h *RouteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid route ID")
		return
	}

	if err := h.routeService.RemoveFavorite(r.Context(), claims.UserID, id); err != nil {
		h.respondServiceError(w, err, "Failed to remove favorite")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// GetMyFavorites возвращает избранные маршруты текущего пользователя
// GET /api/v1/routes/favorites/me
func (h *RouteHandler) GetMyFavorites(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	favorites, err := h.routeService.GetFavorites(r.Context(), claims.UserID)
	if err != nil {
		h.respondServiceError(w, err, "Failed to get favorites")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    favorites,
	})
}

// respondServiceError переводит доменные ошибки в HTTP статусы,
// остальные логирует и скрывает за 500
func (h *RouteHandler) respondServiceError(w http.ResponseWriter, err error, fallback string) {
	if status := statusFromError(err); status != 0 {
		respondError(w, status, err.Error())
		return
	}

	h.logger.Error(fallback, map[string]interface{}{
		"error": err.Error(),
	})
	respondError(w, http.StatusInternalServerError, fallback)
}
