package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/frontandrew/viabus/internal/domain"
	"github.com/frontandrew/viabus/internal/pkg/logger"
	"github.com/frontandrew/viabus/internal/usecase/period"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// PeriodService определяет интерфейс для сервиса периодов
type PeriodService interface {
	CreatePeriod(ctx context.Context, req *period.CreatePeriodRequest) (*domain.Period, error)
	UpdatePeriod(ctx context.Context, id uuid.UUID, req *period.UpdatePeriodRequest) (*domain.Period, error)
	GetPeriodByID(ctx context.Context, id uuid.UUID) (*domain.Period, error)
	ListPeriods(ctx context.Context) ([]*domain.Period, error)
	DeletePeriod(ctx context.Context, id uuid.UUID) error
	ResolveCurrent(ctx context.Context, at domain.TimeOfDay) (*domain.Period, error)
	GetETA(ctx context.Context, routeID uuid.UUID, at domain.TimeOfDay) (*period.ETAResult, error)
	CreateRouteTime(ctx context.Context, req *period.CreateRouteTimeRequest) (*domain.RouteTime, error)
	UpdateRouteTime(ctx context.Context, id uuid.UUID, averageMinutes int) (*domain.RouteTime, error)
	GetRouteTimes(ctx context.Context, routeID uuid.UUID) ([]*domain.RouteTime, error)
	DeleteRouteTime(ctx context.Context, id uuid.UUID) error
}

// PeriodHandler обрабатывает запросы связанные с периодами,
// временем в пути и ETA
type PeriodHandler struct {
	periodService PeriodService
	logger        logger.Logger
}

// NewPeriodHandler создает новый handler
func NewPeriodHandler(periodService PeriodService, logger logger.Logger) *PeriodHandler {
	return &PeriodHandler{
		periodService: periodService,
		logger:        logger,
	}
}

// CreatePeriod создает новый период
// POST /api/v1/periods
func (h *PeriodHandler) CreatePeriod(w http.ResponseWriter, r *http.Request) {
	var req period.CreatePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.periodService.CreatePeriod(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err, "Failed to create period")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    created,
	})
}

// UpdatePeriod обновляет период
// PUT /api/v1/periods/{id}
func (h *PeriodHandler) UpdatePeriod(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid period ID")
		return
	}

	var req period.UpdatePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.periodService.UpdatePeriod(r.Context(), id, &req)
	if err != nil {
		h.respondServiceError(w, err, "Failed to update period")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    updated,
	})
}

// GetPeriod возвращает период по ID
// GET /api/v1/periods/{id}
func (h *PeriodHandler) GetPeriod(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid period ID")
		return
	}

	found, err := h.periodService.GetPeriodByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, "Failed to get period")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    found,
	})
}

// ListPeriods возвращает все периоды
// GET /api/v1/periods
func (h *PeriodHandler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := h.periodService.ListPeriods(r.Context())
	if err != nil {
		h.respondServiceError(w, err, "Failed to list periods")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    periods,
	})
}

// DeletePeriod удаляет период
// DELETE /api/v1/periods/{id}
func (h *PeriodHandler) DeletePeriod(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid period ID")
		return
	}

	if err := h.periodService.DeletePeriod(r.Context(), id); err != nil {
		h.respondServiceError(w, err, "Failed to delete period")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// GetCurrentPeriod возвращает период, активный в указанное время
// (query параметр at=HH:MM, по умолчанию текущее время сервера)
// GET /api/v1/periods/current
func (h *PeriodHandler) GetCurrentPeriod(w http.ResponseWriter, r *http.Request) {
	at, err := parseAtParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid at parameter, expected HH:MM")
		return
	}

	current, err := h.periodService.ResolveCurrent(r.Context(), at)
	if err != nil {
		h.respondServiceError(w, err, "Failed to resolve current period")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    current,
	})
}

// GetETA возвращает среднее время в пути по маршруту для активного периода
// GET /api/v1/routes/{id}/eta
func (h *PeriodHandler) GetETA(w http.ResponseWriter, r *http.Request) {
	routeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid route ID")
		return
	}

	at, err := parseAtParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid at parameter, expected HH:MM")
		return
	}

	eta, err := h.periodService.GetETA(r.Context(), routeID, at)
	if err != nil {
		h.respondServiceError(w, err, "Failed to get ETA")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    eta,
	})
}

// CreateRouteTime создает запись среднего времени
// POST /api/v1/route-times
func (h *PeriodHandler) CreateRouteTime(w http.ResponseWriter, r *http.Request) {
	var req period.CreateRouteTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.periodService.CreateRouteTime(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err, "Failed to create route time")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    created,
	})
}

// UpdateRouteTime изменяет среднее время записи
// PUT /api/v1/route-times/{id}
func (h *PeriodHandler) UpdateRouteTime(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid route time ID")
		return
	}

	var req struct {
		AverageMinutes int `json:"average_minutes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.periodService.UpdateRouteTime(r.Context(), id, req.AverageMinutes)
	if err != nil {
		h.respondServiceError(w, err, "Failed to update route time")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    updated,
	})
}

// GetRouteTimes возвращает записи среднего времени маршрута
// GET /api/v1/routes/{id}/times
func (h *PeriodHandler) GetRouteTimes(w http.ResponseWriter, r *http.Request) {
	routeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid route ID")
		return
	}

	times, err := h.periodService.GetRouteTimes(r.Context(), routeID)
	if err != nil {
		h.respondServiceError(w, err, "Failed to get route times")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    times,
	})
}

// DeleteRouteTime удаляет запись среднего времени
// DELETE /api/v1/route-times/{id}
func (h *PeriodHandler) DeleteRouteTime(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid route time ID")
		return
	}

	if err := h.periodService.DeleteRouteTime(r.Context(), id); err != nil {
		h.respondServiceError(w, err, "Failed to delete route time")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// parseAtParam читает время суток из query параметра at;
// без параметра используется текущее время сервера
func parseAtParam(r *http.Request) (domain.TimeOfDay, error) {
	if v := r.URL.Query().Get("at"); v != "" {
		return domain.ParseTimeOfDay(v)
	}
	return domain.TimeOfDayFrom(time.Now()), nil
}

func (h *PeriodHandler) respondServiceError(w http.ResponseWriter, err error, fallback string) {
	if status := statusFromError(err); status != 0 {
		respondError(w, status, err.Error())
		return
	}

	h.logger.Error(fallback, map[string]interface{}{
		"error": err.Error(),
	})
	respondError(w, http.StatusInternalServerError, fallback)
}
