package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frontandrew/viabus/internal/delivery/http/middleware"
	"github.com/frontandrew/viabus/internal/domain"
	"github.com/frontandrew/viabus/internal/pkg/logger"
	"github.com/frontandrew/viabus/internal/usecase/report"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ReportService определяет интерфейс для сервиса жалоб
type ReportService interface {
	CreateReport(ctx context.Context, authorID uuid.UUID, req *report.CreateReportRequest) (*domain.Report, error)
	GetReportByID(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	GetReportsByRoute(ctx context.Context, routeID uuid.UUID, limit, offset int) ([]*domain.Report, error)
	GetReportsByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]*domain.Report, error)
	UpdateReport(ctx context.Context, id, actorID uuid.UUID, req *report.UpdateReportRequest) (*domain.Report, error)
	DeleteReport(ctx context.Context, id, actorID uuid.UUID) error
}

// ReportHandler обрабатывает запросы связанные с жалобами
type ReportHandler struct {
	reportService ReportService
	logger        logger.Logger
}

// NewReportHandler создает новый handler
func NewReportHandler(reportService ReportService, logger logger.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// CreateReport создает жалобу от имени текущего пользователя
// POST /api/v1/reports
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req report.CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.reportService.CreateReport(r.Context(), claims.UserID, &req)
	if err != nil {
		h.respondServiceError(w, err, "Failed to create report")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    created,
	})
}

// GetReport возвращает жалобу по ID
// GET /api/v1/reports/{id}
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid report ID")
		return
	}

	found, err := h.reportService.GetReportByID(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err, "Failed to get report")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    found,
	})
}

// GetRouteReports возвращает жалобы по маршруту
// GET /api/v1/routes/{id}/reports
func (h *ReportHandler) GetRouteReports(w http.ResponseWriter, r *http.Request) {
	routeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid route ID")
		return
	}

	limit, offset := parsePagination(r)

	reports, err := h.reportService.GetReportsByRoute(r.Context(), routeID, limit, offset)
	if err != nil {
		h.respondServiceError(w, err, "Failed to get reports")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    reports,
	})
}

// GetMyReports возвращает жалобы текущего пользователя
// GET /api/v1/reports/me
func (h *ReportHandler) GetMyReports(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit, offset := parsePagination(r)

	reports, err := h.reportService.GetReportsByAuthor(r.Context(), claims.UserID, limit, offset)
	if err != nil {
		h.respondServiceError(w, err, "Failed to get reports")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    reports,
	})
}

// UpdateReport изменяет жалобу (только автор)
// PUT /api/v1/reports/{id}
func (h *ReportHandler) UpdateReport(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid report ID")
		return
	}

	var req report.UpdateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.reportService.UpdateReport(r.Context(), id, claims.UserID, &req)
	if err != nil {
		h.respondServiceError(w, err, "Failed to update report")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    updated,
	})
}

// DeleteReport удаляет жалобу (автор или настроенный привилегированный
// пользователь)
// DELETE /api/v1/reports/{id}
func (h *ReportHandler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid report ID")
		return
	}

	if err := h.reportService.DeleteReport(r.Context(), id, claims.UserID); err != nil {
		h.respondServiceError(w, err, "Failed to delete report")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

func (h *ReportHandler) respondServiceError(w http.ResponseWriter, err error, fallback string) {
	if status := statusFromError(err); status != 0 {
		respondError(w, status, err.Error())
		return
	}

	h.logger.Error(fallback, map[string]interface{}{
		"error": err.Error(),
	})
	respondError(w, http.StatusInternalServerError, fallback)
}
