package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/frontandrew/viabus/internal/domain"
)

// respondJSON отправляет JSON ответ
func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to marshal response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondError отправляет JSON ответ с ошибкой
func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{
		"error": message,
	})
}

// statusFromError возвращает HTTP статус для доменной ошибки.
// Возвращает 0, если ошибка не относится к доменной таксономии -
// такие ошибки считаются внутренними и не показываются пользователю.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidUserData),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidPassword),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidRouteData),
		errors.Is(err, domain.ErrInvalidPeriodData),
		errors.Is(err, domain.ErrInvalidTimeOfDay),
		errors.Is(err, domain.ErrInvalidRouteTimeData),
		errors.Is(err, domain.ErrInvalidReportData),
		errors.Is(err, domain.ErrInvalidReportType),
		errors.Is(err, domain.ErrInvalidFavoriteData),
		errors.Is(err, domain.ErrInvalidTraceData),
		errors.Is(err, domain.ErrInvalidStopData),
		errors.Is(err, domain.ErrInvalidGeometry),
		errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrRouteNotFound),
		errors.Is(err, domain.ErrPeriodNotFound),
		errors.Is(err, domain.ErrRouteTimeNotFound),
		errors.Is(err, domain.ErrNoActivePeriod),
		errors.Is(err, domain.ErrReportNotFound),
		errors.Is(err, domain.ErrFavoriteNotFound),
		errors.Is(err, domain.ErrTraceNotFound),
		errors.Is(err, domain.ErrStopNotFound),
		errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrUserAlreadyExists),
		errors.Is(err, domain.ErrRouteAlreadyExists),
		errors.Is(err, domain.ErrPeriodAlreadyExists),
		errors.Is(err, domain.ErrPeriodOverlap),
		errors.Is(err, domain.ErrRouteTimeAlreadyExists),
		errors.Is(err, domain.ErrFavoriteAlreadyExists),
		errors.Is(err, domain.ErrConflict):
		return http.StatusConflict

	case errors.Is(err, domain.ErrNotReportAuthor),
		errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden

	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized
	}

	return 0
}

// parsePagination извлекает limit/offset из query параметров
func parsePagination(r *http.Request) (limit, offset int) {
	limit = 50
	offset = 0

	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	return limit, offset
}
