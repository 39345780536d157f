package domain

import (
	"time"

	"github.com/google/uuid"
)

// Минимально и максимально допустимое среднее время в пути, в минутах
const (
	MinAverageMinutes = 1
	MaxAverageMinutes = 300
)

// RouteTime - среднее время в пути по маршруту в течение периода.
// Для каждой пары (маршрут, период) существует не более одной записи.
type RouteTime struct {
	ID             uuid.UUID `json:"id"`
	RouteID        uuid.UUID `json:"route_id"`
	PeriodID       uuid.UUID `json:"period_id"`
	AverageMinutes int       `json:"average_minutes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Validate проверяет корректность данных записи.
// Проверка fail-fast: возвращается первое нарушенное правило.
func (rt *RouteTime) Validate() error {
	if rt.RouteID == uuid.Nil || rt.PeriodID == uuid.Nil {
		return ErrInvalidRouteTimeData
	}
	if rt.AverageMinutes < MinAverageMinutes || rt.AverageMinutes > MaxAverageMinutes {
		return ErrInvalidRouteTimeData
	}
	return nil
}
