package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Route - маршрут общественного транспорта
// Название маршрута уникально в пределах системы
type Route struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Связанные данные (не хранятся в таблице routes, заполняются при необходимости)
	Stops []*Stop `json:"stops,omitempty"`
}

// Validate проверяет корректность данных маршрута и нормализует их.
// Проверка fail-fast: возвращается первое нарушенное правило.
func (r *Route) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Origin = strings.TrimSpace(r.Origin)
	r.Destination = strings.TrimSpace(r.Destination)

	if r.Name == "" || len(r.Name) > 100 {
		return ErrInvalidRouteData
	}
	if r.Origin == "" || len(r.Origin) > 100 {
		return ErrInvalidRouteData
	}
	if r.Destination == "" || len(r.Destination) > 100 {
		return ErrInvalidRouteData
	}
	return nil
}
