package domain

import (
	"time"

	"github.com/google/uuid"
)

// FavoriteRoute - избранный маршрут пользователя.
// Для каждой пары (пользователь, маршрут) существует не более одной записи.
type FavoriteRoute struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	RouteID   uuid.UUID `json:"route_id"`
	CreatedAt time.Time `json:"created_at"`

	// Связанные данные (заполняются при необходимости)
	Route *Route `json:"route,omitempty"`
}

// Validate проверяет корректность данных записи
func (f *FavoriteRoute) Validate() error {
	if f.UserID == uuid.Nil || f.RouteID == uuid.Nil {
		return ErrInvalidFavoriteData
	}
	return nil
}
