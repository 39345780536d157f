package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Trace - геопривязанная траектория маршрута.
// Геометрия хранится как WKB (LINESTRING, SRID 4326); на границе API
// она конвертируется в GeoJSON и обратно.
type Trace struct {
	ID        uuid.UUID `json:"id"`
	RouteID   uuid.UUID `json:"route_id"`
	Geometry  []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate проверяет корректность данных траектории
func (t *Trace) Validate() error {
	if t.RouteID == uuid.Nil {
		return ErrInvalidTraceData
	}
	if len(t.Geometry) == 0 {
		return ErrInvalidGeometry
	}
	return nil
}

// Stop - остановка на маршруте.
// Seq задает порядок остановок вдоль траектории.
type Stop struct {
	ID      uuid.UUID `json:"id"`
	RouteID uuid.UUID `json:"route_id"`
	Name    string    `json:"name"`
	Seq     int       `json:"seq"`
	Lat     float64   `json:"lat"`
	Lng     float64   `json:"lng"`
}

// Validate проверяет корректность данных остановки и нормализует их
func (s *Stop) Validate() error {
	s.Name = strings.TrimSpace(s.Name)

	if s.RouteID == uuid.Nil {
		return ErrInvalidStopData
	}
	if s.Name == "" || len(s.Name) > 100 {
		return ErrInvalidStopData
	}
	if s.Seq < 0 {
		return ErrInvalidStopData
	}
	if s.Lat < -90 || s.Lat > 90 || s.Lng < -180 || s.Lng > 180 {
		return ErrInvalidStopData
	}
	return nil
}
