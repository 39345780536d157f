package repository

import (
	"context"

	"github.com/frontandrew/viabus/internal/domain"
	"github.com/google/uuid"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	// Create создает нового пользователя
	Create(ctx context.Context, user *domain.User) error

	// GetByID возвращает пользователя по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail возвращает пользователя по email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update обновляет данные пользователя
	Update(ctx context.Context, user *domain.User) error

	// Delete удаляет пользователя
	Delete(ctx context.Context, id uuid.UUID) error
}

// RouteRepository определяет методы для работы с маршрутами
type RouteRepository interface {
	// Create создает новый маршрут
	Create(ctx context.Context, route *domain.Route) error

	// GetByID возвращает маршрут по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Route, error)

	// GetByName возвращает маршрут по названию
	GetByName(ctx context.Context, name string) (*domain.Route, error)

	// List возвращает список маршрутов с пагинацией
	List(ctx context.Context, limit, offset int) ([]*domain.Route, error)

	// Update обновляет данные маршрута
	Update(ctx context.Context, route *domain.Route) error

	// Delete удаляет маршрут вместе с зависимыми записями
	Delete(ctx context.Context, id uuid.UUID) error
}

// PeriodRepository определяет методы для работы с периодами
type PeriodRepository interface {
	// Create создает новый период
	Create(ctx context.Context, period *domain.Period) error

	// GetByID возвращает период по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Period, error)

	// GetByName возвращает период по названию
	GetByName(ctx context.Context, name string) (*domain.Period, error)

	// GetAll возвращает все периоды
	// Используется для проверки пересечений и определения текущего периода
	GetAll(ctx context.Context) ([]*domain.Period, error)

	// Update обновляет данные периода
	Update(ctx context.Context, period *domain.Period) error

	// Delete удаляет период
	Delete(ctx context.Context, id uuid.UUID) error
}

// RouteTimeRepository определяет методы для работы со средним временем в пути
type RouteTimeRepository interface {
	// Create создает новую запись
	Create(ctx context.Context, routeTime *domain.RouteTime) error

	// GetByID возвращает запись по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.RouteTime, error)

	// GetByRouteAndPeriod возвращает запись для пары (маршрут, период)
	GetByRouteAndPeriod(ctx context.Context, routeID, periodID uuid.UUID) (*domain.RouteTime, error)

	// GetByRoute возвращает все записи маршрута
	GetByRoute(ctx context.Context, routeID uuid.UUID) ([]*domain.RouteTime, error)

	// Update обновляет данные записи
	Update(ctx context.Context, routeTime *domain.RouteTime) error

	// Delete удаляет запись
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReportRepository определяет методы для работы с жалобами
type ReportRepository interface {
	// Create создает новую жалобу
	Create(ctx context.Context, report *domain.Report) error

	// GetByID возвращает жалобу по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error)

	// GetByRoute возвращает жалобы по маршруту с пагинацией
	GetByRoute(ctx context.Context, routeID uuid.UUID, limit, offset int) ([]*domain.Report, error)

	// GetByAuthor возвращает жалобы пользователя с пагинацией
	GetByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]*domain.Report, error)

	// Update обновляет данные жалобы (CreatedAt не изменяется)
	Update(ctx context.Context, report *domain.Report) error

	// Delete удаляет жалобу
	Delete(ctx context.Context, id uuid.UUID) error
}

// FavoriteRepository определяет методы для работы с избранными маршрутами
type FavoriteRepository interface {
	// Create создает запись избранного
	Create(ctx context.Context, favorite *domain.FavoriteRoute) error

	// GetByUserAndRoute возвращает запись для пары (пользователь, маршрут)
	GetByUserAndRoute(ctx context.Context, userID, routeID uuid.UUID) (*domain.FavoriteRoute, error)

	// GetByUser возвращает все избранные маршруты пользователя
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*domain.FavoriteRoute, error)

	// Delete удаляет запись избранного
	Delete(ctx context.Context, id uuid.UUID) error
}

// TraceRepository определяет методы для работы с траекториями и остановками
type TraceRepository interface {
	// UpsertTrace создает или заменяет траекторию маршрута
	UpsertTrace(ctx context.Context, trace *domain.Trace) error

	// GetTraceByRoute возвращает траекторию маршрута
	GetTraceByRoute(ctx context.Context, routeID uuid.UUID) (*domain.Trace, error)

	// ReplaceStops заменяет все остановки маршрута
	ReplaceStops(ctx context.Context, routeID uuid.UUID, stops []*domain.Stop) error

	// GetStopsByRoute возвращает остановки маршрута в порядке следования
	GetStopsByRoute(ctx context.Context, routeID uuid.UUID) ([]*domain.Stop, error)
}
