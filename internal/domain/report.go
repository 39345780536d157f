package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReportType - код категории жалобы (1-5)
type ReportType int

const (
	ReportTypeDelay       ReportType = 1 // Задержка рейса
	ReportTypeOvercrowded ReportType = 2 // Переполненный транспорт
	ReportTypeSafety      ReportType = 3 // Проблема безопасности
	ReportTypeCondition   ReportType = 4 // Состояние транспорта
	ReportTypeOther       ReportType = 5 // Прочее
)

// Valid проверяет, что код категории находится в допустимом диапазоне
func (t ReportType) Valid() bool {
	return t >= ReportTypeDelay && t <= ReportTypeOther
}

// Report - жалоба пользователя по маршруту.
// Изменять и удалять жалобу может только ее автор; для удаления может
// быть дополнительно настроен привилегированный пользователь.
type Report struct {
	ID        uuid.UUID  `json:"id"`
	RouteID   uuid.UUID  `json:"route_id"`
	AuthorID  uuid.UUID  `json:"author_id"`
	Type      ReportType `json:"type"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"` // Назначается сервером, неизменяемо
	UpdatedAt time.Time  `json:"updated_at"`
}

// CanBeUpdatedBy проверяет, может ли пользователь изменить жалобу
func (r *Report) CanBeUpdatedBy(userID uuid.UUID) bool {
	return r.AuthorID == userID
}

// CanBeDeletedBy проверяет, может ли пользователь удалить жалобу.
// adminOverrideID - опциональный привилегированный пользователь
// (nil, если переопределение не настроено).
func (r *Report) CanBeDeletedBy(userID uuid.UUID, adminOverrideID *uuid.UUID) bool {
	if r.AuthorID == userID {
		return true
	}
	return adminOverrideID != nil && *adminOverrideID == userID
}

// Validate проверяет корректность данных жалобы и нормализует их.
// Проверка fail-fast: возвращается первое нарушенное правило.
func (r *Report) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Body = strings.TrimSpace(r.Body)

	if r.RouteID == uuid.Nil || r.AuthorID == uuid.Nil {
		return ErrInvalidReportData
	}
	if !r.Type.Valid() {
		return ErrInvalidReportType
	}
	if r.Title == "" || len(r.Title) > 100 {
		return ErrInvalidReportData
	}
	if r.Body == "" {
		return ErrInvalidReportData
	}
	return nil
}
