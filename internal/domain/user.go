package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserRole представляет роль пользователя в системе
type UserRole string

const (
	RoleAdmin    UserRole = "admin"    // Администратор системы
	RoleCommuter UserRole = "commuter" // Обычный пассажир
)

// Стандартный паттерн для проверки email адреса
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User - пользователь платформы
// Пользователь создает жалобы (Report) и сохраняет избранные маршруты
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Никогда не возвращаем в JSON
	Name         string    `json:"name"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin проверяет, является ли пользователь администратором
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NormalizeEmail приводит email к каноническому виду, в котором он
// хранится в базе. Все поиски по email должны проходить через эту функцию.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// Validate проверяет корректность данных пользователя и нормализует их.
// Проверка fail-fast: возвращается первое нарушенное правило.
func (u *User) Validate() error {
	u.Email = NormalizeEmail(u.Email)
	u.Name = strings.TrimSpace(u.Name)

	if u.Email == "" || !emailPattern.MatchString(u.Email) {
		return ErrInvalidEmail
	}
	if u.Name == "" {
		return ErrInvalidUserData
	}
	if len(u.Name) > 100 {
		return ErrInvalidUserData
	}
	if u.Role != RoleAdmin && u.Role != RoleCommuter {
		return ErrInvalidRole
	}
	return nil
}
