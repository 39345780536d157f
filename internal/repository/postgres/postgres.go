package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Код SQLSTATE для нарушения уникального ограничения
const uniqueViolationCode = "23505"

// isUniqueViolation сообщает, вызвана ли ошибка нарушением unique constraint.
// Проверки уникальности в сервисах - это быстрый дружелюбный pre-check;
// авторитетный отказ при гонке двух одновременных записей дает именно
// ограничение в БД, и репозитории переводят его в доменную ошибку Conflict.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
