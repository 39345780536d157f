package cached

import (
	"context"
	"encoding/json"
	"time"

	"github.com/frontandrew/viabus/internal/domain"
	"github.com/frontandrew/viabus/internal/pkg/redis"
	"github.com/frontandrew/viabus/internal/repository"
	"github.com/google/uuid"
)

const (
	periodsCacheKey = "periods:all"
	periodsCacheTTL = 1 * time.Hour
)

// PeriodRepository добавляет кэширование к period repository.
// Полный набор периодов читается при каждой проверке пересечений
// и каждом ETA-запросе, поэтому кэшируется именно он.
type PeriodRepository struct {
	repo  repository.PeriodRepository
	cache *redis.Client
}

// NewPeriodRepository создает новый кэшируемый period repository
func NewPeriodRepository(repo repository.PeriodRepository, cache *redis.Client) repository.PeriodRepository {
	return &PeriodRepository{
		repo:  repo,
		cache: cache,
	}
}

// GetAll возвращает все периоды (с кэшированием)
func (r *PeriodRepository) GetAll(ctx context.Context) ([]*domain.Period, error) {
	// 1. Проверяем кэш
	cachedValue, err := r.cache.Get(ctx, periodsCacheKey)
	if err == nil {
		var periods []*domain.Period
		if unmarshalErr := json.Unmarshal([]byte(cachedValue), &periods); unmarshalErr == nil {
			return periods, nil
		}
		// Испорченное значение в кэше - сбрасываем и идем в БД
		_ = r.cache.Del(ctx, periodsCacheKey)
	}

	// 2. Cache miss (или ошибка кэша - она не фатальна) - идем в БД
	periods, err := r.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	// 3. Сохраняем результат в кэш (ошибку записи игнорируем)
	if encoded, marshalErr := json.Marshal(periods); marshalErr == nil {
		_ = r.cache.Set(ctx, periodsCacheKey, encoded, periodsCacheTTL)
	}

	return periods, nil
}

// Create создает период и инвалидирует кэш
func (r *PeriodRepository) Create(ctx context.Context, period *domain.Period) error {
	if err := r.repo.Create(ctx, period); err != nil {
		return err
	}
	_ = r.cache.Del(ctx, periodsCacheKey)
	return nil
}

// Update обновляет период и инвалидирует кэш
func (r *PeriodRepository) Update(ctx context.Context, period *domain.Period) error {
	if err := r.repo.Update(ctx, period); err != nil {
		return err
	}
	_ = r.cache.Del(ctx, periodsCacheKey)
	return nil
}

// Delete удаляет период и инвалидирует кэш
func (r *PeriodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = r.cache.Del(ctx, periodsCacheKey)
	return nil
}

// GetByID возвращает период по ID (точечные чтения не кэшируем)
func (r *PeriodRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Period, error) {
	return r.repo.GetByID(ctx, id)
}

// GetByName возвращает период по названию (используется редко, не кэшируем)
func (r *PeriodRepository) GetByName(ctx context.Context, name string) (*domain.Period, error) {
	return r.repo.GetByName(ctx, name)
}
