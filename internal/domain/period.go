package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimeOfDay - время суток в минутах от полуночи, в диапазоне [0, 1440)
type TimeOfDay int

// MinutesPerDay - количество минут в сутках
const MinutesPerDay = 24 * 60

// NewTimeOfDay создает TimeOfDay из часов и минут
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, ErrInvalidTimeOfDay
	}
	return TimeOfDay(hour*60 + minute), nil
}

// ParseTimeOfDay разбирает строку формата "HH:MM".
// Любые лишние символы делают строку невалидной.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return 0, ErrInvalidTimeOfDay
	}
	return NewTimeOfDay(parsed.Hour(), parsed.Minute())
}

// TimeOfDayFrom извлекает время суток из time.Time (по его локации)
func TimeOfDayFrom(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// Valid проверяет, что значение находится в допустимом диапазоне
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < MinutesPerDay
}

// String возвращает время в формате "HH:MM"
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// MarshalJSON сериализует время как строку "HH:MM"
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON разбирает время из строки "HH:MM"
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	parsed, err := ParseTimeOfDay(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Period - именованный интервал времени суток (например, "Morning")
// Используется для группировки статистики времени в пути по маршрутам.
// Интервал полуоткрытый [Start, End); если End < Start, интервал
// переходит через полночь и покрывает [Start, 24:00) ∪ [00:00, End).
//
// Инвариант реестра: никакие два периода не пересекаются по времени.
type Period struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Start       TimeOfDay `json:"start"`
	End         TimeOfDay `json:"end"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Wraps сообщает, переходит ли интервал периода через полночь
func (p *Period) Wraps() bool {
	return p.End < p.Start
}

// Contains проверяет, попадает ли время суток в интервал периода.
// Интервал полуоткрытый: Start входит, End - нет.
func (p *Period) Contains(t TimeOfDay) bool {
	if p.Wraps() {
		return t >= p.Start || t < p.End
	}
	return t >= p.Start && t < p.End
}

// Overlaps проверяет, пересекаются ли интервалы двух периодов.
// Интервалы полуоткрытые, поэтому соприкосновение концами
// (End одного == Start другого) пересечением не считается.
// Проверка симметрична: p.Overlaps(q) == q.Overlaps(p).
func (p *Period) Overlaps(q *Period) bool {
	pw, qw := p.Wraps(), q.Wraps()

	switch {
	case pw && qw:
		// Оба интервала содержат полночь
		return true
	case pw:
		// q не пересекает p только если целиком помещается
		// в "дыру" p между p.End и p.Start
		return !(p.End <= q.Start && q.End <= p.Start)
	case qw:
		return !(q.End <= p.Start && p.End <= q.Start)
	default:
		return p.End > q.Start && q.End > p.Start
	}
}

// Validate проверяет корректность данных периода и нормализует их.
// Проверка fail-fast: возвращается первое нарушенное правило.
func (p *Period) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)

	if p.Name == "" || len(p.Name) > 20 {
		return ErrInvalidPeriodData
	}
	if len(p.Description) > 100 {
		return ErrInvalidPeriodData
	}
	if !p.Start.Valid() || !p.End.Valid() {
		return ErrInvalidTimeOfDay
	}
	// Интервал нулевой длины не имеет смысла
	if p.Start == p.End {
		return ErrInvalidPeriodData
	}
	return nil
}

// ResolvePeriod возвращает период, в интервал которого попадает указанное
// время суток. Если инвариант реестра соблюден, подходит не более одного
// периода; при нарушенных данных возвращается первый найденный.
// Если ни один период не подходит, возвращается nil.
func ResolvePeriod(now TimeOfDay, periods []*Period) *Period {
	for _, p := range periods {
		if p.Contains(now) {
			return p
		}
	}
	return nil
}
