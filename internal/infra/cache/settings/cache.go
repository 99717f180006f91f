package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

const keyPrefix = "scheduling:settings"

// Cache read-through кеш расписания и правил бизнеса в Redis
// Ошибки Redis не ломают чтение: запрос уходит в Source
type Cache struct {
	source Source
	rdb    *redis.Client
	ttl    time.Duration
	logger Logger
}

// NewCache создает кеш поверх source
func NewCache(source Source, rdb *redis.Client, ttl time.Duration, logger Logger) *Cache {
	return &Cache{source: source, rdb: rdb, ttl: ttl, logger: logger}
}

func scheduleKey(businessID int64) string {
	return fmt.Sprintf("%s:%d:schedule", keyPrefix, businessID)
}

func rulesKey(businessID int64) string {
	return fmt.Sprintf("%s:%d:rules", keyPrefix, businessID)
}

// GetWeeklySchedule возвращает расписание из кеша или из source
func (c *Cache) GetWeeklySchedule(ctx context.Context, businessID int64) (domain.WeeklySchedule, error) {
	key := scheduleKey(businessID)

	var cached []dayEntry
	if c.load(ctx, key, &cached) {
		if schedule, err := decodeSchedule(cached); err == nil {
			return schedule, nil
		}
		c.logger.Warn("SettingsCache: broken schedule entry for business=%d, reloading", businessID)
	}

	schedule, err := c.source.GetWeeklySchedule(ctx, businessID)
	if err != nil {
		return domain.WeeklySchedule{}, err
	}

	c.store(ctx, key, encodeSchedule(schedule))
	return schedule, nil
}

// SaveWeeklySchedule сохраняет расписание и сбрасывает кеш
func (c *Cache) SaveWeeklySchedule(ctx context.Context, businessID int64, schedule domain.WeeklySchedule) error {
	if err := c.source.SaveWeeklySchedule(ctx, businessID, schedule); err != nil {
		return err
	}
	c.invalidate(ctx, scheduleKey(businessID))
	return nil
}

// GetBookingRules возвращает правила из кеша или из source
// Отсутствие правил не кешируется
func (c *Cache) GetBookingRules(ctx context.Context, businessID int64) (*domain.BookingRules, error) {
	key := rulesKey(businessID)

	var cached domain.BookingRules
	if c.load(ctx, key, &cached) {
		return &cached, nil
	}

	rules, err := c.source.GetBookingRules(ctx, businessID)
	if err != nil {
		return nil, err
	}

	c.store(ctx, key, rules)
	return rules, nil
}

// SaveBookingRules сохраняет правила и сбрасывает кеш
func (c *Cache) SaveBookingRules(ctx context.Context, rules *domain.BookingRules) (*domain.BookingRules, error) {
	saved, err := c.source.SaveBookingRules(ctx, rules)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, rulesKey(rules.BusinessID))
	return saved, nil
}

func (c *Cache) load(ctx context.Context, key string, dst interface{}) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("SettingsCache: get %s failed: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.logger.Warn("SettingsCache: decode %s failed: %v", key, err)
		return false
	}
	return true
}

func (c *Cache) store(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("SettingsCache: encode %s failed: %v", key, err)
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("SettingsCache: set %s failed: %v", key, err)
	}
}

func (c *Cache) invalidate(ctx context.Context, key string) {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("SettingsCache: delete %s failed: %v", key, err)
	}
}

// dayEntry JSON-представление дня расписания в кеше
type dayEntry struct {
	Day            int    `json:"day"`
	IsOpen         bool   `json:"is_open"`
	Interval1Start string `json:"interval1_start,omitempty"`
	Interval1End   string `json:"interval1_end,omitempty"`
	Interval2Start string `json:"interval2_start,omitempty"`
	Interval2End   string `json:"interval2_end,omitempty"`
}

func encodeSchedule(schedule domain.WeeklySchedule) []dayEntry {
	entries := make([]dayEntry, 0, domain.DaysInWeek)
	for _, d := range schedule.Days() {
		e := dayEntry{Day: int(d.Day), IsOpen: d.IsOpen}
		if d.Interval1 != nil {
			e.Interval1Start, e.Interval1End = d.Interval1.Start.String(), d.Interval1.End.String()
		}
		if d.Interval2 != nil {
			e.Interval2Start, e.Interval2End = d.Interval2.Start.String(), d.Interval2.End.String()
		}
		entries = append(entries, e)
	}
	return entries
}

func decodeSchedule(entries []dayEntry) (domain.WeeklySchedule, error) {
	days := make([]domain.DayAvailability, 0, len(entries))
	for _, e := range entries {
		d := domain.DayAvailability{Day: domain.WeekDay(e.Day), IsOpen: e.IsOpen}
		if e.Interval1Start != "" {
			d.Interval1 = &domain.TimeRange{Start: types.TimeString(e.Interval1Start), End: types.TimeString(e.Interval1End)}
		}
		if e.Interval2Start != "" {
			d.Interval2 = &domain.TimeRange{Start: types.TimeString(e.Interval2Start), End: types.TimeString(e.Interval2End)}
		}
		days = append(days, d)
	}
	return domain.NewWeeklySchedule(days)
}
