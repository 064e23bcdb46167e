package roster

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const (
	// DefaultKey ключ, под которым хранится список команд
	DefaultKey = "availability:roster:operational"

	// DefaultTTL время жизни закэшированного списка
	DefaultTTL = 5 * time.Minute

	cacheName = "roster"
)

// Source источник списка команд (репозиторий)
type Source interface {
	GetOperationalTeams(ctx context.Context) ([]domain.TeamCoverage, error)
}

// Observer получатель метрик кэша (реализуется pkg/metrics.Metrics)
type Observer interface {
	ObserveCache(cache, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Cache read-through кэш списка команд в Redis.
// Недоступность Redis не ломает запрос: данные берутся из источника напрямую.
type Cache struct {
	source   Source
	client   *redis.Client
	ttl      time.Duration
	key      string
	observer Observer
	logger   Logger
}

// NewCache создает кэш поверх источника команд. observer может быть nil.
func NewCache(source Source, client *redis.Client, ttl time.Duration, observer Observer, logger Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		source:   source,
		client:   client,
		ttl:      ttl,
		key:      DefaultKey,
		observer: observer,
		logger:   logger,
	}
}

// WithKey задает ключ Redis (по умолчанию DefaultKey)
func (c *Cache) WithKey(key string) *Cache {
	if key != "" {
		c.key = key
	}
	return c
}

type cachedTeam struct {
	TeamID    int64   `json:"team_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusKm  float64 `json:"radius_km"`
}

// GetOperationalTeams возвращает команды из кэша или из источника
func (c *Cache) GetOperationalTeams(ctx context.Context) ([]domain.TeamCoverage, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	switch {
	case err == nil:
		teams, decodeErr := decodeTeams(data)
		if decodeErr == nil {
			c.observe("hit")
			return teams, nil
		}
		c.logger.Warn("RosterCache: failed to decode cached roster, reloading: %v", decodeErr)
		c.observe("error")
	case errors.Is(err, redis.Nil):
		c.observe("miss")
	default:
		c.logger.Warn("RosterCache: redis get failed, falling back to source: %v", err)
		c.observe("error")
	}

	teams, err := c.source.GetOperationalTeams(ctx)
	if err != nil {
		return nil, err
	}

	// пустой список не кэшируем: новые команды должны появляться сразу
	if len(teams) > 0 {
		c.store(ctx, teams)
	}

	return teams, nil
}

// Invalidate удаляет закэшированный список
func (c *Cache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}

func (c *Cache) store(ctx context.Context, teams []domain.TeamCoverage) {
	payload := make([]cachedTeam, len(teams))
	for i, t := range teams {
		payload[i] = cachedTeam{
			TeamID:    t.TeamID,
			Latitude:  t.Coordinates.Latitude,
			Longitude: t.Coordinates.Longitude,
			RadiusKm:  t.RadiusKm,
		}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error("RosterCache: failed to encode roster: %v", err)
		return
	}

	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("RosterCache: redis set failed: %v", err)
	}
}

func (c *Cache) observe(result string) {
	if c.observer != nil {
		c.observer.ObserveCache(cacheName, result)
	}
}

func decodeTeams(data []byte) ([]domain.TeamCoverage, error) {
	var payload []cachedTeam
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}

	teams := make([]domain.TeamCoverage, len(payload))
	for i, t := range payload {
		teams[i] = domain.TeamCoverage{
			TeamID:      t.TeamID,
			Coordinates: domain.Location{Latitude: t.Latitude, Longitude: t.Longitude},
			RadiusKm:    t.RadiusKm,
		}
	}
	return teams, nil
}
