package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/corvobarber/agenda-api/internal/domain/appointment"
)

// AvailabilityCache guarda o resultado de consultas de disponibilidade
// por um TTL curto. Qualquer escrita para o barbeiro invalida o dia
// inteiro, então o cache nunca devolve um slot já reservado.
type AvailabilityCache interface {
	Get(ctx context.Context, barberID uint, date string, serviceID uint) ([]domain.Slot, bool)
	Set(ctx context.Context, barberID uint, date string, serviceID uint, slots []domain.Slot)
	Invalidate(ctx context.Context, barberID uint, date string)
}

// --------------------------------------------------
// Redis
// --------------------------------------------------

type RedisAvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewRedisAvailabilityCache(client *redis.Client, ttl time.Duration) *RedisAvailabilityCache {
	return &RedisAvailabilityCache{
		client: client,
		ttl:    ttl,
	}
}

type cachedSlot struct {
	Start       time.Time `json:"start"`
	DurationMin int       `json:"duration_min"`
}

func slotKey(barberID uint, date string, serviceID uint) string {
	return fmt.Sprintf("availability:%d:%s:%d", barberID, date, serviceID)
}

// indexKey agrupa todas as chaves de um barbeiro/dia para invalidação
// em lote, independente do serviço consultado.
func indexKey(barberID uint, date string) string {
	return fmt.Sprintf("availability:index:%d:%s", barberID, date)
}

func (c *RedisAvailabilityCache) Get(
	ctx context.Context,
	barberID uint,
	date string,
	serviceID uint,
) ([]domain.Slot, bool) {

	val, err := c.client.Get(ctx, slotKey(barberID, date, serviceID)).Result()
	if err != nil {
		return nil, false
	}

	var cached []cachedSlot
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		return nil, false
	}

	slots := make([]domain.Slot, 0, len(cached))
	for _, s := range cached {
		slots = append(slots, domain.Slot{
			Start:       s.Start,
			DurationMin: s.DurationMin,
		})
	}

	return slots, true
}

func (c *RedisAvailabilityCache) Set(
	ctx context.Context,
	barberID uint,
	date string,
	serviceID uint,
	slots []domain.Slot,
) {

	cached := make([]cachedSlot, 0, len(slots))
	for _, s := range slots {
		cached = append(cached, cachedSlot{
			Start:       s.Start,
			DurationMin: s.DurationMin,
		})
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return
	}

	key := slotKey(barberID, date, serviceID)
	idx := indexKey(barberID, date)

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, data, c.ttl)
	pipe.SAdd(ctx, idx, key)
	pipe.Expire(ctx, idx, c.ttl)
	_, _ = pipe.Exec(ctx)
}

func (c *RedisAvailabilityCache) Invalidate(
	ctx context.Context,
	barberID uint,
	date string,
) {

	idx := indexKey(barberID, date)

	keys, err := c.client.SMembers(ctx, idx).Result()
	if err != nil {
		return
	}

	keys = append(keys, idx)
	c.client.Del(ctx, keys...)
}

// --------------------------------------------------
// Noop (redis desabilitado)
// --------------------------------------------------

type NoopAvailabilityCache struct{}

func NewNoopAvailabilityCache() *NoopAvailabilityCache {
	return &NoopAvailabilityCache{}
}

func (NoopAvailabilityCache) Get(context.Context, uint, string, uint) ([]domain.Slot, bool) {
	return nil, false
}

func (NoopAvailabilityCache) Set(context.Context, uint, string, uint, []domain.Slot) {}

func (NoopAvailabilityCache) Invalidate(context.Context, uint, string) {}

var (
	_ AvailabilityCache = (*RedisAvailabilityCache)(nil)
	_ AvailabilityCache = NoopAvailabilityCache{}
)
