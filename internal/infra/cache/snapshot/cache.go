package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

const (
	DefaultKeyPrefix = "snapshot"
	DefaultTTL       = 15 * time.Minute

	scanBatch = 200
)

// Key identifies one cached snapshot: room x program x date range
type Key struct {
	RoomID    int64
	ProgramID int64
	From      string // YYYY-MM-DD
	To        string // YYYY-MM-DD
}

// Cache Redis-хранилище снапшотов с явным TTL и инвалидацией по комнате
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewCache создает новый экземпляр Cache
func NewCache(client *redis.Client, prefix string, ttl time.Duration) *Cache {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (c *Cache) key(k Key) string {
	return fmt.Sprintf("%s:%d:%d:%s:%s", c.prefix, k.RoomID, k.ProgramID, k.From, k.To)
}

func (c *Cache) roomIndexKey(roomID int64) string {
	return fmt.Sprintf("%s:room:%d", c.prefix, roomID)
}

// TTL время жизни записей
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get возвращает снапшот или ErrCacheMiss
func (c *Cache) Get(ctx context.Context, k Key) (*domain.Snapshot, error) {
	data, err := c.client.Get(ctx, c.key(k)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrCacheUnavailable, c.key(k), err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptedEntry, c.key(k), err)
	}
	return &snap, nil
}

// Set сохраняет снапшот и регистрирует ключ в индексе комнаты
func (c *Cache) Set(ctx context.Context, k Key, snap *domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("snapshot cache: marshal: %w", err)
	}

	key := c.key(k)
	index := c.roomIndexKey(k.RoomID)

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, data, c.ttl)
		pipe.SAdd(ctx, index, key)
		// индекс живёт не дольше самой свежей записи
		pipe.Expire(ctx, index, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrCacheUnavailable, key, err)
	}
	return nil
}

// InvalidateRoom удаляет все снапшоты комнаты, возвращает количество удаленных ключей
func (c *Cache) InvalidateRoom(ctx context.Context, roomID int64) (int, error) {
	index := c.roomIndexKey(roomID)

	keys, err := c.client.SMembers(ctx, index).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: members %s: %v", ErrCacheUnavailable, index, err)
	}

	removed, err := c.client.Del(ctx, append(keys, index)...).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: del %s: %v", ErrCacheUnavailable, index, err)
	}

	// сам индекс не считаем: он существует только пока в нём есть ключи
	if len(keys) > 0 {
		removed--
	}
	return int(removed), nil
}

// InvalidateAll удаляет все снапшоты и индексы, возвращает количество удаленных ключей вместе с индексами
func (c *Cache) InvalidateAll(ctx context.Context) (int, error) {
	var (
		cursor  uint64
		removed int
	)
	pattern := c.prefix + ":*"

	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return removed, fmt.Errorf("%w: scan %s: %v", ErrCacheUnavailable, pattern, err)
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return removed, fmt.Errorf("%w: del: %v", ErrCacheUnavailable, err)
			}
			removed += int(n)
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	return removed, nil
}

// Ping проверка доступности Redis
func (c *Cache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return nil
}
