// Package redisx — Redis-реализация domain.Cache. Кэш — строго
// оптимизация: любая ошибка/таймаут абсорбируется (лог + промах/no-op),
// наверх ничего не пробрасываем. Каждая операция ограничена
// суб-секундным таймаутом — медленный Redis не должен замедлять запрос
// заметнее, чем его полное отсутствие.
package redisx

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Жёсткий потолок на одну операцию кэша
const opTimeout = 300 * time.Millisecond

type Cache struct {
	rdb    *redis.Client
	logger *log.Logger
}

type Config struct {
	Addr     string
	DB       int
	Password string
}

func New(cfg Config, logger *log.Logger) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		DB:           cfg.DB,
		Password:     cfg.Password,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
	})
	return &Cache{rdb: rdb, logger: logger}
}

func (c *Cache) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, opTimeout)
}

func (c *Cache) Ping(ctx context.Context) error {
	err := c.rdb.Ping(ctx).Err()
	if err != nil {
		c.logger.Printf("PING failed: %v", err)
	}
	return err
}

func (c *Cache) Close() {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Close(); err != nil {
		c.logger.Printf("error while closing: %v", err)
		return
	}
	c.logger.Println("closed")
}

// Get: любая ошибка (включая таймаут) — промах.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Printf("GET %q degraded to miss: %v", key, err)
		return nil, false
	}
	return b, true
}

func (c *Cache) Set(ctx context.Context, key string, val []byte, ttlSeconds int) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var ttl time.Duration
	if ttlSeconds > 0 {
		ttl = time.Duration(ttlSeconds) * time.Second
	}
	if err := c.rdb.Set(ctx, key, val, ttl).Err(); err != nil {
		c.logger.Printf("SET %q skipped: %v", key, err)
	}
}

func (c *Cache) Del(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Printf("DEL %v skipped: %v", keys, err)
	}
}

// DelPattern: SCAN по шаблону + батчевый DEL. SCAN не блокирует Redis;
// на весь проход даём таймаут пошире точечного.
func (c *Cache) DelPattern(ctx context.Context, pattern string) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	batch := make([]string, 0, 100)
	deleted := 0
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) >= 100 {
			if err := c.rdb.Del(ctx, batch...).Err(); err != nil {
				c.logger.Printf("DEL pattern %q batch skipped: %v", pattern, err)
				return
			}
			deleted += len(batch)
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Printf("SCAN %q aborted: %v", pattern, err)
		return
	}
	if len(batch) > 0 {
		if err := c.rdb.Del(ctx, batch...).Err(); err != nil {
			c.logger.Printf("DEL pattern %q tail skipped: %v", pattern, err)
			return
		}
		deleted += len(batch)
	}
	if deleted > 0 {
		c.logger.Printf("DEL pattern %q: deleted=%d", pattern, deleted)
	}
}

// SetNX нужен блэклисту токенов.
func (c *Cache) SetNX(ctx context.Context, key string, val []byte, ttlSeconds int) (bool, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var ttl time.Duration
	if ttlSeconds > 0 {
		ttl = time.Duration(ttlSeconds) * time.Second
	}
	ok, err := c.rdb.SetNX(ctx, key, val, ttl).Result()
	if err != nil {
		c.logger.Printf("SETNX %q failed: %v", key, err)
	}
	return ok, err
}

func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	n, err := c.rdb.Exists(ctx, key).Result()
	if err != nil {
		c.logger.Printf("EXISTS %q failed: %v", key, err)
		return false, err
	}
	return n == 1, nil
}
