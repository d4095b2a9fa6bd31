// Package memory — in-process реализация domain.Cache: map + TTL +
// glob-шаблоны. Используется, когда Redis не сконфигурирован, и в тестах.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"
)

type entry struct {
	val       []byte
	expiresAt time.Time // zero — без TTL
}

type Cache struct {
	mu    sync.RWMutex
	items map[string]entry
	now   func() time.Time // подменяется в тестах
}

func New() *Cache {
	return &Cache{items: map[string]entry{}, now: time.Now}
}

func (c *Cache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	// пассивная эвикция: просроченный ключ — промах, даже если
	// физически ещё лежит
	if !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.val, true
}

func (c *Cache) Set(_ context.Context, key string, val []byte, ttlSeconds int) {
	var exp time.Time
	if ttlSeconds > 0 {
		exp = c.now().Add(time.Duration(ttlSeconds) * time.Second)
	}
	c.mu.Lock()
	c.items[key] = entry{val: val, expiresAt: exp}
	c.mu.Unlock()
}

func (c *Cache) Del(_ context.Context, keys ...string) {
	c.mu.Lock()
	for _, k := range keys {
		delete(c.items, k)
	}
	c.mu.Unlock()
}

// DelPattern удаляет все живые ключи по glob-шаблону под одной блокировкой:
// конкурентное чтение видит либо до-, либо после-чистки, но не перемешку.
func (c *Cache) DelPattern(_ context.Context, pattern string) {
	c.mu.Lock()
	for k := range c.items {
		if Match(pattern, k) {
			delete(c.items, k)
		}
	}
	c.mu.Unlock()
}

// SetNX/Exists поддерживают блэклист токенов поверх того же стора.
func (c *Cache) SetNX(_ context.Context, key string, val []byte, ttlSeconds int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.items[key]; ok {
		if e.expiresAt.IsZero() || c.now().Before(e.expiresAt) {
			return false, nil
		}
	}
	var exp time.Time
	if ttlSeconds > 0 {
		exp = c.now().Add(time.Duration(ttlSeconds) * time.Second)
	}
	c.items[key] = entry{val: val, expiresAt: exp}
	return true, nil
}

func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.Get(ctx, key)
	return ok, nil
}

func (c *Cache) Ping(context.Context) error { return nil }

func (c *Cache) Close() {
	c.mu.Lock()
	c.items = map[string]entry{}
	c.mu.Unlock()
}

// Len — число физически хранимых записей (для тестов/дебага).
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Match — glob в духе Redis: '*' матчит любую подстроку. Нам хватает
// шаблонов вида "prefix:*" и точных ключей.
func Match(pattern, key string) bool {
	if !strings.Contains(pattern, "*") {
		return pattern == key
	}
	parts := strings.Split(pattern, "*")
	// первая часть — префикс, последняя — суффикс, промежуточные ищем слева направо
	if !strings.HasPrefix(key, parts[0]) {
		return false
	}
	rest := key[len(parts[0]):]
	last := parts[len(parts)-1]
	for _, mid := range parts[1 : len(parts)-1] {
		i := strings.Index(rest, mid)
		if i < 0 {
			return false
		}
		rest = rest[i+len(mid):]
	}
	return strings.HasSuffix(rest, last)
}
