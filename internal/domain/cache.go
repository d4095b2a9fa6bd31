package domain

import "context"

// Кэш — строго оптимизация. Ошибки бэкенда (Redis лёг, таймаут) никогда
// не доходят до вызывающего: Get ведёт себя как промах, Set/Del — no-op.
// Реализации логируют и продолжают.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte, ttlSeconds int)
	Del(ctx context.Context, keys ...string)
	// Удаление по glob-шаблону вида "reports:list:*" (prefix + wildcard).
	DelPattern(ctx context.Context, pattern string)
	Ping(context.Context) error
	Close()
}
