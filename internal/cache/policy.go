package cache

import (
	"context"
	"time"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
)

// Маркер принудительного обхода кэша списков админов. Шаблонная чистка
// не атомарна относительно конкурентных чтений, которые уже достали
// устаревшие строки из БД и вот-вот запишут их в кэш. Для данных,
// влияющих на авторизацию, короткое окно «читаем мимо кэша» после
// мутации закрывает эту гонку.
const bypassKey = NSAdmins + ":bypass"

// ReadPolicy — явная, тестируемая политика «временно читать мимо кэша»
// вместо разбросанных по хендлерам булевых флагов.
type ReadPolicy struct {
	Cache  domain.Cache
	Window time.Duration // длительность окна после мутации
}

// Mark открывает окно обхода (зовётся роутером инвалидации после
// чувствительной мутации).
func (p ReadPolicy) Mark(ctx context.Context) {
	if p.Cache == nil || p.Window <= 0 {
		return
	}
	p.Cache.Set(ctx, bypassKey, []byte("1"), int(p.Window.Seconds()))
}

// Bypass — активно ли окно: пока маркер жив, чтения идут в БД напрямую.
func (p ReadPolicy) Bypass(ctx context.Context) bool {
	if p.Cache == nil {
		return false
	}
	_, ok := p.Cache.Get(ctx, bypassKey)
	return ok
}
