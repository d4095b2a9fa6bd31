package domain

import "context"

// Ключи для аутентифицированного субъекта в контексте HTTP-запроса
type ctxKey int

const (
	userCtxKey ctxKey = iota + 1
	adminCtxKey
)

func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userCtxKey, u)
}

func UserFromCtx(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userCtxKey).(User)
	return u, ok
}

func WithAdmin(ctx context.Context, a Admin) context.Context {
	return context.WithValue(ctx, adminCtxKey, a)
}

func AdminFromCtx(ctx context.Context) (Admin, bool) {
	a, ok := ctx.Value(adminCtxKey).(Admin)
	return a, ok
}
