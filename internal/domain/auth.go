package domain

import (
	"context"
	"time"
)

// Токены выдаёт и этот бэкенд (логин админов), и внешний сервис
// одноразовых кодов (граждане). Здесь — контракты парсинга/ревокации.

type Token = string

type TokenClaims struct {
	JTI       string // уникальный id токена
	SubjectID UserID // гражданин или админ
	Login     string
	Role      AdminRole // пусто для граждан
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Хеширование паролей админов
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, encodedHash string) (bool, error)
}

type TokenManager interface {
	Issue(ctx context.Context, subject UserID, login string, role AdminRole) (Token, TokenClaims, error)
	Parse(ctx context.Context, t Token) (TokenClaims, error)
}

// Блэклист/ревокация токенов (Redis)
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, exp time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
