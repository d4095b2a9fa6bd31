package web

import (
	appcache "github.com/nilesh384/JanSetu-Backend/internal/cache"
	"github.com/nilesh384/JanSetu-Backend/internal/domain"
)

type Repos struct {
	Users   domain.UsersRepo
	Reports domain.ReportsRepo
	Social  domain.SocialRepo
	Admins  domain.AdminsRepo
}

type AuthDeps struct {
	Hasher    domain.PasswordHasher
	Tokens    domain.TokenManager
	Blacklist domain.TokenBlacklist
}

// CacheDeps — кэш вместе с ключами, роутером инвалидации и TTL:
// хендлеры получают их одним набором.
type CacheDeps struct {
	Cache domain.Cache
	Keys  appcache.Keys
	Inval *appcache.Router
	TTL   domain.CacheTTL
}
