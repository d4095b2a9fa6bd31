package mw

import (
	"net/http"
	"strings"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
)

type AuthDeps struct {
	Tokens    domain.TokenManager
	Blacklist domain.TokenBlacklist
	Admins    domain.AdminsRepo
}

func (d AuthDeps) claims(r *http.Request) (domain.TokenClaims, bool) {
	raw := extractBearer(r.Header.Get("Authorization"))
	if raw == "" {
		return domain.TokenClaims{}, false
	}
	claims, err := d.Tokens.Parse(r.Context(), raw)
	if err != nil {
		return domain.TokenClaims{}, false
	}
	if revoked, _ := d.Blacklist.IsRevoked(r.Context(), claims.JTI); revoked {
		return domain.TokenClaims{}, false
	}
	return claims, true
}

// OptionalAuth кладёт гражданина в контекст, если токен валиден;
// без токена (или с битым) запрос идёт как гостевой.
func OptionalAuth(deps AuthDeps, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := deps.claims(r)
		if !ok || claims.Role != "" {
			next.ServeHTTP(w, r)
			return
		}
		u := domain.User{ID: claims.SubjectID, Phone: claims.Login}
		next.ServeHTTP(w, r.WithContext(domain.WithUser(r.Context(), u)))
	})
}

// RequireAuth — маршруты только для авторизованных граждан.
func RequireAuth(deps AuthDeps, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := deps.claims(r)
		if !ok || claims.Role != "" {
			unauthorized(w)
			return
		}
		u := domain.User{ID: claims.SubjectID, Phone: claims.Login}
		next.ServeHTTP(w, r.WithContext(domain.WithUser(r.Context(), u)))
	})
}

// RequireAdmin пускает только токены с ролью. Запись админа перечитывается
// из БД: деактивация должна закрывать доступ сразу, а не по истечении
// токена.
func RequireAdmin(deps AuthDeps, next http.Handler, roles ...domain.AdminRole) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := deps.claims(r)
		if !ok || claims.Role == "" {
			unauthorized(w)
			return
		}
		a, err := deps.Admins.AdminByID(r.Context(), claims.SubjectID)
		if err != nil || !a.IsActive {
			unauthorized(w)
			return
		}
		if len(roles) > 0 && !roleAllowed(a.Role, roles) {
			http.Error(w, `{"success":false,"error":{"code":1003,"text":"forbidden"}}`, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r.WithContext(domain.WithAdmin(r.Context(), a)))
	})
}

func roleAllowed(have domain.AdminRole, want []domain.AdminRole) bool {
	for _, r := range want {
		if have == r {
			return true
		}
	}
	return false
}

func unauthorized(w http.ResponseWriter) {
	http.Error(w, `{"success":false,"error":{"code":1001,"text":"unauthorized"}}`, http.StatusUnauthorized)
}

func extractBearer(h string) string {
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
