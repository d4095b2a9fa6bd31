package admins

import (
	"encoding/json"
	"log"
	"net/http"

	appcache "github.com/nilesh384/JanSetu-Backend/internal/cache"
	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	v1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1"
)

type Handler struct {
	Log    *log.Logger
	Admins domain.AdminsRepo
	Hasher domain.PasswordHasher
	Cache  domain.Cache
	Keys   appcache.Keys
	Inval  *appcache.Router
	Policy appcache.ReadPolicy
	TTL    domain.CacheTTL
}

// serveCached — как в остальных хендлерах, но с учётом bypass-окна:
// после мутации админов чтения временно идут мимо кэша.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	if h.Policy.Bypass(r.Context()) {
		return false
	}
	b, ok := h.Cache.Get(r.Context(), key)
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "HIT")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
	return true
}

// writeAndCache не наполняет кэш, пока окно обхода открыто: запись могла
// бы пережить окно и вернуть устаревшие роли.
func (h *Handler) writeAndCache(w http.ResponseWriter, r *http.Request, key string, msg string, data any) {
	env := domain.Ok(msg, data)
	if !h.Policy.Bypass(r.Context()) {
		if buf, err := json.Marshal(env); err == nil {
			h.Cache.Set(r.Context(), key, buf, h.TTL.Admins)
		}
	}
	w.Header().Set("X-Cache", "MISS")
	v1.WriteEnvelope(w, r, http.StatusOK, env)
}
