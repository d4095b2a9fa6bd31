package social

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
	Social domain.SocialRepo
	Cache  domain.Cache
	Keys   appcache.Keys
	Inval  *appcache.Router
	TTL    domain.CacheTTL
}

func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
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

func (h *Handler) writeAndCache(w http.ResponseWriter, r *http.Request, key string, ttl int, msg string, data any) {
	env := domain.Ok(msg, data)
	buf, err := json.Marshal(env)
	if err == nil {
		h.Cache.Set(r.Context(), key, buf, ttl)
	}
	w.Header().Set("X-Cache", "MISS")
	v1.WriteEnvelope(w, r, http.StatusOK, env)
}
