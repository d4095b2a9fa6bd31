package stats

import (
	"encoding/json"
	"log"
	"net/http"

	appcache "github.com/nilesh384/JanSetu-Backend/internal/cache"
	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/logx"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/mw"
	v1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1"
)

type Handler struct {
	Log     *log.Logger
	Reports domain.ReportsRepo
	Cache   domain.Cache
	Keys    appcache.Keys
	TTL     domain.CacheTTL
}

// Community godoc
// @Summary     Community stats
// @Description Агрегаты по городу; самый дорогой запрос, TTL подлиннее.
// @Tags        stats
// @Produce     json
// @Success     200 {object} domain.APIEnvelope{data=domain.CommunityStats}
// @Failure     500 {object} domain.APIEnvelope
// @Router      /api/v1/stats/community [get]
func (h *Handler) Community(w http.ResponseWriter, r *http.Request) {
	const op = "stats.community"
	reqID := mw.RequestIDFromCtx(r.Context())

	key := h.Keys.CommunityStats()
	if b, ok := h.Cache.Get(r.Context(), key); ok {
		logx.Info(h.Log, reqID, op, "cache hit")
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
		return
	}

	st, err := h.Reports.CommunityStats(r.Context())
	if err != nil {
		logx.Error(h.Log, reqID, op, "db stats failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	env := domain.Ok("community stats", st)
	if buf, err := json.Marshal(env); err == nil {
		h.Cache.Set(r.Context(), key, buf, h.TTL.Stats)
	}
	logx.Info(h.Log, reqID, op, "ok", "total", st.TotalReports)
	w.Header().Set("X-Cache", "MISS")
	v1.WriteEnvelope(w, r, http.StatusOK, env)
}
