package health

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/logx"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/mw"
	v1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1"
)

type Pinger interface {
	Ping(context.Context) error
}

type Handler struct {
	Log     *log.Logger
	DB      Pinger
	Cache   Pinger
	Storage Pinger
}

// Liveness godoc
// @Summary      Liveness probe
// @Description  Проверка, жив ли сервис (не зависит от БД/кэша)
// @Tags         health
// @Produce      json
// @Success      200  {object}  domain.APIEnvelope{data=string}
// @Router       /api/v1/healthz [get]
func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	const op = "health.liveness"
	reqID := mw.RequestIDFromCtx(r.Context())

	logx.Info(h.Log, reqID, op, "ok")
	v1.WriteOK(w, r, "ok", nil)
}

// Readiness godoc
// @Summary      Readiness probe
// @Description  БД и S3 обязательны; лежащий кэш готовности не ломает —
// @Description  сервис работает в режиме промахов.
// @Tags         health
// @Produce      json
// @Success      200  {object}  domain.APIEnvelope{data=string}
// @Failure      503  {object}  domain.APIEnvelope
// @Router       /api/v1/readyz [get]
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	const op = "health.readiness"
	reqID := mw.RequestIDFromCtx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.DB.Ping(ctx); err != nil {
		logx.Error(h.Log, reqID, op, "db ping failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnavailable)
		return
	}
	if err := h.Storage.Ping(ctx); err != nil {
		logx.Error(h.Log, reqID, op, "storage ping failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnavailable)
		return
	}
	if err := h.Cache.Ping(ctx); err != nil {
		logx.Error(h.Log, reqID, op, "cache ping failed, serving without cache", err)
	}

	logx.Info(h.Log, reqID, op, "ready")
	v1.WriteOK(w, r, "ready", nil)
}
