package admins

import (
	"net/http"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/logx"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/mw"
	v1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1"
)

// List godoc
// @Summary     List admins
// @Tags        admins
// @Produce     json
// @Param       role       query string false "superadmin|moderator|staff"
// @Param       department query string false "department"
// @Param       deleted    query bool   false "включать деактивированных"
// @Param       limit      query int    false "limit"
// @Param       offset     query int    false "offset"
// @Success     200 {object} domain.APIEnvelope{data=[]domain.Admin}
// @Failure     401 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/v1/admins [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "admins.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	q := r.URL.Query()
	f := domain.AdminFilter{
		Role:           domain.AdminRole(q.Get("role")),
		Department:     q.Get("department"),
		IncludeDeleted: q.Get("deleted") == "true",
	}
	p := v1.PageFromQuery(r)

	key := h.Keys.AdminsList(f, p)
	if h.serveCached(w, r, key) {
		logx.Info(h.Log, reqID, op, "cache hit")
		return
	}

	list, err := h.Admins.AdminsList(r.Context(), f, p)
	if err != nil {
		logx.Error(h.Log, reqID, op, "db list failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(list))
	h.writeAndCache(w, r, key, "admins", list)
}

// GetOne godoc
// @Summary     Admin profile
// @Tags        admins
// @Produce     json
// @Param       id path string true "admin id (uuid)"
// @Success     200 {object} domain.APIEnvelope{data=domain.Admin}
// @Failure     404 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/v1/admins/{id} [get]
func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request) {
	const op = "admins.getone"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := v1.PathUUID(r, "id")
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad admin id", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	key := h.Keys.AdminProfile(id)
	if h.serveCached(w, r, key) {
		logx.Info(h.Log, reqID, op, "cache hit", "admin_id", id)
		return
	}

	a, err := h.Admins.AdminByID(r.Context(), id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "db get failed", err, "admin_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "admin_id", id)
	h.writeAndCache(w, r, key, "admin", a)
}
