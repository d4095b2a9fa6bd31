package admins

import (
	"net/http"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/logx"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/mw"
	v1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1"
)

// Delete godoc
// @Summary     Deactivate admin
// @Description Soft delete: is_active=false, логин не переиспользуется.
// @Tags        admins
// @Produce     json
// @Param       id path string true "admin id (uuid)"
// @Success     200 {object} domain.APIEnvelope
// @Failure     403 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/v1/admins/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "admins.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, _ := domain.AdminFromCtx(r.Context())
	id, err := v1.PathUUID(r, "id")
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad admin id", err)
		v1.WriteDomainError(w, r, err)
		return
	}
	// самого себя не деактивируем, иначе можно остаться без superadmin
	if me.ID == id {
		logx.Error(h.Log, reqID, op, "self delete", domain.ErrForbidden)
		v1.WriteDomainError(w, r, domain.ErrForbidden)
		return
	}

	if err := h.Admins.DeactivateAdmin(r.Context(), id); err != nil {
		logx.Error(h.Log, reqID, op, "deactivate failed", err, "admin_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.Inval.AdminChanged(r.Context(), id)

	logx.Info(h.Log, reqID, op, "ok", "admin_id", id)
	v1.WriteOK(w, r, "admin deactivated", nil)
}

// Restore godoc
// @Summary     Restore admin
// @Tags        admins
// @Produce     json
// @Param       id path string true "admin id (uuid)"
// @Success     200 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/v1/admins/{id}/restore [post]
func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	const op = "admins.restore"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := v1.PathUUID(r, "id")
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad admin id", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	if err := h.Admins.RestoreAdmin(r.Context(), id); err != nil {
		logx.Error(h.Log, reqID, op, "restore failed", err, "admin_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.Inval.AdminChanged(r.Context(), id)

	logx.Info(h.Log, reqID, op, "ok", "admin_id", id)
	v1.WriteOK(w, r, "admin restored", nil)
}
