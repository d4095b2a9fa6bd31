package admins

import (
	"encoding/json"
	"net/http"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/logx"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/mw"
	v1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1"
)

// Update godoc
// @Summary     Update admin
// @Description Меняет имя/департамент/роль; nil-поля не трогаем.
// @Tags        admins
// @Accept      json
// @Produce     json
// @Param       id      path string true "admin id (uuid)"
// @Param       request body object true "{name, department, role}"
// @Success     200 {object} domain.APIEnvelope{data=domain.Admin}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/v1/admins/{id} [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "admins.update"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := v1.PathUUID(r, "id")
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad admin id", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	var req struct {
		Name       *string           `json:"name"`
		Department *string           `json:"department"`
		Role       *domain.AdminRole `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if req.Name == nil && req.Department == nil && req.Role == nil {
		logx.Error(h.Log, reqID, op, "empty patch", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if req.Role != nil && !domain.ValidAdminRole(*req.Role) {
		logx.Error(h.Log, reqID, op, "bad role", domain.ErrBadParams, "role", *req.Role)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	a, err := h.Admins.UpdateAdmin(r.Context(), id, req.Name, req.Department, req.Role)
	if err != nil {
		logx.Error(h.Log, reqID, op, "update failed", err, "admin_id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.Inval.AdminChanged(r.Context(), id)

	logx.Info(h.Log, reqID, op, "ok", "admin_id", id)
	v1.WriteOK(w, r, "admin updated", a)
}
