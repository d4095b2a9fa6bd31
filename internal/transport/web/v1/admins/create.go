package admins

import (
	"encoding/json"
	"net/http"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/logx"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/mw"
	v1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1"
)

// Create godoc
// @Summary     Create admin
// @Description Только superadmin. Логин уникален, пароль — argon2id.
// @Tags        admins
// @Accept      json
// @Produce     json
// @Param       request body object true "{login, password, name, role, department}"
// @Success     201 {object} domain.APIEnvelope{data=domain.Admin}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     403 {object} domain.APIEnvelope
// @Failure     409 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/v1/admins [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "admins.create"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start")

	var req struct {
		Login      string           `json:"login"`
		Password   string           `json:"password"`
		Name       string           `json:"name"`
		Role       domain.AdminRole `json:"role"`
		Department string           `json:"department"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if !domain.ValidLogin(req.Login) || len(req.Password) < 8 || !domain.ValidAdminRole(req.Role) {
		logx.Error(h.Log, reqID, op, "validation failed", domain.ErrBadParams, "login", req.Login)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	hash, err := h.Hasher.Hash(req.Password)
	if err != nil {
		logx.Error(h.Log, reqID, op, "hash failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	a, err := h.Admins.CreateAdmin(r.Context(), domain.Admin{
		Login:      req.Login,
		PassHash:   []byte(hash),
		Name:       req.Name,
		Role:       req.Role,
		Department: req.Department,
		IsActive:   true,
	})
	if err != nil {
		logx.Error(h.Log, reqID, op, "create failed", err, "login", req.Login)
		v1.WriteDomainError(w, r, err)
		return
	}

	h.Inval.AdminChanged(r.Context(), a.ID)

	logx.Info(h.Log, reqID, op, "ok", "admin_id", a.ID, "login", a.Login)
	v1.WriteCreated(w, r, "admin created", a)
}
