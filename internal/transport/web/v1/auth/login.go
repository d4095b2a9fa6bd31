package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/logx"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/mw"
	v1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1"
)

type Handler struct {
	Log       *log.Logger
	Admins    domain.AdminsRepo
	Hasher    domain.PasswordHasher
	Tokens    domain.TokenManager
	Blacklist domain.TokenBlacklist
}

type loginRequest struct {
	Login string `json:"login"`
	Pswd  string `json:"pswd"`
}

type loginResponse struct {
	Token string       `json:"token"`
	Admin domain.Admin `json:"admin"`
}

// Login godoc
// @Summary     Authenticate admin
// @Description Возвращает JWT при валидных логине и пароле.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body loginRequest true "login, pswd"
// @Success     200 {object} domain.APIEnvelope{data=loginResponse}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /api/v1/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "auth.login"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start")

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logx.Error(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if req.Login == "" || req.Pswd == "" {
		logx.Error(h.Log, reqID, op, "empty login or pswd", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	a, err := h.Admins.AdminByLogin(r.Context(), req.Login)
	if err != nil {
		logx.Error(h.Log, reqID, op, "admin not found", err, "login", req.Login)
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}
	ok, err := h.Hasher.Verify(req.Pswd, string(a.PassHash))
	if err != nil || !ok {
		logx.Error(h.Log, reqID, op, "password verify failed", err, "login", req.Login)
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	tok, _, err := h.Tokens.Issue(r.Context(), a.ID, a.Login, a.Role)
	if err != nil {
		logx.Error(h.Log, reqID, op, "issue token failed", err, "admin_id", a.ID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "admin_id", a.ID, "login", a.Login)
	v1.WriteOK(w, r, "authenticated", loginResponse{Token: tok, Admin: a})
}
