package auth

import (
	"net/http"
	"strings"

	"github.com/nilesh384/JanSetu-Backend/internal/domain"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/logx"
	"github.com/nilesh384/JanSetu-Backend/internal/transport/web/mw"
	v1 "github.com/nilesh384/JanSetu-Backend/internal/transport/web/v1"
)

// Logout godoc
// @Summary     Revoke current token
// @Description Кладёт jti в блэклист до истечения срока токена.
// @Tags        auth
// @Produce     json
// @Success     200 {object} domain.APIEnvelope
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Security    BearerAuth
// @Router      /api/v1/auth/logout [delete]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	const op = "auth.logout"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start")

	raw := bearer(r.Header.Get("Authorization"))
	if raw == "" {
		logx.Error(h.Log, reqID, op, "missing token", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	claims, err := h.Tokens.Parse(r.Context(), raw)
	if err != nil {
		logx.Error(h.Log, reqID, op, "parse token failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	if err := h.Blacklist.Revoke(r.Context(), claims.JTI, claims.ExpiresAt); err != nil {
		logx.Error(h.Log, reqID, op, "revoke failed", err, "jti", claims.JTI)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "jti", claims.JTI)
	v1.WriteOK(w, r, "logged out", nil)
}

func bearer(h string) string {
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
